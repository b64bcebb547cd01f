// Package text provides the passages players race on.
package text

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
)

// DefaultText is raced on when no other source is configured.
const DefaultText = "A quick typist keeps their eyes on the text and their fingers on the home row. " +
	"Speed comes from rhythm rather than haste, and every mistake costs more time than it saves."

//go:embed texts/*.txt
var embedded embed.FS

// ErrEmptyCorpus is returned when there is nothing to pick or learn from.
var ErrEmptyCorpus = errors.New("corpus has no words")

// Source supplies the text of the next race.
type Source interface {
	Text(ctx context.Context) (string, error)
}

// Normalize collapses every whitespace run to a single space and trims the ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StaticSource always returns the same text.
type StaticSource string

// Text implements Source.
func (s StaticSource) Text(context.Context) (string, error) {
	return Normalize(string(s)), nil
}

// FileSource reads its text from a file on every call, so the file can be
// replaced while the server runs.
type FileSource struct {
	Path string
}

// Text implements Source.
func (s FileSource) Text(context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("could not read text file: %w", err)
	}

	text := Normalize(string(data))
	if text == "" {
		return "", fmt.Errorf("text file %s is empty", s.Path)
	}

	return text, nil
}

// CorpusSource picks a random passage from a set of texts.
type CorpusSource struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	passages []string
}

// NewCorpusSource returns a CorpusSource over the given passages. Empty passages are dropped.
func NewCorpusSource(passages []string, rnd *rand.Rand) (*CorpusSource, error) {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec
	}

	s := &CorpusSource{rnd: rnd}
	for _, p := range passages {
		if p = Normalize(p); p != "" {
			s.passages = append(s.passages, p)
		}
	}
	if len(s.passages) == 0 {
		return nil, ErrEmptyCorpus
	}

	return s, nil
}

// NewEmbeddedCorpusSource returns a CorpusSource over the passages shipped with the binary.
func NewEmbeddedCorpusSource(rnd *rand.Rand) (*CorpusSource, error) {
	passages, err := EmbeddedPassages()
	if err != nil {
		return nil, err
	}

	return NewCorpusSource(passages, rnd)
}

// EmbeddedPassages returns the passages shipped with the binary, ordered by file name.
func EmbeddedPassages() ([]string, error) {
	names, err := fs.Glob(embedded, "texts/*.txt")
	if err != nil {
		return nil, fmt.Errorf("could not list embedded texts: %w", err)
	}
	sort.Strings(names)

	passages := make([]string, 0, len(names))
	for _, name := range names {
		data, err := embedded.ReadFile(path.Clean(name))
		if err != nil {
			return nil, fmt.Errorf("could not read embedded text %s: %w", name, err)
		}
		passages = append(passages, string(data))
	}

	return passages, nil
}

// Text implements Source.
func (s *CorpusSource) Text(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.passages[s.rnd.IntN(len(s.passages))], nil
}

// Len returns the number of passages.
func (s *CorpusSource) Len() int {
	return len(s.passages)
}

// Modes accepted by NewSource.
const (
	ModeStatic = "static"
	ModeFile   = "file"
	ModeCorpus = "corpus"
	ModeMarkov = "markov"
)

// Options select and configure the Source built by NewSource.
type Options struct {
	Mode string
	// File is the text of ModeFile.
	File string
	// CorpusFile trains ModeMarkov. Empty trains on the embedded passages.
	CorpusFile string
	// ModelFile caches the trained ModeMarkov model.
	ModelFile string
	// Words is the length of generated texts.
	Words int
}

// NewSource builds the Source selected by opts.Mode.
func NewSource(opts Options) (Source, error) {
	switch opts.Mode {
	case ModeStatic, "":
		return StaticSource(DefaultText), nil
	case ModeFile:
		src := FileSource{Path: opts.File}
		if _, err := src.Text(context.Background()); err != nil {
			return nil, err
		}

		return src, nil
	case ModeCorpus:
		return NewEmbeddedCorpusSource(nil)
	case ModeMarkov:
		corpus, err := markovCorpus(opts.CorpusFile)
		if err != nil {
			return nil, err
		}

		gen := NewGenerator(nil)
		if err = gen.LoadOrTrain(opts.ModelFile, corpus); err != nil {
			return nil, err
		}

		return MarkovSource{Generator: gen, Words: opts.Words}, nil
	default:
		return nil, fmt.Errorf("unknown text mode %q", opts.Mode)
	}
}

func markovCorpus(corpusFile string) (string, error) {
	if corpusFile != "" {
		data, err := os.ReadFile(corpusFile)
		if err != nil {
			return "", fmt.Errorf("could not read corpus: %w", err)
		}

		return string(data), nil
	}

	passages, err := EmbeddedPassages()
	if err != nil {
		return "", err
	}

	return strings.Join(passages, "\n"), nil
}
