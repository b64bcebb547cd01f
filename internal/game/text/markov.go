package text

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/go-faster/jx"
)

// Generator produces texts from a word-level markov chain.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand

	// starts counts how often a word is followed by any other word.
	starts map[string]int
	// transitions counts, per word, the words that follow it.
	transitions map[string]map[string]int
}

// NewGenerator returns an untrained Generator. A nil rnd selects a randomly seeded source.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec
	}

	return &Generator{
		rnd:         rnd,
		starts:      make(map[string]int),
		transitions: make(map[string]map[string]int),
	}
}

// Tokenize lower-cases corpus, strips punctuation and non-ASCII runes and
// splits the rest on whitespace.
func Tokenize(corpus string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r > unicode.MaxASCII, unicode.IsPunct(r), unicode.IsSymbol(r):
			return -1
		case unicode.IsSpace(r), unicode.IsControl(r):
			return ' '
		default:
			return unicode.ToLower(r)
		}
	}, corpus)

	return strings.Fields(cleaned)
}

// Train adds the word pairs of corpus to the model.
func (g *Generator) Train(corpus string) error {
	words := Tokenize(corpus)
	if len(words) < 2 {
		return ErrEmptyCorpus
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < len(words)-1; i++ {
		current, next := words[i], words[i+1]
		g.starts[current]++

		followers, ok := g.transitions[current]
		if !ok {
			followers = make(map[string]int)
			g.transitions[current] = followers
		}
		followers[next]++
	}

	return nil
}

// Trained reports whether the model can generate text.
func (g *Generator) Trained() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.starts) > 0
}

// Generate returns a text of the given number of words. A word without
// followers restarts the chain from the start distribution.
func (g *Generator) Generate(words int) (string, error) {
	if words <= 0 {
		return "", fmt.Errorf("word count must be positive, got %d", words)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.starts) == 0 {
		return "", ErrEmptyCorpus
	}

	out := make([]string, 0, words)
	word := g.sample(g.starts)
	out = append(out, word)
	for len(out) < words {
		if followers, ok := g.transitions[word]; ok && len(followers) > 0 {
			word = g.sample(followers)
		} else {
			word = g.sample(g.starts)
		}
		out = append(out, word)
	}

	return strings.Join(out, " "), nil
}

// sample picks a key with probability proportional to its count. Keys are
// visited in sorted order so a seeded source gives repeatable output.
func (g *Generator) sample(distribution map[string]int) string {
	keys := make([]string, 0, len(distribution))
	total := 0
	for k, n := range distribution {
		keys = append(keys, k)
		total += n
	}
	sort.Strings(keys)

	pick := g.rnd.IntN(total)
	for _, k := range keys {
		pick -= distribution[k]
		if pick < 0 {
			return k
		}
	}

	return keys[len(keys)-1]
}

// MarshalJSON encodes the model.
func (g *Generator) MarshalJSON() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("starts")
	encodeCounts(&e, g.starts)
	e.FieldStart("transitions")
	e.ObjStart()
	for _, word := range sortedKeys(g.transitions) {
		e.FieldStart(word)
		encodeCounts(&e, g.transitions[word])
	}
	e.ObjEnd()
	e.ObjEnd()

	return e.Bytes(), nil
}

// UnmarshalJSON replaces the model with the encoded one.
func (g *Generator) UnmarshalJSON(data []byte) error {
	starts := make(map[string]int)
	transitions := make(map[string]map[string]int)

	if err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "starts":
			return decodeCounts(d, starts)
		case "transitions":
			return d.Obj(func(d *jx.Decoder, word string) error {
				followers := make(map[string]int)
				transitions[word] = followers

				return decodeCounts(d, followers)
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return fmt.Errorf("could not decode markov model: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.starts = starts
	g.transitions = transitions

	return nil
}

// Save writes the model to path.
func (g *Generator) Save(path string) error {
	data, err := g.MarshalJSON()
	if err != nil {
		return err
	}

	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("could not write markov model: %w", err)
	}

	return nil
}

// Load replaces the model with the one stored at path.
func (g *Generator) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read markov model: %w", err)
	}

	return g.UnmarshalJSON(data)
}

// LoadOrTrain loads the model cached at modelPath, or trains on corpus and
// caches the result there. An empty modelPath disables caching.
func (g *Generator) LoadOrTrain(modelPath, corpus string) error {
	if modelPath != "" {
		err := g.Load(modelPath)
		if err == nil {
			return nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	if err := g.Train(corpus); err != nil {
		return err
	}

	if modelPath == "" {
		return nil
	}

	return g.Save(modelPath)
}

func encodeCounts(e *jx.Encoder, counts map[string]int) {
	e.ObjStart()
	for _, k := range sortedKeys(counts) {
		e.FieldStart(k)
		e.Int(counts[k])
	}
	e.ObjEnd()
}

func decodeCounts(d *jx.Decoder, dst map[string]int) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		n, err := d.Int()
		if err != nil {
			return err
		}
		if n <= 0 {
			return fmt.Errorf("count of %q must be positive", key)
		}
		dst[key] = n

		return nil
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// MarkovSource generates a fresh text for every race.
type MarkovSource struct {
	Generator *Generator
	Words     int
}

// Text implements Source.
func (s MarkovSource) Text(context.Context) (string, error) {
	return s.Generator.Generate(s.Words)
}
