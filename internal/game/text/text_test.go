package text_test

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"typeracer/internal/game/text"

	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2)) //nolint: gosec
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "a b c", text.Normalize("  a \n\tb   c \r\n"))
	require.Empty(t, text.Normalize(" \n "))
}

func TestStaticSource(t *testing.T) {
	got, err := text.StaticSource("hello \n world").Text(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "race.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o600))

	got, err := text.FileSource{Path: path}.Text(context.Background())
	require.NoError(t, err)
	require.Equal(t, "line one line two", got)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0o600))
	_, err = text.FileSource{Path: empty}.Text(context.Background())
	require.Error(t, err)

	_, err = text.FileSource{Path: filepath.Join(dir, "missing.txt")}.Text(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCorpusSource(t *testing.T) {
	_, err := text.NewCorpusSource([]string{" ", ""}, nil)
	require.ErrorIs(t, err, text.ErrEmptyCorpus)

	src, err := text.NewCorpusSource([]string{"one", "two\n", "  "}, seeded())
	require.NoError(t, err)
	require.Equal(t, 2, src.Len())

	seen := map[string]bool{}
	for range 50 {
		got, err := src.Text(context.Background())
		require.NoError(t, err)
		seen[got] = true
	}
	require.Equal(t, map[string]bool{"one": true, "two": true}, seen)
}

func TestEmbeddedPassages(t *testing.T) {
	passages, err := text.EmbeddedPassages()
	require.NoError(t, err)
	require.NotEmpty(t, passages)

	src, err := text.NewEmbeddedCorpusSource(seeded())
	require.NoError(t, err)

	got, err := src.Text(context.Background())
	require.NoError(t, err)
	require.Equal(t, text.Normalize(got), got)
	require.NotContains(t, got, "\n")
}

func TestTokenize(t *testing.T) {
	require.Equal(t,
		[]string{"the", "cats", "nap", "isnt", "over", "yet"},
		text.Tokenize("The cat's nap... isn't OVER -- yet! ☕"))
}

func TestGenerator_TrainAndGenerate(t *testing.T) {
	gen := text.NewGenerator(seeded())
	require.False(t, gen.Trained())

	_, err := gen.Generate(5)
	require.ErrorIs(t, err, text.ErrEmptyCorpus)
	require.ErrorIs(t, gen.Train("single"), text.ErrEmptyCorpus)

	require.NoError(t, gen.Train("a b a c"))
	require.True(t, gen.Trained())

	_, err = gen.Generate(0)
	require.Error(t, err)

	out, err := gen.Generate(40)
	require.NoError(t, err)

	words := strings.Split(out, " ")
	require.Len(t, words, 40)
	for i, w := range words {
		require.Contains(t, []string{"a", "b", "c"}, w)
		// b and c only ever follow a, unless the chain restarted after a dead end
		if i > 0 && (w == "b" || w == "c") && words[i-1] != "a" {
			require.Equal(t, "c", words[i-1], "only c is a dead end")
		}
	}
}

func TestGenerator_SameSeedSameText(t *testing.T) {
	corpus := "one fish two fish red fish blue fish"

	a := text.NewGenerator(seeded())
	require.NoError(t, a.Train(corpus))
	b := text.NewGenerator(seeded())
	require.NoError(t, b.Train(corpus))

	ta, err := a.Generate(20)
	require.NoError(t, err)
	tb, err := b.Generate(20)
	require.NoError(t, err)
	require.Equal(t, ta, tb)
}

func TestGenerator_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	trained := text.NewGenerator(seeded())
	require.NoError(t, trained.Train("red fish blue fish"))
	require.NoError(t, trained.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"starts": {"blue": 1, "fish": 1, "red": 1},
		"transitions": {"blue": {"fish": 1}, "fish": {"blue": 1}, "red": {"fish": 1}}
	}`, string(data))

	loaded := text.NewGenerator(seeded())
	require.NoError(t, loaded.Load(path))

	require.True(t, loaded.Trained())

	want, err := trained.Generate(10)
	require.NoError(t, err)
	got, err := loaded.Generate(10)
	require.NoError(t, err)
	require.Equal(t, want, got)

	require.Error(t, loaded.UnmarshalJSON([]byte(`{"starts":{"a":0}}`)))
}

func TestGenerator_LoadOrTrain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	gen := text.NewGenerator(nil)
	require.NoError(t, gen.LoadOrTrain(path, "alpha beta gamma"))
	require.FileExists(t, path)

	// the cached model wins over a different corpus
	cached := text.NewGenerator(seeded())
	require.NoError(t, cached.LoadOrTrain(path, "delta epsilon"))
	out, err := cached.Generate(5)
	require.NoError(t, err)
	require.NotContains(t, out, "delta")

	require.NoError(t, text.NewGenerator(nil).LoadOrTrain("", "delta epsilon"))
}

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	src, err := text.NewSource(text.Options{Mode: text.ModeStatic})
	require.NoError(t, err)
	got, err := src.Text(ctx)
	require.NoError(t, err)
	require.Equal(t, text.Normalize(text.DefaultText), got)

	_, err = text.NewSource(text.Options{Mode: text.ModeFile, File: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)

	src, err = text.NewSource(text.Options{Mode: text.ModeCorpus})
	require.NoError(t, err)
	_, err = src.Text(ctx)
	require.NoError(t, err)

	src, err = text.NewSource(text.Options{Mode: text.ModeMarkov, Words: 12})
	require.NoError(t, err)
	got, err = src.Text(ctx)
	require.NoError(t, err)
	require.Len(t, strings.Fields(got), 12)

	_, err = text.NewSource(text.Options{Mode: "dictation"})
	require.Error(t, err)
}
