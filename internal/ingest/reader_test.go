package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

func TestReadTargets(t *testing.T) {
	in := "\uFEFFsubreddit,pages\n" +
		"uva,3\n" +
		"not a name,2\n" +
		" golang ,0\n" +
		"rust\n" +
		"de,x\n"

	targets, err := ReadTargets(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []domain.Target{
		{Subreddit: "uva", Pages: 3},
		{Subreddit: "golang", Pages: 1},
		{Subreddit: "rust", Pages: 1},
		{Subreddit: "de", Pages: 1},
	}, targets)
}

func TestReadTargets_HeaderOnly(t *testing.T) {
	targets, err := ReadTargets(strings.NewReader("subreddit,pages\n"))
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestReadTargets_MalformedCSV(t *testing.T) {
	_, err := ReadTargets(strings.NewReader("subreddit,pages\n\"uva,1\n"))
	assert.Error(t, err)
}

func TestLoadTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subreddits.csv")
	require.NoError(t, os.WriteFile(path, []byte("subreddit,pages\nuva,2\n"), 0o600))

	targets, err := LoadTargets(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Target{{Subreddit: "uva", Pages: 2}}, targets)

	_, err = LoadTargets(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
