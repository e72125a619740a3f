package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTitles(t *testing.T) {
	input := "\uFEFFtitle,notes\n" +
		"Dune,classic\n" +
		"\"The Name of the Wind\",\n" +
		"  dune  ,dupe\n" +
		",\n" +
		"Project   Hail Mary\n"

	titles, err := ReadTitles(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "The Name of the Wind", "Project Hail Mary"}, titles)
}

func TestReadTitles_HeaderOnly(t *testing.T) {
	titles, err := ReadTitles(strings.NewReader("title\n"))
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestLoadTitles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.csv")
	require.NoError(t, os.WriteFile(path, []byte("title\nPiranesi\n"), 0o644))

	titles, err := LoadTitles(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Piranesi"}, titles)

	_, err = LoadTitles(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
