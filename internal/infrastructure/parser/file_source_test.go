package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileSourceFetch(t *testing.T) {
	t.Parallel()

	dump := `[
	  {
	    "arxiv_id": "2401.12345",
	    "title": "Graph Networks",
	    "authors": ["Jane Doe"],
	    "abstract": "network graph",
	    "categories": ["cs.AI"],
	    "published": "2024-01-15T09:30:00Z"
	  }
	]`
	path := filepath.Join(t.TempDir(), "papers.json")
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o644))

	papers, err := NewFileSource(path).Fetch(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, papers, 1)
	require.Equal(t, "2401.12345", papers[0].ArxivID)
	require.Equal(t, []string{"Jane Doe"}, papers[0].Authors)
	require.Equal(t, []string{"cs.AI"}, papers[0].Categories)
}

func TestFileSourceMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json")).Fetch(context.Background(), time.Now())
	require.Error(t, err)
}

func TestFileSourceMalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileSource(path).Fetch(context.Background(), time.Now())
	require.Error(t, err)
}
