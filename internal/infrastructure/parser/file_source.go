package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"PaperIndexer/internal/domain"
	"PaperIndexer/internal/ports"
)

// FileSource reads a full corpus dump: a JSON array of paper objects with
// arxiv_id, title, authors, abstract, categories and published fields.
type FileSource struct {
	path string
}

var _ ports.PaperSource = (*FileSource)(nil)

// NewFileSource points the source at a JSON dump on disk.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch parses the whole dump; the day argument is ignored because a dump
// already bounds its own corpus.
func (f *FileSource) Fetch(_ context.Context, _ time.Time) ([]domain.Paper, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", f.path, err)
	}

	var papers []domain.Paper
	if err := json.Unmarshal(raw, &papers); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", f.path, err)
	}

	return papers, nil
}
