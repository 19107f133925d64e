package fs

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultWriteParallelism bounds the number of documents written concurrently.
const DefaultWriteParallelism = 8

var _ ports.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter writes rendered documents, leaving files whose content is unchanged untouched.
type DocumentWriter struct {
	hasher      ports.Hasher
	parallelism int
}

// NewDocumentWriter creates a DocumentWriter that compares contents with hasher.
func NewDocumentWriter(hasher ports.Hasher) *DocumentWriter {
	return &DocumentWriter{hasher: hasher, parallelism: DefaultWriteParallelism}
}

// Write writes every document below root and returns the paths, relative to root, whose
// content changed. The result is sorted.
func (w *DocumentWriter) Write(ctx context.Context, root string, docs []domain.Document) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.parallelism)

	var (
		mu      sync.Mutex
		changed []string
	)
	for _, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			wrote, err := w.write(root, doc)
			if err != nil || !wrote {
				return err
			}
			mu.Lock()
			changed = append(changed, doc.Path)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.Sort(changed)
	return changed, nil
}

func (w *DocumentWriter) write(root string, doc domain.Document) (bool, error) {
	path := filepath.Join(root, doc.Path)

	existing, err := w.hasher.HashFile(path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrDocumentWriteFailed.Error()), "path", path)
	}
	if existing != "" && existing == w.hasher.Hash(doc.Content) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrDocumentWriteFailed.Error()), "path", path)
	}
	//nolint:gosec // Path is below the caller's output root
	if err := os.WriteFile(path, doc.Content, domain.FilePerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrDocumentWriteFailed.Error()), "path", path)
	}
	return true, nil
}
