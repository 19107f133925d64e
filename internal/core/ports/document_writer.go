package ports

import (
	"context"

	"go.trai.ch/podgen/internal/core/domain"
)

// DocumentWriter persists rendered documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=document_writer.go -destination=mocks/mock_document_writer.go -package=mocks
type DocumentWriter interface {
	// Write writes every document below root and returns the paths whose content changed.
	Write(ctx context.Context, root string, docs []domain.Document) ([]string, error)
}
