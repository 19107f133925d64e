package ports

import (
	"io"

	"go.trai.ch/podgen/internal/core/domain"
)

// GraphExporter renders the pod dependency graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=graph_exporter.go -destination=mocks/mock_graph_exporter.go -package=mocks
type GraphExporter interface {
	// Export writes the graph in DOT format to w.
	Export(w io.Writer, g *domain.Graph) error
}
