package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/podgen/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []logger.ErrorEntry
	}{
		{
			name: "standard error",
			err:  errors.New("permission denied"),
			want: []logger.ErrorEntry{{Message: "permission denied"}},
		},
		{
			name: "wrapped chain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("root"), "middle"), "outer"),
			want: []logger.ErrorEntry{
				{Message: "outer", Metadata: map[string]any{}},
				{Message: "middle", Metadata: map[string]any{}},
				{Message: "root"},
			},
		},
		{
			name: "metadata accumulates on one error",
			err:  zerr.With(zerr.With(zerr.New("unknown pod"), "pod", "BananaLib"), "target", "App"),
			want: []logger.ErrorEntry{
				{Message: "unknown pod", Metadata: map[string]any{"pod": "BananaLib", "target": "App"}},
			},
		},
		{
			name: "message-less wrapper lends metadata to its cause",
			err:  zerr.Wrap(zerr.With(errors.New("disk full"), "path", "/p"), "write failed"),
			want: []logger.ErrorEntry{
				{Message: "write failed", Metadata: map[string]any{}},
				{Message: "disk full", Metadata: map[string]any{"path": "/p"}},
			},
		},
		{
			name: "nil",
			err:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.CollectErrorEntries(tt.err))
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single",
			entries: []logger.ErrorEntry{{Message: "boom"}},
			want:    "Error: boom",
		},
		{
			name: "multiline message",
			entries: []logger.ErrorEntry{
				{Message: "cycle detected\nA -> B -> A"},
			},
			want: "Error: cycle detected\n       A -> B -> A",
		},
		{
			name: "causes with sorted metadata",
			entries: []logger.ErrorEntry{
				{Message: "install failed", Metadata: map[string]any{"phase": "compose"}},
				{Message: "unknown pod", Metadata: map[string]any{"target": "App", "pod": "Missing"}},
				{Message: "root"},
			},
			want: "Error: install failed\n" +
				"       phase: compose\n" +
				"\n" +
				"  Caused by:\n" +
				"    → unknown pod\n" +
				"      pod: Missing\n" +
				"      target: App\n" +
				"    → root",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
