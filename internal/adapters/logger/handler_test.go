package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/podgen/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{name: "info", level: slog.LevelInfo, want: "generated Pods-App\n"},
		{name: "warn", level: slog.LevelWarn, want: "! generated Pods-App\n"},
		{name: "error", level: slog.LevelError, want: "✗ generated Pods-App\n"},
		{name: "debug filtered", level: slog.LevelDebug, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			var buf bytes.Buffer
			lg := slog.New(logger.NewPrettyHandler(&buf, nil))
			lg.Log(t.Context(), tt.level, "generated Pods-App")

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name    string
		handler func(h *logger.PrettyHandler) slog.Handler
		attrs   []any
		want    string
	}{
		{
			name:    "record attrs",
			handler: func(h *logger.PrettyHandler) slog.Handler { return h },
			attrs:   []any{"pod", "BananaLib", "count", 2},
			want:    "msg pod=BananaLib count=2\n",
		},
		{
			name: "handler attrs first",
			handler: func(h *logger.PrettyHandler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("phase", "compose")})
			},
			attrs: []any{"pod", "BananaLib"},
			want:  "msg phase=compose pod=BananaLib\n",
		},
		{
			name:    "group attr",
			handler: func(h *logger.PrettyHandler) slog.Handler { return h },
			attrs:   []any{slog.Group("target", slog.String("name", "Pods-App"))},
			want:    "msg target.name=Pods-App\n",
		},
		{
			name: "nested groups",
			handler: func(h *logger.PrettyHandler) slog.Handler {
				return h.WithGroup("install").WithGroup("aggregate")
			},
			attrs: []any{"name", "Pods-App"},
			want:  "msg install.aggregate.name=Pods-App\n",
		},
		{
			name: "empty group name",
			handler: func(h *logger.PrettyHandler) slog.Handler {
				return h.WithGroup("")
			},
			attrs: []any{"name", "Pods-App"},
			want:  "msg name=Pods-App\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			var buf bytes.Buffer
			h := logger.NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
			slog.New(tt.handler(h)).Info("msg", tt.attrs...)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_WithAttrsDoesNotShare(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	base := logger.NewPrettyHandler(&buf, nil).WithAttrs([]slog.Attr{slog.String("a", "1")})
	left := slog.New(base.WithAttrs([]slog.Attr{slog.String("b", "2")}))
	right := slog.New(base.WithAttrs([]slog.Attr{slog.String("c", "3")}))

	left.Info("left")
	right.Info("right")

	assert.Equal(t, "left a=1 b=2\nright a=1 c=3\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := logger.NewPrettyHandler(nil, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}
