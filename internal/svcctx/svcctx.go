// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/presets"
	"github.com/jackzampolin/langextract/internal/session"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Client   *api.Client
	Sessions *session.Store
	// Presets is swapped when the presets file is reloaded
	Presets *atomic.Pointer[presets.Set]
	Logger  *slog.Logger
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// ClientFrom extracts the backend client from context.
func ClientFrom(ctx context.Context) *api.Client {
	if s := ServicesFrom(ctx); s != nil {
		return s.Client
	}
	return nil
}

// SessionsFrom extracts the session store from context.
func SessionsFrom(ctx context.Context) *session.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Sessions
	}
	return nil
}

// PresetsFrom returns the current preset set, or the built-ins when none
// is attached.
func PresetsFrom(ctx context.Context) *presets.Set {
	if s := ServicesFrom(ctx); s != nil && s.Presets != nil {
		if set := s.Presets.Load(); set != nil {
			return set
		}
	}
	return presets.Builtin()
}

// LoggerFrom extracts the logger from context, falling back to slog.Default.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
