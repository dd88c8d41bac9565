// Package logging carries request-scoped slog attributes through
// context, so every log line emitted while serving one request shares
// the same correlation fields.
package logging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const slogFields ctxKey = "slog_fields"

// RequestIDField is the attribute key correlation ids are logged under.
const RequestIDField = "requestID"

// ContextHandler wraps another slog handler and adds the attributes
// stored in the record's context before delegating.
type ContextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	if err := h.Handler.Handle(ctx, r); err != nil {
		return fmt.Errorf("could not handle log record %+v: %w", r, err)
	}

	return nil
}

// AppendCtx adds an slog attribute to the provided context so that it
// will be included in any Record created with such context.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		v = append(v, attr)

		return context.WithValue(parent, slogFields, v)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// WithRequestID stamps the context with a fresh correlation id and
// returns both. The web middleware calls it once per request.
func WithRequestID(parent context.Context) (context.Context, string) {
	id := uuid.NewString()

	return AppendCtx(parent, slog.String(RequestIDField, id)), id
}
