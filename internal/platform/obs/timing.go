package obs

import (
	"context"
	"logistics-backoffice/internal/platform/logger"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores the request id used to correlate operation timings.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time starts a timer for op and returns a func that logs its duration and,
// when *errp is non-nil, the error. Intended for `defer obs.Time(...)(&err)`.
func Time(ctx context.Context, log *logger.Logger, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		if log == nil {
			return
		}
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Warn("op failed", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "error", *errp)
			return
		}
		log.Debug("op done", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}
