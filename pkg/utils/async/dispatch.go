package async

import (
	"context"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/utils/errutil"
)

// Dispatch runs handler in a new goroutine detached from ctx cancellation.
//
// The logger and Sentry hub of ctx are carried over, so a handler started
// from an HTTP request can outlive the request. Panics are recovered and
// reported together with returned errors through errutil.Handle. name is
// attached to the report to tell handlers apart.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errutil.Handle(newCtx, "panic in async handler",
					goerr.New("recovered panic",
						goerr.V("handler", name),
						goerr.V("recover", r),
						goerr.V("stack", string(debug.Stack()))))
			}
		}()

		if err := handler(newCtx); err != nil {
			errutil.Handle(newCtx, "error in async handler",
				goerr.Wrap(err, "async handler failed", goerr.V("handler", name)))
		}
	}()
}

// newBackgroundContext returns context.Background() carrying the ctxlog
// logger and the Sentry hub of ctx
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		newCtx = sentry.SetHubOnContext(newCtx, hub.Clone())
	}
	return newCtx
}
