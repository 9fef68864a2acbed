package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/types"
	"github.com/m-mizutani/relboard/pkg/utils/errutil"
)

// LoggingMiddleware returns a middleware that logs HTTP requests. The request
// context carries the logger with the request ID attached.
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())
			logger := ctxlog.From(ctx).With("request_id", reqID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}()

			next.ServeHTTP(ww, r.WithContext(ctxlog.With(r.Context(), logger)))
		})
	}
}

// AuthMiddleware requires an HS256 signed bearer token
func AuthMiddleware(secret []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				writeError(w, goerr.New("missing bearer token"), http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse([]byte(raw),
				jwt.WithKey(jwa.HS256, secret),
				jwt.WithValidate(true),
			)
			if err != nil {
				ctxlog.From(ctx).Warn("Invalid bearer token", "error", err)
				writeError(w, goerr.New("invalid bearer token"), http.StatusUnauthorized)
				return
			}

			logger := ctxlog.From(ctx).With("subject", token.Subject())
			next.ServeHTTP(w, r.WithContext(ctxlog.With(ctx, logger)))
		})
	}
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		// Can't get context here, so use background context
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}

const (
	notifyBusy = "A reply is still in progress. Please wait."
	notifyLLM  = "The assistant could not respond. Please try again."
)

// handleError maps a usecase error to its HTTP status by tag. Chat failures
// also carry a short notification text for the client to show.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	body := map[string]string{"error": err.Error()}
	status := http.StatusInternalServerError

	switch {
	case goerr.HasTag(err, types.ErrTagNotFound):
		status = http.StatusNotFound
	case goerr.HasTag(err, types.ErrTagInvalidInput):
		status = http.StatusBadRequest
	case goerr.HasTag(err, types.ErrTagBusy):
		status = http.StatusConflict
		body["notification"] = notifyBusy
	case goerr.HasTag(err, types.ErrTagLLM):
		status = http.StatusBadGateway
		body["notification"] = notifyLLM
	}

	if status >= http.StatusInternalServerError {
		errutil.Handle(ctx, "request failed", err)
	} else {
		ctxlog.From(ctx).Debug("Request rejected", "status", status, "error", err)
	}

	writeJSON(w, r, status, body)
}

// decodeJSON reads the request body into v; a malformed body is invalid input
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(err, "invalid request body", goerr.T(types.ErrTagInvalidInput))
	}
	return nil
}
