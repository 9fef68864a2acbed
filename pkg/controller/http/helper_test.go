package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/relboard/pkg/controller/http"
	"github.com/m-mizutani/relboard/pkg/infra/fixture"
	"github.com/m-mizutani/relboard/pkg/infra/memory"
	"github.com/m-mizutani/relboard/pkg/usecase"
)

type generateFunc func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error)

// newTestServer builds a server over the embedded sample data. generate
// answers chat turns; nil replies with a fixed text.
func newTestServer(t *testing.T, generate generateFunc, opts ...controller.Option) *controller.Server {
	t.Helper()
	ctx := context.Background()

	fx, err := fixture.Default()
	gt.NoError(t, err)
	repo := memory.New()
	gt.NoError(t, usecase.Seed(ctx, repo, fx, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)))

	if generate == nil {
		generate = func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
			return &gollem.Response{Texts: []string{"Two releases had incidents this month."}}, nil
		}
	}
	llm := &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, opts ...gollem.SessionOption) (gollem.Session, error) {
			return &mock.SessionMock{GenerateFunc: generate}, nil
		},
	}

	ucs := usecase.New(repo, llm, usecase.WithPageSize(3))

	opts = append([]controller.Option{
		controller.WithAddr("localhost:0"),
		controller.WithStoreName(repo.Name()),
	}, opts...)
	server, err := controller.NewServer(ctx, ucs.Dashboard, ucs.Release, ucs.Incident, ucs.Chat, opts...)
	gt.NoError(t, err)
	return server
}

func doRequest(t *testing.T, server *controller.Server, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		gt.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}
