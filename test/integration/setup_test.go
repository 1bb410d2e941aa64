package integration

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/karpos/karpos/internal/mockserver"
	"github.com/karpos/karpos/internal/platform/httpclient"
	"github.com/karpos/karpos/internal/platform/session"
)

type env struct {
	srv    *httptest.Server
	store  *session.MemStore
	client *httpclient.Client
}

func newEnv(t *testing.T, opts mockserver.Options) *env {
	t.Helper()
	opts.Logger = zerolog.Nop()
	srv := httptest.NewServer(mockserver.New(opts).Handler())
	t.Cleanup(srv.Close)

	store := session.NewMemStore()
	client, err := httpclient.New(srv.URL, store,
		httpclient.WithTimeout(5*time.Second),
		httpclient.WithLogger(zerolog.Nop()),
	)
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return &env{srv: srv, store: store, client: client}
}
