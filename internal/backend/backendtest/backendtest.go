// Package backendtest starts seeded fake backends for tests.
package backendtest

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/postlist/internal/backend"
)

// Server is a running fake backend with a request counter.
type Server struct {
	*httptest.Server
	Store *backend.Store
	hits  atomic.Int64
}

// Hits returns the number of requests served so far.
func (s *Server) Hits() int64 { return s.hits.Load() }

// New starts a fake backend seeded with seed and stops it when the test ends.
func New(t testing.TB, seed backend.SeedData) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := backend.OpenStore(filepath.Join(t.TempDir(), "fakeapi.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Reset(seed); err != nil {
		store.Close()
		t.Fatalf("seed store: %v", err)
	}

	s := &Server{Store: store}
	h := backend.NewHandler(store, nil)
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(func() {
		s.Close()
		store.Close()
	})
	return s
}

// Seed is a small fixed dataset: two users, three posts, three comments.
func Seed() backend.SeedData {
	return backend.SeedData{
		Users: []backend.Record{
			{"id": 1, "name": "Leanne Graham", "email": "Sincere@april.biz"},
			{"id": 2, "name": "Ervin Howell", "email": "Shanna@melissa.tv"},
		},
		Posts: []backend.Record{
			{"id": 1, "userId": 1, "title": "first", "body": "one"},
			{"id": 2, "userId": 1, "title": "second", "body": "two"},
			{"id": 3, "userId": 2, "title": "third", "body": "three"},
		},
		Comments: []backend.Record{
			{"id": 1, "postId": 1, "name": "c1", "email": "a@example.com", "body": "x"},
			{"id": 2, "postId": 1, "name": "c2", "email": "b@example.com", "body": "y"},
			{"id": 3, "postId": 3, "name": "c3", "email": "c@example.com", "body": "z"},
		},
	}
}
