package doctor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/karpos/karpos/internal/platform/httpclient"
	"github.com/karpos/karpos/internal/platform/session"
)

func storeWithToken(t *testing.T, sub int64) session.Store {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": "doctor",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	store := session.NewMemStore()
	store.Save(signed, "refresh")
	return store
}

func newService(t *testing.T, baseURL string, store session.Store) *Service {
	t.Helper()
	client, err := httpclient.New(baseURL, store)
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return NewService(client, store, zerolog.Nop())
}

func TestMyProfile_MatchesOnUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id_dc":1,"id_us":10,"first_name":"Ana"},
			{"id_dc":2,"id_us":20,"first_name":"Luis"}
		]`))
	}))
	defer srv.Close()

	svc := newService(t, srv.URL, storeWithToken(t, 20))

	doc, err := svc.MyProfile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != 2 || doc.FirstName != "Luis" {
		t.Errorf("expected doctor 2 (Luis), got %+v", doc)
	}
}

func TestMyProfile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id_dc":1,"id_us":10}]`))
	}))
	defer srv.Close()

	svc := newService(t, srv.URL, storeWithToken(t, 99))

	_, err := svc.MyProfile(context.Background())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestList_FallbackEndpointOnEmpty(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/doctors":
			w.Write([]byte(`[]`))
		case "/users/doctors":
			w.Write([]byte(`{"doctors":[{"id_dc":3,"id_us":30}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	svc := newService(t, srv.URL, session.NewMemStore())

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != 3 {
		t.Errorf("expected fallback doctor, got %+v", list)
	}
	if len(paths) != 2 || paths[1] != "/users/doctors" {
		t.Errorf("expected fallback probe order, got %v", paths)
	}
}

func TestList_BothEmptyIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc := newService(t, srv.URL, session.NewMemStore())

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %+v", list)
	}
}

func TestGet_NestedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"doctor":{"id_dc":5,"id_us":50,"specialty":"physio"}}`))
	}))
	defer srv.Close()

	svc := newService(t, srv.URL, session.NewMemStore())

	doc, err := svc.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != 5 || doc.Specialty != "physio" {
		t.Errorf("unexpected doctor: %+v", doc)
	}
}
