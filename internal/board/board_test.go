package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/shape"
	"github.com/inamate/sketchboard/internal/store"
	"github.com/inamate/sketchboard/internal/typeid"
)

type activeSet map[string]bool

func (a activeSet) Active(boardID string) bool { return a[boardID] }

func newRouter(t *testing.T, active activeSet) (*mux.Router, *Service, store.Backend) {
	t.Helper()
	backend := store.NewMemory()
	svc := NewService(backend, "shapes", active)
	r := mux.NewRouter()
	NewHandler(svc).Register(r.PathPrefix("/api").Subrouter())
	return r, svc, backend
}

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestCreateBoard(t *testing.T) {
	r, _, backend := newRouter(t, nil)

	rec := do(r, http.MethodPost, "/api/boards")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var b Board
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatal(err)
	}
	if err := typeid.Validate(b.ID, typeid.PrefixBoard); err != nil {
		t.Errorf("id %q: %v", b.ID, err)
	}

	data, err := backend.Get(context.Background(), store.Key("shapes", b.ID))
	if err != nil || strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("seeded value = %q, %v, want []", data, err)
	}
}

func TestShapes(t *testing.T) {
	r, svc, backend := newRouter(t, nil)
	ctx := context.Background()

	b, err := svc.Create(ctx)
	if err != nil {
		t.Fatal(err)
	}
	line := shape.NewLine(geometry.Coords{X: 0, Y: 0}, geometry.Coords{X: 10, Y: 10})
	if err := store.NewShapeStore(backend, store.Key("shapes", b.ID)).Save(ctx, []shape.Shape{line}); err != nil {
		t.Fatal(err)
	}

	rec := do(r, http.MethodGet, "/api/boards/"+b.ID+"/shapes")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got, err := shape.UnmarshalShapes(rec.Body.Bytes())
	if err != nil || len(got) != 1 || got[0].ShapeID() != line.ID {
		t.Errorf("shapes = %v, %v, want [%s]", got, err, line.ID)
	}

	rec = do(r, http.MethodGet, "/api/boards/"+b.ID)
	var info Board
	json.NewDecoder(rec.Body).Decode(&info)
	if rec.Code != http.StatusOK || info.ShapeCount != 1 {
		t.Errorf("GET board = %d %+v, want 200 with 1 shape", rec.Code, info)
	}
}

func TestUnknownBoardIDs(t *testing.T) {
	r, _, _ := newRouter(t, nil)

	for _, path := range []string{
		"/api/boards/nope/shapes",
		"/api/boards/" + typeid.NewShapeID() + "/shapes",
		"/api/boards/nope",
	} {
		if rec := do(r, http.MethodGet, path); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
		}
	}
}

func TestNeverWrittenBoardIsEmpty(t *testing.T) {
	r, _, _ := newRouter(t, nil)
	rec := do(r, http.MethodGet, "/api/boards/"+typeid.NewBoardID()+"/shapes")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("GET = %d %q, want 200 []", rec.Code, rec.Body)
	}
}

func TestClear(t *testing.T) {
	busy := typeid.NewBoardID()
	r, svc, _ := newRouter(t, activeSet{busy: true})

	b, _ := svc.Create(context.Background())
	if rec := do(r, http.MethodDelete, "/api/boards/"+b.ID+"/shapes"); rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", rec.Code)
	}
	if rec := do(r, http.MethodDelete, "/api/boards/"+busy+"/shapes"); rec.Code != http.StatusConflict {
		t.Errorf("DELETE active board status = %d, want 409", rec.Code)
	}
}
