package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/shape"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	file, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	out := map[string]Backend{
		"memory": NewMemory(),
		"file":   file,
	}
	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		pg, err := NewPostgres(context.Background(), url)
		if err != nil {
			t.Fatalf("NewPostgres() error = %v", err)
		}
		t.Cleanup(func() { pg.Close() })
		out["postgres"] = pg
	}
	return out
}

func TestBackendGetPut(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			key := Key("test", t.Name())
			if _, err := b.Get(ctx, key); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
			}
			if err := b.Put(ctx, key, []byte(`[1]`)); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := b.Put(ctx, key, []byte(`[2]`)); err != nil {
				t.Fatalf("Put() overwrite error = %v", err)
			}
			got, err := b.Get(ctx, key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != `[2]` {
				t.Errorf("Get() = %s, want [2]", got)
			}
		})
	}
}

func TestShapeStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewShapeStore(b, Key("shapes", "board_"+name))

			empty, err := s.Load(ctx)
			if err != nil || len(empty) != 0 {
				t.Fatalf("Load() before save = %v, %v, want empty", empty, err)
			}

			line := shape.NewLine(geometry.Coords{X: 10, Y: 10}, geometry.Coords{X: 110, Y: 60})
			rect := shape.NewRectangle(geometry.Coords{X: 50, Y: 50}, geometry.Coords{X: 150, Y: 120})
			if err := s.Save(ctx, []shape.Shape{line, rect}); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(got) != 2 || got[0] != shape.Shape(line) || got[1] != shape.Shape(rect) {
				t.Errorf("Load() = %+v, want [line rect]", got)
			}
		})
	}
}

func TestShapeStoreCorruptData(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	b.Put(ctx, "shapes", []byte(`{broken`))

	if _, err := NewShapeStore(b, "shapes").Load(ctx); err == nil {
		t.Error("Load(corrupt) error = nil")
	}
}

func TestFileKeysStayInsideDir(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Put(context.Background(), "../../escape", []byte(`[]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("dir holds %d entries, want 1", len(entries))
	}
	if filepath.Dir(f.path("../../escape")) != dir {
		t.Errorf("path escaped %s", dir)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	if b, err := Open(ctx, Options{Driver: DriverMemory}); err != nil || b == nil {
		t.Errorf("Open(memory) = %v, %v", b, err)
	}
	if b, err := Open(ctx, Options{Driver: DriverFile, DataDir: t.TempDir()}); err != nil || b == nil {
		t.Errorf("Open(file) = %v, %v", b, err)
	}
	if _, err := Open(ctx, Options{Driver: "etcd"}); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("Open(etcd) error = %v, want ErrUnknownDriver", err)
	}
}

func TestKey(t *testing.T) {
	if got := Key("shapes", ""); got != "shapes" {
		t.Errorf("Key(shapes, \"\") = %q", got)
	}
	if got := Key("shapes", "board_1"); got != "shapes:board_1" {
		t.Errorf("Key(shapes, board_1) = %q", got)
	}
}
