package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"career-guide/errors"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func adapters(t *testing.T) map[string]Adapter {
	t.Helper()
	fa, err := NewFileAdapter(t.TempDir())
	if err != nil {
		t.Fatalf("file adapter: %v", err)
	}
	return map[string]Adapter{
		"file":   fa,
		"memory": NewMemoryAdapter(),
	}
}

func TestReadNeverWrittenIsEmpty(t *testing.T) {
	for name, a := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				got := Read[record](context.Background(), a, "users")
				if got == nil || len(got) != 0 {
					t.Fatalf("read %d: expected empty non-nil list, got %#v", i, got)
				}
			}

			_, err := Decode[record](context.Background(), a, "users")
			if !errors.IsKind(err, errors.NotFound) {
				t.Fatalf("expected NotFound kind, got %v", err)
			}
		})
	}
}

func TestWriteThenRead(t *testing.T) {
	for name, a := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			in := []record{{ID: "1", Name: "first"}, {ID: "2", Name: "second"}}
			if err := Write(ctx, a, "appointments", in); err != nil {
				t.Fatalf("write: %v", err)
			}
			out := Read[record](ctx, a, "appointments")
			if len(out) != 2 || out[1].Name != "second" {
				t.Fatalf("unexpected read: %#v", out)
			}

			// overwrite, not append
			if err := Write(ctx, a, "appointments", in[:1]); err != nil {
				t.Fatalf("rewrite: %v", err)
			}
			if out := Read[record](ctx, a, "appointments"); len(out) != 1 {
				t.Fatalf("expected full overwrite, got %d records", len(out))
			}
		})
	}
}

func TestWriteNilStoresEmptyList(t *testing.T) {
	a := NewMemoryAdapter()
	if err := Write[record](context.Background(), a, "blog", nil); err != nil {
		t.Fatal(err)
	}
	data, _ := a.Load(context.Background(), "blog")
	if string(data) != "[]" {
		t.Errorf("stored %q", data)
	}
}

func TestCorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "users.json"), []byte(`[{"id":`), 0o644); err != nil {
		t.Fatal(err)
	}
	a, _ := NewFileAdapter(dir)

	if got := Read[record](context.Background(), a, "users"); len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
	_, err := Decode[record](context.Background(), a, "users")
	if !errors.IsKind(err, errors.Internal) {
		t.Fatalf("expected Internal kind, got %v", err)
	}
}

func TestFileAdapterRejectsPathNames(t *testing.T) {
	a, _ := NewFileAdapter(t.TempDir())
	for _, name := range []string{"../etc/passwd", "Users", "", "a/b"} {
		if err := a.Save(context.Background(), name, []byte("[]")); !errors.IsKind(err, errors.Invalid) {
			t.Errorf("Save(%q) err = %v, want Invalid", name, err)
		}
	}
}

func TestAdaptersRejectBadNamesOnLoad(t *testing.T) {
	fa, _ := NewFileAdapter(t.TempDir())
	for name, a := range map[string]Adapter{"file": fa, "memory": NewMemoryAdapter()} {
		for _, coll := range []string{"../etc/passwd", "Users", ""} {
			if _, err := a.Load(context.Background(), coll); !errors.IsKind(err, errors.Invalid) {
				t.Errorf("%s Load(%q) err = %v, want Invalid", name, coll, err)
			}
		}
	}
}

func TestMemoryAdapterCopiesBuffers(t *testing.T) {
	a := NewMemoryAdapter()
	buf := []byte(`[]`)
	_ = a.Save(context.Background(), "users", buf)
	buf[0] = 'x'

	got, _ := a.Load(context.Background(), "users")
	if string(got) != "[]" {
		t.Errorf("stored buffer aliased caller memory: %q", got)
	}
}
