package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenStore(t.Context(), filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"pagination.format", false},
		{"output.cleanup_attempts", false},
		{"with-hyphen", false},
		{"", true},
		{".leading", true},
		{"trailing.", true},
		{"has space", true},
		{"semi;colon", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidKey) {
				t.Errorf("error should wrap ErrInvalidKey, got %v", err)
			}
		})
	}
}

func TestSQLiteStore_GetSet(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	t.Run("non_existent_key", func(t *testing.T) {
		entry, err := store.Get(ctx, "does.not.exist")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if entry != nil {
			t.Errorf("Get() = %v, want nil for non-existent key", entry)
		}
	})

	t.Run("typed_values", func(t *testing.T) {
		values := map[string]any{
			"pagination.format":    "Page X",
			"pagination.font_size": 12.5,
			"output.bookmarks":     false,
			"toc.max_reflows":      2,
		}
		for key, v := range values {
			if err := store.Set(ctx, key, v, "desc "+key); err != nil {
				t.Fatalf("Set(%s) error = %v", key, err)
			}
		}

		tests := []struct {
			key  string
			want any
		}{
			{"pagination.format", "Page X"},
			{"pagination.font_size", 12.5},
			{"output.bookmarks", false},
			{"toc.max_reflows", float64(2)}, // JSON numbers decode as float64
		}
		for _, tt := range tests {
			entry, err := store.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get(%s) error = %v", tt.key, err)
			}
			if entry == nil {
				t.Fatalf("Get(%s) returned nil", tt.key)
			}
			if entry.Value != tt.want {
				t.Errorf("Get(%s) Value = %#v, want %#v", tt.key, entry.Value, tt.want)
			}
			if entry.Description != "desc "+tt.key {
				t.Errorf("Get(%s) Description = %q", tt.key, entry.Description)
			}
			if entry.UpdatedAt == "" {
				t.Errorf("Get(%s) UpdatedAt empty", tt.key)
			}
		}
	})

	t.Run("update_existing", func(t *testing.T) {
		if err := store.Set(ctx, "pagination.format", "X", "changed"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		entry, err := store.Get(ctx, "pagination.format")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if entry.Value != "X" || entry.Description != "changed" {
			t.Errorf("entry = %+v", entry)
		}
	})

	t.Run("invalid_key", func(t *testing.T) {
		err := store.Set(ctx, "bad key", 1, "")
		if !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Set() error = %v, want ErrInvalidKey", err)
		}
	})
}

func TestSQLiteStore_GetAllPrefixDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	for _, key := range []string{"late_insert.mode", "late_insert.after", "toc.title", "lateXinsert.mode"} {
		if err := store.Set(ctx, key, "v", ""); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("GetAll() returned %d entries, want 4", len(all))
	}

	byPrefix, err := store.GetByPrefix(ctx, "late_insert.")
	if err != nil {
		t.Fatalf("GetByPrefix() error = %v", err)
	}
	if len(byPrefix) != 2 {
		t.Errorf("GetByPrefix() returned %d entries, want 2: %v", len(byPrefix), byPrefix)
	}
	if _, ok := byPrefix["lateXinsert.mode"]; ok {
		t.Error("prefix match treated '_' as a wildcard")
	}

	if err := store.Delete(ctx, "toc.title"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if entry, _ := store.Get(ctx, "toc.title"); entry != nil {
		t.Error("entry still present after Delete()")
	}
	// Deleting again is not an error.
	if err := store.Delete(ctx, "toc.title"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	ctx := t.Context()

	store, err := OpenStore(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, "toc.title", "INDEX", ""); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = OpenStore(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	entry, err := store.Get(ctx, "toc.title")
	if err != nil {
		t.Fatal(err)
	}
	if entry == nil || entry.Value != "INDEX" {
		t.Errorf("entry after reopen = %+v", entry)
	}
}

func TestDecodeValue(t *testing.T) {
	if v := decodeValue("k", `"quoted"`); v != "quoted" {
		t.Errorf("decodeValue JSON string = %#v", v)
	}
	if v := decodeValue("k", `not json`); v != "not json" {
		t.Errorf("decodeValue raw = %#v", v)
	}
}
