package preference

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

type mapStore map[string]string

func (m mapStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m mapStore) Set(ctx context.Context, key, value string) error {
	m[key] = value
	return nil
}

func TestDarkModeDefaults(t *testing.T) {
	ctx := context.Background()
	cases := map[string]struct {
		stored string
		set    bool
		want   bool
	}{
		"absent":  {want: true},
		"on":      {stored: "on", set: true, want: true},
		"off":     {stored: "off", set: true, want: false},
		"garbage": {stored: "OFF", set: true, want: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store := mapStore{}
			if tc.set {
				store[DarkModeKey] = tc.stored
			}
			got, err := NewDarkMode(store).Enabled(ctx)
			if err != nil {
				t.Fatalf("enabled: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDarkModeToggle(t *testing.T) {
	ctx := context.Background()
	store := mapStore{}
	dm := NewDarkMode(store)

	on, err := dm.Toggle(ctx)
	if err != nil || on {
		t.Fatalf("expected first toggle to turn dark mode off, got %v (%v)", on, err)
	}
	if store[DarkModeKey] != "off" {
		t.Fatalf("expected stored off, got %q", store[DarkModeKey])
	}

	on, _ = dm.Toggle(ctx)
	if !on || store[DarkModeKey] != "on" {
		t.Fatalf("expected dark mode back on, got %v %q", on, store[DarkModeKey])
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	store := NewFileStore(path, "alice")
	if _, err := store.Get(ctx, DarkModeKey); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := NewDarkMode(store).Set(ctx, false); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}

	other := NewFileStore(path, "bob")
	if on, _ := NewDarkMode(other).Enabled(ctx); !on {
		t.Fatal("expected other profile to keep the default")
	}
	if on, _ := NewDarkMode(NewFileStore(path, "alice")).Enabled(ctx); on {
		t.Fatal("expected alice to have dark mode off")
	}
}
