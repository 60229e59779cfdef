// Package preference persists the dashboard's per-profile UI flags.
package preference

import (
	"context"
	"errors"
	"fmt"
)

// DarkModeKey is the storage key of the dark mode flag.
const DarkModeKey = "darkMode"

const (
	valueOn  = "on"
	valueOff = "off"
)

// ErrNotFound is returned by stores when a key has never been written.
var ErrNotFound = errors.New("preference not set")

// Store is a string key/value store scoped to one profile.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// DarkMode reads and writes the dark mode flag. Dark mode is on unless the
// stored value is exactly "off".
type DarkMode struct {
	store Store
}

// NewDarkMode builds a DarkMode on top of store.
func NewDarkMode(store Store) *DarkMode {
	return &DarkMode{store: store}
}

// Enabled reports whether dark mode is on.
func (d *DarkMode) Enabled(ctx context.Context) (bool, error) {
	v, err := d.store.Get(ctx, DarkModeKey)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", DarkModeKey, err)
	}
	return v != valueOff, nil
}

// Set stores the flag.
func (d *DarkMode) Set(ctx context.Context, on bool) error {
	v := valueOff
	if on {
		v = valueOn
	}
	if err := d.store.Set(ctx, DarkModeKey, v); err != nil {
		return fmt.Errorf("write %s: %w", DarkModeKey, err)
	}
	return nil
}

// Toggle flips the flag and returns the new value.
func (d *DarkMode) Toggle(ctx context.Context) (bool, error) {
	on, err := d.Enabled(ctx)
	if err != nil {
		return false, err
	}
	if err := d.Set(ctx, !on); err != nil {
		return false, err
	}
	return !on, nil
}
