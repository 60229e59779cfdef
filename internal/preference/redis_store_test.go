package preference

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
)

// hashRedis implements the hash commands RedisStore uses. Any other command
// panics through the nil embedded interface.
type hashRedis struct {
	redis.Cmdable
	hashes map[string]map[string]string
}

func (h *hashRedis) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	v, ok := h.hashes[key][field]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (h *hashRedis) HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if len(values)%2 != 0 {
		return redis.NewIntResult(0, errors.New("wrong number of arguments for HSET"))
	}
	if h.hashes[key] == nil {
		h.hashes[key] = make(map[string]string)
	}
	for i := 0; i < len(values); i += 2 {
		h.hashes[key][fmt.Sprint(values[i])] = fmt.Sprint(values[i+1])
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func TestRedisStoreMissingKey(t *testing.T) {
	store := NewRedisStore(&hashRedis{hashes: map[string]map[string]string{}}, "ana")

	if _, err := store.Get(context.Background(), DarkModeKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	client := &hashRedis{hashes: map[string]map[string]string{}}
	store := NewRedisStore(client, "ana")
	ctx := context.Background()

	if err := store.Set(ctx, DarkModeKey, "off"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := client.hashes["preferences:ana"][DarkModeKey]; got != "off" {
		t.Fatalf("expected value in hash preferences:ana, got %v", client.hashes)
	}

	v, err := store.Get(ctx, DarkModeKey)
	if err != nil || v != "off" {
		t.Fatalf("get: %q %v", v, err)
	}

	other := NewRedisStore(client, "luis")
	if _, err := other.Get(ctx, DarkModeKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected profiles to be isolated, got %v", err)
	}
}

func TestRedisStoreBacksDarkMode(t *testing.T) {
	dm := NewDarkMode(NewRedisStore(&hashRedis{hashes: map[string]map[string]string{}}, "ana"))
	ctx := context.Background()

	on, err := dm.Enabled(ctx)
	if err != nil || !on {
		t.Fatalf("expected dark mode on by default, got %v %v", on, err)
	}
	on, err = dm.Toggle(ctx)
	if err != nil || on {
		t.Fatalf("expected toggle to turn dark mode off, got %v %v", on, err)
	}
	if on, _ := dm.Enabled(ctx); on {
		t.Fatal("expected dark mode to stay off")
	}
}
