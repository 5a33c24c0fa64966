package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), srv
}

func TestRedisStoreCodeLifecycle(t *testing.T) {
	store, srv := newRedisStore(t)
	ctx := context.Background()

	if err := store.SaveCode(ctx, "0987654321", "482913", 5*time.Minute); err != nil {
		t.Fatalf("SaveCode: %v", err)
	}

	code, err := store.GetCode(ctx, "0987654321")
	if err != nil {
		t.Fatalf("GetCode: %v", err)
	}
	if code != "482913" {
		t.Errorf("code = %q", code)
	}

	// TTL expiry surfaces as ErrCodeExpired.
	srv.FastForward(6 * time.Minute)
	if _, err := store.GetCode(ctx, "0987654321"); !errors.Is(err, ErrCodeExpired) {
		t.Errorf("err = %v, want ErrCodeExpired", err)
	}
}

func TestRedisStoreDeleteCode(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	store.SaveCode(ctx, "0987654321", "482913", 5*time.Minute)
	if err := store.DeleteCode(ctx, "0987654321"); err != nil {
		t.Fatalf("DeleteCode: %v", err)
	}
	if _, err := store.GetCode(ctx, "0987654321"); !errors.Is(err, ErrCodeExpired) {
		t.Errorf("err = %v, want ErrCodeExpired", err)
	}
}

func TestRedisStoreResendCooldown(t *testing.T) {
	store, srv := newRedisStore(t)
	ctx := context.Background()

	ok, err := store.AcquireResend(ctx, "0987654321", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}

	ok, err = store.AcquireResend(ctx, "0987654321", time.Minute)
	if err != nil || ok {
		t.Fatalf("second acquire: ok=%v err=%v", ok, err)
	}

	srv.FastForward(2 * time.Minute)
	ok, err = store.AcquireResend(ctx, "0987654321", time.Minute)
	if err != nil || !ok {
		t.Fatalf("acquire after cooldown: ok=%v err=%v", ok, err)
	}
}
