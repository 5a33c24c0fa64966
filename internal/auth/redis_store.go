package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps OTP codes under per-phone keys with a TTL and uses a
// SetNX key for the resend cooldown.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func codeKey(phone string) string   { return fmt.Sprintf("otp:code:%s", phone) }
func resendKey(phone string) string { return fmt.Sprintf("otp:resend:%s", phone) }

func (s *RedisStore) SaveCode(ctx context.Context, phone, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, codeKey(phone), code, ttl).Err(); err != nil {
		return fmt.Errorf("set otp code: %w", err)
	}
	return nil
}

func (s *RedisStore) GetCode(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, codeKey(phone)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCodeExpired
		}
		return "", fmt.Errorf("get otp code: %w", err)
	}
	return code, nil
}

func (s *RedisStore) DeleteCode(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, codeKey(phone)).Err(); err != nil {
		return fmt.Errorf("delete otp code: %w", err)
	}
	return nil
}

func (s *RedisStore) AcquireResend(ctx context.Context, phone string, cooldown time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, resendKey(phone), "1", cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("acquire otp resend: %w", err)
	}
	return ok, nil
}
