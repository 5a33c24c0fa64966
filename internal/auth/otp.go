// Package auth simulates phone-OTP login. Codes are generated and checked
// locally; nothing is ever sent over SMS. The fixed demo code is always
// accepted so the flow can be exercised without a provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carelink/hospital-booking/internal/observability/metrics"
)

const (
	// DemoCode is accepted for any phone number.
	DemoCode = "123456"
	// DemoPhone always receives DemoCode instead of a generated one.
	DemoPhone = "0912345678"
)

var (
	ErrInvalidPhone   = errors.New("số điện thoại không hợp lệ")
	ErrInvalidCode    = errors.New("mã xác thực phải gồm 6 chữ số")
	ErrIncorrectCode  = errors.New("mã xác thực không đúng")
	ErrCodeExpired    = errors.New("mã xác thực đã hết hạn")
	ErrResendCooldown = errors.New("vui lòng chờ trước khi gửi lại mã")
)

// Vietnamese mobile numbers: leading 0 or +84, then a 3/5/7/8/9 prefix and
// eight more digits.
var (
	phonePattern = regexp.MustCompile(`^(0|\+84)(3|5|7|8|9)\d{8}$`)
	codePattern  = regexp.MustCompile(`^\d{6}$`)
)

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// CodeStore holds issued codes. Implementations enforce the TTL.
type CodeStore interface {
	SaveCode(ctx context.Context, phone, code string, ttl time.Duration) error
	// GetCode returns ErrCodeExpired when no live code exists for phone.
	GetCode(ctx context.Context, phone string) (string, error)
	DeleteCode(ctx context.Context, phone string) error
	// AcquireResend returns false while the cooldown from a previous send
	// is still running.
	AcquireResend(ctx context.Context, phone string, cooldown time.Duration) (bool, error)
}

type Service struct {
	store    CodeStore
	ttl      time.Duration
	cooldown time.Duration
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	demoMode bool
}

func NewService(store CodeStore, ttl, cooldown time.Duration, m *metrics.Metrics, logger zerolog.Logger, demoMode bool) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &Service{
		store:    store,
		ttl:      ttl,
		cooldown: cooldown,
		metrics:  m,
		logger:   logger,
		demoMode: demoMode,
	}
}

// RequestCode validates the phone, enforces the resend cooldown and issues a
// new code. The code is returned only in demo mode; otherwise callers get an
// empty string and a real delivery channel would take over.
func (s *Service) RequestCode(ctx context.Context, phone string) (string, error) {
	if !ValidPhone(phone) {
		s.metrics.ObserveOTP("request", "invalid_phone")
		return "", ErrInvalidPhone
	}

	ok, err := s.store.AcquireResend(ctx, phone, s.cooldown)
	if err != nil {
		return "", fmt.Errorf("acquire resend slot: %w", err)
	}
	if !ok {
		s.metrics.ObserveOTP("request", "cooldown")
		return "", ErrResendCooldown
	}

	code := DemoCode
	if phone != DemoPhone {
		code = fmt.Sprintf("%06d", gofakeit.Number(0, 999999))
	}

	if err := s.store.SaveCode(ctx, phone, code, s.ttl); err != nil {
		return "", fmt.Errorf("save otp code: %w", err)
	}

	s.metrics.ObserveOTP("request", "ok")
	s.logger.Debug().Str("phone", phone).Msg("otp code issued")

	if s.demoMode {
		return code, nil
	}
	return "", nil
}

// Verify checks the submitted code. Format errors are caught before any
// store lookup. The demo code always verifies. On success the stored code is
// consumed and an opaque session token is returned; it carries no security
// guarantee.
func (s *Service) Verify(ctx context.Context, phone, code string) (string, error) {
	if !ValidPhone(phone) {
		s.metrics.ObserveOTP("verify", "invalid_phone")
		return "", ErrInvalidPhone
	}
	if !codePattern.MatchString(code) {
		s.metrics.ObserveOTP("verify", "invalid_code")
		return "", ErrInvalidCode
	}

	if code != DemoCode {
		stored, err := s.store.GetCode(ctx, phone)
		if err != nil {
			if errors.Is(err, ErrCodeExpired) {
				s.metrics.ObserveOTP("verify", "expired")
				return "", ErrCodeExpired
			}
			return "", fmt.Errorf("load otp code: %w", err)
		}
		if stored != code {
			s.metrics.ObserveOTP("verify", "incorrect")
			return "", ErrIncorrectCode
		}
	}

	if err := s.store.DeleteCode(ctx, phone); err != nil {
		s.logger.Warn().Err(err).Msg("otp code delete failed")
	}

	s.metrics.ObserveOTP("verify", "ok")
	return uuid.NewString(), nil
}
