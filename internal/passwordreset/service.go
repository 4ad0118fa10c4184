package passwordreset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/config"
	"github.com/fortlifegroup/sst-backend/pkg/db"
	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
	"github.com/fortlifegroup/sst-backend/pkg/mailer"
	"github.com/fortlifegroup/sst-backend/pkg/security"
)

// RequestedMessage is returned for every reset request, existing account or
// not, so the endpoint cannot be used to probe for registered emails.
const RequestedMessage = "if the email exists, a reset link has been sent"

const invalidTokenMessage = "invalid or expired reset token"

type tokensRepository interface {
	DeleteStale(ctx context.Context, now time.Time) error
	Create(ctx context.Context, token *models.PasswordResetToken) error
	FindByHash(ctx context.Context, digest string) (*models.PasswordResetToken, error)
	Consume(ctx context.Context, token *models.PasswordResetToken, passwordHash string, now time.Time) error
}

type usersFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type resetMailer interface {
	SendPasswordReset(to, resetURL string, ttl time.Duration) error
}

// Service drives the password reset token lifecycle.
type Service interface {
	Request(ctx context.Context, email string) error
	Confirm(ctx context.Context, token, newPassword string) error
}

type service struct {
	repo        tokensRepository
	users       usersFinder
	mail        resetMailer
	appCfg      config.AppConfig
	resetCfg    config.PasswordResetConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService builds the password reset service.
func NewService(repo tokensRepository, users usersFinder, mail resetMailer, appCfg config.AppConfig, resetCfg config.PasswordResetConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("token repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user finder required")
	}
	if mail == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &service{
		repo:        repo,
		users:       users,
		mail:        mail,
		appCfg:      appCfg,
		resetCfg:    resetCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

// Request issues a reset token for the email and mails the link. Unknown
// or empty emails and accounts without a password credential all succeed
// without leaving a token row.
func (s *service) Request(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	if err := s.repo.DeleteStale(ctx, s.now()); err != nil {
		return classify(err, "pruning reset tokens")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return classify(err, "loading user")
	}
	if user.PasswordHash == nil {
		return nil
	}

	token, digest, err := security.GenerateResetToken()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating reset token")
	}

	row := &models.PasswordResetToken{
		Email:     user.Email,
		TokenHash: digest,
		ExpiresAt: s.now().Add(s.resetCfg.TokenTTL),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return classify(err, "storing reset token")
	}

	if err := s.mail.SendPasswordReset(user.Email, s.resetURL(token), s.resetCfg.TokenTTL); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "email delivery is not configured")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending reset email")
	}
	return nil
}

// Confirm exchanges a valid token for a new password. Absent, used and
// expired tokens all fail with the same message.
func (s *service) Confirm(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, invalidTokenMessage)
	}
	if len(newPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must have at least 8 characters")
	}

	row, err := s.repo.FindByHash(ctx, security.HashResetToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, invalidTokenMessage)
		}
		return classify(err, "loading reset token")
	}
	if row.UsedAt != nil || !row.ExpiresAt.After(s.now()) {
		return pkgerrors.New(pkgerrors.CodeValidation, invalidTokenMessage)
	}

	hash, err := security.HashPassword(newPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}
	if err := s.repo.Consume(ctx, row, hash, s.now()); err != nil {
		return classify(err, "consuming reset token")
	}
	return nil
}

func (s *service) resetURL(token string) string {
	base := strings.TrimRight(s.appCfg.BaseURL, "/")
	return fmt.Sprintf("%s%s?token=%s", base, s.resetCfg.Path, token)
}

func classify(err error, msg string) error {
	if db.IsSchemaDrift(err) {
		return pkgerrors.Wrap(pkgerrors.CodeSchemaDrift, err, msg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
