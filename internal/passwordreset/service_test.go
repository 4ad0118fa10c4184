package passwordreset

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/config"
	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
	"github.com/fortlifegroup/sst-backend/pkg/mailer"
	"github.com/fortlifegroup/sst-backend/pkg/security"
)

type stubTokens struct {
	rows        map[uuid.UUID]*models.PasswordResetToken
	staleSweeps int
	passwords   map[string]string
}

func newStubTokens() *stubTokens {
	return &stubTokens{
		rows:      map[uuid.UUID]*models.PasswordResetToken{},
		passwords: map[string]string{},
	}
}

func (s *stubTokens) DeleteStale(ctx context.Context, now time.Time) error {
	s.staleSweeps++
	for id, row := range s.rows {
		if row.ExpiresAt.Before(now) || row.UsedAt != nil {
			delete(s.rows, id)
		}
	}
	return nil
}

func (s *stubTokens) Create(ctx context.Context, token *models.PasswordResetToken) error {
	token.ID = uuid.New()
	s.rows[token.ID] = token
	return nil
}

func (s *stubTokens) FindByHash(ctx context.Context, digest string) (*models.PasswordResetToken, error) {
	for _, row := range s.rows {
		if row.TokenHash == digest {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTokens) Consume(ctx context.Context, token *models.PasswordResetToken, passwordHash string, now time.Time) error {
	s.passwords[token.Email] = passwordHash
	at := now
	token.UsedAt = &at
	for id, row := range s.rows {
		if row.Email == token.Email && row.ID != token.ID {
			delete(s.rows, id)
		}
	}
	return nil
}

type stubUsers struct {
	users map[string]*models.User
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type stubMailer struct {
	sent []string
	ttls []time.Duration
	err  error
}

func (s *stubMailer) SendPasswordReset(to, resetURL string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, resetURL)
	s.ttls = append(s.ttls, ttl)
	return nil
}

func newFixture(t *testing.T) (Service, *stubTokens, *stubMailer) {
	t.Helper()
	tokens := newStubTokens()
	mail := &stubMailer{}
	hash := "argon2id-hash-placeholder"
	users := &stubUsers{users: map[string]*models.User{
		"ana@fortlife.pe": {ID: uuid.New(), Email: "ana@fortlife.pe", Name: "Ana", PasswordHash: &hash},
		"sso@fortlife.pe": {ID: uuid.New(), Email: "sso@fortlife.pe", Name: "Beto"},
	}}
	svc, err := NewService(tokens, users, mail,
		config.AppConfig{BaseURL: "https://sst.fortlife.pe/"},
		config.PasswordResetConfig{TokenTTL: 30 * time.Minute, Path: "/reset-password"},
		config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32},
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, tokens, mail
}

func issuedToken(t *testing.T, mail *stubMailer) string {
	t.Helper()
	if len(mail.sent) == 0 {
		t.Fatal("expected a reset email")
	}
	link := mail.sent[len(mail.sent)-1]
	idx := strings.Index(link, "?token=")
	if idx < 0 {
		t.Fatalf("reset link %q carries no token", link)
	}
	return link[idx+len("?token="):]
}

func TestRequestKnownEmail(t *testing.T) {
	svc, tokens, mail := newFixture(t)

	if err := svc.Request(context.Background(), "  ANA@fortlife.pe "); err != nil {
		t.Fatalf("request: %v", err)
	}

	if tokens.staleSweeps != 1 {
		t.Errorf("expected one stale sweep, got %d", tokens.staleSweeps)
	}
	if len(tokens.rows) != 1 {
		t.Fatalf("expected one token row, got %d", len(tokens.rows))
	}
	link := issuedToken(t, mail)
	if security.HashResetToken(link) == "" {
		t.Fatal("expected a raw token in the link")
	}
	for _, row := range tokens.rows {
		if row.TokenHash != security.HashResetToken(link) {
			t.Error("stored hash does not match the mailed token")
		}
	}
	if !strings.HasPrefix(mail.sent[0], "https://sst.fortlife.pe/reset-password?token=") {
		t.Errorf("unexpected reset link %q", mail.sent[0])
	}
	if len(mail.ttls) != 1 || mail.ttls[0] != 30*time.Minute {
		t.Errorf("expected the configured ttl in the mail, got %v", mail.ttls)
	}
}

func TestRequestUnknownEmailIsSilent(t *testing.T) {
	svc, tokens, mail := newFixture(t)

	if err := svc.Request(context.Background(), "nobody@fortlife.pe"); err != nil {
		t.Fatalf("request: %v", err)
	}
	if len(tokens.rows) != 0 {
		t.Fatalf("expected no token rows, got %d", len(tokens.rows))
	}
	if len(mail.sent) != 0 {
		t.Fatal("expected no email for unknown address")
	}
}

func TestRequestPasswordlessAccountIsSilent(t *testing.T) {
	svc, tokens, mail := newFixture(t)

	if err := svc.Request(context.Background(), "sso@fortlife.pe"); err != nil {
		t.Fatalf("request: %v", err)
	}
	if len(tokens.rows) != 0 {
		t.Fatalf("expected no token rows for an account without a password, got %d", len(tokens.rows))
	}
	if len(mail.sent) != 0 {
		t.Fatal("expected no email for an account without a password")
	}
}

func TestRequestEmptyEmailIsSilent(t *testing.T) {
	svc, tokens, mail := newFixture(t)

	if err := svc.Request(context.Background(), "   "); err != nil {
		t.Fatalf("request: %v", err)
	}
	if tokens.staleSweeps != 0 {
		t.Errorf("expected no stale sweep for an empty email, got %d", tokens.staleSweeps)
	}
	if len(tokens.rows) != 0 || len(mail.sent) != 0 {
		t.Fatal("expected no token row and no email for an empty address")
	}
}

func TestRequestMailerNotConfigured(t *testing.T) {
	svc, _, mail := newFixture(t)
	mail.err = mailer.ErrNotConfigured

	err := svc.Request(context.Background(), "ana@fortlife.pe")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestConfirmHappyPath(t *testing.T) {
	svc, tokens, mail := newFixture(t)
	ctx := context.Background()

	if err := svc.Request(ctx, "ana@fortlife.pe"); err != nil {
		t.Fatalf("request: %v", err)
	}
	token := issuedToken(t, mail)

	if err := svc.Confirm(ctx, token, "new-secret-password"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	hash, ok := tokens.passwords["ana@fortlife.pe"]
	if !ok {
		t.Fatal("expected the password hash to be replaced")
	}
	match, err := security.VerifyPassword("new-secret-password", hash)
	if err != nil || !match {
		t.Fatalf("expected stored hash to verify, match=%v err=%v", match, err)
	}

	// second use fails even though the expiry is still in the future
	err = svc.Confirm(ctx, token, "another-password")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != invalidTokenMessage {
		t.Fatalf("expected generic invalid token error, got %v", err)
	}
}

func TestConfirmRejectsBadTokens(t *testing.T) {
	svc, tokens, mail := newFixture(t)
	ctx := context.Background()

	err := svc.Confirm(ctx, "deadbeef", "new-secret-password")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != invalidTokenMessage {
		t.Fatalf("expected generic invalid token error, got %v", err)
	}

	if err := svc.Request(ctx, "ana@fortlife.pe"); err != nil {
		t.Fatalf("request: %v", err)
	}
	token := issuedToken(t, mail)
	for _, row := range tokens.rows {
		row.ExpiresAt = time.Now().Add(-time.Minute)
	}
	err = svc.Confirm(ctx, token, "new-secret-password")
	typed = pkgerrors.As(err)
	if typed == nil || typed.Message() != invalidTokenMessage {
		t.Fatalf("expected expired token rejection, got %v", err)
	}
}

func TestConfirmShortPassword(t *testing.T) {
	svc, _, _ := newFixture(t)

	err := svc.Confirm(context.Background(), "sometoken", "short")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "password must have at least 8 characters" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}
