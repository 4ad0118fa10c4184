package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/fortlifegroup/sst-backend/pkg/auth"
	"github.com/fortlifegroup/sst-backend/pkg/auth/session"
	"github.com/fortlifegroup/sst-backend/pkg/config"
	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

type stubUsers struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
	logins  int
}

func newStubUsers() *stubUsers {
	return &stubUsers{byEmail: map[string]*models.User{}, byID: map[uuid.UUID]*models.User{}}
}

func (s *stubUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.New()
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return user, nil
}

func (s *stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubUsers) TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	s.logins++
	s.byID[userID].LastLoginAt = &at
	return nil
}

type stubSessions struct {
	generated map[string]string
	revoked   []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{generated: map[string]string{}}
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.generated[accessID] = token
	return token, nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.generated[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.generated, oldAccessID)
	newID := uuid.NewString()
	s.generated[newID] = "refresh-" + newID
	return newID, s.generated[newID], nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	delete(s.generated, accessID)
	return nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwt := config.JWTConfig{Secret: "secret", Issuer: "sst-backend", ExpirationMinutes: 15}
	pw := config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16}
	return jwt, pw
}

func newTestService(t *testing.T, repo *stubUsers, sessions *stubSessions) Service {
	t.Helper()
	jwt, pw := testConfigs()
	svc, err := NewService(repo, sessions, jwt, pw)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t, newStubUsers(), newStubSessions())
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"short name", RegisterRequest{Name: "A", Email: "a@b.com", Password: "password123"}},
		{"bad email", RegisterRequest{Name: "Ana", Email: "not-an-email", Password: "password123"}},
		{"short password", RegisterRequest{Name: "Ana", Email: "a@b.com", Password: "short"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubUsers()
	svc := newTestService(t, repo, newStubSessions())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "Ana", Email: "Ana@FortLife.pe", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterRequest{Name: "Ana Dos", Email: "ana@fortlife.pe", Password: "password123"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterNormalizesEmailAndOpensSession(t *testing.T) {
	repo := newStubUsers()
	sessions := newStubSessions()
	svc := newTestService(t, repo, sessions)

	dto, err := svc.Register(context.Background(), RegisterRequest{Name: "  Ana  ", Email: "  Ana@FortLife.pe ", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.User.Email != "ana@fortlife.pe" {
		t.Errorf("expected normalized email, got %q", dto.User.Email)
	}
	if dto.User.Name != "Ana" {
		t.Errorf("expected trimmed name, got %q", dto.User.Name)
	}
	if dto.Tokens.AccessToken == "" || dto.Tokens.RefreshToken == "" {
		t.Error("expected token pair")
	}
	if len(sessions.generated) != 1 {
		t.Errorf("expected one session, got %d", len(sessions.generated))
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	repo := newStubUsers()
	svc := newTestService(t, repo, newStubSessions())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "Ana", Email: "ana@fortlife.pe", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, req := range []LoginRequest{
		{Email: "missing@fortlife.pe", Password: "password123"},
		{Email: "ana@fortlife.pe", Password: "wrong-password"},
		{Email: "", Password: ""},
	} {
		_, err := svc.Login(ctx, req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("req %+v: expected unauthorized, got %v", req, err)
		}
		if typed.Message() != "invalid email or password" {
			t.Fatalf("expected generic message, got %q", typed.Message())
		}
	}
}

func TestLoginSuccessTouchesLastLogin(t *testing.T) {
	repo := newStubUsers()
	svc := newTestService(t, repo, newStubSessions())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "Ana", Email: "ana@fortlife.pe", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	dto, err := svc.Login(ctx, LoginRequest{Email: "ANA@fortlife.pe", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if dto.Tokens.AccessToken == "" {
		t.Error("expected access token")
	}
	if repo.logins != 1 {
		t.Errorf("expected one last-login touch, got %d", repo.logins)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	repo := newStubUsers()
	sessions := newStubSessions()
	svc := newTestService(t, repo, sessions)
	ctx := context.Background()

	dto, err := svc.Register(ctx, RegisterRequest{Name: "Ana", Email: "ana@fortlife.pe", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  dto.Tokens.AccessToken,
		RefreshToken: dto.Tokens.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.AccessToken == dto.Tokens.AccessToken {
		t.Error("expected a new access token")
	}

	jwtCfg, _ := testConfigs()
	claims, err := pkgauth.ParseAccessToken(jwtCfg, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse new token: %v", err)
	}
	if claims.UserID.String() != dto.User.ID {
		t.Error("expected same subject after rotation")
	}

	// the old refresh token no longer works
	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  dto.Tokens.AccessToken,
		RefreshToken: dto.Tokens.RefreshToken,
	})
	if err == nil {
		t.Fatal("expected rotation with stale token to fail")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	repo := newStubUsers()
	sessions := newStubSessions()
	svc := newTestService(t, repo, sessions)
	ctx := context.Background()

	dto, err := svc.Register(ctx, RegisterRequest{Name: "Ana", Email: "ana@fortlife.pe", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	jwtCfg, _ := testConfigs()
	claims, err := pkgauth.ParseAccessToken(jwtCfg, dto.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := svc.Logout(ctx, claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != claims.ID {
		t.Fatalf("expected session %s revoked, got %v", claims.ID, sessions.revoked)
	}
}
