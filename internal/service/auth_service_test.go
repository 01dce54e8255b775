package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/config"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── In-memory Repository Stub ─────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active || includeInactive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = true
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		AdminEmail:         "dono@crmestofados.com.br",
	}
}

func seedUser(repo *stubUserRepo, email, password, role string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Teste",
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	repo.users[u.ID] = u
	return u
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestLoginSuccess(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	seedUser(repo, "maria@crmestofados.com.br", "senha123", "staff")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@crmestofados.com.br",
		Password: "senha123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "staff", claims["role"])
	assert.Equal(t, "maria@crmestofados.com.br", claims["email"])
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	seedUser(repo, "maria@crmestofados.com.br", "senha123", "staff")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@crmestofados.com.br",
		Password: "errada",
	})
	assert.EqualError(t, err, "Credenciais inválidas")
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newTestCfg())
	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ninguem@crmestofados.com.br",
		Password: "qualquer",
	})
	// same message as a wrong password — no account enumeration
	assert.EqualError(t, err, "Credenciais inválidas")
}

func TestLoginPromotesConfiguredAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	user := seedUser(repo, "dono@crmestofados.com.br", "senha123", "staff")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "dono@crmestofados.com.br",
		Password: "senha123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestRefreshReturnsNewTokens(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	seedUser(repo, "maria@crmestofados.com.br", "senha123", "staff")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@crmestofados.com.br",
		Password: "senha123",
	})
	assert.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newTestCfg())
	_, err := svc.Refresh(context.Background(), "not.a.jwt")
	assert.EqualError(t, err, "Refresh token inválido ou expirado")
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	user := seedUser(repo, "maria@crmestofados.com.br", "senha123", "staff")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@crmestofados.com.br",
		Password: "senha123",
	})
	assert.NoError(t, err)

	user.Active = false
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.EqualError(t, err, "Usuário não encontrado ou inativo")
}

func TestCreateUserLowercasesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "Novo@CRMEstofados.com.br",
		Name:     "Novo Usuário",
		Password: "senha123",
		Role:     "staff",
	})

	assert.NoError(t, err)
	assert.Equal(t, "novo@crmestofados.com.br", resp.Email)
}

func TestDeactivateAndReactivate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	user := seedUser(repo, "maria@crmestofados.com.br", "senha123", "staff")

	assert.NoError(t, svc.DeactivateUser(context.Background(), user.ID))
	assert.False(t, user.Active)

	assert.NoError(t, svc.ReactivateUser(context.Background(), user.ID))
	assert.True(t, user.Active)
}
