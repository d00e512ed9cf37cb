package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/almacen-obras/internal/application/audit"
	"github.com/tu-usuario/almacen-obras/internal/application/auth"
	"github.com/tu-usuario/almacen-obras/internal/application/dto"
	"github.com/tu-usuario/almacen-obras/internal/domain"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/almacen-obras/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

var testCfg = auth.JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "almacen-obras-test"}

func newFixture() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	return auth.NewAuthUseCase(repo, testCfg, audit.Noop{}), repo
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "user-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	repo.users[u.ID] = u
	return u
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc, repo := newFixture()
	seedUser(t, repo, "ana", "clave123", entity.RoleEncargado)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana", resp.User.Username)
	assert.Equal(t, entity.RoleEncargado, resp.User.Role)

	// El token debe llevar id de usuario y rol como claims.
	userID, role, err := pkgjwt.Parse(testCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-ana", userID)
	assert.Equal(t, entity.RoleEncargado, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, repo := newFixture()
	seedUser(t, repo, "ana", "clave123", entity.RoleEncargado)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"usuario inexistente y password incorrecto deben responder igual")
}

func TestCreateUser_HasheaPassword(t *testing.T) {
	uc, repo := newFixture()

	resp, err := uc.CreateUser(context.Background(), "admin-1", dto.CreateUserRequest{
		Username: "luis",
		Password: "clave123",
		Role:     entity.RoleIngeniero,
	})
	require.NoError(t, err)

	persisted := repo.users[resp.ID]
	require.NotNil(t, persisted)
	assert.NotEqual(t, "clave123", persisted.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte("clave123")))
}

func TestCreateUser_RolInvalido(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.CreateUser(context.Background(), "admin-1", dto.CreateUserRequest{
		Username: "luis",
		Password: "clave123",
		Role:     "gerente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateUser_UsernameDuplicado(t *testing.T) {
	uc, repo := newFixture()
	seedUser(t, repo, "ana", "clave123", entity.RoleEncargado)

	_, err := uc.CreateUser(context.Background(), "admin-1", dto.CreateUserRequest{
		Username: "ana",
		Password: "otra",
		Role:     entity.RoleComercial,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateUser_CambiaRol(t *testing.T) {
	uc, repo := newFixture()
	u := seedUser(t, repo, "ana", "clave123", entity.RoleComercial)

	newRole := entity.RoleEncargado
	resp, err := uc.UpdateUser(context.Background(), "admin-1", u.ID, dto.UpdateUserRequest{Role: &newRole})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEncargado, resp.Role)
	assert.Equal(t, entity.RoleEncargado, repo.users[u.ID].Role)
}

func TestDeleteUser_Inexistente(t *testing.T) {
	uc, _ := newFixture()

	err := uc.DeleteUser(context.Background(), "admin-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
