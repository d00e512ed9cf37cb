package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-obras/internal/application/audit"
	"github.com/tu-usuario/almacen-obras/internal/application/dto"
	"github.com/tu-usuario/almacen-obras/internal/domain"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
	"github.com/tu-usuario/almacen-obras/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación y administración de usuarios. Es el adaptador de
// borde: el core solo recibe el id del actor ya autorizado, nunca roles.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	recorder audit.Recorder
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, recorder audit.Recorder) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, recorder: recorder}
}

// Login verifica username/password y genera un JWT con el rol como claim.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, user.ID, audit.ActionLogin,
		fmt.Sprintf("usuario=%s", user.Username))
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// CreateUser crea un usuario: hashea el password con bcrypt y persiste.
func (uc *AuthUseCase) CreateUser(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.DuplicateNameError{Name: in.Username}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, actorID, audit.ActionCreateUser,
		fmt.Sprintf("usuario=%s rol=%s", user.Username, user.Role))
	return toUserResponse(user), nil
}

// UpdateUser actualiza username y rol de un usuario.
func (uc *AuthUseCase) UpdateUser(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Username != nil {
		if *in.Username == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Username = *in.Username
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, actorID, audit.ActionUpdateUser,
		fmt.Sprintf("usuario=%s rol=%s", user.Username, user.Role))
	return toUserResponse(user), nil
}

// DeleteUser elimina un usuario.
func (uc *AuthUseCase) DeleteUser(ctx context.Context, actorID, id string) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := uc.userRepo.Delete(id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, actorID, audit.ActionDeleteUser,
		fmt.Sprintf("usuario=%s", user.Username))
	return nil
}

// ListUsers lista los usuarios, alfabético.
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
