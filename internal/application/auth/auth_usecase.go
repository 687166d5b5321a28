package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
	"github.com/ubsapps/ubs-erp-api/pkg/config"
	"github.com/ubsapps/ubs-erp-api/pkg/jwt"
)

// AuthUseCase maneja registro y login de usuarios.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      config.JWTConfig
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	jwtCfg config.JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// Register da de alta un usuario con la contraseña en bcrypt. El email es
// único en todo el sistema; la empresa debe existir y estar activa.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserDTO, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, in.CompanyID)
	}
	if company.Status != entity.CompanyStatusActive {
		return nil, fmt.Errorf("%w: empresa %s no activa", domain.ErrForbidden, in.CompanyID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	now := time.Now()
	u := &entity.User{
		CompanyID:    in.CompanyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	d := toUserDTO(*u)
	return &d, nil
}

// Login valida credenciales y emite un JWT con user, empresa y rol.
// Email inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if u.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.CompanyID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	return &dto.LoginResponse{Token: token, User: toUserDTO(*u)}, nil
}

func toUserDTO(u entity.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
	}
}
