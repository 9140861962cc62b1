package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
	"github.com/jhoicas/koperasi-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// MinPasswordLength longitud mínima al crear o cambiar una contraseña.
const MinPasswordLength = 8

// dummyHash se compara cuando el usuario no existe para igualar el tiempo de respuesta.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("koperasi-dummy-password"), bcrypt.DefaultCost)

// AuthUseCase casos de uso de autenticación: login y alta de operadores.
type AuthUseCase struct {
	adminRepo repository.AdminRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(adminRepo repository.AdminRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{adminRepo: adminRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/contraseña con bcrypt y emite un JWT.
// Usuario inexistente, inactivo, sin hash o contraseña errónea devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son obligatorios", domain.ErrInvalidInput)
	}
	admin, err := uc.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if admin == nil || admin.PasswordHash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, admin.Username, admin.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Username:  admin.Username,
		Role:      admin.Role,
	}, nil
}

// CreateOrUpdateAdmin hashea la contraseña con bcrypt y crea o actualiza el operador.
func (uc *AuthUseCase) CreateOrUpdateAdmin(ctx context.Context, in dto.UpsertAdminRequest) (*dto.AdminResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = entity.RoleAdmin
	}
	if role != entity.RoleAdmin && role != entity.RoleCajero {
		return nil, fmt.Errorf("%w: role debe ser admin o cajero", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	admin := &entity.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     in.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.adminRepo.Upsert(ctx, admin); err != nil {
		return nil, err
	}
	return &dto.AdminResponse{
		Username:  admin.Username,
		Role:      admin.Role,
		IsActive:  admin.IsActive,
		UpdatedAt: admin.UpdatedAt,
	}, nil
}

// EnsureAdmin crea el operador solo si no existe; devuelve true si lo creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, in dto.UpsertAdminRequest) (bool, error) {
	existing, err := uc.adminRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := uc.CreateOrUpdateAdmin(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}
