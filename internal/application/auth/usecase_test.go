package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/koperasi-api/internal/application/auth"
	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/koperasi-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	uc := auth.NewAuthUseCase(store.Admins(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 480, Issuer: "koperasi-test"})
	_, err := uc.CreateOrUpdateAdmin(context.Background(), dto.UpsertAdminRequest{
		Username: "ani", Password: "rahasia123", Role: "admin", Active: true,
	})
	require.NoError(t, err)
	return uc, store
}

func TestLogin_CredencialesValidas_EmiteJWT(t *testing.T) {
	uc, _ := newAuth(t)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ani", Password: "rahasia123"})
	require.NoError(t, err)
	assert.Equal(t, "ani", res.Username)
	assert.Equal(t, entity.RoleAdmin, res.Role)

	username, role, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "ani", username)
	assert.Equal(t, "admin", role)
}

func TestLogin_MismoErrorParaTodosLosFallos(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "ani", Password: "salah"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials), "contraseña errónea")

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "rahasia123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials), "usuario inexistente")

	require.NoError(t, store.Admins().Upsert(ctx, &entity.Admin{Username: "sinhash", Role: "admin", IsActive: true}))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "sinhash", Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials), "hash vacío")

	_, err = uc.CreateOrUpdateAdmin(ctx, dto.UpsertAdminRequest{Username: "budi", Password: "rahasia123", Role: "cajero", Active: false})
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "budi", Password: "rahasia123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials), "inactivo")
}

func TestLogin_CamposVacios(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "", Password: ""})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateOrUpdateAdmin_HasheaYActualiza(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	a, err := store.Admins().GetByUsername(ctx, "ani")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", a.PasswordHash)

	_, err = uc.CreateOrUpdateAdmin(ctx, dto.UpsertAdminRequest{Username: "ani", Password: "baru-sekali", Role: "admin", Active: true})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ani", Password: "rahasia123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ani", Password: "baru-sekali"})
	assert.NoError(t, err)
}

func TestCreateOrUpdateAdmin_Validacion(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.CreateOrUpdateAdmin(ctx, dto.UpsertAdminRequest{Username: "x", Password: "corta"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.CreateOrUpdateAdmin(ctx, dto.UpsertAdminRequest{Username: "x", Password: "larga-suficiente", Role: "gerente"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEnsureAdmin_NoPisaExistente(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, dto.UpsertAdminRequest{Username: "ani", Password: "otra-clave-99", Role: "admin", Active: true})
	require.NoError(t, err)
	assert.False(t, created)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ani", Password: "rahasia123"})
	assert.NoError(t, err, "la contraseña original sigue vigente")

	created, err = uc.EnsureAdmin(ctx, dto.UpsertAdminRequest{Username: "budi", Password: "kasir-baru-1", Role: "cajero", Active: true})
	require.NoError(t, err)
	assert.True(t, created)
}
