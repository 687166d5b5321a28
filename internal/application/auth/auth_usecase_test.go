package auth_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubsapps/ubs-erp-api/internal/application/auth"
	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/pkg/config"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	seq     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.seq++
	u.ID = fmt.Sprintf("u-%d", r.seq)
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]entity.User, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(_ context.Context, _ *entity.Company) error { return nil }
func (r *fakeCompanyRepo) Update(_ context.Context, _ *entity.Company) error { return nil }
func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r *fakeCompanyRepo) List(_ context.Context, _, _ int) ([]entity.Company, error) {
	return nil, nil
}
func (r *fakeCompanyRepo) ListActiveIDs(_ context.Context) ([]string, error) { return nil, nil }

func newAuthUC() *auth.AuthUseCase {
	users := newFakeUserRepo()
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"co-1": {ID: "co-1", Name: "UBS Apps", Status: entity.CompanyStatusActive},
		"co-2": {ID: "co-2", Name: "Suspendida SAS", Status: entity.CompanyStatusSuspended},
	}}
	cfg := config.JWTConfig{Secret: "secreto-de-prueba", Expiration: 60, Issuer: "ubs-erp"}
	return auth.NewAuthUseCase(users, companies, cfg)
}

func register(t *testing.T, uc *auth.AuthUseCase, email string) *dto.UserDTO {
	t.Helper()
	u, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "co-1",
		Email:     email,
		Password:  "contraseña123",
		Name:      "Ana Gómez",
		Role:      entity.RoleEmployee,
	})
	require.NoError(t, err)
	return u
}

func TestRegister_NoExponeElHash(t *testing.T) {
	uc := newAuthUC()

	u := register(t, uc, "ana@ubs.test")
	assert.Equal(t, "ana@ubs.test", u.Email)
	assert.Equal(t, "active", u.Status)
	assert.NotEmpty(t, u.ID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuthUC()
	register(t, uc, "ana@ubs.test")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "co-1",
		Email:     "ana@ubs.test",
		Password:  "otra-contraseña",
		Name:      "Ana Dos",
		Role:      entity.RoleEmployee,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_EmpresaSuspendida(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "co-2",
		Email:     "x@ubs.test",
		Password:  "contraseña123",
		Name:      "X",
		Role:      entity.RoleEmployee,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_EmiteToken(t *testing.T) {
	uc := newAuthUC()
	register(t, uc, "ana@ubs.test")

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@ubs.test",
		Password: "contraseña123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@ubs.test", resp.User.Email)
	assert.Equal(t, "co-1", resp.User.CompanyID)
}

// Email inexistente y contraseña incorrecta devuelven el mismo error,
// sin distinguir cuál de los dos falló.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuthUC()
	register(t, uc, "ana@ubs.test")

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@ubs.test",
		Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@ubs.test",
		Password: "contraseña123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
