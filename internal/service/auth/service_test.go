package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/clinic-api/internal/email"
	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
	pkgauth "github.com/medtrack/clinic-api/pkg/auth"
	"github.com/medtrack/clinic-api/pkg/security"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetDoctor(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok || u.Role != model.UserRoleDoctor {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListDoctors(ctx context.Context) ([]*model.User, error) {
	return nil, nil
}

func newTestService(repo *fakeUserRepo) *Service {
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	hasher := security.NewBcryptHasher(4)
	return NewService(repo, jwtSvc, hasher, email.NoopService{})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "doc@clinic.local",
		Password: "secret1",
		Name:     "Dr. Test",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.UserRoleDoctor, resp.User.Role)
	assert.Equal(t, 0.0, resp.User.TotalSalary)
	assert.NotNil(t, resp.User.ShiftRates)
	assert.NotNil(t, resp.User.ShiftCounts)

	login, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "doc@clinic.local",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "doc@clinic.local",
		Password: "secret1",
		Name:     "Dr. Test",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "doc@clinic.local",
		Password: "secret2",
		Name:     "Dr. Other",
	})
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "doc@clinic.local",
		Password: "secret1",
		Name:     "Dr. Test",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "doc@clinic.local",
		Password: "wrong-password",
	})
	assert.Error(t, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@clinic.local",
		Password: "whatever",
	})
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "doc@clinic.local",
		Password: "secret1",
		Name:     "Dr. Test",
		Role:     "admin",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.ValidateToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}
