package doctor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
	"github.com/medtrack/clinic-api/pkg/errors"
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
	var out []*model.User
	for _, u := range r.users {
		if u.Role == model.UserRoleDoctor {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func addDoctor(repo *fakeUserRepo, rates model.ShiftRates, counts model.ShiftCounts) uuid.UUID {
	id := uuid.New()
	repo.users[id] = &model.User{
		Base:        model.Base{ID: id},
		Email:       "doctor@clinic.local",
		Name:        "Test Doctor",
		Role:        model.UserRoleDoctor,
		ShiftRates:  rates,
		ShiftCounts: counts,
	}
	return id
}

func TestSetShiftRatesRecomputesSalary(t *testing.T) {
	repo := newFakeUserRepo()
	id := addDoctor(repo, model.ShiftRates{"A": 100}, model.ShiftCounts{"A": 3, "B": 2})
	svc := NewService(repo)

	doctor, err := svc.SetShiftRates(context.Background(), id, map[string]float64{"B": 150})
	require.NoError(t, err)

	// Merged rates cover both shift types now.
	assert.Equal(t, 100.0, doctor.ShiftRates["A"])
	assert.Equal(t, 150.0, doctor.ShiftRates["B"])
	assert.Equal(t, 600.0, doctor.TotalSalary)
}

func TestSetShiftCountsRecomputesSalary(t *testing.T) {
	repo := newFakeUserRepo()
	id := addDoctor(repo, model.ShiftRates{"A": 100, "B": 150}, model.ShiftCounts{"A": 1})
	svc := NewService(repo)

	doctor, err := svc.SetShiftCounts(context.Background(), id, map[string]int{"B": 4})
	require.NoError(t, err)

	assert.Equal(t, 1, doctor.ShiftCounts["A"])
	assert.Equal(t, 4, doctor.ShiftCounts["B"])
	assert.Equal(t, 700.0, doctor.TotalSalary)
}

func TestResetShiftCountsZeroesSalary(t *testing.T) {
	repo := newFakeUserRepo()
	id := addDoctor(repo, model.ShiftRates{"A": 100, "B": 150}, model.ShiftCounts{"A": 3, "B": 2})
	svc := NewService(repo)

	doctor, err := svc.ResetShiftCounts(context.Background(), id)
	require.NoError(t, err)

	// Keys survive the reset with zero counts.
	assert.Equal(t, 0, doctor.ShiftCounts["A"])
	assert.Equal(t, 0, doctor.ShiftCounts["B"])
	assert.Contains(t, doctor.ShiftCounts, "A")
	assert.Contains(t, doctor.ShiftCounts, "B")
	assert.Equal(t, 0.0, doctor.TotalSalary)
}

func TestRateForUncountedShiftContributesNothing(t *testing.T) {
	repo := newFakeUserRepo()
	id := addDoctor(repo, model.ShiftRates{}, model.ShiftCounts{})
	svc := NewService(repo)

	doctor, err := svc.SetShiftRates(context.Background(), id, map[string]float64{"night": 250})
	require.NoError(t, err)
	assert.Equal(t, 0.0, doctor.TotalSalary)
}

func TestUpdateDoctorPartialFields(t *testing.T) {
	repo := newFakeUserRepo()
	id := addDoctor(repo, model.ShiftRates{}, model.ShiftCounts{})
	svc := NewService(repo)

	name := "Dr. Updated"
	doctor, err := svc.UpdateDoctor(context.Background(), id, &model.UpdateDoctorRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Updated", doctor.Name)
	assert.Equal(t, "doctor@clinic.local", doctor.Email)
}

func TestDoctorNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	_, err := svc.GetDoctor(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestAdminIsNotADoctor(t *testing.T) {
	repo := newFakeUserRepo()
	id := uuid.New()
	repo.users[id] = &model.User{
		Base:  model.Base{ID: id},
		Email: "admin@clinic.local",
		Role:  model.UserRoleAdmin,
	}
	svc := NewService(repo)

	_, err := svc.GetDoctor(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteDoctor(t *testing.T) {
	repo := newFakeUserRepo()
	id := addDoctor(repo, model.ShiftRates{}, model.ShiftCounts{})
	svc := NewService(repo)

	require.NoError(t, svc.DeleteDoctor(context.Background(), id))

	_, err := svc.GetDoctor(context.Background(), id)
	assert.Error(t, err)
}
