package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
	"github.com/medtrack/clinic-api/pkg/errors"
)

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (r *fakePatientRepo) Create(ctx context.Context, patient *model.Patient) error {
	p := *patient
	r.patients[patient.ID] = &p
	return nil
}

func (r *fakePatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, patient *model.Patient) error {
	if _, ok := r.patients[patient.ID]; !ok {
		return repository.ErrNotFound
	}
	p := *patient
	r.patients[patient.ID] = &p
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.patients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(ctx context.Context) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakePatientRepo) ListWithDebt(ctx context.Context, limit int) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range r.patients {
		if p.TotalDebt > 0 {
			copied := *p
			out = append(out, &copied)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePatientRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.patients)), nil
}

func TestCreatePatientStartsWithZeroDebt(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)

	patient, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:        "Jane Roe",
		DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, patient.TotalDebt)
	assert.NotEqual(t, uuid.Nil, patient.ID)
}

func TestUpdatePatientPartialFields(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)

	created, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:        "Jane Roe",
		DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	phone := "+123456"
	updated, err := svc.UpdatePatient(context.Background(), created.ID, &model.UpdatePatientRequest{
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+123456", *updated.Phone)
}

func TestUpdatePatientDebtOverride(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)

	created, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:        "Jane Roe",
		DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	debt := 125.0
	updated, err := svc.UpdatePatient(context.Background(), created.ID, &model.UpdatePatientRequest{
		TotalDebt: &debt,
	})
	require.NoError(t, err)
	assert.Equal(t, 125.0, updated.TotalDebt)
}

func TestGetPatientNotFound(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)

	_, err := svc.GetPatient(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeletePatient(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)

	created, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:        "Jane Roe",
		DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePatient(context.Background(), created.ID))

	err = svc.DeletePatient(context.Background(), created.ID)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
