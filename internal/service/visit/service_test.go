package visit

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
)

type fakeVisitRepo struct {
	visits map[uuid.UUID]*model.Visit
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{visits: make(map[uuid.UUID]*model.Visit)}
}

func (r *fakeVisitRepo) Create(ctx context.Context, visit *model.Visit) error {
	v := *visit
	r.visits[visit.ID] = &v
	return nil
}

func (r *fakeVisitRepo) Get(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	v, ok := r.visits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVisitRepo) Update(ctx context.Context, visit *model.Visit) error {
	stored, ok := r.visits[visit.ID]
	if !ok {
		return repository.ErrNotFound
	}
	v := *visit
	v.Medications = stored.Medications
	v.Tests = stored.Tests
	r.visits[visit.ID] = &v
	return nil
}

func (r *fakeVisitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.visits[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.visits, id)
	return nil
}

func (r *fakeVisitRepo) List(ctx context.Context) ([]*model.Visit, error) {
	out := make([]*model.Visit, 0, len(r.visits))
	for _, v := range r.visits {
		copied := *v
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeVisitRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Visit, error) {
	var out []*model.Visit
	for _, v := range r.visits {
		if v.PatientID == patientID {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeVisitRepo) ListRecent(ctx context.Context, limit int) ([]*model.Visit, error) {
	all, _ := r.List(ctx)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeVisitRepo) ReplaceMedications(ctx context.Context, visitID uuid.UUID, meds []model.PrescriptionMedication) error {
	v, ok := r.visits[visitID]
	if !ok {
		return repository.ErrNotFound
	}
	v.Medications = meds
	return nil
}

func (r *fakeVisitRepo) ReplaceTests(ctx context.Context, visitID uuid.UUID, tests []model.TestOrder) error {
	v, ok := r.visits[visitID]
	if !ok {
		return repository.ErrNotFound
	}
	v.Tests = tests
	return nil
}

func (r *fakeVisitRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.visits)), nil
}

func (r *fakeVisitRepo) CountByDoctor(ctx context.Context) ([]model.DoctorCaseCount, error) {
	return nil, nil
}

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

type fixture struct {
	svc      *Service
	visits   *fakeVisitRepo
	patients *fakePatientRepo
	users    *fakeUserRepo
}

func newFixture() *fixture {
	visits := newFakeVisitRepo()
	patients := newFakePatientRepo()
	users := newFakeUserRepo()
	return &fixture{
		svc:      NewService(visits, patients, users, nil),
		visits:   visits,
		patients: patients,
		users:    users,
	}
}

func (f *fixture) addPatient(debt float64) uuid.UUID {
	id := uuid.New()
	f.patients.patients[id] = &model.Patient{
		Base:      model.Base{ID: id},
		Name:      "Test Patient",
		TotalDebt: debt,
	}
	return id
}

func (f *fixture) addDoctor(rates model.ShiftRates, counts model.ShiftCounts) uuid.UUID {
	id := uuid.New()
	f.users.users[id] = &model.User{
		Base:        model.Base{ID: id},
		Email:       "doctor@clinic.local",
		Name:        "Test Doctor",
		Role:        model.UserRoleDoctor,
		ShiftRates:  rates,
		ShiftCounts: counts,
	}
	return id
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func createReq(patientID, doctorID uuid.UUID, total, paid float64, isPaid bool) *model.CreateVisitRequest {
	return &model.CreateVisitRequest{
		PatientID:   patientID,
		PatientName: "Test Patient",
		DoctorID:    doctorID,
		Date:        time.Now(),
		Diagnosis:   "flu",
		TotalAmount: total,
		PaidAmount:  paid,
		IsPaid:      isPaid,
	}
}

func TestCreateVisitAddsUnpaidBalanceToDebt(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	visit, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 200, 50, false))
	require.NoError(t, err)
	require.NotNil(t, visit)

	patient, err := f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, patient.TotalDebt)
}

func TestCreatePaidVisitLeavesDebtUntouched(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(40)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	_, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 500, 0, true))
	require.NoError(t, err)

	patient, err := f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, patient.TotalDebt)
}

func TestCreateVisitAccruesShiftAndSalary(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{"A": 100, "B": 150}, model.ShiftCounts{"A": 0, "B": 0})

	req := createReq(patientID, doctorID, 0, 0, true)
	req.ShiftType = strPtr("A")
	_, err := f.svc.CreateVisit(context.Background(), req)
	require.NoError(t, err)

	doctor, err := f.users.Get(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, 1, doctor.ShiftCounts["A"])
	assert.Equal(t, 0, doctor.ShiftCounts["B"])
	assert.Equal(t, 100.0, doctor.TotalSalary)
}

func TestCreateVisitWithoutShiftTypeSkipsAccrual(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{"A": 100}, model.ShiftCounts{"A": 2})

	_, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 0, 0, true))
	require.NoError(t, err)

	doctor, err := f.users.Get(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, 2, doctor.ShiftCounts["A"])
}

func TestCreateVisitMissingPatientSucceeds(t *testing.T) {
	f := newFixture()
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	visit, err := f.svc.CreateVisit(context.Background(), createReq(uuid.New(), doctorID, 100, 0, false))
	require.NoError(t, err)
	assert.NotNil(t, visit)
}

func TestCreateVisitMissingDoctorSucceeds(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)

	req := createReq(patientID, uuid.New(), 100, 0, false)
	req.ShiftType = strPtr("A")
	visit, err := f.svc.CreateVisit(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, visit)

	patient, err := f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, patient.TotalDebt)
}

func TestCreateVisitValidation(t *testing.T) {
	f := newFixture()

	req := createReq(uuid.Nil, uuid.New(), 0, 0, false)
	_, err := f.svc.CreateVisit(context.Background(), req)
	assert.Error(t, err)
}

func TestUpdateVisitRecomputesDebtOnPayment(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	visit, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 200, 0, false))
	require.NoError(t, err)

	// Paying the full amount removes the visit's contribution to debt.
	_, err = f.svc.UpdateVisit(context.Background(), visit.ID, &model.UpdateVisitRequest{
		PaidAmount: floatPtr(200),
	})
	require.NoError(t, err)

	patient, err := f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, patient.TotalDebt)
}

func TestUpdateVisitMarkPaidClearsContribution(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	visit, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 300, 100, false))
	require.NoError(t, err)

	patient, _ := f.patients.Get(context.Background(), patientID)
	require.Equal(t, 200.0, patient.TotalDebt)

	_, err = f.svc.UpdateVisit(context.Background(), visit.ID, &model.UpdateVisitRequest{
		IsPaid: boolPtr(true),
	})
	require.NoError(t, err)

	patient, err = f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, patient.TotalDebt)
}

func TestUpdateVisitWithoutBillingFieldsLeavesDebtUntouched(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	visit, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 200, 50, false))
	require.NoError(t, err)

	_, err = f.svc.UpdateVisit(context.Background(), visit.ID, &model.UpdateVisitRequest{
		Diagnosis: strPtr("bronchitis"),
	})
	require.NoError(t, err)

	patient, err := f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, patient.TotalDebt)

	updated, err := f.svc.GetVisit(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Equal(t, "bronchitis", updated.Diagnosis)
}

func TestUpdateVisitDoesNotAccrueShifts(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{"A": 100, "B": 150}, model.ShiftCounts{})

	req := createReq(patientID, doctorID, 0, 0, true)
	req.ShiftType = strPtr("A")
	visit, err := f.svc.CreateVisit(context.Background(), req)
	require.NoError(t, err)

	// Changing the shift type never touches the accrued counts.
	_, err = f.svc.UpdateVisit(context.Background(), visit.ID, &model.UpdateVisitRequest{
		ShiftType: strPtr("B"),
	})
	require.NoError(t, err)

	doctor, err := f.users.Get(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, 1, doctor.ShiftCounts["A"])
	assert.Equal(t, 0, doctor.ShiftCounts["B"])
	assert.Equal(t, 100.0, doctor.TotalSalary)
}

func TestUpdateVisitReplacesChildCollections(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	req := createReq(patientID, doctorID, 0, 0, true)
	req.Medications = []model.VisitMedicationInput{
		{MedicationID: uuid.New(), MedicationName: "Amoxicillin", Quantity: 1, Dosage: "500mg"},
		{MedicationID: uuid.New(), MedicationName: "Ibuprofen", Quantity: 2, Dosage: "200mg"},
	}
	visit, err := f.svc.CreateVisit(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, visit.Medications, 2)

	updated, err := f.svc.UpdateVisit(context.Background(), visit.ID, &model.UpdateVisitRequest{
		Medications: []model.VisitMedicationInput{
			{MedicationID: uuid.New(), MedicationName: "Paracetamol", Quantity: 1, Dosage: "500mg"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Medications, 1)
	assert.Equal(t, "Paracetamol", updated.Medications[0].MedicationName)
}

func TestUpdateVisitNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateVisit(context.Background(), uuid.New(), &model.UpdateVisitRequest{})
	assert.Error(t, err)
}

func TestDeleteUnpaidVisitReducesDebt(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	visit, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 320, 0, false))
	require.NoError(t, err)

	patient, _ := f.patients.Get(context.Background(), patientID)
	require.Equal(t, 320.0, patient.TotalDebt)

	require.NoError(t, f.svc.DeleteVisit(context.Background(), visit.ID))

	patient, err = f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, patient.TotalDebt)
}

func TestDeletePaidVisitLeavesDebtUntouched(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(75)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	visit, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 500, 0, true))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteVisit(context.Background(), visit.ID))

	patient, err := f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, patient.TotalDebt)
}

func TestDeleteVisitKeepsShiftCounts(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{"A": 100}, model.ShiftCounts{})

	req := createReq(patientID, doctorID, 0, 0, true)
	req.ShiftType = strPtr("A")
	visit, err := f.svc.CreateVisit(context.Background(), req)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteVisit(context.Background(), visit.ID))

	doctor, err := f.users.Get(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, 1, doctor.ShiftCounts["A"])
	assert.Equal(t, 100.0, doctor.TotalSalary)
}

func TestOverpaidVisitContributesNothing(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(50)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	// An overpaid visit never eats into debt accrued elsewhere.
	visit, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 100, 200, false))
	require.NoError(t, err)

	patient, err := f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, patient.TotalDebt)

	// Neither does deleting it give anything back.
	require.NoError(t, f.svc.DeleteVisit(context.Background(), visit.ID))

	patient, err = f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, patient.TotalDebt)
}

func TestCreateVisitsDebtIndependentOfOrder(t *testing.T) {
	billing := [][2]float64{{200, 50}, {320, 0}, {80, 100}}
	perms := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}}

	for _, perm := range perms {
		f := newFixture()
		patientID := f.addPatient(0)
		doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

		for _, i := range perm {
			_, err := f.svc.CreateVisit(context.Background(),
				createReq(patientID, doctorID, billing[i][0], billing[i][1], false))
			require.NoError(t, err)
		}

		patient, err := f.patients.Get(context.Background(), patientID)
		require.NoError(t, err)
		assert.Equal(t, 470.0, patient.TotalDebt)
	}
}

// flakyPatientRepo fails Get a fixed number of times before delegating.
type flakyPatientRepo struct {
	*fakePatientRepo
	getFailures int
}

func (r *flakyPatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	if r.getFailures > 0 {
		r.getFailures--
		return nil, stderrors.New("connection reset")
	}
	return r.fakePatientRepo.Get(ctx, id)
}

type flakyUserRepo struct {
	*fakeUserRepo
	getDoctorFailures int
}

func (r *flakyUserRepo) GetDoctor(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if r.getDoctorFailures > 0 {
		r.getDoctorFailures--
		return nil, stderrors.New("connection reset")
	}
	return r.fakeUserRepo.GetDoctor(ctx, id)
}

func TestCreateVisitRetriesTransientReadFailures(t *testing.T) {
	visits := newFakeVisitRepo()
	patients := &flakyPatientRepo{fakePatientRepo: newFakePatientRepo(), getFailures: 1}
	users := &flakyUserRepo{fakeUserRepo: newFakeUserRepo(), getDoctorFailures: 1}
	svc := NewService(visits, patients, users, nil)

	patientID := uuid.New()
	patients.patients[patientID] = &model.Patient{Base: model.Base{ID: patientID}, Name: "Test Patient"}
	doctorID := uuid.New()
	users.users[doctorID] = &model.User{
		Base:       model.Base{ID: doctorID},
		Role:       model.UserRoleDoctor,
		ShiftRates: model.ShiftRates{"A": 100},
	}

	// A single transient read failure must not drop the side effects.
	req := createReq(patientID, doctorID, 200, 50, false)
	req.ShiftType = strPtr("A")
	_, err := svc.CreateVisit(context.Background(), req)
	require.NoError(t, err)

	patient, err := patients.fakePatientRepo.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, patient.TotalDebt)

	doctor, err := users.fakeUserRepo.Get(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, 1, doctor.ShiftCounts["A"])
	assert.Equal(t, 100.0, doctor.TotalSalary)
}

func TestConcurrentUpdatesApplyDebtDeltaOnce(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	visit, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 200, 0, false))
	require.NoError(t, err)
	_, err = f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 200, 0, false))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.UpdateVisit(context.Background(), visit.ID, &model.UpdateVisitRequest{
				PaidAmount: floatPtr(200),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Paying off the first visit removes its 200 exactly once; the second
	// visit's 200 stays outstanding.
	patient, err := f.patients.Get(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, patient.TotalDebt)
}

func TestListPatientVisits(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient(0)
	otherID := f.addPatient(0)
	doctorID := f.addDoctor(model.ShiftRates{}, model.ShiftCounts{})

	_, err := f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 0, 0, true))
	require.NoError(t, err)
	_, err = f.svc.CreateVisit(context.Background(), createReq(patientID, doctorID, 0, 0, true))
	require.NoError(t, err)
	_, err = f.svc.CreateVisit(context.Background(), createReq(otherID, doctorID, 0, 0, true))
	require.NoError(t, err)

	visits, err := f.svc.ListPatientVisits(context.Background(), patientID)
	require.NoError(t, err)
	assert.Len(t, visits, 2)
}
