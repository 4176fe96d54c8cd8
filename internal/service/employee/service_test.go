package employee

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	auditservice "github.com/cmlabs-hris/worklog-backend-go/internal/service/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memStore keeps employees and audit records and rolls both back together.
type memStore struct {
	employees  map[string]employee.Employee
	records    []audit.AuditRecord
	failAppend bool
}

func newMemStore() *memStore {
	return &memStore{employees: make(map[string]employee.Employee)}
}

func (m *memStore) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	employees := make(map[string]employee.Employee, len(m.employees))
	for k, v := range m.employees {
		employees[k] = v
	}
	records := append([]audit.AuditRecord(nil), m.records...)

	if err := fn(ctx); err != nil {
		m.employees, m.records = employees, records
		return err
	}
	return nil
}

type memEmployeeRepo struct{ store *memStore }

func (r memEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r memEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	var list []employee.Employee
	for _, e := range r.store.employees {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r memEmployeeRepo) ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error) {
	for _, e := range r.store.employees {
		if e.Name == name && (excludeID == nil || e.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (r memEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	e.CreatedAt, e.UpdatedAt = time.Now(), time.Now()
	r.store.employees[e.ID] = e
	return e, nil
}

func (r memEmployeeRepo) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := r.store.employees[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.UpdatedAt = time.Now()
	r.store.employees[e.ID] = e
	return e, nil
}

func (r memEmployeeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.store.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.store.employees, id)
	return nil
}

type memAuditRepo struct{ store *memStore }

func (r memAuditRepo) Append(ctx context.Context, record audit.AuditRecord) error {
	if r.store.failAppend {
		return errors.New("audit table unavailable")
	}
	r.store.records = append(r.store.records, record)
	return nil
}

func (r memAuditRepo) Recent(ctx context.Context, limit int) ([]audit.AuditRecord, error) {
	return r.store.records, nil
}

func (r memAuditRepo) ForRecord(ctx context.Context, table, recordID string) ([]audit.AuditRecord, error) {
	return nil, nil
}

func newTestService(store *memStore) employee.EmployeeService {
	auditSvc := auditservice.NewAuditService(memAuditRepo{store}, nil, 200, 1000)
	return NewEmployeeService(store, memEmployeeRepo{store}, auditSvc)
}

func adminCtx() context.Context {
	return audit.WithActor(context.Background(), "Admin")
}

func TestCreateEmployeeWritesInsertRecord(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	password := "secret1"
	created, err := svc.CreateEmployee(adminCtx(), employee.CreateEmployeeRequest{
		Name: "huber", FirstName: "Anna", LastName: "Huber", Password: &password,
	})
	require.NoError(t, err)
	assert.True(t, created.HasPassword)

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, audit.ActionInsert, rec.Action)
	assert.Equal(t, employee.TableName, rec.Table)
	assert.Equal(t, created.ID, rec.RecordID)
	assert.Equal(t, "Admin", rec.Actor)
	assert.Nil(t, rec.Before)
	assert.NotContains(t, rec.After, "password_hash")

	stored := store.employees[created.ID]
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte(password)))
}

func TestUpdateEmployeeWritesExactlyOneUpdateRecord(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.CreateEmployee(adminCtx(), employee.CreateEmployeeRequest{Name: "huber", FirstName: "Anna"})
	require.NoError(t, err)
	store.records = nil

	_, err = svc.UpdateEmployee(adminCtx(), employee.UpdateEmployeeRequest{
		ID: created.ID, Name: "huber", FirstName: "Anna", LastName: "Huber", IsAdmin: true,
	})
	require.NoError(t, err)

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, audit.ActionUpdate, rec.Action)
	require.NotNil(t, rec.Before)
	require.NotNil(t, rec.After)
	assert.Equal(t, map[string]audit.FieldChange{
		"last_name": {Before: "", After: "Huber"},
		"is_admin":  {Before: false, After: true},
	}, rec.Changes())
}

func TestPasswordOnlyUpdateIsVisibleInAuditChanges(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	first, second := "secret1", "secret2"
	created, err := svc.CreateEmployee(adminCtx(), employee.CreateEmployeeRequest{Name: "huber", Password: &first})
	require.NoError(t, err)
	store.records = nil

	_, err = svc.UpdateEmployee(adminCtx(), employee.UpdateEmployeeRequest{ID: created.ID, Name: "huber", Password: &second})
	require.NoError(t, err)

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, map[string]audit.FieldChange{
		"password_changed": {Before: nil, After: true},
	}, rec.Changes())
	assert.Equal(t, true, rec.After["has_password"])
	assert.NotContains(t, rec.After, "password_hash")
}

func TestFirstPasswordSetsHasPassword(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.CreateEmployee(adminCtx(), employee.CreateEmployeeRequest{Name: "huber"})
	require.NoError(t, err)
	store.records = nil

	password := "secret1"
	_, err = svc.UpdateEmployee(adminCtx(), employee.UpdateEmployeeRequest{ID: created.ID, Name: "huber", Password: &password})
	require.NoError(t, err)

	changes := store.records[0].Changes()
	assert.Equal(t, audit.FieldChange{Before: false, After: true}, changes["has_password"])
	assert.Contains(t, changes, "password_changed")
}

func TestDeleteEmployeeWritesExactlyOneDeleteRecord(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.CreateEmployee(adminCtx(), employee.CreateEmployeeRequest{Name: "huber"})
	require.NoError(t, err)
	store.records = nil

	require.NoError(t, svc.DeleteEmployee(adminCtx(), created.ID))

	require.Len(t, store.records, 1)
	assert.Equal(t, audit.ActionDelete, store.records[0].Action)
	assert.NotNil(t, store.records[0].Before)
	assert.Nil(t, store.records[0].After)
	assert.Empty(t, store.employees)
}

func TestAuditFailureRollsBackMutation(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.CreateEmployee(adminCtx(), employee.CreateEmployeeRequest{Name: "huber"})
	require.NoError(t, err)

	store.failAppend = true

	_, err = svc.UpdateEmployee(adminCtx(), employee.UpdateEmployeeRequest{ID: created.ID, Name: "mayer"})
	assert.ErrorIs(t, err, audit.ErrAuditWriteFailed)
	assert.Equal(t, "huber", store.employees[created.ID].Name)

	err = svc.DeleteEmployee(adminCtx(), created.ID)
	assert.ErrorIs(t, err, audit.ErrAuditWriteFailed)
	assert.Contains(t, store.employees, created.ID)

	_, err = svc.CreateEmployee(adminCtx(), employee.CreateEmployeeRequest{Name: "gruber"})
	assert.ErrorIs(t, err, audit.ErrAuditWriteFailed)
	assert.Len(t, store.employees, 1)
	assert.Len(t, store.records, 1)
}

func TestCreateEmployeeRejectsDuplicateName(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.CreateEmployee(adminCtx(), employee.CreateEmployeeRequest{Name: "huber"})
	require.NoError(t, err)

	_, err = svc.CreateEmployee(adminCtx(), employee.CreateEmployeeRequest{Name: "huber"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNameExists)
	assert.Len(t, store.records, 1)
}

func TestDeleteMissingEmployeeWritesNothing(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	err := svc.DeleteEmployee(adminCtx(), "0195a000-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, store.records)
}
