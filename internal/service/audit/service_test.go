package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Append(ctx context.Context, record audit.AuditRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockAuditRepository) Recent(ctx context.Context, limit int) ([]audit.AuditRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]audit.AuditRecord)
	return records, args.Error(1)
}

func (m *mockAuditRepository) ForRecord(ctx context.Context, table, recordID string) ([]audit.AuditRecord, error) {
	args := m.Called(ctx, table, recordID)
	records, _ := args.Get(0).([]audit.AuditRecord)
	return records, args.Error(1)
}

func TestRecordUsesActorFromContext(t *testing.T) {
	repo := new(mockAuditRepository)
	repo.On("Append", mock.Anything, mock.MatchedBy(func(r audit.AuditRecord) bool {
		return r.Actor == "Admin" && r.Action == audit.ActionUpdate && r.RecordID == "42" && r.ID != ""
	})).Return(nil).Once()

	svc := NewAuditService(repo, nil, 200, 1000)
	ctx := audit.WithActor(context.Background(), "Admin")

	err := svc.Record(ctx, audit.ActionUpdate, "employees", "42", audit.Snapshot{"name": "a"}, audit.Snapshot{"name": "b"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecordRejectsMismatchedSnapshots(t *testing.T) {
	repo := new(mockAuditRepository)
	svc := NewAuditService(repo, nil, 200, 1000)
	ctx := context.Background()

	cases := []struct {
		action        audit.Action
		before, after audit.Snapshot
	}{
		{audit.ActionInsert, audit.Snapshot{"a": 1}, audit.Snapshot{"a": 1}},
		{audit.ActionUpdate, nil, audit.Snapshot{"a": 1}},
		{audit.ActionDelete, audit.Snapshot{"a": 1}, audit.Snapshot{"a": 1}},
		{audit.Action("TRUNCATE"), nil, nil},
	}
	for _, c := range cases {
		err := svc.Record(ctx, c.action, "employees", "1", c.before, c.after)
		assert.ErrorIs(t, err, audit.ErrAuditWriteFailed, "action %s", c.action)
	}
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestRecordWrapsStorageFailure(t *testing.T) {
	repo := new(mockAuditRepository)
	storageErr := errors.New("disk full")
	repo.On("Append", mock.Anything, mock.Anything).Return(storageErr)

	svc := NewAuditService(repo, nil, 200, 1000)
	err := svc.Record(context.Background(), audit.ActionInsert, "employees", "1", nil, audit.Snapshot{"name": "x"})

	assert.ErrorIs(t, err, audit.ErrAuditWriteFailed)
	assert.ErrorIs(t, err, storageErr)
}

func TestRecentAppliesDefaultAndMaxLimit(t *testing.T) {
	repo := new(mockAuditRepository)
	repo.On("Recent", mock.Anything, 200).Return([]audit.AuditRecord{}, nil).Once()
	repo.On("Recent", mock.Anything, 1000).Return([]audit.AuditRecord{}, nil).Once()

	svc := NewAuditService(repo, nil, 200, 1000)

	_, err := svc.Recent(context.Background(), audit.RecentAuditRequest{})
	require.NoError(t, err)

	huge := 50000
	_, err = svc.Recent(context.Background(), audit.RecentAuditRequest{Limit: &huge})
	require.NoError(t, err)

	zero := 0
	_, err = svc.Recent(context.Background(), audit.RecentAuditRequest{Limit: &zero})
	assert.Error(t, err)

	repo.AssertExpectations(t)
}

func TestForRecordIncludesChanges(t *testing.T) {
	repo := new(mockAuditRepository)
	repo.On("ForRecord", mock.Anything, "employees", "7").Return([]audit.AuditRecord{{
		ID:     "r1",
		Action: audit.ActionUpdate,
		Before: audit.Snapshot{"name": "old", "is_admin": false},
		After:  audit.Snapshot{"name": "new", "is_admin": false},
	}}, nil)

	svc := NewAuditService(repo, nil, 200, 1000)
	records, err := svc.ForRecord(context.Background(), audit.RecordAuditRequest{Table: "employees", RecordID: "7"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, map[string]audit.FieldChange{"name": {Before: "old", After: "new"}}, records[0].Changes)
}
