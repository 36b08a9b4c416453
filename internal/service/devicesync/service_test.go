package devicesync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winco-group/attendance-backend-go/internal/domain/employee"
	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/pkg/device"
)

type fakeConnector struct {
	id   string
	logs []device.RawLog
	err  error

	lastSince time.Time
}

func (f *fakeConnector) ID() string { return f.id }

func (f *fakeConnector) FetchLogs(ctx context.Context, since time.Time) ([]device.RawLog, error) {
	f.lastSince = since
	if f.err != nil {
		return nil, f.err
	}
	return f.logs, nil
}

type fakePunchStore struct {
	mu       sync.Mutex
	created  []punch.PunchEvent
	existing map[string]bool
}

func (f *fakePunchStore) Create(ctx context.Context, p punch.PunchEvent) (punch.PunchEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePunchStore) ListEmployeesWithUnprocessed(ctx context.Context, from, to time.Time) ([]string, error) {
	return nil, nil
}

func (f *fakePunchStore) ListUnprocessedForDay(ctx context.Context, employeeID string, day time.Time) ([]punch.PunchEvent, error) {
	return nil, nil
}

func (f *fakePunchStore) ListForDay(ctx context.Context, employeeID string, day time.Time) ([]punch.PunchEvent, error) {
	return nil, nil
}

func (f *fakePunchStore) MarkProcessed(ctx context.Context, ids []string, batchTag string) error {
	return nil
}

func (f *fakePunchStore) ExistsAt(ctx context.Context, employeeID string, source punch.Source, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existing[employeeID+"@"+at.Format(time.RFC3339)], nil
}

type fakeEmployeeDirectory struct {
	byDeviceUserID map[string]employee.Employee
}

func (f *fakeEmployeeDirectory) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeDirectory) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeDirectory) GetByDeviceUserID(ctx context.Context, deviceUserID string) (employee.Employee, error) {
	if emp, ok := f.byDeviceUserID[deviceUserID]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeDirectory) GetManagerEmails(ctx context.Context, employeeID string) ([]string, error) {
	return nil, nil
}

func TestSyncAll(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	directory := &fakeEmployeeDirectory{byDeviceUserID: map[string]employee.Employee{
		"101": {ID: "emp-1", Status: employee.StatusActive},
		"102": {ID: "emp-2", Status: employee.StatusActive},
		"103": {ID: "emp-3", Status: employee.StatusInactive},
	}}

	t.Run("imports logs and maps status codes", func(t *testing.T) {
		conn := &fakeConnector{id: "gw-1", logs: []device.RawLog{
			{DeviceUserID: "101", Timestamp: now, StatusCode: device.StateCheckIn},
			{DeviceUserID: "101", Timestamp: now.Add(3 * time.Hour), StatusCode: device.StateBreakOut},
			{DeviceUserID: "101", Timestamp: now.Add(4 * time.Hour), StatusCode: device.StateBreakIn},
			{DeviceUserID: "102", Timestamp: now.Add(9 * time.Hour), StatusCode: device.StateOTOut},
		}}
		store := &fakePunchStore{existing: map[string]bool{}}

		err := NewSyncService([]device.Connector{conn}, store, directory).SyncAll(ctx)
		require.NoError(t, err)

		require.Len(t, store.created, 4)
		assert.Equal(t, punch.DirectionIn, store.created[0].Direction)
		assert.Equal(t, punch.DirectionOut, store.created[1].Direction)
		assert.Equal(t, punch.DirectionIn, store.created[2].Direction)
		assert.Equal(t, punch.DirectionOut, store.created[3].Direction)
		for _, p := range store.created {
			assert.Equal(t, punch.SourceBiometric, p.Source)
			assert.False(t, p.Processed)
		}
	})

	t.Run("skips unknown device users and status codes", func(t *testing.T) {
		conn := &fakeConnector{id: "gw-1", logs: []device.RawLog{
			{DeviceUserID: "999", Timestamp: now, StatusCode: device.StateCheckIn},
			{DeviceUserID: "101", Timestamp: now, StatusCode: 42},
			{DeviceUserID: "101", Timestamp: now.Add(time.Minute), StatusCode: device.StateCheckIn},
		}}
		store := &fakePunchStore{existing: map[string]bool{}}

		err := NewSyncService([]device.Connector{conn}, store, directory).SyncAll(ctx)
		require.NoError(t, err)

		require.Len(t, store.created, 1)
		assert.Equal(t, "emp-1", store.created[0].EmployeeID)
	})

	t.Run("skips inactive employees", func(t *testing.T) {
		conn := &fakeConnector{id: "gw-1", logs: []device.RawLog{
			{DeviceUserID: "103", Timestamp: now, StatusCode: device.StateCheckIn},
			{DeviceUserID: "101", Timestamp: now.Add(time.Minute), StatusCode: device.StateCheckIn},
		}}
		store := &fakePunchStore{existing: map[string]bool{}}

		err := NewSyncService([]device.Connector{conn}, store, directory).SyncAll(ctx)
		require.NoError(t, err)

		require.Len(t, store.created, 1)
		assert.Equal(t, "emp-1", store.created[0].EmployeeID)
	})

	t.Run("already imported logs are not duplicated", func(t *testing.T) {
		conn := &fakeConnector{id: "gw-1", logs: []device.RawLog{
			{DeviceUserID: "101", Timestamp: now, StatusCode: device.StateCheckIn},
		}}
		store := &fakePunchStore{existing: map[string]bool{
			"emp-1@" + now.Format(time.RFC3339): true,
		}}

		err := NewSyncService([]device.Connector{conn}, store, directory).SyncAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, store.created)
	})

	t.Run("watermark advances to the newest imported log", func(t *testing.T) {
		conn := &fakeConnector{id: "gw-1", logs: []device.RawLog{
			{DeviceUserID: "101", Timestamp: now, StatusCode: device.StateCheckIn},
			{DeviceUserID: "101", Timestamp: now.Add(8 * time.Hour), StatusCode: device.StateCheckOut},
		}}
		store := &fakePunchStore{existing: map[string]bool{}}
		svc := NewSyncService([]device.Connector{conn}, store, directory)

		require.NoError(t, svc.SyncAll(ctx))
		conn.logs = nil
		require.NoError(t, svc.SyncAll(ctx))

		assert.Equal(t, now.Add(8*time.Hour), conn.lastSince)
	})

	t.Run("one dead gateway does not block the others", func(t *testing.T) {
		dead := &fakeConnector{id: "gw-dead", err: errors.New("dial tcp: timeout")}
		live := &fakeConnector{id: "gw-live", logs: []device.RawLog{
			{DeviceUserID: "101", Timestamp: now, StatusCode: device.StateCheckIn},
		}}
		store := &fakePunchStore{existing: map[string]bool{}}

		err := NewSyncService([]device.Connector{dead, live}, store, directory).SyncAll(ctx)
		require.NoError(t, err)
		assert.Len(t, store.created, 1)
	})

	t.Run("all gateways failing reports an error", func(t *testing.T) {
		dead := &fakeConnector{id: "gw-dead", err: errors.New("dial tcp: timeout")}
		store := &fakePunchStore{existing: map[string]bool{}}

		err := NewSyncService([]device.Connector{dead}, store, directory).SyncAll(ctx)
		assert.Error(t, err)
	})
}
