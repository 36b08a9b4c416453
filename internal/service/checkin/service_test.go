package checkin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winco-group/attendance-backend-go/internal/domain/employee"
	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/domain/worksite"
	"github.com/winco-group/attendance-backend-go/internal/pkg/validator"
)

func f64(v float64) *float64 { return &v }

type fakePunchStore struct {
	created []punch.PunchEvent
}

func (f *fakePunchStore) Create(ctx context.Context, p punch.PunchEvent) (punch.PunchEvent, error) {
	p.ID = "punch-1"
	p.CreatedAt = time.Now()
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
	return false, nil
}

type fakeEmployeeStore struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeStore) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if emp, ok := f.employees[id]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeStore) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeStore) GetByDeviceUserID(ctx context.Context, deviceUserID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeStore) GetManagerEmails(ctx context.Context, employeeID string) ([]string, error) {
	return nil, nil
}

type fakeWorkSiteStore struct {
	site *worksite.WorkSite
}

func (f *fakeWorkSiteStore) GetByID(ctx context.Context, id string) (worksite.WorkSite, error) {
	if f.site == nil {
		return worksite.WorkSite{}, worksite.ErrWorkSiteNotFound
	}
	return *f.site, nil
}

func (f *fakeWorkSiteStore) ResolveForEmployee(ctx context.Context, employeeID string, date time.Time) (*worksite.WorkSite, error) {
	return f.site, nil
}

func activeEmployees() *fakeEmployeeStore {
	return &fakeEmployeeStore{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", FullName: "Test Employee", Status: employee.StatusActive},
		"emp-2": {ID: "emp-2", FullName: "Gone Employee", Status: employee.StatusInactive},
	}}
}

func hqSite() *worksite.WorkSite {
	return &worksite.WorkSite{
		ID:           "site-1",
		Name:         "HQ",
		Latitude:     f64(-6.2000),
		Longitude:    f64(106.8000),
		RadiusMeters: f64(150),
	}
}

func TestCheckin(t *testing.T) {
	ctx := context.Background()

	t.Run("punch inside the fence", func(t *testing.T) {
		punches := &fakePunchStore{}
		svc := NewCheckinService(punches, activeEmployees(), &fakeWorkSiteStore{site: hqSite()})

		resp, err := svc.Checkin(ctx, "emp-1", punch.MobileCheckinRequest{
			Direction: "IN",
			Latitude:  -6.2001,
			Longitude: 106.8001,
			FingerprintRaw: map[string]any{
				"platform": "Android",
			},
			UserAgent: "okhttp/4.12",
			SourceIP:  "10.0.0.5",
		})
		require.NoError(t, err)

		assert.True(t, resp.WithinGeofence)
		assert.Equal(t, "IN", resp.Direction)
		require.NotNil(t, resp.WorkSiteID)
		assert.Equal(t, "site-1", *resp.WorkSiteID)

		require.Len(t, punches.created, 1)
		p := punches.created[0]
		assert.Equal(t, punch.SourceMobile, p.Source)
		require.NotNil(t, p.WithinGeofence)
		assert.True(t, *p.WithinGeofence)
		require.NotNil(t, p.DeviceFingerprint)
		assert.Len(t, *p.DeviceFingerprint, 40)
		require.NotNil(t, p.IPAddress)
		assert.Equal(t, "10.0.0.5", *p.IPAddress)
	})

	t.Run("punch outside the fence is stored and flagged, not rejected", func(t *testing.T) {
		punches := &fakePunchStore{}
		svc := NewCheckinService(punches, activeEmployees(), &fakeWorkSiteStore{site: hqSite()})

		resp, err := svc.Checkin(ctx, "emp-1", punch.MobileCheckinRequest{
			Direction: "OUT",
			Latitude:  -6.3000,
			Longitude: 106.9000,
		})
		require.NoError(t, err)

		assert.False(t, resp.WithinGeofence)
		require.Len(t, punches.created, 1)
		require.NotNil(t, punches.created[0].WithinGeofence)
		assert.False(t, *punches.created[0].WithinGeofence)
	})

	t.Run("no resolvable work site means outside", func(t *testing.T) {
		punches := &fakePunchStore{}
		svc := NewCheckinService(punches, activeEmployees(), &fakeWorkSiteStore{site: nil})

		resp, err := svc.Checkin(ctx, "emp-1", punch.MobileCheckinRequest{
			Direction: "IN",
			Latitude:  -6.2,
			Longitude: 106.8,
		})
		require.NoError(t, err)

		assert.False(t, resp.WithinGeofence)
		assert.Nil(t, resp.WorkSiteID)
	})

	t.Run("inactive employee is rejected", func(t *testing.T) {
		punches := &fakePunchStore{}
		svc := NewCheckinService(punches, activeEmployees(), &fakeWorkSiteStore{site: hqSite()})

		_, err := svc.Checkin(ctx, "emp-2", punch.MobileCheckinRequest{
			Direction: "IN",
			Latitude:  -6.2,
			Longitude: 106.8,
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
		assert.Empty(t, punches.created)
	})

	t.Run("invalid direction fails validation", func(t *testing.T) {
		punches := &fakePunchStore{}
		svc := NewCheckinService(punches, activeEmployees(), &fakeWorkSiteStore{site: hqSite()})

		_, err := svc.Checkin(ctx, "emp-1", punch.MobileCheckinRequest{
			Direction: "SIDEWAYS",
			Latitude:  -6.2,
			Longitude: 106.8,
		})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
		assert.Empty(t, punches.created)
	})

	t.Run("out-of-range coordinates fail validation", func(t *testing.T) {
		punches := &fakePunchStore{}
		svc := NewCheckinService(punches, activeEmployees(), &fakeWorkSiteStore{site: hqSite()})

		_, err := svc.Checkin(ctx, "emp-1", punch.MobileCheckinRequest{
			Direction: "IN",
			Latitude:  95.0,
			Longitude: 106.8,
		})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}
