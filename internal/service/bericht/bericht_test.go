package bericht

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kolonnen-backend/internal/aggregation"
	"kolonnen-backend/internal/storage"
)

type MockBerichtStorage struct {
	mock.Mock
}

func (m *MockBerichtStorage) GetDailyRecords(ctx context.Context, filter storage.DailyFilter) ([]aggregation.DailyRecord, error) {
	args := m.Called(ctx, filter)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	records, ok := args.Get(0).([]aggregation.DailyRecord)
	if !ok {
		return nil, fmt.Errorf("expected []aggregation.DailyRecord, got %T", args.Get(0))
	}
	return records, args.Error(1)
}

func (m *MockBerichtStorage) GetKolonnen(ctx context.Context) ([]storage.Kolonne, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	kolonnen, ok := args.Get(0).([]storage.Kolonne)
	if !ok {
		return nil, fmt.Errorf("expected []storage.Kolonne, got %T", args.Get(0))
	}
	return kolonnen, args.Error(1)
}

func TestPeriodReport_ExplicitRange(t *testing.T) {
	mockStorage := new(MockBerichtStorage)

	records := []aggregation.DailyRecord{
		{ID: "1", Date: "2025-05-05", KolonneID: "k1", EmployeesCount: 4, EmployeesPlan: 4, HoursPerEmployee: 8, HoursPlan: 8, PlannedRevenue: 1000, ActualRevenue: 1100},
		{ID: "2", Date: "2025-05-06", KolonneID: "k2", EmployeesCount: 2, EmployeesPlan: 3, HoursPerEmployee: 8, HoursPlan: 8, PlannedRevenue: 500, ActualRevenue: 450},
	}
	kolonnen := []storage.Kolonne{
		{ID: "k1", Number: "K-01"},
		{ID: "k2", Number: "K-02"},
		{ID: "k3", Number: "K-03"},
	}

	mockStorage.On("GetDailyRecords", mock.Anything, mock.MatchedBy(func(filter storage.DailyFilter) bool {
		return filter.From.Format("2006-01-02") == "2025-05-01" &&
			filter.To.Format("2006-01-02") == "2025-05-31" &&
			filter.KolonneID == ""
	})).Return(records, nil)
	mockStorage.On("GetKolonnen", mock.Anything).Return(kolonnen, nil)

	service := New(mockStorage)
	report, err := service.PeriodReport(context.Background(), Request{From: "2025-05-01", To: "2025-05-31"})

	require.NoError(t, err)
	assert.Equal(t, "2025-05-01", report.From)
	assert.Equal(t, "2025-05-31", report.To)
	assert.Equal(t, 2, report.ContributingCrewsCount)
	assert.Equal(t, []string{"k1", "k2"}, report.ContributingCrewIDs)
	// only contributing crews are echoed back, k3 stays out
	require.Len(t, report.ContributingCrews, 2)
	assert.Equal(t, "K-01", report.ContributingCrews[0].Number)
	assert.InDelta(t, 1500, report.Totals.TotalPlanned, 1e-9)
	assert.InDelta(t, 1550, report.Totals.TotalActual, 1e-9)
	assert.InDelta(t, 50, report.KPIs.Delta, 1e-9)
	assert.True(t, report.KPIs.DeltaPositive)

	mockStorage.AssertExpectations(t)
}

func TestPeriodReport_PresetRange(t *testing.T) {
	mockStorage := new(MockBerichtStorage)

	want := aggregation.GetDateRangeForPreset(aggregation.PresetThisMonth)
	mockStorage.On("GetDailyRecords", mock.Anything, mock.MatchedBy(func(filter storage.DailyFilter) bool {
		return filter.From.Equal(want.From) && filter.To.Equal(want.To)
	})).Return([]aggregation.DailyRecord{}, nil)
	mockStorage.On("GetKolonnen", mock.Anything).Return([]storage.Kolonne{}, nil)

	service := New(mockStorage)
	report, err := service.PeriodReport(context.Background(), Request{Preset: aggregation.PresetThisMonth})

	require.NoError(t, err)
	assert.Zero(t, report.ContributingCrewsCount)
	assert.Zero(t, report.Totals.RecordCount)
	mockStorage.AssertExpectations(t)
}

func TestPeriodReport_KolonneFilterPassedThrough(t *testing.T) {
	mockStorage := new(MockBerichtStorage)

	mockStorage.On("GetDailyRecords", mock.Anything, mock.MatchedBy(func(filter storage.DailyFilter) bool {
		return filter.KolonneID == "k7"
	})).Return([]aggregation.DailyRecord{}, nil)
	mockStorage.On("GetKolonnen", mock.Anything).Return([]storage.Kolonne{}, nil)

	service := New(mockStorage)
	_, err := service.PeriodReport(context.Background(), Request{From: "2025-01-01", To: "2025-01-31", KolonneID: "k7"})

	require.NoError(t, err)
	mockStorage.AssertExpectations(t)
}

func TestPeriodReport_StorageError(t *testing.T) {
	mockStorage := new(MockBerichtStorage)

	dbErr := errors.New("connection lost")
	mockStorage.On("GetDailyRecords", mock.Anything, mock.Anything).Return(nil, dbErr)
	mockStorage.On("GetKolonnen", mock.Anything).Return([]storage.Kolonne{}, nil).Maybe()

	service := New(mockStorage)
	_, err := service.PeriodReport(context.Background(), Request{From: "2025-01-01", To: "2025-01-31"})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}

func TestResolveRange_BadCustomBoundsYieldEmptyRange(t *testing.T) {
	now := time.Date(2025, time.July, 16, 12, 0, 0, 0, time.UTC)

	r := resolveRange(Request{From: "garbage", To: "2025-07-31"}, now)
	assert.True(t, r.From.After(r.To), "range must be inverted")

	// inverted range aggregates to nothing
	result := aggregation.AggregatePeriod([]aggregation.DailyRecord{
		{ID: "1", Date: "2025-07-16", KolonneID: "A", ActualRevenue: 10},
	}, r)
	assert.Zero(t, result.Totals.RecordCount)
}
