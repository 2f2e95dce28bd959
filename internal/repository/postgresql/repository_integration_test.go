//go:build integration

package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/attendance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/contractor"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/holiday"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/database"
	"github.com/kaamgar/kaamgar-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createContractor(t *testing.T, db *database.DB, email string) contractor.Contractor {
	t.Helper()
	c, err := postgresql.NewContractorRepository(db).Create(context.Background(), contractor.Contractor{
		CompanyName:        "Sharma Builders",
		Email:              email,
		PasswordHash:       "$2a$10$hash",
		Phone:              "9876543210",
		SubscriptionPlan:   contractor.PlanFree,
		SubscriptionStatus: contractor.SubscriptionTrial,
		TrialEndsAt:        time.Now().Add(contractor.TrialPeriod),
	})
	require.NoError(t, err)
	return c
}

func createWorker(t *testing.T, db *database.DB, tenantID, name string) worker.Worker {
	t.Helper()
	w, err := postgresql.NewWorkerRepository(db).Create(context.Background(), worker.Worker{
		ContractorID:  tenantID,
		Name:          name,
		Age:           30,
		DailyWage:     decimal.NewFromInt(500),
		WorkStartTime: worker.DefaultWorkStartTime,
		WorkEndTime:   worker.DefaultWorkEndTime,
		Status:        worker.StatusActive,
		JoiningDate:   day(2024, time.January, 1),
	})
	require.NoError(t, err)
	return w
}

func TestRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	t.Run("contractor email is unique", func(t *testing.T) {
		truncateAll(t, db)
		createContractor(t, db, "owner@builders.in")

		_, err := postgresql.NewContractorRepository(db).Create(ctx, contractor.Contractor{
			CompanyName:        "Other",
			Email:              "owner@builders.in",
			PasswordHash:       "x",
			Phone:              "9876543211",
			SubscriptionPlan:   contractor.PlanFree,
			SubscriptionStatus: contractor.SubscriptionTrial,
			TrialEndsAt:        time.Now(),
		})
		assert.ErrorIs(t, err, contractor.ErrEmailExists)
	})

	t.Run("expire trials", func(t *testing.T) {
		truncateAll(t, db)
		c := createContractor(t, db, "owner@builders.in")
		repo := postgresql.NewContractorRepository(db)

		n, err := repo.ExpireTrials(ctx, time.Now())
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = repo.ExpireTrials(ctx, time.Now().Add(contractor.TrialPeriod+time.Hour))
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		got, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, contractor.SubscriptionExpired, got.SubscriptionStatus)
	})

	t.Run("workers are isolated per contractor", func(t *testing.T) {
		truncateAll(t, db)
		a := createContractor(t, db, "a@builders.in")
		b := createContractor(t, db, "b@builders.in")
		w := createWorker(t, db, a.ID, "Ramesh Kumar")
		repo := postgresql.NewWorkerRepository(db)

		_, err := repo.GetByID(ctx, b.ID, w.ID)
		assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

		_, err = repo.GetByID(ctx, a.ID, "not-a-uuid")
		assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

		list, err := repo.List(ctx, b.ID, worker.WorkerFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)

		got, err := repo.GetByID(ctx, a.ID, w.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(500).Equal(got.DailyWage))
	})

	t.Run("worker photo is replaced apart from profile updates", func(t *testing.T) {
		truncateAll(t, db)
		c := createContractor(t, db, "owner@builders.in")
		w := createWorker(t, db, c.ID, "Ramesh Kumar")
		repo := postgresql.NewWorkerRepository(db)

		first, accuracy := "workers/a/first.jpg", 12.5
		location := &worker.PhotoLocation{
			Latitude:   19.076,
			Longitude:  72.8777,
			Accuracy:   &accuracy,
			CapturedAt: time.Date(2024, time.March, 1, 4, 30, 0, 0, time.UTC),
		}
		got, previous, err := repo.ReplacePhoto(ctx, c.ID, w.ID, &first, location)
		require.NoError(t, err)
		assert.Nil(t, previous)
		require.NotNil(t, got.Photo)
		require.NotNil(t, got.PhotoLocation)
		assert.Equal(t, 19.076, got.PhotoLocation.Latitude)
		assert.True(t, location.CapturedAt.Equal(got.PhotoLocation.CapturedAt))

		got.Name = "Ramesh K."
		got.Photo, got.PhotoLocation = nil, nil
		updated, err := repo.Update(ctx, got)
		require.NoError(t, err)
		require.NotNil(t, updated.Photo)
		assert.Equal(t, first, *updated.Photo)
		assert.NotNil(t, updated.PhotoLocation)

		second := "workers/a/second.jpg"
		got, previous, err = repo.ReplacePhoto(ctx, c.ID, w.ID, &second, nil)
		require.NoError(t, err)
		require.NotNil(t, previous)
		assert.Equal(t, first, *previous)
		assert.Nil(t, got.PhotoLocation)

		_, _, err = repo.ReplacePhoto(ctx, createContractor(t, db, "other@builders.in").ID, w.ID, nil, nil)
		assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
	})

	t.Run("attendance upsert keeps one row per worker and day", func(t *testing.T) {
		truncateAll(t, db)
		c := createContractor(t, db, "owner@builders.in")
		w := createWorker(t, db, c.ID, "Ramesh Kumar")
		repo := postgresql.NewAttendanceRepository(db)

		first, err := repo.Upsert(ctx, attendance.Attendance{
			ContractorID: c.ID, WorkerID: w.ID, Date: day(2024, time.March, 4), Status: attendance.StatusAbsent,
		})
		require.NoError(t, err)

		second, err := repo.Upsert(ctx, attendance.Attendance{
			ContractorID:  c.ID,
			WorkerID:      w.ID,
			Date:          day(2024, time.March, 4),
			Status:        attendance.StatusPresent,
			OvertimeHours: decimal.NewFromInt(2),
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		records, err := repo.List(ctx, c.ID, attendance.AttendanceFilter{Period: calendar.MonthPeriod(2024, 3)})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, attendance.StatusPresent, records[0].Status)
		assert.True(t, decimal.NewFromInt(2).Equal(records[0].OvertimeHours))
		require.NotNil(t, records[0].WorkerName)
		assert.Equal(t, "Ramesh Kumar", *records[0].WorkerName)

		april, err := repo.List(ctx, c.ID, attendance.AttendanceFilter{Period: calendar.MonthPeriod(2024, 4)})
		require.NoError(t, err)
		assert.Empty(t, april)
	})

	t.Run("concurrent transactions on the same key", func(t *testing.T) {
		truncateAll(t, db)
		c := createContractor(t, db, "owner@builders.in")
		w := createWorker(t, db, c.ID, "Ramesh Kumar")
		repo := postgresql.NewAttendanceRepository(db)
		tx := postgresql.NewTransactor(db)

		errs := make(chan error, 8)
		for i := 0; i < 8; i++ {
			go func() {
				errs <- tx.WithinTx(ctx, func(ctx context.Context) error {
					_, err := repo.Upsert(ctx, attendance.Attendance{
						ContractorID: c.ID, WorkerID: w.ID, Date: day(2024, time.March, 5), Status: attendance.StatusPresent,
					})
					return err
				})
			}()
		}
		for i := 0; i < 8; i++ {
			require.NoError(t, <-errs)
		}

		records, err := repo.List(ctx, c.ID, attendance.AttendanceFilter{WorkerID: &w.ID})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		truncateAll(t, db)
		c := createContractor(t, db, "owner@builders.in")
		w := createWorker(t, db, c.ID, "Ramesh Kumar")
		repo := postgresql.NewAttendanceRepository(db)

		boom := errors.New("boom")
		err := postgresql.NewTransactor(db).WithinTx(ctx, func(ctx context.Context) error {
			if _, err := repo.Upsert(ctx, attendance.Attendance{
				ContractorID: c.ID, WorkerID: w.ID, Date: day(2024, time.March, 6), Status: attendance.StatusPresent,
			}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		records, err := repo.List(ctx, c.ID, attendance.AttendanceFilter{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("advances filter by status and period", func(t *testing.T) {
		truncateAll(t, db)
		c := createContractor(t, db, "owner@builders.in")
		w := createWorker(t, db, c.ID, "Ramesh Kumar")
		repo := postgresql.NewAdvanceRepository(db)

		created, err := repo.Create(ctx, advance.Advance{
			ContractorID: c.ID, WorkerID: w.ID, Amount: decimal.RequireFromString("250.50"),
			Date: day(2024, time.March, 10), Reason: "medical", Status: advance.StatusPending,
		})
		require.NoError(t, err)
		_, err = repo.Create(ctx, advance.Advance{
			ContractorID: c.ID, WorkerID: w.ID, Amount: decimal.NewFromInt(100),
			Date: day(2024, time.April, 2), Status: advance.StatusPending,
		})
		require.NoError(t, err)

		march, err := repo.List(ctx, c.ID, advance.AdvanceFilter{Period: calendar.MonthPeriod(2024, 3)})
		require.NoError(t, err)
		require.Len(t, march, 1)
		assert.Equal(t, created.ID, march[0].ID)
		assert.True(t, decimal.RequireFromString("250.50").Equal(march[0].Amount))

		created.Status = advance.StatusCancelled
		_, err = repo.Update(ctx, created)
		require.NoError(t, err)

		cancelled := advance.StatusCancelled
		list, err := repo.List(ctx, c.ID, advance.AdvanceFilter{Status: &cancelled})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("holiday date is unique per contractor", func(t *testing.T) {
		truncateAll(t, db)
		a := createContractor(t, db, "a@builders.in")
		b := createContractor(t, db, "b@builders.in")
		repo := postgresql.NewHolidayRepository(db)

		_, err := repo.Create(ctx, holiday.Holiday{ContractorID: a.ID, Date: day(2024, time.August, 15), Name: "Independence Day"})
		require.NoError(t, err)

		_, err = repo.Create(ctx, holiday.Holiday{ContractorID: a.ID, Date: day(2024, time.August, 15), Name: "Duplicate"})
		assert.ErrorIs(t, err, holiday.ErrHolidayExists)

		_, err = repo.Create(ctx, holiday.Holiday{ContractorID: b.ID, Date: day(2024, time.August, 15), Name: "Independence Day"})
		assert.NoError(t, err)

		list, err := repo.List(ctx, a.ID, calendar.MonthPeriod(2024, 8))
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("revoked tokens", func(t *testing.T) {
		truncateAll(t, db)
		repo := postgresql.NewTokenRepository(db)
		now := time.Now()

		require.NoError(t, repo.Revoke(ctx, "hash-live", now.Add(time.Hour)))
		require.NoError(t, repo.Revoke(ctx, "hash-live", now.Add(time.Hour)))
		require.NoError(t, repo.Revoke(ctx, "hash-old", now.Add(-time.Hour)))

		active, err := repo.ListActive(ctx, now)
		require.NoError(t, err)
		assert.Contains(t, active, "hash-live")
		assert.NotContains(t, active, "hash-old")

		purged, err := repo.PurgeExpired(ctx, now)
		require.NoError(t, err)
		assert.EqualValues(t, 1, purged)
	})
}
