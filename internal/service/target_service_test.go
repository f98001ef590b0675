package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/repository"
	"github.com/alexanderramin/prodline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetService_SetAndGet(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	day := testutil.Day(2024, 3, 5)

	require.NoError(t, s.targets.SetDaily(ctx, day, domain.TargetMap{" 300L ": 50, "400L": 0}))
	require.NoError(t, s.targets.SetMonthly(ctx, day, domain.TargetMap{"300L": 1200}))

	daily, err := s.targets.GetDaily(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, domain.TargetMap{"300L": 50, "400L": 0}, daily)

	monthly, err := s.targets.GetMonthly(ctx, testutil.Day(2024, 3, 28))
	require.NoError(t, err)
	assert.Equal(t, domain.TargetMap{"300L": 1200}, monthly, "any day of the month selects the month")

	ev := s.observer.last()
	assert.Equal(t, "set-monthly-targets", ev.Name)
	assert.Equal(t, "2024-03", ev.Fields["month"])
}

func TestTargetService_RejectsBadMaps(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	err := s.targets.SetDaily(ctx, testutil.Day(2024, 3, 5), domain.TargetMap{"300L": -3})
	assert.True(t, domain.IsValidationError(err))

	err = s.targets.SetDaily(ctx, testutil.Day(2024, 3, 5), domain.TargetMap{" ": 3})
	assert.True(t, domain.IsValidationError(err))
}

func TestTargetService_ReplaceIsAtomic(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := repository.NewSQLiteTargetRepo(database)
	day := testutil.Day(2024, 3, 5)

	require.NoError(t, NewTargetService(repo, testutil.NewTestUoW(database)).SetDaily(ctx, day, domain.TargetMap{"300L": 50}))

	injected := errors.New("injected")
	svc := NewTargetService(repo, &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected})
	err := svc.SetDaily(ctx, day, domain.TargetMap{"100L": 1, "200L": 2})
	require.ErrorIs(t, err, injected)

	got, err := repo.GetDaily(ctx, "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, domain.TargetMap{"300L": 50}, got)
}
