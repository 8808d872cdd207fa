package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

type fakeSettingsRepo struct {
	stored *entity.Settings
	loads  int
	saves  int
}

func (r *fakeSettingsRepo) Load(context.Context) (*entity.Settings, error) {
	r.loads++
	if r.stored == nil {
		return nil, entity.ErrSettingsNotFound
	}
	copied := *r.stored
	return &copied, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, settings *entity.Settings) error {
	r.saves++
	copied := *settings
	r.stored = &copied
	return nil
}

func TestSettingsService_DefaultsWhenMissing(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, time.Minute)

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.DefaultRaftsPerSlot, settings.RaftsPerSlot)
	assert.Equal(t, entity.DefaultCapacity, settings.Capacity)
	assert.Equal(t, entity.DefaultDays, settings.Days)
	assert.Equal(t, []string{"morning", "afternoon"}, settings.TimeSlots)
	assert.Equal(t, 35, settings.MaxPeoplePerSlot())
}

func TestSettingsService_CachesLoads(t *testing.T) {
	repo := &fakeSettingsRepo{stored: &entity.Settings{
		RaftsPerSlot: 3,
		Capacity:     8,
		TimeSlots:    []string{"morning"},
		BaseRate:     100,
	}}
	svc := NewSettingsService(repo, time.Minute)
	ctx := context.Background()

	first, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	second, err := svc.GetSettings(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.loads)
}

func TestSettingsService_InvalidateForcesReload(t *testing.T) {
	repo := &fakeSettingsRepo{stored: &entity.Settings{
		RaftsPerSlot: 3,
		Capacity:     8,
		TimeSlots:    []string{"morning"},
		BaseRate:     100,
	}}
	svc := NewSettingsService(repo, time.Minute)
	ctx := context.Background()

	_, err := svc.GetSettings(ctx)
	require.NoError(t, err)

	repo.stored.RaftsPerSlot = 10
	svc.Invalidate()

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, settings.RaftsPerSlot)
	assert.Equal(t, 2, repo.loads)
}

func TestSettingsService_UpdatePersistsAndInvalidates(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, time.Minute)
	ctx := context.Background()

	// Prime the cache with defaults.
	_, err := svc.GetSettings(ctx)
	require.NoError(t, err)

	updated, err := svc.UpdateSettings(ctx, &UpdateSettingsRequest{
		RaftsPerSlot: 4,
		Capacity:     10,
		TimeSlots:    []string{"morning", "evening"},
		StartDate:    "2026-07-01",
		EndDate:      "2026-07-31",
		BaseRate:     90,
		WeekendRate:  110,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.RaftsPerSlot)
	assert.Equal(t, 1, repo.saves)

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, settings.RaftsPerSlot)
	assert.Equal(t, []string{"morning", "evening"}, settings.TimeSlots)
}

func TestSettingsService_UpdateRejectsBadDates(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, time.Minute)

	_, err := svc.UpdateSettings(context.Background(), &UpdateSettingsRequest{
		RaftsPerSlot: 4,
		Capacity:     10,
		TimeSlots:    []string{"morning"},
		StartDate:    "01.07.2026",
		BaseRate:     90,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	assert.Zero(t, repo.saves)
}
