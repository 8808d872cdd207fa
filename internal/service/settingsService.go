package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	repository "github.com/lerarestechnologies-gif/rafting/internal/database/postgres"
	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

const settingsCacheKey = "settings"

// UpdateSettingsRequest представляет данные для обновления настроек
type UpdateSettingsRequest struct {
	RaftsPerSlot int      `json:"rafts_per_slot" binding:"required,min=1,max=100"`
	Capacity     int      `json:"capacity" binding:"required,min=1,max=100"`
	TimeSlots    []string `json:"time_slots" binding:"required,min=1"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Days         int      `json:"days" binding:"min=0,max=365"`
	BaseRate     float64  `json:"base_rate" binding:"required,gt=0"`
	WeekendRate  float64  `json:"weekend_rate" binding:"gte=0"`
}

type settingsService struct {
	repo  repository.SettingsRepository
	cache *cache.Cache
	ttl   time.Duration
}

// NewSettingsService создает новый экземпляр SettingsService
func NewSettingsService(repo repository.SettingsRepository, ttl time.Duration) SettingsService {
	return &settingsService{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (s *settingsService) GetSettings(ctx context.Context) (*entity.Settings, error) {
	if cached, found := s.cache.Get(settingsCacheKey); found {
		return cached.(*entity.Settings), nil
	}

	settings, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrSettingsNotFound) {
			settings = entity.DefaultSettings()
		} else {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
	}
	settings.ApplyDefaults()

	s.cache.Set(settingsCacheKey, settings, s.ttl)
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req *UpdateSettingsRequest) (*entity.Settings, error) {
	if req.StartDate != "" {
		if _, err := time.Parse(entity.DateLayout, req.StartDate); err != nil {
			return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", entity.ErrInvalidInput)
		}
	}
	if req.EndDate != "" {
		if _, err := time.Parse(entity.DateLayout, req.EndDate); err != nil {
			return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", entity.ErrInvalidInput)
		}
	}

	settings := &entity.Settings{
		RaftsPerSlot: req.RaftsPerSlot,
		Capacity:     req.Capacity,
		TimeSlots:    req.TimeSlots,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Days:         req.Days,
		BaseRate:     req.BaseRate,
		WeekendRate:  req.WeekendRate,
	}
	settings.ApplyDefaults()

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.Invalidate()
	logrus.WithFields(logrus.Fields{
		"rafts_per_slot": settings.RaftsPerSlot,
		"capacity":       settings.Capacity,
		"time_slots":     settings.TimeSlots,
	}).Info("settings updated")

	return settings, nil
}

func (s *settingsService) Invalidate() {
	s.cache.Delete(settingsCacheKey)
}
