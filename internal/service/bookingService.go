package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	repository "github.com/lerarestechnologies-gif/rafting/internal/database/postgres"
	"github.com/lerarestechnologies-gif/rafting/internal/entity"
	"github.com/lerarestechnologies-gif/rafting/pkg/telegram"
)

// CreateBookingRequest представляет данные для создания бронирования
type CreateBookingRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"`
	Slot        string `json:"slot" binding:"required"`
	GroupSize   int    `json:"group_size" binding:"required"`
}

// BookingResult is the outcome of one booking submission: the persisted
// record plus a human-readable explanation of its status.
type BookingResult struct {
	Booking *entity.Booking `json:"booking"`
	Message string          `json:"message"`
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	raftRepo    repository.RaftRepository
	settings    SettingsService
	queue       TaskPublisher
	telegramBot *telegram.Bot
	adminChatID string

	now func() time.Time
}

// NewBookingService создает новый экземпляр BookingService
func NewBookingService(
	bookingRepo repository.BookingRepository,
	raftRepo repository.RaftRepository,
	settings SettingsService,
	queue TaskPublisher,
	telegramBot *telegram.Bot,
	adminChatID string,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		raftRepo:    raftRepo,
		settings:    settings,
		queue:       queue,
		telegramBot: telegramBot,
		adminChatID: adminChatID,
		now:         time.Now,
	}
}

// CreateBooking validates the request, allocates rafts and records the
// booking. A group the slot cannot hold is still recorded, as Pending,
// for manual admin handling.
func (s *bookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResult, error) {
	if req.Name == "" || req.Email == "" || req.Phone == "" {
		return nil, entity.ErrMissingContactInfo
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(entity.DateLayout, req.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", entity.ErrInvalidBookingDate, req.BookingDate)
	}

	window := settings.Window(s.now())
	if !window.Contains(date) {
		return nil, fmt.Errorf("%w: choose a date between %s and %s",
			entity.ErrDateOutOfWindow,
			window.MinDate.Format(entity.DateLayout),
			window.MaxDate.Format(entity.DateLayout))
	}

	if !settings.HasSlot(req.Slot) {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownSlot, req.Slot)
	}

	if req.GroupSize < 1 || req.GroupSize > settings.MaxPeoplePerSlot() {
		return nil, fmt.Errorf("%w: group size must be between 1 and %d",
			entity.ErrInvalidGroupSize, settings.MaxPeoplePerSlot())
	}

	if err := s.raftRepo.EnsureRafts(ctx, req.BookingDate, req.Slot, settings.RaftsPerSlot); err != nil {
		return nil, fmt.Errorf("failed to prepare rafts: %w", err)
	}

	status := entity.BookingStatusConfirmed
	message := "Booking confirmed"
	allocations, err := s.raftRepo.AllocateSeats(ctx, req.BookingDate, req.Slot, req.GroupSize, settings.Capacity)
	if err != nil {
		if !errors.Is(err, entity.ErrSlotCapacityExhausted) {
			return nil, fmt.Errorf("failed to allocate seats: %w", err)
		}
		// Slot is full: record the request anyway so an admin can
		// follow up, without touching raft occupancy.
		status = entity.BookingStatusPending
		message = "Not enough seats left in this slot. Your request was recorded and our team will contact you."
		allocations = nil
	}

	amount, err := CalculateTotalAmount(settings, req.BookingDate, req.GroupSize)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		BookingDate:     req.BookingDate,
		Slot:            req.Slot,
		GroupSize:       req.GroupSize,
		Status:          status,
		RaftAllocations: allocations,
		AmountPerPerson: amount.PerPerson,
		TotalAmount:     amount.Total,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"date":       booking.BookingDate,
		"slot":       booking.Slot,
		"group_size": booking.GroupSize,
		"status":     booking.Status,
	}).Info("booking created")

	if s.queue != nil {
		if err := s.scheduleBookingTasks(ctx, booking); err != nil {
			logrus.WithError(err).Warn("failed to schedule booking tasks")
		}
	}

	if s.telegramBot != nil && s.adminChatID != "" && booking.Status == entity.BookingStatusPending {
		go s.sendPendingNotification(booking)
	}

	return &BookingResult{Booking: booking, Message: message}, nil
}

// scheduleBookingTasks планирует задачи для бронирования
func (s *bookingService) scheduleBookingTasks(ctx context.Context, booking *entity.Booking) error {
	noticeTask := &Task{
		ID:   fmt.Sprintf("booking_notice_%d_%d", booking.ID, s.now().Unix()),
		Type: TaskTypeBookingNotice,
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"status":     string(booking.Status),
		},
		ExecuteAt:  s.now().Add(5 * time.Second),
		MaxRetries: 3,
	}
	if err := s.queue.Publish(ctx, noticeTask); err != nil {
		return fmt.Errorf("failed to schedule booking notice: %w", err)
	}

	if booking.Status == entity.BookingStatusPending {
		followupTask := &Task{
			ID:   fmt.Sprintf("pending_followup_%d_%d", booking.ID, s.now().Unix()),
			Type: TaskTypePendingFollowup,
			Data: map[string]interface{}{
				"booking_id": booking.ID,
			},
			ExecuteAt:  s.now().Add(15 * time.Minute),
			MaxRetries: 3,
		}
		if err := s.queue.Publish(ctx, followupTask); err != nil {
			return fmt.Errorf("failed to schedule pending follow-up: %w", err)
		}
	}

	return nil
}

// sendPendingNotification отправляет уведомление администратору
func (s *bookingService) sendPendingNotification(booking *entity.Booking) {
	message := fmt.Sprintf(
		"Pending booking #%d\n\n"+
			"Name: %s\n"+
			"Date: %s (%s)\n"+
			"Group size: %d\n"+
			"Contact: %s / %s\n\n"+
			"The slot is full; manual handling required.",
		booking.ID,
		booking.Name,
		booking.BookingDate,
		booking.Slot,
		booking.GroupSize,
		booking.Email,
		booking.Phone,
	)

	if err := s.telegramBot.SendMessage(s.adminChatID, message); err != nil {
		logrus.WithError(err).WithField("booking_id", booking.ID).
			Warn("failed to send telegram notification")
	}
}

// GetBooking возвращает бронирование по ID
func (s *bookingService) GetBooking(ctx context.Context, id int64) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrBookingNotFound) {
			return nil, entity.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// TrackByContact возвращает бронирования контакта, сначала последние
func (s *bookingService) TrackByContact(ctx context.Context, email, phone string) ([]*entity.Booking, error) {
	if email == "" || phone == "" {
		return nil, entity.ErrMissingContactInfo
	}

	bookings, err := s.bookingRepo.FindLatestByContact(ctx, email, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil, entity.ErrBookingNotFound
	}
	return bookings, nil
}

// SlotAvailability reports remaining standard seats per configured slot
// for one day. Slots with no rafts yet count as fully available.
func (s *bookingService) SlotAvailability(ctx context.Context, date string) ([]*entity.SlotAvailability, error) {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", entity.ErrInvalidBookingDate, date)
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	occupancy, err := s.raftRepo.OccupancyBySlot(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get slot occupancy: %w", err)
	}

	standardSeats := settings.RaftsPerSlot * settings.Capacity
	availability := make([]*entity.SlotAvailability, 0, len(settings.TimeSlots))
	for _, slot := range settings.TimeSlots {
		occupied := occupancy[slot]

		available := standardSeats - occupied
		if available < 0 {
			available = 0
		}

		percent := 0.0
		if standardSeats > 0 {
			percent = math.Round(float64(occupied)/float64(standardSeats)*100*100) / 100
		}

		availability = append(availability, &entity.SlotAvailability{
			Slot:        slot,
			Available:   available,
			PercentFull: percent,
		})
	}

	return availability, nil
}

// BookingWindow возвращает допустимый диапазон дат бронирования
func (s *bookingService) BookingWindow(ctx context.Context) (*entity.BookingWindow, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	window := settings.Window(s.now())
	return &window, nil
}

// GetBookingsByStatus возвращает бронирования по статусу
func (s *bookingService) GetBookingsByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	bookings, err := s.bookingRepo.GetByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by status: %w", err)
	}
	return bookings, nil
}

// GetAllBookings возвращает все бронирования
func (s *bookingService) GetAllBookings(ctx context.Context) ([]*entity.Booking, error) {
	bookings, err := s.bookingRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	return bookings, nil
}

// GetRecentBookings возвращает последние бронирования
func (s *bookingService) GetRecentBookings(ctx context.Context, limit int) ([]*entity.Booking, error) {
	if limit <= 0 {
		limit = 50
	}

	bookings, err := s.bookingRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}
	return bookings, nil
}
