package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
	"github.com/lerarestechnologies-gif/rafting/internal/service"
)

// PendingBookingWorker periodically surfaces bookings that are still
// Pending so they do not sit unnoticed. For every pending booking it
// publishes a follow-up task; the task handler decides whether the
// booking still needs attention and pings the admin chat.
type PendingBookingWorker struct {
	bookingService service.BookingService
	publisher      service.TaskPublisher
	interval       time.Duration
}

func NewPendingBookingWorker(bookingService service.BookingService, publisher service.TaskPublisher, interval time.Duration) *PendingBookingWorker {
	return &PendingBookingWorker{
		bookingService: bookingService,
		publisher:      publisher,
		interval:       interval,
	}
}

func (w *PendingBookingWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Pending booking worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Pending booking worker stopped")
			return
		case <-ticker.C:
			w.checkPendingBookings(ctx)
		}
	}
}

// checkPendingBookings публикует follow-up задачи для ожидающих бронирований
func (w *PendingBookingWorker) checkPendingBookings(ctx context.Context) {
	pending, err := w.bookingService.GetBookingsByStatus(ctx, entity.BookingStatusPending)
	if err != nil {
		logrus.Errorf("Failed to get pending bookings: %v", err)
		return
	}

	if len(pending) == 0 {
		logrus.Debug("No pending bookings found")
		return
	}

	logrus.Infof("Found %d pending bookings awaiting manual handling", len(pending))

	published := 0
	for _, booking := range pending {
		select {
		case <-ctx.Done():
			logrus.Info("Pending check interrupted by context cancellation")
			return
		default:
		}

		task := &service.Task{
			Type: service.TaskTypePendingFollowup,
			Data: map[string]interface{}{
				"booking_id": booking.ID,
			},
			MaxRetries: 3,
		}

		if err := w.publisher.Publish(ctx, task); err != nil {
			logrus.Errorf("Failed to publish follow-up for booking %d: %v", booking.ID, err)
			continue
		}
		published++
	}

	logrus.Infof("Pending booking check completed: %d follow-ups published", published)
}
