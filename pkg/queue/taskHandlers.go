package queue

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

// BookingReader is the slice of the booking service the task handler
// needs: reading a booking back by its id.
type BookingReader interface {
	GetBooking(ctx context.Context, id int64) (*entity.Booking, error)
}

// TelegramBot интерфейс для Telegram бота
type TelegramBot interface {
	SendMessage(chatID, text string) error
}

// TaskHandler обрабатывает задачи из очереди
type TaskHandler struct {
	bookings    BookingReader
	telegramBot TelegramBot
	adminChatID string
}

// NewTaskHandler создает новый обработчик задач
func NewTaskHandler(bookings BookingReader, telegramBot TelegramBot, adminChatID string) *TaskHandler {
	return &TaskHandler{
		bookings:    bookings,
		telegramBot: telegramBot,
		adminChatID: adminChatID,
	}
}

// HandleTask обрабатывает задачу
func (h *TaskHandler) HandleTask(task *Task) error {
	logrus.WithFields(logrus.Fields{
		"task_id":   task.ID,
		"task_type": task.Type,
		"attempt":   fmt.Sprintf("%d/%d", task.Attempts, task.MaxRetries),
	}).Info("Processing task")

	switch task.Type {
	case TaskTypePendingFollowup:
		return h.handlePendingFollowup(task)
	case TaskTypeBookingNotice:
		return h.handleBookingNotice(task)
	default:
		return fmt.Errorf("unknown task type: %s", task.Type)
	}
}

// handlePendingFollowup reminds the admin chat about a booking that is
// still waiting for manual handling.
func (h *TaskHandler) handlePendingFollowup(task *Task) error {
	ctx := context.Background()

	bookingID := task.GetInt64("booking_id")
	if bookingID == 0 {
		return fmt.Errorf("invalid booking_id in task data")
	}

	booking, err := h.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to get booking %d: %v", bookingID, err)
	}

	if booking.Status != entity.BookingStatusPending {
		logrus.WithField("booking_id", booking.ID).
			Info("Booking no longer pending, skipping follow-up")
		return nil
	}

	if h.telegramBot == nil || h.adminChatID == "" {
		logrus.WithField("booking_id", booking.ID).
			Warn("Pending booking still unhandled, no admin chat configured")
		return nil
	}

	message := fmt.Sprintf(
		"Reminder: booking #%d is still pending\n\n"+
			"Name: %s\n"+
			"Date: %s (%s)\n"+
			"Group size: %d\n"+
			"Contact: %s / %s",
		booking.ID,
		booking.Name,
		booking.BookingDate,
		booking.Slot,
		booking.GroupSize,
		booking.Email,
		booking.Phone,
	)

	if err := h.telegramBot.SendMessage(h.adminChatID, message); err != nil {
		return fmt.Errorf("failed to send follow-up message: %v", err)
	}

	logrus.WithField("booking_id", booking.ID).Info("Pending follow-up sent")
	return nil
}

// handleBookingNotice posts a short notice about a new booking to the
// admin chat.
func (h *TaskHandler) handleBookingNotice(task *Task) error {
	ctx := context.Background()

	bookingID := task.GetInt64("booking_id")
	if bookingID == 0 {
		return fmt.Errorf("invalid booking_id in task data")
	}

	booking, err := h.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to get booking %d: %v", bookingID, err)
	}

	if h.telegramBot == nil || h.adminChatID == "" {
		logrus.WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"status":     booking.Status,
		}).Info("New booking recorded")
		return nil
	}

	message := fmt.Sprintf(
		"New booking #%d (%s)\n\n"+
			"Name: %s\n"+
			"Date: %s (%s)\n"+
			"Group size: %d\n"+
			"Total: %.2f",
		booking.ID,
		booking.Status,
		booking.Name,
		booking.BookingDate,
		booking.Slot,
		booking.GroupSize,
		booking.TotalAmount,
	)

	if err := h.telegramBot.SendMessage(h.adminChatID, message); err != nil {
		return fmt.Errorf("failed to send booking notice: %v", err)
	}

	return nil
}
