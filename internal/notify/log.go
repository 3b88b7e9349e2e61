package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier only records the confirmation. Used when no delivery backend is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

func (n *LogNotifier) NotifyBookingConfirmed(ctx context.Context, snap Snapshot) error {
	n.logger.Info("booking confirmed",
		zap.String("booking_id", snap.BookingID),
		zap.String("user_email", snap.UserEmail),
		zap.String("room_name", snap.RoomName),
		zap.String("check_in", snap.CheckIn),
		zap.String("check_out", snap.CheckOut),
		zap.String("total_price", snap.TotalPrice),
	)
	return nil
}
