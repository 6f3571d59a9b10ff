// file: internals/features/notifications/service/notification_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	nmodel "belajarku_backend/internals/features/notifications/model"
)

/* =========================================================
   SERVICE: Notifications
   Fire-and-forget: kegagalan kirim tidak boleh menggagalkan
   transaksi pemanggil, cukup dicatat di log.
========================================================= */

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// SendAsync menulis notifikasi di goroutine terpisah.
func (s *NotificationService) SendAsync(userID uuid.UUID, title, body string, tags []string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		n := nmodel.NotificationModel{
			NotificationUserID: userID,
			NotificationTitle:  title,
			NotificationBody:   body,
			NotificationTags:   tags,
		}
		if err := s.DB.WithContext(ctx).Create(&n).Error; err != nil {
			log.Printf("[WARN] gagal kirim notifikasi ke %s: %v", userID, err)
		}
	}()
}

// ListByUser: inbox milik user, terbaru dulu.
func (s *NotificationService) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]nmodel.NotificationModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&nmodel.NotificationModel{}).
		Where("notification_user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []nmodel.NotificationModel
	if err := q.Order("notification_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// MarkRead menandai satu notifikasi milik user sebagai terbaca.
func (s *NotificationService) MarkRead(
	ctx context.Context,
	notificationID uuid.UUID,
	userID uuid.UUID,
) error {
	now := time.Now().UTC()
	res := s.DB.WithContext(ctx).Model(&nmodel.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", notificationID, userID).
		Updates(map[string]any{
			"notification_is_read": true,
			"notification_read_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
