// file: internals/features/notifications/model/notification_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

/* =============================================================================
   MODEL: notifications
   Pesan in-app untuk siswa/pengajar (hasil attempt, feedback, dsb).
============================================================================= */

type NotificationModel struct {
	NotificationID     uuid.UUID `gorm:"column:notification_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	NotificationUserID uuid.UUID `gorm:"column:notification_user_id;type:uuid;not null;index:idx_notification_user" json:"notification_user_id"`

	NotificationTitle string         `gorm:"column:notification_title;type:varchar(120);not null" json:"notification_title"`
	NotificationBody  string         `gorm:"column:notification_body;type:text;not null" json:"notification_body"`
	NotificationTags  pq.StringArray `gorm:"column:notification_tags;type:text[]" json:"notification_tags,omitempty"`

	NotificationIsRead bool       `gorm:"column:notification_is_read;not null;default:false" json:"notification_is_read"`
	NotificationReadAt *time.Time `gorm:"column:notification_read_at;type:timestamptz" json:"notification_read_at,omitempty"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;type:timestamptz;not null;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string { return "notifications" }
