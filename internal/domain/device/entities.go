package device

import (
	"context"
	"time"
)

// Device is a push token registered by a user.
type Device struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID    string    `gorm:"column:user_id;size:32;not null;index" json:"user_id"`
	Token     string    `gorm:"column:token;size:255;not null;uniqueIndex:ux_devices_token" json:"token"`
	Platform  string    `gorm:"column:platform;size:16" json:"platform"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Device) TableName() string { return "devices" }

type Repository interface {
	// Upsert binds token to the device's user, moving it if another user held it.
	Upsert(ctx context.Context, d *Device) error
	ListByUser(ctx context.Context, userID string) ([]Device, error)
	DeleteByToken(ctx context.Context, token string) error
}
