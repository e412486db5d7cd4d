package mysql

import (
	"context"

	deviceDomain "loan-tracker/internal/domain/device"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceRepository struct{ db *gorm.DB }

func NewDeviceRepository(db *gorm.DB) *DeviceRepository { return &DeviceRepository{db: db} }

func (r *DeviceRepository) Upsert(ctx context.Context, d *deviceDomain.Device) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "updated_at"}),
		}).
		Create(d).Error
}

func (r *DeviceRepository) ListByUser(ctx context.Context, userID string) ([]deviceDomain.Device, error) {
	var out []deviceDomain.Device
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC").Find(&out).Error
	return out, err
}

func (r *DeviceRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&deviceDomain.Device{}).Error
}
