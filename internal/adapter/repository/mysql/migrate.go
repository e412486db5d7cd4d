package mysql

import (
	"loan-tracker/internal/domain/device"
	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/domain/notification"
	"loan-tracker/internal/domain/payment"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. Payments and notifications carry
// ON DELETE CASCADE foreign keys to loans.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&loan.Loan{},
		&payment.Payment{},
		&notification.Notification{},
		&device.Device{},
	)
}
