package notification

import "loan-tracker/internal/domain/errs"

var ErrNotFound = errs.NotFound("notification_not_found", "notification not found")

var ErrMessageTooLong = errs.Validation("message_too_long", "message must be at most 500 characters")

const MaxCustomMessageLength = 500
