package device

import "loan-tracker/internal/domain/errs"

var ErrTokenRequired = errs.Validation("token_required", "device token is required")
