package contract

import "errors"

var (
	ErrModelInvoke       = errors.New("model invoke failed")
	ErrSchemaViolation   = errors.New("model response violates schema")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidStatus     = errors.New("invalid order status")
)
