package order

import "errors"

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidServiceKind    = errors.New("invalid service kind")
	ErrInvalidReceiveChannel = errors.New("receive channel must be email or sms")
	ErrMissingTarget         = errors.New("receive target is required")
	ErrMissingRequiredImage  = errors.New("missing required image")
	ErrAlreadyDelivered      = errors.New("order was already delivered")
)
