package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrMalformedPayload   = errors.New("malformed payload")
	ErrUnknownAttribute   = errors.New("unknown device attribute")
	ErrInvalidStatus      = errors.New("invalid status for attribute")
	ErrSenderNotAllowed   = errors.New("sender not allowed")
)

const (
	ReplyTurnedOn  = "Light has been turned on."
	ReplyTurnedOff = "Light has been turned off."
	ReplyUnknown   = "Unknown command."
)

// DefaultState is the device record at process start.
func DefaultState() State {
	return State{Light: Off}
}

// AllowedStatuses lists the valid values for each known attribute.
var AllowedStatuses = map[Attribute][]Status{
	Light: {On, Off},
}
