package port

import "lightbot/internal/core/domain"

type SignatureVerifier interface {
	// VerifySignature reports whether signature authenticates the raw request body.
	VerifySignature(body []byte, signature string) bool
	// SignatureHeader is the HTTP header the platform carries the signature in.
	SignatureHeader() string
}

type EventParser interface {
	// ParseEvents extracts the text message events from a verified body. Other event kinds are dropped.
	ParseEvents(body []byte) ([]domain.Message, error)
}

type Webhook interface {
	SignatureVerifier
	EventParser
}
