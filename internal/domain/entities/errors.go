package entities

import "errors"

var (
	// ErrTransactionNotFound means no transaction is stored under the id.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidCallback means the gateway callback could not be parsed.
	ErrInvalidCallback = errors.New("invalid gateway callback")
	// ErrNotificationIgnored means the callback is valid but does not refer to
	// a payment started by the portal.
	ErrNotificationIgnored = errors.New("notification does not reference a portal transaction")
	// ErrGatewayUnavailable means the gateway could not be reached or answered
	// with an error.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
