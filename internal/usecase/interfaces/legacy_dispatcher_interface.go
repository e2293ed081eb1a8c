package interfaces

import (
	"context"
	"portal_pagos/internal/domain/entities"
)

// ILegacyDispatcher submits one payment record to the legacy accounting
// service. Transport failures and HTTP statuses >= 400 are errors; the
// returned dispatch is still filled with whatever was sent and received.
type ILegacyDispatcher interface {
	Dispatch(ctx context.Context, p entities.LegacyPayment) (entities.LegacyDispatch, error)
}
