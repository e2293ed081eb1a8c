package interfaces

import (
	"context"
	"portal_pagos/internal/domain/entities"
)

// IPaymentStarter opens a payment at the gateway and tells the caller where
// to send the customer.
type IPaymentStarter interface {
	Start(ctx context.Context, req entities.StartRequest) (entities.StartResult, error)
}

// IGatewayAdapter turns a gateway callback (token, redirect payload or
// webhook) into a canonical confirmation.
type IGatewayAdapter interface {
	Confirm(ctx context.Context, req entities.ConfirmationRequest) (entities.PaymentConfirmation, error)
}

// IPaymentGateway abstracts external payment providers (Webpay, Flow,
// Mercado Pago, Zumpago).
type IPaymentGateway interface {
	IPaymentStarter
	IGatewayAdapter
	Gateway() entities.Gateway
}
