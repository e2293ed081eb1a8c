package payments

import "portal_pagos/internal/infrastructure/config"

func isPaymentGatewayMockEnabled() bool {
	return config.MockEnabled()
}
