package handlers

import (
	"errors"
	"net/http"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase"
	"portal_pagos/pkg"
)

var (
	errInvalidCheckoutPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errUnknownGateway         = pkg.NewDomainErrorSimple("GATEWAY_NOT_AVAILABLE", "The selected payment method is not available", http.StatusNotFound)
)

func mapPortalError(err error) *pkg.AppError {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return pkg.NewValidationError(verr.Messages)
	case errors.Is(err, usecase.ErrUnsupportedGateway):
		return pkg.NewDomainError("GATEWAY_NOT_AVAILABLE", "The selected payment method is not available", err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidCallback), errors.Is(err, entities.ErrNotificationIgnored):
		return pkg.NewDomainError("INVALID_CALLBACK", "The payment gateway response could not be read", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTransactionNotFound):
		return pkg.NewDomainError("TRANSACTION_NOT_FOUND", "Transaction not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrDebtLookupFailed):
		return pkg.NewDomainError("DEBT_SERVICE_UNAVAILABLE", "We could not look up your debts, please try again later", err, http.StatusBadGateway)
	case errors.Is(err, entities.ErrGatewayUnavailable):
		return pkg.NewDomainError("GATEWAY_UNAVAILABLE", "The payment gateway is not available, please try again later", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
