package usecase

import (
	"errors"
	"portal_pagos/internal/domain/entities"
	"strings"
)

var (
	ErrTransactionNotFound   = entities.ErrTransactionNotFound
	ErrNoPayloadsGenerated   = errors.New("no legacy payloads generated")
	ErrGatewayStatusNotFinal = errors.New("gateway status is not a final success")
	ErrDispatchFailure       = errors.New("legacy dispatch failed")
	ErrStorageUpdateFailure  = errors.New("transaction storage update failed")

	ErrUnsupportedGateway = errors.New("unsupported payment gateway")
	ErrDebtLookupFailed   = errors.New("debt lookup failed")
)

// ValidationError lists every problem found in the caller's input.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) add(msg string) {
	e.Messages = append(e.Messages, msg)
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Messages) == 0 {
		return nil
	}
	return e
}
