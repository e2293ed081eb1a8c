package interfaces

import (
	"context"
	"portal_pagos/internal/domain/entities"
	"time"
)

// IReportLocker grants a short lease per transaction so two callbacks for the
// same payment do not report it concurrently. ok is false when another holder
// owns the lease.
type IReportLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// IReportLog is the append-only audit trail of legacy submissions, one stream
// per gateway.
type IReportLog interface {
	Success(gateway entities.Gateway, entry entities.ReportLogEntry)
	Failure(gateway entities.Gateway, entry entities.ReportLogEntry)
}

// IReportPublisher announces transactions that were fully reported.
type IReportPublisher interface {
	PublishReported(ctx context.Context, event entities.PaymentReportedEvent) error
}

// IReportMetrics records reporter outcomes.
type IReportMetrics interface {
	ObserveReport(gateway entities.Gateway, outcome string, elapsed time.Duration)
	ObserveDispatch(gateway entities.Gateway, endpoint string, ok bool)
}
