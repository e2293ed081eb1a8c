package entities

import (
	"encoding/json"
	"time"
)

// ReportLogEntry is one line of the per-gateway legacy submission log.
type ReportLogEntry struct {
	Token           string           `json:"token"`
	Collector       string           `json:"collector"`
	Message         string           `json:"message,omitempty"`
	Payloads        []LegacyPayment  `json:"payloads,omitempty"`
	Responses       []LegacyDispatch `json:"responses,omitempty"`
	Payload         *LegacyPayment   `json:"payload,omitempty"`
	TargetEndpoint  string           `json:"target_wsdl,omitempty"`
	Envelope        string           `json:"envelope,omitempty"`
	Transaction     map[string]any   `json:"transaction,omitempty"`
	GatewayResponse json.RawMessage  `json:"gateway_response,omitempty"`
}

// PaymentReportedEvent is published once every record of a transaction has
// been accepted by the legacy service.
type PaymentReportedEvent struct {
	Gateway       Gateway   `json:"gateway"`
	TransactionID string    `json:"transaction_id"`
	RUT           string    `json:"rut"`
	Email         string    `json:"email"`
	Amount        int64     `json:"amount"`
	SettledAmount int64     `json:"settled_amount"`
	Records       int       `json:"records"`
	ReportedAt    time.Time `json:"reported_at"`
}
