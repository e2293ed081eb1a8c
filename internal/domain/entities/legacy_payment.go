package entities

import "strings"

// LegacyPayment is the record sent to the legacy accounting service
// (IngresarPago), one per paid debt.
//
// Field names follow the legacy SOAP contract. Dates use the dd-mm-yyyy layout.
type LegacyPayment struct {
	IdEmpresa     string `json:"IdEmpresa"`
	IdCliente     int64  `json:"IdCliente"`
	RutCliente    string `json:"RutCliente"`
	Mail          string `json:"Mail"`
	Recaudador    string `json:"Recaudador"`
	Canal         string `json:"Canal"`
	FechaPago     string `json:"FechaPago"`
	FechaContable string `json:"FechaContable"`
	Mes           int    `json:"Mes"`
	Ano           int    `json:"Ano"`
	Monto         int64  `json:"Monto"`
	MontoFlow     int64  `json:"MontoFlow"`
}

// Valid reports whether the record can be submitted. Records with a zero
// amount, no customer or no company are never reported.
func (p LegacyPayment) Valid() bool {
	return strings.TrimSpace(p.IdEmpresa) != "" && p.IdCliente > 0 && p.Monto > 0
}

// LegacyDispatch is the outcome of one submission to the legacy service.
type LegacyDispatch struct {
	Endpoint   string        `json:"wsdl"`
	Payload    LegacyPayment `json:"payload"`
	Envelope   string        `json:"envelope"`
	Response   string        `json:"response"`
	HTTPStatus int           `json:"http_status"`
}
