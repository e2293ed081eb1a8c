package entities

// PaymentMethods holds the availability flags reported by the debt lookup
// service for each payment channel. A nil flag means the service did not say.
type PaymentMethods struct {
	Webpay      *bool `json:"webpay"`
	BancoEstado *bool `json:"bcoestado"`
	Zumpago     *bool `json:"zumpago"`
	Flow        *bool `json:"flow"`
	MercadoPago *bool `json:"mercadopago"`
}

// Allows reports whether the debt can be paid through the gateway.
// Unknown flags do not block the payment.
func (m PaymentMethods) Allows(g Gateway) bool {
	var flag *bool
	switch g {
	case GatewayWebpay:
		flag = m.Webpay
	case GatewayFlow:
		flag = m.Flow
	case GatewayMercadoPago:
		flag = m.MercadoPago
	case GatewayZumpago:
		flag = m.Zumpago
	}
	return flag == nil || *flag
}

// Debt is one billable service-month owed by a customer to a company.
//
// Debts are produced by the debt lookup service and never mutated afterwards.
// Amount is expressed in CLP, which has no minor units.
type Debt struct {
	CompanyID     string         `json:"company_id"`
	CustomerID    string         `json:"customer_id"`
	RUT           string         `json:"rut"`
	CustomerName  string         `json:"customer_name"`
	Address       string         `json:"address"`
	Service       string         `json:"service"`
	Month         string         `json:"month"`
	Year          string         `json:"year"`
	Amount        int64          `json:"amount"`
	AmountDisplay string         `json:"amount_display"`
	Methods       PaymentMethods `json:"payment_methods"`
}

// Snapshot returns the reduced form of the debt persisted with a transaction.
func (d Debt) Snapshot() DebtSnapshot {
	return DebtSnapshot{
		CompanyID:  d.CompanyID,
		CustomerID: d.CustomerID,
		Month:      d.Month,
		Year:       d.Year,
		Amount:     d.Amount,
	}
}

// DebtSnapshot is the part of a Debt kept inside a stored transaction.
type DebtSnapshot struct {
	CompanyID  string `json:"company_id"`
	CustomerID string `json:"customer_id"`
	Month      string `json:"month"`
	Year       string `json:"year"`
	Amount     int64  `json:"amount"`
}
