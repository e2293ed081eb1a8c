package request

// CheckoutRequest is the payload of the start payment route. It is accepted
// as JSON or as a posted form (selected_ids repeated).
type CheckoutRequest struct {
	Gateway     string   `json:"gateway" form:"gateway"`
	RUT         string   `json:"rut" form:"rut"`
	Email       string   `json:"email" form:"email"`
	SelectedIDs []string `json:"selected_ids" form:"selected_ids"`
}

// DebtsQuery is the query string of the debt listing route.
type DebtsQuery struct {
	RUT string `form:"rut" binding:"required"`
}
