package loans

// RenewCopyPayload represents the request body for renewing a loan.
type RenewCopyPayload struct {
	DueBack string `json:"due_back" validate:"required,date"`
}

// CheckoutCopyPayload represents the request body for checking out a copy.
type CheckoutCopyPayload struct {
	UserID  int    `json:"user_id" validate:"required"`
	DueBack string `json:"due_back" validate:"omitempty,date"`
}

// ReturnCopyPayload represents the request body for returning a copy.
type ReturnCopyPayload struct {
	Status string `json:"status" default:"available" validate:"oneof=available maintenance reserved"`
}

// ListLoansQuery represents the query parameters for listing loans.
type ListLoansQuery struct {
	Limit  int `query:"limit" default:"50"`
	Offset int `query:"offset" default:"0"`
}
