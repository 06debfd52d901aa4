package copies

// CreateCopyPayload represents the request body for creating a copy.
type CreateCopyPayload struct {
	BookID  *int   `json:"book_id"`
	Imprint string `json:"imprint" validate:"required,max=200"`
	Status  string `json:"status" validate:"omitempty,oneof=maintenance on_loan available reserved"`
}

// UpdateCopyPayload represents the request body for updating a copy.
type UpdateCopyPayload struct {
	BookID  *int    `json:"book_id"`
	Imprint *string `json:"imprint" validate:"omitempty,max=200"`
	Status  *string `json:"status" validate:"omitempty,oneof=maintenance on_loan available reserved"`
}

// ListCopiesQuery represents the query parameters for listing copies.
type ListCopiesQuery struct {
	Limit  int     `query:"limit" default:"50"`
	Offset int     `query:"offset" default:"0"`
	BookID *int    `query:"book_id"`
	Status *string `query:"status"`
}
