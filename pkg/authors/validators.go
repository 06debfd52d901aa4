package authors

// CreateAuthorPayload represents the request body for creating an author.
type CreateAuthorPayload struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,date"`
	DateOfDeath string `json:"date_of_death" validate:"omitempty,date"`
}

// UpdateAuthorPayload represents the request body for updating an author.
type UpdateAuthorPayload struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,date"`
	DateOfDeath *string `json:"date_of_death" validate:"omitempty,date"`
}

// ListAuthorsQuery represents the query parameters for listing authors.
type ListAuthorsQuery struct {
	Limit  int `query:"limit" default:"10"`
	Offset int `query:"offset" default:"0"`
}
