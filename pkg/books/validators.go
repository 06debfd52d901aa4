package books

// CreateBookPayload represents the request body for creating a book.
type CreateBookPayload struct {
	Title      string `json:"title" validate:"required,max=200"`
	Summary    string `json:"summary" validate:"omitempty,max=1000"`
	ISBN       string `json:"isbn" validate:"omitempty,max=13"`
	AuthorID   *int   `json:"author_id"`
	LanguageID *int   `json:"language_id"`
	GenreIDs   []int  `json:"genre_ids"`
}

// UpdateBookPayload represents the request body for updating a book.
type UpdateBookPayload struct {
	Title      *string `json:"title" validate:"omitempty,max=200"`
	Summary    *string `json:"summary" validate:"omitempty,max=1000"`
	ISBN       *string `json:"isbn" validate:"omitempty,max=13"`
	AuthorID   *int    `json:"author_id"`
	LanguageID *int    `json:"language_id"`
	GenreIDs   *[]int  `json:"genre_ids"`
}

// ListBooksQuery represents the query parameters for listing books.
type ListBooksQuery struct {
	Limit    int  `query:"limit" default:"50"`
	Offset   int  `query:"offset" default:"0"`
	AuthorID *int `query:"author_id"`
	GenreID  *int `query:"genre_id"`
}
