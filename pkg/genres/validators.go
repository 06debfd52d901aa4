package genres

// CreateGenrePayload represents the request body for creating a genre.
type CreateGenrePayload struct {
	Name string `json:"name" mod:"trim" validate:"required,max=200"`
}
