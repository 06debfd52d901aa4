package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MaxSummaryLength is the longest summary a book can carry.
const MaxSummaryLength = 1000

// MaxISBNLength is the longest ISBN a book can carry (ISBN-13).
const MaxISBNLength = 13

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID         int       `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Title      string    `bun:",nullzero" json:"title"`
	Summary    string    `json:"summary"`
	ISBN       string    `bun:"isbn" json:"isbn"`
	AuthorID   *int      `json:"author_id,omitempty"`
	Author     *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	LanguageID *int      `json:"language_id,omitempty"`
	Language   *Language `bun:"rel:belongs-to,join:language_id=id" json:"language,omitempty"`

	// Genres is loaded through book_genres by the books service.
	Genres []*Genre `bun:"-" json:"genres,omitempty"`
}
