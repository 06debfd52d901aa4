package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Loan statuses for a book copy. A copy starts in maintenance and moves to
// available once shelved; checkout puts it on loan with a borrower and a due
// date; return puts it back to available (or maintenance/reserved).
const (
	CopyStatusMaintenance = "maintenance"
	CopyStatusOnLoan      = "on_loan"
	CopyStatusAvailable   = "available"
	CopyStatusReserved    = "reserved"
)

// CopyStatuses lists every valid copy status.
var CopyStatuses = []string{
	CopyStatusMaintenance,
	CopyStatusOnLoan,
	CopyStatusAvailable,
	CopyStatusReserved,
}

// BookCopy is a physical, loanable copy of a book. Its ID is a UUID assigned
// at creation. Book and borrower links are non-owning: deleting the book or
// the user clears the reference instead of deleting the copy.
type BookCopy struct {
	bun.BaseModel `bun:"table:book_copies,alias:bc"`

	ID         string     `bun:",pk" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	BookID     *int       `json:"book_id,omitempty"`
	Book       *Book      `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Imprint    string     `json:"imprint"`
	DueBack    *time.Time `json:"due_back,omitempty"`
	Status     string     `bun:",nullzero" json:"status"`
	BorrowerID *int       `json:"borrower_id,omitempty"`
	Borrower   *User      `bun:"rel:belongs-to,join:borrower_id=id" json:"borrower,omitempty"`
}

// IsOverdue reports whether the copy's due date has passed. Both sides are
// compared as calendar dates; a copy due today is not overdue, and a copy
// with no due date never is.
func (bc *BookCopy) IsOverdue(today time.Time) bool {
	if bc.DueBack == nil {
		return false
	}
	return DateOnly(today).After(DateOnly(*bc.DueBack))
}

// ValidCopyStatus reports whether s is one of the known loan statuses.
func ValidCopyStatus(s string) bool {
	for _, status := range CopyStatuses {
		if s == status {
			return true
		}
	}
	return false
}
