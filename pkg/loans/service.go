package loans

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/uptrace/bun"
)

type ListLoansOptions struct {
	Limit      *int
	Offset     *int
	BorrowerID *int

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// RetrieveCopy fetches a copy by its UUID with book and borrower loaded.
func (svc *Service) RetrieveCopy(ctx context.Context, id string) (*models.BookCopy, error) {
	bookCopy := &models.BookCopy{}

	err := svc.db.
		NewSelect().
		Model(bookCopy).
		Relation("Book").
		Relation("Borrower").
		Where("bc.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Copy")
		}
		return nil, errors.WithStack(err)
	}

	return bookCopy, nil
}

// ListLoans returns copies currently on loan, ordered by due date ascending.
// With a BorrowerID it narrows to a single user's loans.
func (svc *Service) ListLoans(ctx context.Context, opts ListLoansOptions) ([]*models.BookCopy, error) {
	loans, _, err := svc.listLoansWithTotal(ctx, opts)
	return loans, err
}

func (svc *Service) ListLoansWithTotal(ctx context.Context, opts ListLoansOptions) ([]*models.BookCopy, int, error) {
	opts.includeTotal = true
	return svc.listLoansWithTotal(ctx, opts)
}

func (svc *Service) listLoansWithTotal(ctx context.Context, opts ListLoansOptions) ([]*models.BookCopy, int, error) {
	var loans []*models.BookCopy
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&loans).
		Relation("Book").
		Relation("Borrower").
		Where("bc.status = ?", models.CopyStatusOnLoan).
		Order("bc.due_back ASC")

	if opts.BorrowerID != nil {
		q = q.Where("bc.borrower_id = ?", *opts.BorrowerID)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return loans, total, nil
}

// Renew sets a new due date on a copy. Validation of the date happens before
// this is called; the only write is the due_back column.
func (svc *Service) Renew(ctx context.Context, copyID string, dueBack time.Time) (*models.BookCopy, error) {
	bookCopy, err := svc.RetrieveCopy(ctx, copyID)
	if err != nil {
		return nil, err
	}

	d := models.DateOnly(dueBack)
	bookCopy.DueBack = &d
	bookCopy.UpdatedAt = time.Now()

	_, err = svc.db.
		NewUpdate().
		Model(bookCopy).
		Column("due_back", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return bookCopy, nil
}

// Checkout puts an available copy on loan to a user with the given due date.
func (svc *Service) Checkout(ctx context.Context, copyID string, borrowerID int, dueBack time.Time) (*models.BookCopy, error) {
	bookCopy, err := svc.RetrieveCopy(ctx, copyID)
	if err != nil {
		return nil, err
	}
	if bookCopy.Status != models.CopyStatusAvailable {
		return nil, errcodes.Conflict("Copy is not available for checkout.")
	}

	exists, err := svc.db.NewSelect().
		Model((*models.User)(nil)).
		Where("id = ?", borrowerID).
		Where("is_active = ?", true).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !exists {
		return nil, errcodes.ValidationError("Invalid borrower ID")
	}

	d := models.DateOnly(dueBack)
	bookCopy.Status = models.CopyStatusOnLoan
	bookCopy.BorrowerID = &borrowerID
	bookCopy.DueBack = &d
	bookCopy.UpdatedAt = time.Now()

	_, err = svc.db.
		NewUpdate().
		Model(bookCopy).
		Column("status", "borrower_id", "due_back", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return svc.RetrieveCopy(ctx, copyID)
}

// Return takes a copy off loan, clearing the borrower and due date. The copy
// lands in the given status (available, maintenance, or reserved).
func (svc *Service) Return(ctx context.Context, copyID string, status string) (*models.BookCopy, error) {
	bookCopy, err := svc.RetrieveCopy(ctx, copyID)
	if err != nil {
		return nil, err
	}
	if bookCopy.Status != models.CopyStatusOnLoan {
		return nil, errcodes.Conflict("Copy is not on loan.")
	}

	bookCopy.Status = status
	bookCopy.BorrowerID = nil
	bookCopy.DueBack = nil
	bookCopy.Borrower = nil
	bookCopy.UpdatedAt = time.Now()

	_, err = svc.db.
		NewUpdate().
		Model(bookCopy).
		Column("status", "borrower_id", "due_back", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return bookCopy, nil
}
