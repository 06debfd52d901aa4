package copies

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/uptrace/bun"
)

type ListCopiesOptions struct {
	Limit  *int
	Offset *int
	BookID *int
	Status *string

	includeTotal bool
}

type UpdateCopyOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateCopy inserts a new copy. The UUID is generated here and the status
// defaults to maintenance until the copy is shelved.
func (svc *Service) CreateCopy(ctx context.Context, bookCopy *models.BookCopy) error {
	now := time.Now()
	if bookCopy.CreatedAt.IsZero() {
		bookCopy.CreatedAt = now
	}
	bookCopy.UpdatedAt = bookCopy.CreatedAt

	if bookCopy.ID == "" {
		bookCopy.ID = uuid.NewString()
	}
	if bookCopy.Status == "" {
		bookCopy.Status = models.CopyStatusMaintenance
	}

	_, err := svc.db.
		NewInsert().
		Model(bookCopy).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

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

func (svc *Service) ListCopies(ctx context.Context, opts ListCopiesOptions) ([]*models.BookCopy, error) {
	c, _, err := svc.listCopiesWithTotal(ctx, opts)
	return c, err
}

func (svc *Service) ListCopiesWithTotal(ctx context.Context, opts ListCopiesOptions) ([]*models.BookCopy, int, error) {
	opts.includeTotal = true
	return svc.listCopiesWithTotal(ctx, opts)
}

func (svc *Service) listCopiesWithTotal(ctx context.Context, opts ListCopiesOptions) ([]*models.BookCopy, int, error) {
	var bookCopies []*models.BookCopy
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&bookCopies).
		Relation("Book").
		Order("bc.due_back ASC")

	if opts.BookID != nil {
		q = q.Where("bc.book_id = ?", *opts.BookID)
	}
	if opts.Status != nil {
		q = q.Where("bc.status = ?", *opts.Status)
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

	return bookCopies, total, nil
}

func (svc *Service) UpdateCopy(ctx context.Context, bookCopy *models.BookCopy, opts UpdateCopyOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	bookCopy.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := svc.db.
		NewUpdate().
		Model(bookCopy).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) DeleteCopy(ctx context.Context, id string) error {
	_, err := svc.db.
		NewDelete().
		Model((*models.BookCopy)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

// CountCopies returns the number of copies, optionally narrowed to a status.
func (svc *Service) CountCopies(ctx context.Context, status *string) (int, error) {
	q := svc.db.NewSelect().Model((*models.BookCopy)(nil))
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	count, err := q.Count(ctx)
	return count, errors.WithStack(err)
}
