package catalog

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shelfmark/shelfmark/pkg/authors"
	"github.com/shelfmark/shelfmark/pkg/books"
	"github.com/shelfmark/shelfmark/pkg/copies"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/uptrace/bun"
)

// Summary holds the headline counts for the catalog landing page.
type Summary struct {
	BookCount            int `json:"book_count"`
	CopyCount            int `json:"copy_count"`
	AvailableCopyCount   int `json:"available_copy_count"`
	AuthorCount          int `json:"author_count"`
	GenreCount           int `json:"genre_count"`
	OnLoanCopyCount      int `json:"on_loan_copy_count"`
	MaintenanceCopyCount int `json:"maintenance_copy_count"`
}

type Service struct {
	db            *bun.DB
	authorService *authors.Service
	bookService   *books.Service
	copyService   *copies.Service
}

func NewService(db *bun.DB) *Service {
	return &Service{
		db:            db,
		authorService: authors.NewService(db),
		bookService:   books.NewService(db),
		copyService:   copies.NewService(db),
	}
}

// Summarize collects the counts from the domain services.
func (svc *Service) Summarize(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	var err error

	summary.BookCount, err = svc.bookService.CountBooks(ctx)
	if err != nil {
		return nil, err
	}
	summary.AuthorCount, err = svc.authorService.CountAuthors(ctx)
	if err != nil {
		return nil, err
	}

	summary.CopyCount, err = svc.copyService.CountCopies(ctx, nil)
	if err != nil {
		return nil, err
	}

	available := models.CopyStatusAvailable
	summary.AvailableCopyCount, err = svc.copyService.CountCopies(ctx, &available)
	if err != nil {
		return nil, err
	}

	onLoan := models.CopyStatusOnLoan
	summary.OnLoanCopyCount, err = svc.copyService.CountCopies(ctx, &onLoan)
	if err != nil {
		return nil, err
	}

	maintenance := models.CopyStatusMaintenance
	summary.MaintenanceCopyCount, err = svc.copyService.CountCopies(ctx, &maintenance)
	if err != nil {
		return nil, err
	}

	summary.GenreCount, err = svc.db.NewSelect().
		Model((*models.Genre)(nil)).
		Count(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return summary, nil
}
