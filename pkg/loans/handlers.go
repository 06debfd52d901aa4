package loans

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfmark/shelfmark/pkg/auth"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/models"
)

// dateFormat is the wire format for calendar dates.
const dateFormat = "2006-01-02"

// AllBorrowedPath is where a successful renewal points the client next.
const AllBorrowedPath = "/loans"

type handler struct {
	loanService *Service
}

// LoanResponse is a copy on loan augmented with its overdue state.
type LoanResponse struct {
	*models.BookCopy
	Overdue bool `json:"overdue"`
}

func buildLoanResponses(loans []*models.BookCopy, today time.Time) []LoanResponse {
	result := make([]LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanResponse{l, l.IsOverdue(today)}
	}
	return result
}

func copyIDParam(c echo.Context) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", errcodes.NotFound("Copy")
	}
	return id.String(), nil
}

// list returns every copy currently on loan, ordered by due date. Restricted
// to holders of the circulation write capability.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListLoansQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	loans, total, err := h.loanService.ListLoansWithTotal(ctx, ListLoansOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"loans": buildLoanResponses(loans, time.Now()),
		"total": total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// mine returns the current user's loans, ordered by due date.
func (h *handler) mine(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := ListLoansQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	loans, total, err := h.loanService.ListLoansWithTotal(ctx, ListLoansOptions{
		Limit:      &params.Limit,
		Offset:     &params.Offset,
		BorrowerID: &user.ID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"loans": buildLoanResponses(loans, time.Now()),
		"total": total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// renewalProposal returns the pre-populated renewal date for a copy without
// touching storage: three weeks from today.
func (h *handler) renewalProposal(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := copyIDParam(c)
	if err != nil {
		return err
	}

	bookCopy, err := h.loanService.RetrieveCopy(ctx, id)
	if err != nil {
		return err
	}

	response := map[string]any{
		"copy":     bookCopy,
		"due_back": ProposedRenewalDate(time.Now()).Format(dateFormat),
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// renew validates a submitted renewal date and persists it. A validation
// failure is returned without mutating anything so the client can re-display
// the form with the submitted value.
func (h *handler) renew(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := copyIDParam(c)
	if err != nil {
		return err
	}

	params := RenewCopyPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	candidate, err := time.Parse(dateFormat, params.DueBack)
	if err != nil {
		return errcodes.ValidationError(`"due_back" should be in the format of YYYY-MM-DD`)
	}

	dueBack, err := ValidateRenewalDate(candidate, time.Now())
	if err != nil {
		return err
	}

	bookCopy, err := h.loanService.Renew(ctx, id, dueBack)
	if err != nil {
		return err
	}

	response := map[string]any{
		"copy":        bookCopy,
		"redirect_to": AllBorrowedPath,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// checkout puts an available copy on loan. Without an explicit due date the
// default renewal window applies.
func (h *handler) checkout(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := copyIDParam(c)
	if err != nil {
		return err
	}

	params := CheckoutCopyPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	dueBack := ProposedRenewalDate(time.Now())
	if params.DueBack != "" {
		dueBack, err = time.Parse(dateFormat, params.DueBack)
		if err != nil {
			return errcodes.ValidationError(`"due_back" should be in the format of YYYY-MM-DD`)
		}
	}

	bookCopy, err := h.loanService.Checkout(ctx, id, params.UserID, dueBack)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, bookCopy))
}

// returnCopy takes a copy off loan and shelves it in the requested status.
func (h *handler) returnCopy(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := copyIDParam(c)
	if err != nil {
		return err
	}

	params := ReturnCopyPayload{}
	c.Set("disallow_empty_body", false)
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	bookCopy, err := h.loanService.Return(ctx, id, params.Status)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, bookCopy))
}
