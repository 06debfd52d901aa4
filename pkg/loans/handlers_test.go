package loans

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/shelfmark/shelfmark/pkg/binder"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoansTestContext(t *testing.T, method, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func TestHandlerRenew_PersistsAndRedirects(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{loanService: NewService(db)}
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "renewhandler")
	book := createTestBook(ctx, t, db, "The Left Hand of Darkness")
	bookCopy := createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &user.ID, daysFromNow(2))

	due := time.Now().AddDate(0, 0, 14).Format(dateFormat)
	c, rr := newLoansTestContext(t, http.MethodPost, "/copies/"+bookCopy.ID+"/renewal", `{"due_back":"`+due+`"}`)
	c.SetPath("/copies/:id/renewal")
	c.SetParamNames("id")
	c.SetParamValues(bookCopy.ID)

	err := h.renew(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Copy       *models.BookCopy `json:"copy"`
		RedirectTo string           `json:"redirect_to"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, AllBorrowedPath, resp.RedirectTo)
	require.NotNil(t, resp.Copy.DueBack)
	assert.Equal(t, due, resp.Copy.DueBack.Format(dateFormat))

	reloaded, err := h.loanService.RetrieveCopy(ctx, bookCopy.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.DueBack)
	assert.Equal(t, due, reloaded.DueBack.Format(dateFormat))
}

func TestHandlerRenew_DateInPastDoesNotMutate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{loanService: NewService(db)}
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "pastrenew")
	book := createTestBook(ctx, t, db, "Gormenghast")
	originalDue := daysFromNow(2)
	bookCopy := createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &user.ID, originalDue)

	past := time.Now().AddDate(0, 0, -7).Format(dateFormat)
	c, _ := newLoansTestContext(t, http.MethodPost, "/copies/"+bookCopy.ID+"/renewal", `{"due_back":"`+past+`"}`)
	c.SetPath("/copies/:id/renewal")
	c.SetParamNames("id")
	c.SetParamValues(bookCopy.ID)

	err := h.renew(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "renewal_date_in_past", codeErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, codeErr.HTTPCode)

	reloaded, err := h.loanService.RetrieveCopy(ctx, bookCopy.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.DueBack)
	assert.Equal(t, originalDue.Format(dateFormat), reloaded.DueBack.Format(dateFormat))
}

func TestHandlerRenew_TooFarInFuture(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{loanService: NewService(db)}
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "farrenew")
	book := createTestBook(ctx, t, db, "Titus Groan")
	bookCopy := createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &user.ID, daysFromNow(2))

	farOut := time.Now().AddDate(0, 0, 35).Format(dateFormat)
	c, _ := newLoansTestContext(t, http.MethodPost, "/copies/"+bookCopy.ID+"/renewal", `{"due_back":"`+farOut+`"}`)
	c.SetPath("/copies/:id/renewal")
	c.SetParamNames("id")
	c.SetParamValues(bookCopy.ID)

	err := h.renew(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "renewal_date_too_far_in_future", codeErr.Code)
}

func TestHandlerRenew_UnknownCopy(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{loanService: NewService(db)}

	due := time.Now().AddDate(0, 0, 14).Format(dateFormat)
	id := uuid.NewString()
	c, _ := newLoansTestContext(t, http.MethodPost, "/copies/"+id+"/renewal", `{"due_back":"`+due+`"}`)
	c.SetPath("/copies/:id/renewal")
	c.SetParamNames("id")
	c.SetParamValues(id)

	err := h.renew(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusNotFound, codeErr.HTTPCode)
}

func TestHandlerRenew_MalformedUUID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{loanService: NewService(db)}

	c, _ := newLoansTestContext(t, http.MethodPost, "/copies/not-a-uuid/renewal", `{"due_back":"2026-01-01"}`)
	c.SetPath("/copies/:id/renewal")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.renew(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusNotFound, codeErr.HTTPCode)
}

func TestHandlerRenewalProposal(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{loanService: NewService(db)}
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "proposal")
	book := createTestBook(ctx, t, db, "Hyperion")
	bookCopy := createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &user.ID, daysFromNow(2))

	c, rr := newLoansTestContext(t, http.MethodGet, "/copies/"+bookCopy.ID+"/renewal", "")
	c.SetPath("/copies/:id/renewal")
	c.SetParamNames("id")
	c.SetParamValues(bookCopy.ID)

	err := h.renewalProposal(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		DueBack string `json:"due_back"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, ProposedRenewalDate(time.Now()).Format(dateFormat), resp.DueBack)
}

func TestHandlerMine_ScopesToCurrentUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{loanService: NewService(db)}
	ctx := context.Background()

	alice := createTestUser(ctx, t, db, "alice")
	bob := createTestUser(ctx, t, db, "bob")
	book := createTestBook(ctx, t, db, "Foundation")

	mine := createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &alice.ID, daysFromNow(-3))
	createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &bob.ID, daysFromNow(5))

	c, rr := newLoansTestContext(t, http.MethodGet, "/loans/mine", "")
	c.SetPath("/loans/mine")
	c.Set("user_id", alice.ID)
	c.Set("user", alice)

	err := h.mine(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Loans []LoanResponse `json:"loans"`
		Total int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Loans, 1)
	assert.Equal(t, mine.ID, resp.Loans[0].ID)
	assert.True(t, resp.Loans[0].Overdue)
}
