package copies

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/models"
)

type handler struct {
	copyService *Service
}

func copyIDParam(c echo.Context) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", errcodes.NotFound("Copy")
	}
	return id.String(), nil
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateCopyPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	bookCopy := &models.BookCopy{
		BookID:  params.BookID,
		Imprint: params.Imprint,
		Status:  params.Status,
	}
	if err := h.copyService.CreateCopy(ctx, bookCopy); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, bookCopy))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := copyIDParam(c)
	if err != nil {
		return err
	}

	bookCopy, err := h.copyService.RetrieveCopy(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, bookCopy))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListCopiesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if params.Status != nil && !models.ValidCopyStatus(*params.Status) {
		return errcodes.ValidationError(`"status" must be one of the following: "maintenance", "on_loan", "available", "reserved"`)
	}

	bookCopies, total, err := h.copyService.ListCopiesWithTotal(ctx, ListCopiesOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		BookID: params.BookID,
		Status: params.Status,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"copies": bookCopies,
		"total":  total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := copyIDParam(c)
	if err != nil {
		return err
	}

	params := UpdateCopyPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	bookCopy, err := h.copyService.RetrieveCopy(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.BookID != nil {
		bookCopy.BookID = params.BookID
		columns = append(columns, "book_id")
	}
	if params.Imprint != nil {
		bookCopy.Imprint = *params.Imprint
		columns = append(columns, "imprint")
	}
	if params.Status != nil {
		bookCopy.Status = *params.Status
		columns = append(columns, "status")
	}

	err = h.copyService.UpdateCopy(ctx, bookCopy, UpdateCopyOptions{Columns: columns})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, bookCopy))
}

func (h *handler) deleteCopy(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := copyIDParam(c)
	if err != nil {
		return err
	}

	// Fetch first so a missing copy surfaces as a 404.
	if _, err := h.copyService.RetrieveCopy(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	err = h.copyService.DeleteCopy(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
