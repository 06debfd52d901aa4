package authors

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfmark/shelfmark/pkg/books"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/models"
)

const dateFormat = "2006-01-02"

type handler struct {
	authorService *Service
	bookService   *books.Service
}

func authorIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errcodes.NotFound("Author")
	}
	return id, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(dateFormat, value)
	if err != nil {
		return nil, errcodes.ValidationError(`"date_of_birth" and "date_of_death" must be in the format YYYY-MM-DD`)
	}
	return &d, nil
}

func checkLifeDates(birth, death *time.Time) error {
	if birth != nil && death != nil && death.Before(*birth) {
		return errcodes.ValidationError(`"date_of_death" cannot be before "date_of_birth"`)
	}
	return nil
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	birth, err := parseDate(params.DateOfBirth)
	if err != nil {
		return err
	}
	death, err := parseDate(params.DateOfDeath)
	if err != nil {
		return err
	}
	if err := checkLifeDates(birth, death); err != nil {
		return err
	}

	author := &models.Author{
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		DateOfBirth: birth,
		DateOfDeath: death,
	}
	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, author))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := authorIDParam(c)
	if err != nil {
		return err
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	// The detail response carries the author's books, like the listing a
	// reader sees on an author page.
	author.Books, err = h.bookService.ListBooks(ctx, books.ListBooksOptions{AuthorID: &author.ID})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, author))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListAuthorsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	authors, total, err := h.authorService.ListAuthorsWithTotal(ctx, ListAuthorsOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"authors": authors,
		"total":   total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := authorIDParam(c)
	if err != nil {
		return err
	}

	params := UpdateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.FirstName != nil {
		author.FirstName = *params.FirstName
		columns = append(columns, "first_name")
	}
	if params.LastName != nil {
		author.LastName = *params.LastName
		columns = append(columns, "last_name")
	}
	if params.DateOfBirth != nil {
		birth, err := parseDate(*params.DateOfBirth)
		if err != nil {
			return err
		}
		author.DateOfBirth = birth
		columns = append(columns, "date_of_birth")
	}
	if params.DateOfDeath != nil {
		death, err := parseDate(*params.DateOfDeath)
		if err != nil {
			return err
		}
		author.DateOfDeath = death
		columns = append(columns, "date_of_death")
	}
	if err := checkLifeDates(author.DateOfBirth, author.DateOfDeath); err != nil {
		return err
	}

	err = h.authorService.UpdateAuthor(ctx, author, UpdateAuthorOptions{Columns: columns})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, author))
}

func (h *handler) deleteAuthor(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := authorIDParam(c)
	if err != nil {
		return err
	}

	if _, err := h.authorService.RetrieveAuthor(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	err = h.authorService.DeleteAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
