package languages

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
)

type handler struct {
	languageService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Language")
	}

	language, err := h.languageService.RetrieveLanguage(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, language))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	languages, err := h.languageService.ListLanguages(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"languages": languages,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}
