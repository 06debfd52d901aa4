package catalog

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the public catalog summary route.
func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{catalogService: NewService(db)}

	e.GET("/catalog/summary", h.summary)
}
