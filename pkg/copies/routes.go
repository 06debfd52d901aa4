package copies

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfmark/shelfmark/pkg/auth"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers copy routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{copyService: NewService(db)}

	catalogWrite := authMiddleware.RequirePermission(models.ResourceCatalog, models.OperationWrite)

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create, catalogWrite)
	g.PATCH("/:id", h.update, catalogWrite)
	g.DELETE("/:id", h.deleteCopy, catalogWrite)
}
