package loans

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfmark/shelfmark/pkg/auth"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the loan listing routes. The all-borrowed listing
// requires the circulation write capability; "mine" only needs a session.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{loanService: NewService(db)}

	loans := e.Group("/loans")
	loans.Use(authMiddleware.Authenticate)

	loans.GET("", h.list, authMiddleware.RequirePermission(models.ResourceCirculation, models.OperationWrite))
	loans.GET("/mine", h.mine)
}

// RegisterCirculationRoutesWithGroup registers renewal, checkout, and return
// routes on a pre-configured copies group.
func RegisterCirculationRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{loanService: NewService(db)}

	circulationWrite := authMiddleware.RequirePermission(models.ResourceCirculation, models.OperationWrite)

	g.GET("/:id/renewal", h.renewalProposal, circulationWrite)
	g.POST("/:id/renewal", h.renew, circulationWrite)
	g.POST("/:id/checkout", h.checkout, circulationWrite)
	g.POST("/:id/return", h.returnCopy, circulationWrite)
}
