package routes

import (
	"net/http"

	"pomelo/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetStatsHandler returns node and edge counts of the knowledge graph.
func GetStatsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	return c.JSON(http.StatusOK, app.Graph.Stats())
}
