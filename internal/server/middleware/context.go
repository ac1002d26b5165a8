package middleware

import (
	"pomelo/pkg/kg"
	"pomelo/pkg/pipeline"

	"github.com/labstack/echo/v4"
)

// App bundles the shared, read-only collaborators handlers need: the
// knowledge graph built at startup and the pipeline that answers questions
// against it.
type App struct {
	Graph    *kg.Graph
	Pipeline *pipeline.Pipeline
}

// AppContext wraps the echo context with the shared app state.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware injects the shared app state into every request.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{
				Context: c,
				App:     app,
			})
		}
	}
}
