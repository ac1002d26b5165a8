package routes

import (
	"net/http"

	"pomelo/internal/server/middleware"
	"pomelo/pkg/common"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// QueryHandler runs one question through the retrieval pipeline and returns
// the answer together with the grounding context and the diagnostic trace.
func QueryHandler(c echo.Context) error {
	type queryBody struct {
		Question string `json:"question" validate:"required"`
	}

	type queryResponse struct {
		Message  string           `json:"message,omitempty"`
		ID       string           `json:"id,omitempty"`
		Answer   string           `json:"answer,omitempty"`
		Context  string           `json:"context,omitempty"`
		Entities []common.Mention `json:"entities,omitempty"`
		Facts    int              `json:"facts"`
		Trace    []string         `json:"trace,omitempty"`
	}

	data := new(queryBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	state := app.Pipeline.Run(c.Request().Context(), data.Question)

	return c.JSON(http.StatusOK, queryResponse{
		ID:       state.ID,
		Answer:   state.Answer,
		Context:  state.Context,
		Entities: state.Mentions,
		Facts:    len(state.Facts),
		Trace:    state.TraceLines(),
	})
}
