package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freightline/quoting-system/internal/core/domain"
	"github.com/freightline/quoting-system/internal/core/ports"
)

// TransitHandler handles HTTP requests for standalone transit estimates.
type TransitHandler struct {
	service ports.TransitService
}

func NewTransitHandler(service ports.TransitService) *TransitHandler {
	return &TransitHandler{service: service}
}

// Get handles GET /v1/transit-estimates.
//
// Unlike the quote pipeline, a missing route here is surfaced as 404: the
// caller asked for the transit estimate specifically.
//
// @Summary      Estimate transit time for a lane
// @Tags         transit
// @Produce      json
// @Security     BearerAuth
// @Param        origin       query     string  true   "Origin country"
// @Param        destination  query     string  true   "Destination country"
// @Param        mode         query     string  true   "Transport mode"
// @Param        urgency      query     string  false  "Service level (default standard)"
// @Success      200  {object}  transitEstimateResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/transit-estimates [get]
func (h *TransitHandler) Get(c echo.Context) error {
	origin := c.QueryParam("origin")
	destination := c.QueryParam("destination")
	mode := c.QueryParam("mode")
	if origin == "" || destination == "" || mode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "origin, destination and mode are required")
	}

	estimate, err := h.service.EstimateTransitTime(c.Request().Context(), ports.TransitInput{
		OriginCountry:      origin,
		DestinationCountry: destination,
		Mode:               domain.TransportMode(mode),
		Urgency:            domain.Urgency(c.QueryParam("urgency")),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, *toTransitResponse(estimate))
}
