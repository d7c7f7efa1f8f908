package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/freightline/quoting-system/internal/core/ports"
)

// RateHandler handles HTTP requests for tariff rate lookup and management.
type RateHandler struct {
	service ports.RateService
}

func NewRateHandler(service ports.RateService) *RateHandler {
	return &RateHandler{service: service}
}

// Get handles GET /v1/rates.
//
// @Summary      Resolve the applicable tariff rate for a lane and code
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Param        origin  query     string  true   "Origin country (ISO 3166-1 alpha-2)"
// @Param        code    query     string  true   "Classification code (HS code)"
// @Param        as_of   query     string  false  "Evaluation instant (RFC 3339, default now)"
// @Success      200     {object}  rateResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/rates [get]
func (h *RateHandler) Get(c echo.Context) error {
	origin := c.QueryParam("origin")
	code := c.QueryParam("code")
	if origin == "" || code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "origin and code are required")
	}

	asOf, err := parseDateParam(c.QueryParam("as_of"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "as_of must be RFC 3339")
	}

	rate, err := h.service.ResolveRate(c.Request().Context(), origin, code, asOf)
	if err != nil {
		return err
	}
	if rate == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no applicable rate for the requested key")
	}

	return c.JSON(http.StatusOK, toRateResponse(rate))
}

// Update handles PUT /v1/admin/rates.
//
// A new version is appended for the key; prior versions stay in place for
// historical resolution and audit.
//
// @Summary      Publish a new tariff rate version
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateRateRequest  true  "Rate details"
// @Success      200   {object}  rateResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/rates [put]
func (h *RateHandler) Update(c echo.Context) error {
	var req updateRateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateRateInput{
		OriginCountry:      req.OriginCountry,
		ClassificationCode: req.ClassificationCode,
		BaseRate:           req.BaseRate,
		SpecialRate:        req.SpecialRate,
		Source:             req.Source,
		Notes:              req.Notes,
	}

	if req.EffectiveDate != "" {
		effective, err := time.Parse(time.RFC3339, req.EffectiveDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "effective_date must be RFC 3339")
		}
		input.EffectiveDate = effective
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse(time.RFC3339, req.ExpiryDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "expiry_date must be RFC 3339")
		}
		input.ExpiryDate = &expiry
	}

	rate, err := h.service.UpdateRate(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRateResponse(rate))
}

// Deactivate handles DELETE /v1/admin/rates.
//
// @Summary      Deactivate all rate versions for a key
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Param        origin  query  string  true  "Origin country"
// @Param        code    query  string  true  "Classification code"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/rates [delete]
func (h *RateHandler) Deactivate(c echo.Context) error {
	origin := c.QueryParam("origin")
	code := c.QueryParam("code")
	if origin == "" || code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "origin and code are required")
	}

	if err := h.service.DeactivateRate(c.Request().Context(), origin, code); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
