package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/freightline/quoting-system/internal/core/ports"
)

// QuoteHandler handles HTTP requests for quote operations.
type QuoteHandler struct {
	service ports.QuoteService
}

func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Create handles POST /v1/quotes.
//
// The endpoint accepts two payload shapes: the structured shape (with a
// "cargo" object) and the flat legacy shape. The shape is resolved once here,
// before any service call, by probing the raw payload for the "cargo" key.
//
// @Summary      Compute a freight quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createQuoteRequest  true  "Shipment details (structured or legacy shape)"
// @Success      201   {object}  quoteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/quotes [post]
func (h *QuoteHandler) Create(c echo.Context) error {
	_, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	input, err := bindQuoteRequest(c, clientID)
	if err != nil {
		return err
	}

	result, err := h.service.ComputeQuote(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toQuoteResponse(result))
}

// bindQuoteRequest resolves the payload shape and binds and validates the
// matching request type.
func bindQuoteRequest(c echo.Context, clientID string) (ports.QuoteInput, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return ports.QuoteInput{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable payload")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return ports.QuoteInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if _, structured := probe["cargo"]; structured {
		var req createQuoteRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return ports.QuoteInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			return ports.QuoteInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return toQuoteInput(req, clientID), nil
	}

	var req legacyQuoteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return ports.QuoteInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.QuoteInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return toLegacyQuoteInput(req, clientID), nil
}

// Get handles GET /v1/quotes/:id.
//
// @Summary      Get a stored quote by ID
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  quoteResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/quotes/{id} [get]
func (h *QuoteHandler) Get(c echo.Context) error {
	role, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.GetQuote(c.Request().Context(), ports.GetQuoteInput{
		QuoteID:  c.Param("id"),
		Role:     role,
		ClientID: clientID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toQuoteResponse(result))
}

// List handles GET /v1/quotes.
//
// @Summary      List stored quotes
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        origin       query     string  false  "Filter by origin country"
// @Param        destination  query     string  false  "Filter by destination country"
// @Param        mode         query     string  false  "Filter by transport mode"
// @Param        date_from    query     string  false  "Filter by creation date (RFC 3339)"
// @Param        date_to      query     string  false  "Filter by creation date (RFC 3339)"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  listQuotesResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/quotes [get]
func (h *QuoteHandler) List(c echo.Context) error {
	role, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	dateFrom, err := parseDateParam(c.QueryParam("date_from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_from must be RFC 3339")
	}
	dateTo, err := parseDateParam(c.QueryParam("date_to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_to must be RFC 3339")
	}

	result, err := h.service.ListQuotes(c.Request().Context(), ports.ListQuotesInput{
		Role:               role,
		ClientID:           clientID,
		OriginCountry:      c.QueryParam("origin"),
		DestinationCountry: c.QueryParam("destination"),
		Mode:               c.QueryParam("mode"),
		DateFrom:           dateFrom,
		DateTo:             dateTo,
		Page:               page,
		Limit:              limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}

func parseDateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
