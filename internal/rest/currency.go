package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	jsonres "github.com/Motasaith/Abdul-Shop-sub001/pkg/response"

	"github.com/labstack/echo/v4"
)

type RatesService interface {
	GetRates(ctx context.Context, base string) (domain.ExchangeRates, error)
}

type CurrencyHandler struct {
	ratesService RatesService
	timeout      time.Duration
}

func NewCurrencyHandler(ratesService RatesService) *CurrencyHandler {
	return &CurrencyHandler{
		ratesService: ratesService,
		timeout:      10 * time.Second,
	}
}

// GetRates serves exchange rates for ?base=USD, from cache when fresh.
func (h *CurrencyHandler) GetRates(c echo.Context) error {
	base := c.QueryParam("base")
	if base == "" {
		base = "USD"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rates, err := h.ratesService.GetRates(ctx, base)
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Exchange rates retrieved successfully", rates))
}
