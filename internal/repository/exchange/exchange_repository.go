package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
)

type ExchangeConfig struct {
	BaseUrl string
	ApiKey  string
}

type ExchangeRepository struct {
	exchangeConfig ExchangeConfig
	client         *http.Client
}

func NewExchangeRepository(cfg ExchangeConfig) *ExchangeRepository {
	return &ExchangeRepository{
		exchangeConfig: cfg,
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchRates calls the upstream rates provider for one base currency.
func (r *ExchangeRepository) FetchRates(ctx context.Context, base string) (domain.ExchangeRates, error) {
	url := fmt.Sprintf("%s/latest/%s", r.exchangeConfig.BaseUrl, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ExchangeRates{}, err
	}

	if r.exchangeConfig.ApiKey != "" {
		req.Header.Add("Authorization", "Bearer "+r.exchangeConfig.ApiKey)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return domain.ExchangeRates{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.ExchangeRates{}, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return domain.ExchangeRates{}, fmt.Errorf("rates provider returned status %d", res.StatusCode)
	}

	var apiResponse domain.ExchangeAPIResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return domain.ExchangeRates{}, fmt.Errorf("failed to decode rates response: %w", err)
	}

	if apiResponse.Result != "success" {
		return domain.ExchangeRates{}, fmt.Errorf("rates provider returned result %q", apiResponse.Result)
	}

	return domain.ExchangeRates{
		Base:      apiResponse.BaseCode,
		Rates:     apiResponse.Rates,
		FetchedAt: time.Now(),
	}, nil
}
