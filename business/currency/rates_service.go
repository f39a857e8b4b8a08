package currency

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
)

// RatesCache contract interface. The cache is an explicit component with a
// TTL supplied by configuration, not a module-level variable.
type RatesCache interface {
	Get(ctx context.Context, base string) (domain.ExchangeRates, error)
	Set(ctx context.Context, base string, rates domain.ExchangeRates, ttl time.Duration) error
}

// RatesFetcher contract interface for the upstream exchange rates API.
type RatesFetcher interface {
	FetchRates(ctx context.Context, base string) (domain.ExchangeRates, error)
}

type RatesService struct {
	cache    RatesCache
	fetcher  RatesFetcher
	cacheTTL time.Duration
}

func NewRatesService(cache RatesCache, fetcher RatesFetcher, cacheTTL time.Duration) *RatesService {
	return &RatesService{
		cache:    cache,
		fetcher:  fetcher,
		cacheTTL: cacheTTL,
	}
}

// GetRates serves the cached snapshot when present, otherwise fetches from
// the upstream provider and refreshes the cache.
func (s *RatesService) GetRates(ctx context.Context, base string) (domain.ExchangeRates, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if len(base) != 3 {
		return domain.ExchangeRates{}, errors.New("invalid base currency code")
	}

	cached, err := s.cache.Get(ctx, base)
	if err == nil {
		return cached, nil
	}

	rates, err := s.fetcher.FetchRates(ctx, base)
	if err != nil {
		logger.Error("Failed to fetch exchange rates", err)
		return domain.ExchangeRates{}, err
	}

	if err := s.cache.Set(ctx, base, rates, s.cacheTTL); err != nil {
		logger.Warn("Failed to cache exchange rates", err)
	}

	return rates, nil
}
