package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"ispdesk-backend/internal/billing"
	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
	"ispdesk-backend/internal/repository"
)

type rateService struct {
	providerRepo repository.ProviderRepository
	defaultRate  string
}

func NewRateService(providerRepo repository.ProviderRepository, defaultRate string) RateService {
	return &rateService{providerRepo: providerRepo, defaultRate: defaultRate}
}

func (s *rateService) GetRate(ctx context.Context, providerTag string) (string, error) {
	provider, err := s.providerRepo.GetByTag(ctx, providerTag)
	if err != nil {
		logger.Warn("Provider rate not configured, using default",
			"provider_tag", providerTag, "default_rate", s.defaultRate)
		return billing.ResolveRate("", s.defaultRate).String(), nil
	}
	return billing.ResolveRate(provider.CommissionPercent, s.defaultRate).String(), nil
}

func (s *rateService) SetRate(ctx context.Context, providerTag, commissionPercent string) error {
	logger.EnterMethod("rateService.SetRate", "provider_tag", providerTag, "rate", commissionPercent)

	rate, err := decimal.NewFromString(commissionPercent)
	if err != nil {
		return fmt.Errorf("commission percent must be numeric: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("commission percent must be between 0 and 100")
	}

	if err := s.providerRepo.SetRate(ctx, providerTag, rate.String()); err != nil {
		logger.ExitMethodWithError("rateService.SetRate", err, "provider_tag", providerTag)
		return err
	}

	logger.ExitMethod("rateService.SetRate", "provider_tag", providerTag, "rate", rate.String())
	return nil
}

func (s *rateService) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	return s.providerRepo.List(ctx)
}
