package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
	"ispdesk-backend/internal/repository"
)

type providerDoc struct {
	Name              string    `firestore:"name"`
	CommissionPercent string    `firestore:"commission_percent"`
	UpdatedAt         time.Time `firestore:"updated_at"`
}

type providerRepository struct {
	client *firestore.Client
}

func NewProviderRepository(client *firestore.Client) repository.ProviderRepository {
	return &providerRepository{client: client}
}

func (r *providerRepository) GetByTag(ctx context.Context, tag string) (*domain.Provider, error) {
	snap, err := r.client.Collection(colProviders).Doc(tag).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("provider %s not found", tag)
		}
		return nil, err
	}
	var doc providerDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode provider %s: %w", tag, err)
	}
	return &domain.Provider{
		Tag:               snap.Ref.ID,
		Name:              doc.Name,
		CommissionPercent: doc.CommissionPercent,
		UpdatedAt:         doc.UpdatedAt,
	}, nil
}

func (r *providerRepository) SetRate(ctx context.Context, tag, commissionPercent string) error {
	logger.FirestoreCall("SetRate", colProviders, "tag", tag, "rate", commissionPercent)
	_, err := r.client.Collection(colProviders).Doc(tag).Set(ctx, map[string]interface{}{
		"commission_percent": commissionPercent,
		"updated_at":         time.Now().UTC(),
	}, firestore.MergeAll)
	logger.FirestoreResult("SetRate", colProviders, err, "tag", tag)
	return err
}

func (r *providerRepository) List(ctx context.Context) ([]domain.Provider, error) {
	it := r.client.Collection(colProviders).Documents(ctx)
	defer it.Stop()

	var providers []domain.Provider
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc providerDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		providers = append(providers, domain.Provider{
			Tag:               snap.Ref.ID,
			Name:              doc.Name,
			CommissionPercent: doc.CommissionPercent,
			UpdatedAt:         doc.UpdatedAt,
		})
	}
	return providers, nil
}
