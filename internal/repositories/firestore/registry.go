package firestore

import (
	"context"
	"errors"
	"time"

	"google.golang.org/api/iterator"

	pfirestore "github.com/stethcare/checkout-api/internal/platform/firestore"
	"github.com/stethcare/checkout-api/internal/repositories"
)

// Registry bundles Firestore-backed repositories behind the repositories.Registry contract.
type Registry struct {
	provider *pfirestore.Provider
	drafts   *DraftRepository
	mirror   *PaymentMirrorRepository
	health   repositories.HealthRepository
}

var _ repositories.Registry = (*Registry)(nil)

// NewRegistry constructs repositories sharing the provided Firestore provider.
// The registry owns the provider and releases the client on Close.
func NewRegistry(ctx context.Context, provider *pfirestore.Provider) (*Registry, error) {
	if provider == nil {
		return nil, errors.New("firestore registry: provider is required")
	}

	drafts, err := NewDraftRepository(provider)
	if err != nil {
		return nil, err
	}
	mirror, err := NewPaymentMirrorRepository(provider)
	if err != nil {
		return nil, err
	}

	client, err := provider.Client(ctx)
	if err != nil {
		return nil, err
	}
	health, err := repositories.NewDependencyHealthRepository([]repositories.DependencyCheck{
		{
			Name:    "firestore",
			Timeout: 1500 * time.Millisecond,
			Check: func(ctx context.Context) error {
				iter := client.Collections(ctx)
				_, err := iter.Next()
				if errors.Is(err, iterator.Done) {
					return nil
				}
				return err
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &Registry{
		provider: provider,
		drafts:   drafts,
		mirror:   mirror,
		health:   health,
	}, nil
}

// Close implements repositories.Registry.
func (r *Registry) Close(ctx context.Context) error {
	if r == nil || r.provider == nil {
		return nil
	}
	return r.provider.Close(ctx)
}

// Drafts implements repositories.Registry.
func (r *Registry) Drafts() repositories.DraftRepository { return r.drafts }

// PaymentMirror implements repositories.Registry.
func (r *Registry) PaymentMirror() repositories.PaymentMirrorRepository { return r.mirror }

// Health implements repositories.Registry.
func (r *Registry) Health() repositories.HealthRepository { return r.health }
