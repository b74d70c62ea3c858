package memory

import (
	"context"

	"github.com/stethcare/checkout-api/internal/repositories"
)

// Registry bundles in-memory repositories for local development and tests.
type Registry struct {
	drafts *DraftRepository
	mirror *PaymentMirror
	health repositories.HealthRepository
}

var _ repositories.Registry = (*Registry)(nil)

// NewRegistry constructs a registry backed entirely by process memory.
func NewRegistry() (*Registry, error) {
	drafts := NewDraftRepository()
	mirror := NewPaymentMirror()

	health, err := repositories.NewDependencyHealthRepository([]repositories.DependencyCheck{
		{
			Name: "draftStore",
			Check: func(context.Context) error {
				return nil
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &Registry{
		drafts: drafts,
		mirror: mirror,
		health: health,
	}, nil
}

// Close implements repositories.Registry. Memory stores hold no external resources.
func (r *Registry) Close(context.Context) error { return nil }

// Drafts implements repositories.Registry.
func (r *Registry) Drafts() repositories.DraftRepository { return r.drafts }

// PaymentMirror implements repositories.Registry.
func (r *Registry) PaymentMirror() repositories.PaymentMirrorRepository { return r.mirror }

// Health implements repositories.Registry.
func (r *Registry) Health() repositories.HealthRepository { return r.health }
