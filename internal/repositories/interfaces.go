package repositories

import (
	"context"

	domain "github.com/stethcare/checkout-api/internal/domain"
)

// Registry exposes typed repository accessors and lifecycle hooks for dependency injection.
type Registry interface {
	Close(ctx context.Context) error

	Drafts() DraftRepository
	PaymentMirror() PaymentMirrorRepository
	Health() HealthRepository
}

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// DraftRepository persists checkout draft aggregates keyed by draft ID.
type DraftRepository interface {
	SaveDraft(ctx context.Context, draft domain.OrderDraft) (domain.OrderDraft, error)
	LoadDraft(ctx context.Context, draftID string) (domain.OrderDraft, error)
	DeleteDraft(ctx context.Context, draftID string) error
}

// PaymentMirrorRepository caches the payment section between checkout visits
// under the fixed "paymentData" key prefix. Receipt uploads are reduced to a
// filename marker before serialisation; the bytes are never cached. Corrupt
// cache entries surface as ErrMirrorCorrupt, which callers treat the same as
// a missing entry.
type PaymentMirrorRepository interface {
	Save(ctx context.Context, draftID string, payment domain.PaymentDraft) error
	Load(ctx context.Context, draftID string) (domain.PaymentDraft, error)
	Delete(ctx context.Context, draftID string) error
}

// HealthRepository aggregates dependency probes for readiness endpoints.
type HealthRepository interface {
	Collect(ctx context.Context) (domain.SystemHealthReport, error)
}
