package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	domain "github.com/stethcare/checkout-api/internal/domain"
	"github.com/stethcare/checkout-api/internal/repositories"
)

// DraftRepository keeps checkout drafts in process memory. It backs local
// development and tests; production deployments use the Firestore repository.
type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]domain.OrderDraft
}

var _ repositories.DraftRepository = (*DraftRepository)(nil)

// NewDraftRepository constructs an empty in-memory draft repository.
func NewDraftRepository() *DraftRepository {
	return &DraftRepository{drafts: make(map[string]domain.OrderDraft)}
}

// SaveDraft upserts the draft under its ID. The stored copy is detached from
// the caller's value.
func (r *DraftRepository) SaveDraft(_ context.Context, draft domain.OrderDraft) (domain.OrderDraft, error) {
	id := strings.TrimSpace(draft.ID)
	if id == "" {
		return domain.OrderDraft{}, errors.New("draft repository: draft id is required")
	}

	stored := draft.Clone()
	stored.ID = id

	r.mu.Lock()
	r.drafts[id] = stored
	r.mu.Unlock()

	return stored.Clone(), nil
}

// LoadDraft returns the draft stored under the given ID.
func (r *DraftRepository) LoadDraft(_ context.Context, draftID string) (domain.OrderDraft, error) {
	id := strings.TrimSpace(draftID)
	if id == "" {
		return domain.OrderDraft{}, errors.New("draft repository: draft id is required")
	}

	r.mu.RLock()
	stored, ok := r.drafts[id]
	r.mu.RUnlock()

	if !ok {
		return domain.OrderDraft{}, repositories.ErrDraftNotFound
	}
	return stored.Clone(), nil
}

// DeleteDraft removes the draft. Deleting an absent draft is a no-op.
func (r *DraftRepository) DeleteDraft(_ context.Context, draftID string) error {
	id := strings.TrimSpace(draftID)
	if id == "" {
		return errors.New("draft repository: draft id is required")
	}

	r.mu.Lock()
	delete(r.drafts, id)
	r.mu.Unlock()
	return nil
}
