package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const keyTransferCompleted = "dedup:transfer-completed:%s"

// Repository remembers which ledger confirmations are taken. It only filters
// redeliveries early; the pending transfer row remains the source of truth.
type Repository struct {
	client Client
	ttl    time.Duration
}

func New(client Client, ttl time.Duration) *Repository {
	return &Repository{
		client: client,
		ttl:    ttl,
	}
}

// Acquire returns false when the confirmation was already taken.
func (r *Repository) Acquire(ctx context.Context, transferID uuid.UUID) (bool, error) {
	acquired, err := r.client.SetNX(ctx, key(transferID), 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("unexpected dedup repository acquire error: %w", err)
	}
	return acquired, nil
}

// Release lets a redelivery of the confirmation through again.
func (r *Repository) Release(ctx context.Context, transferID uuid.UUID) error {
	if err := r.client.Del(ctx, key(transferID)).Err(); err != nil {
		return fmt.Errorf("unexpected dedup repository release error: %w", err)
	}
	return nil
}

func key(transferID uuid.UUID) string {
	return fmt.Sprintf(keyTransferCompleted, transferID)
}
