package cache

import (
	"context"
	"fmt"

	"rdapd/internal/rdap/models"
)

// Invalidator drops cached entries by LDH name.
type Invalidator interface {
	Invalidate(ctx context.Context, ldhName string) error
}

// InvalidateDomains evicts every domain that was just rewritten in storage so
// the next lookup reassembles it.
func InvalidateDomains(ctx context.Context, inv Invalidator, domains []*models.Domain) error {
	for _, d := range domains {
		if d == nil {
			continue
		}
		if err := inv.Invalidate(ctx, d.LdhName); err != nil {
			return fmt.Errorf("invalidate %s: %w", d.LdhName, err)
		}
	}
	return nil
}
