package usecase

import (
	"context"

	"unirenta/internal/billing"
	"unirenta/internal/entity"
)

// Pricing - read-side façade over the engine's eligibility filter and the
// price composer. No state of its own.
type Pricing struct {
	engine *Subscription
}

// NewPricing creates the read façade over an existing engine.
func NewPricing(engine *Subscription) *Pricing {
	return &Pricing{engine: engine}
}

// CurrentBreakdown returns the assignment's breakdown as of now.
func (p *Pricing) CurrentBreakdown(ctx context.Context, assignmentID int64) (billing.Breakdown, error) {
	return p.engine.CurrentBreakdown(ctx, assignmentID)
}

// ListLinks returns every service link of the assignment.
func (p *Pricing) ListLinks(ctx context.Context, assignmentID int64) ([]*entity.ServiceLink, error) {
	return p.engine.Links(ctx, assignmentID)
}
