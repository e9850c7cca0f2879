package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"

	"unirenta/internal/billing"
	"unirenta/internal/entity"
)

// Subscription coordinates the service-subscription lifecycle of an
// assignment: which links exist, when they become billable and what the
// resulting price breakdown is. Every mutation runs inside one repository
// transaction.
type Subscription struct {
	Br     BillingRepository
	Sender PreinvoiceSender
	// Now supplies the engine's clock; tests pin it
	Now func() time.Time
}

// NewSubscription creates the engine over the given repository. sender may be
// nil when pre-invoice delivery is not wired.
func NewSubscription(br BillingRepository, sender PreinvoiceSender) *Subscription {
	return &Subscription{
		Br:     br,
		Sender: sender,
		Now:    time.Now,
	}
}

// AddService subscribes the assignment to a catalog service and returns the
// recomposed breakdown. Adding on the assignment's anchor day activates the
// link immediately; any other day schedules it as pending for the next cycle
// cut. Mid-cycle additions never prorate. The catalog price is snapshotted on
// the link so later price changes cannot touch charges already committed.
func (s *Subscription) AddService(ctx context.Context, assignmentID, serviceID int64) (billing.Breakdown, error) {
	if assignmentID <= 0 || serviceID <= 0 {
		return billing.Breakdown{}, ErrInvalidID
	}

	var out billing.Breakdown
	err := s.Br.WithTx(ctx, func(ctx context.Context, r BillingRepository) error {
		asg, unit, err := loadAssignment(ctx, r, assignmentID)
		if err != nil {
			return err
		}

		svc, err := r.GetService(ctx, serviceID)
		if err != nil {
			return err
		}
		if !svc.IsActive {
			return ErrServiceNotFound
		}
		if svc.IsBase {
			return ErrBaseServiceImmutable
		}
		if !offered(unit, svc) {
			return ErrNotOffered
		}

		links, err := r.ListLinks(ctx, assignmentID)
		if err != nil {
			return err
		}
		for _, l := range links {
			if l.ServiceID != serviceID {
				continue
			}
			switch l.State {
			case entity.LinkActive:
				return ErrAlreadyActive
			case entity.LinkPending:
				return ErrAlreadyPending
			}
			// cancelled history does not block a re-add
		}

		now := s.Now()
		link := &entity.ServiceLink{
			AssignmentID:  assignmentID,
			ServiceID:     serviceID,
			PriceSnapshot: &svc.Price,
			AddedAt:       now,
		}
		if billing.OnAnchorDay(asg.AnchorDate, now) {
			link.State = entity.LinkActive
			link.EffectiveFrom = &now
		} else {
			cut := billing.NextCutAfter(asg.AnchorDate, now)
			link.State = entity.LinkPending
			link.EffectiveFrom = &cut
		}

		if _, err := r.CreateLink(ctx, link); err != nil {
			return err
		}

		out, err = composeAt(ctx, r, asg, unit, now)
		return err
	})
	if err != nil {
		return billing.Breakdown{}, err
	}
	return out, nil
}

// RemoveService cancels or deletes the link between the assignment and the
// service and returns the recomposed breakdown. A pending link that never
// became effective is deleted outright; an active one is cancelled but stays
// billable through the end of the current cycle.
func (s *Subscription) RemoveService(ctx context.Context, assignmentID, serviceID int64) (billing.Breakdown, error) {
	if assignmentID <= 0 || serviceID <= 0 {
		return billing.Breakdown{}, ErrInvalidID
	}

	var out billing.Breakdown
	err := s.Br.WithTx(ctx, func(ctx context.Context, r BillingRepository) error {
		asg, unit, err := loadAssignment(ctx, r, assignmentID)
		if err != nil {
			return err
		}

		svc, err := r.GetService(ctx, serviceID)
		if err != nil {
			return err
		}
		if svc.IsBase {
			return ErrBaseServiceImmutable
		}

		links, err := r.ListLinks(ctx, assignmentID)
		if err != nil {
			return err
		}
		link, found := lo.Find(links, func(l *entity.ServiceLink) bool {
			return l.ServiceID == serviceID && l.State != entity.LinkCancelled
		})
		if !found {
			if lo.SomeBy(links, func(l *entity.ServiceLink) bool { return l.ServiceID == serviceID }) {
				// only cancelled history remains
				return ErrInvalidTransition
			}
			return ErrLinkNotFound
		}

		now := s.Now()
		switch link.State {
		case entity.LinkPending:
			// never billed, no history to preserve
			if err := r.DeleteLink(ctx, link.ID); err != nil {
				return err
			}
		case entity.LinkActive:
			until := billing.NextCutAfter(asg.AnchorDate, now)
			link.State = entity.LinkCancelled
			link.EffectiveUntil = &until
			if err := r.UpdateLink(ctx, link); err != nil {
				return err
			}
		default:
			return ErrInvalidTransition
		}

		out, err = composeAt(ctx, r, asg, unit, now)
		return err
	})
	if err != nil {
		return billing.Breakdown{}, err
	}
	return out, nil
}

// Links returns every service link of the assignment, billable or not.
func (s *Subscription) Links(ctx context.Context, assignmentID int64) ([]*entity.ServiceLink, error) {
	if assignmentID <= 0 {
		return nil, ErrInvalidID
	}
	if _, err := s.Br.GetAssignment(ctx, assignmentID); err != nil {
		return nil, err
	}
	return s.Br.ListLinks(ctx, assignmentID)
}

// CurrentBreakdown composes the price breakdown over the links billable
// right now.
func (s *Subscription) CurrentBreakdown(ctx context.Context, assignmentID int64) (billing.Breakdown, error) {
	if assignmentID <= 0 {
		return billing.Breakdown{}, ErrInvalidID
	}
	asg, unit, err := loadAssignment(ctx, s.Br, assignmentID)
	if err != nil {
		return billing.Breakdown{}, err
	}
	return composeAt(ctx, s.Br, asg, unit, s.Now())
}

// Preinvoice projects the breakdown onto the next cycle cut. When a pending
// link starts beyond the immediate cut, the projection advances cut by cut
// until the whole billable set is settled, so the tenant is notified of the
// first invoice that reflects everything they have committed to.
func (s *Subscription) Preinvoice(ctx context.Context, assignmentID int64) (billing.Preinvoice, error) {
	if assignmentID <= 0 {
		return billing.Preinvoice{}, ErrInvalidID
	}
	asg, unit, err := loadAssignment(ctx, s.Br, assignmentID)
	if err != nil {
		return billing.Preinvoice{}, err
	}
	links, err := s.Br.ListLinks(ctx, assignmentID)
	if err != nil {
		return billing.Preinvoice{}, err
	}

	cut := billing.NextCutAfter(asg.AnchorDate, s.Now())
	for hasPendingAfter(links, cut) {
		cut = billing.NextCutAfter(asg.AnchorDate, cut)
	}

	b, err := composeLinks(ctx, s.Br, asg, unit, links, cut)
	if err != nil {
		return billing.Preinvoice{}, err
	}
	return b.Preinvoice(cut), nil
}

// SendPreinvoice projects the upcoming charges and mails them to the tenant.
// The projection is returned so the boundary can echo what was sent.
func (s *Subscription) SendPreinvoice(ctx context.Context, assignmentID int64) (billing.Preinvoice, error) {
	inv, err := s.Preinvoice(ctx, assignmentID)
	if err != nil {
		return billing.Preinvoice{}, err
	}
	asg, err := s.Br.GetAssignment(ctx, assignmentID)
	if err != nil {
		return billing.Preinvoice{}, err
	}
	contact, err := s.Br.GetTenantContact(ctx, asg.TenantID)
	if err != nil {
		return billing.Preinvoice{}, err
	}
	if contact.Email == "" {
		return billing.Preinvoice{}, ErrTenantNoEmail
	}
	if err := s.Sender.Send(ctx, *contact, inv); err != nil {
		return billing.Preinvoice{}, err
	}
	return inv, nil
}

// loadAssignment resolves the assignment together with its unit. A missing
// unit surfaces as a missing assignment: the aggregate is incomplete either
// way.
func loadAssignment(ctx context.Context, r BillingRepository, id int64) (*entity.Assignment, *entity.Unit, error) {
	asg, err := r.GetAssignment(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	unit, err := r.GetUnit(ctx, asg.UnitID)
	if err != nil {
		return nil, nil, err
	}
	return asg, unit, nil
}

// composeAt builds the breakdown over the links billable at the given
// instant, re-reading the link set through r.
func composeAt(ctx context.Context, r BillingRepository, asg *entity.Assignment, unit *entity.Unit, at time.Time) (billing.Breakdown, error) {
	links, err := r.ListLinks(ctx, asg.ID)
	if err != nil {
		return billing.Breakdown{}, err
	}
	return composeLinks(ctx, r, asg, unit, links, at)
}

func composeLinks(ctx context.Context, r BillingRepository, asg *entity.Assignment, unit *entity.Unit, links []*entity.ServiceLink, at time.Time) (billing.Breakdown, error) {
	billable := lo.Filter(links, func(l *entity.ServiceLink, _ int) bool {
		return l.BillableAt(at)
	})

	entries := make([]billing.Entry, 0, len(billable))
	for _, l := range billable {
		svc, err := r.GetService(ctx, l.ServiceID)
		if err != nil {
			return billing.Breakdown{}, err
		}
		entries = append(entries, billing.Entry{Service: svc, Link: l})
	}
	return billing.Compose(asg.ID, unit, entries), nil
}

// offered checks membership of the service in the unit's offered list: by id
// when the owner recorded one, else by trimmed case-insensitive name. The
// loose matching mirrors how the JSONB descriptions were written.
func offered(unit *entity.Unit, svc *entity.Service) bool {
	return lo.SomeBy(unit.Details.Services, func(o entity.OfferedService) bool {
		if o.ID != nil {
			return *o.ID == svc.ID
		}
		return strings.EqualFold(strings.TrimSpace(o.Name), strings.TrimSpace(svc.Name))
	})
}

func hasPendingAfter(links []*entity.ServiceLink, cut time.Time) bool {
	return lo.SomeBy(links, func(l *entity.ServiceLink) bool {
		return l.State == entity.LinkPending && l.EffectiveFrom != nil && l.EffectiveFrom.After(cut)
	})
}
