package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// LinkState - lifecycle state of a service link
type LinkState string

const (
	// LinkPending - scheduled for a future cycle cut, not billable yet
	LinkPending LinkState = "pending"
	// LinkActive - currently billable
	LinkActive LinkState = "active"
	// LinkCancelled - terminated, billable until EffectiveUntil
	LinkCancelled LinkState = "cancelled"
)

// Assignment - a tenant's claim on a rental unit; anchors the billing cycle
type Assignment struct {
	// ID - assignment identifier
	ID int64
	// TenantID - identifier of the tenant holding the unit
	TenantID int64
	// UnitID - identifier of the rented unit
	UnitID int64
	// AnchorDate - when the tenancy began; every cycle cut derives from it
	AnchorDate time.Time
}

// Service - catalog entry for a recurring service
type Service struct {
	// ID - service identifier
	ID int64
	// Name - display name of the service
	Name string
	// Price - current catalog price per month
	Price decimal.Decimal
	// IsBase - bundled utility, auto-provisioned, not tenant-manageable
	IsBase bool
	// IsActive - catalog visibility
	IsActive bool
}

// OfferedService - entry of a unit's offered-services list (stored as JSONB,
// historically loose: entries may carry an id, a name, or both)
type OfferedService struct {
	ID    *int64 `json:"id,omitempty"`
	Name  string `json:"nombre,omitempty"`
	Price string `json:"precio,omitempty"`
}

// UnitDetails - free-form unit description persisted as JSONB
type UnitDetails struct {
	Services []OfferedService `json:"servicios,omitempty"`
}

// Unit - rentable unit with its base monthly price
type Unit struct {
	// ID - unit identifier
	ID int64
	// PropertyID - owning property
	PropertyID int64
	// Name - display name of the unit
	Name string
	// Price - base monthly rent
	Price decimal.Decimal
	// Details - owner-maintained description, including offered services
	Details UnitDetails
}

// ServiceLink - join record between an assignment and a service, carrying
// lifecycle state and the price snapshot taken at subscription time
type ServiceLink struct {
	// ID - link identifier
	ID int64
	// AssignmentID - owning assignment
	AssignmentID int64
	// ServiceID - subscribed service
	ServiceID int64
	// State - pending, active or cancelled
	State LinkState
	// PriceSnapshot - catalog price captured at creation; never recalculated
	PriceSnapshot *decimal.Decimal
	// EffectiveFrom - when the charge starts applying
	EffectiveFrom *time.Time
	// EffectiveUntil - when the charge stops applying; nil = open-ended
	EffectiveUntil *time.Time
	// AddedAt - audit timestamp, not used in billing logic
	AddedAt time.Time
}

// BillableAt reports whether the link belongs to the eligible-for-billing set
// at the given instant: not past its end date, and either already active,
// cancelled but paid through a future end date, or pending with its start
// date reached.
func (l *ServiceLink) BillableAt(now time.Time) bool {
	if l.EffectiveUntil != nil && !l.EffectiveUntil.After(now) {
		return false
	}
	switch l.State {
	case LinkActive:
		return true
	case LinkCancelled:
		return l.EffectiveUntil != nil
	case LinkPending:
		return l.EffectiveFrom != nil && !l.EffectiveFrom.After(now)
	}
	return false
}

// TenantContact - the slice of a tenant record the notifier needs
type TenantContact struct {
	// ID - tenant identifier
	ID int64
	// Name - tenant display name
	Name string
	// Email - delivery address for pre-invoices; may be empty
	Email string
}

// ParseUnitDetails decodes the JSONB unit description, tolerating null/empty.
func ParseUnitDetails(raw []byte) (UnitDetails, error) {
	var d UnitDetails
	if len(raw) == 0 || string(raw) == "null" {
		return d, nil
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return UnitDetails{}, err
	}
	return d, nil
}
