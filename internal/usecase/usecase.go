package usecase

import (
	"context"
	"errors"

	"unirenta/internal/billing"
	"unirenta/internal/entity"
)

//go:generate go run github.com/golang/mock/mockgen@v1.6.0 -destination=usecase_mock.go -package=usecase unirenta/internal/usecase BillingRepository,PreinvoiceSender

// Error - domain error with a stable machine-checkable kind. The boundary
// layer switches on the sentinel values below; Kind is what clients see.
type Error struct {
	Kind string
	msg  string
}

func (e *Error) Error() string { return e.msg }

var (
	ErrAssignmentNotFound   = &Error{Kind: "ASSIGNMENT_NOT_FOUND", msg: "assignment not found"}
	ErrServiceNotFound      = &Error{Kind: "SERVICE_NOT_FOUND_OR_INACTIVE", msg: "service not found or inactive"}
	ErrAlreadyActive        = &Error{Kind: "ALREADY_ACTIVE", msg: "service is already added to this assignment"}
	ErrAlreadyPending       = &Error{Kind: "ALREADY_PENDING", msg: "service is already scheduled to activate"}
	ErrBaseServiceImmutable = &Error{Kind: "BASE_SERVICE_IMMUTABLE", msg: "base services are provisioned automatically with the unit"}
	ErrNotOffered           = &Error{Kind: "NOT_OFFERED", msg: "service is not offered for this unit"}
	ErrLinkNotFound         = &Error{Kind: "LINK_NOT_FOUND", msg: "service is not linked to this assignment"}
	ErrInvalidTransition    = &Error{Kind: "INVALID_STATE_TRANSITION", msg: "operation not allowed in the current link state"}
	ErrTenantNoEmail        = &Error{Kind: "TENANT_NO_EMAIL", msg: "tenant has no email address"}
)

// ErrInvalidID - boundary input validation, not a domain state
var ErrInvalidID = errors.New("invalid id")

// BillingRepository - storage for assignments, units, the service catalog and
// the links between them. Reads issued through the repository passed to a
// WithTx callback see that transaction's snapshot.
type BillingRepository interface {
	// WithTx runs fn inside a single transaction, passing a repository bound
	// to it. fn returning an error rolls everything back.
	WithTx(ctx context.Context, fn func(ctx context.Context, r BillingRepository) error) error
	// GetAssignment - fetch a tenant-unit assignment by id
	GetAssignment(ctx context.Context, id int64) (*entity.Assignment, error)
	// GetUnit - fetch a unit by id
	GetUnit(ctx context.Context, id int64) (*entity.Unit, error)
	// GetService - fetch a catalog service by id, active or not
	GetService(ctx context.Context, id int64) (*entity.Service, error)
	// ListServices - active catalog entries; onlyAddons drops base services
	ListServices(ctx context.Context, onlyAddons bool) ([]*entity.Service, error)
	// ListBaseServices - active base services
	ListBaseServices(ctx context.Context) ([]*entity.Service, error)
	// ListLinks - all service links of an assignment, oldest first
	ListLinks(ctx context.Context, assignmentID int64) ([]*entity.ServiceLink, error)
	// CreateLink - persist a new link and return it with its id
	CreateLink(ctx context.Context, l *entity.ServiceLink) (*entity.ServiceLink, error)
	// UpdateLink - persist state/effective-date changes of an existing link
	UpdateLink(ctx context.Context, l *entity.ServiceLink) error
	// DeleteLink - hard-delete a link that never became effective
	DeleteLink(ctx context.Context, id int64) error
	// GetTenantContact - name and email for pre-invoice delivery
	GetTenantContact(ctx context.Context, tenantID int64) (*entity.TenantContact, error)
}

// PreinvoiceSender delivers a projected pre-invoice to a tenant. The engine
// only depends on this contract; transport lives in internal/notify.
type PreinvoiceSender interface {
	Send(ctx context.Context, to entity.TenantContact, inv billing.Preinvoice) error
}
