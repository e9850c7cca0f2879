package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"unirenta/internal/billing"
	"unirenta/internal/entity"
	"unirenta/internal/usecase"
)

// dbtx is the subset of pgxpool.Pool and pgx.Tx the queries need.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BillingRepository implements usecase.BillingRepository over Postgres.
// A repository handed to a WithTx callback is bound to that transaction.
type BillingRepository struct {
	pool *pgxpool.Pool
	db   dbtx
	tx   pgx.Tx
}

func NewBillingRepository(pool *pgxpool.Pool) *BillingRepository {
	return &BillingRepository{pool: pool, db: pool}
}

// WithTx runs fn against a repository bound to one transaction. Nested calls
// reuse the ambient transaction instead of opening a second one.
func (r *BillingRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tr usecase.BillingRepository) error) error {
	if r.tx != nil {
		return fn(ctx, r)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	bound := &BillingRepository{pool: r.pool, db: tx, tx: tx}
	if err := fn(ctx, bound); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *BillingRepository) GetAssignment(ctx context.Context, id int64) (*entity.Assignment, error) {
	q := `SELECT id, tenant_id, unit_id, anchor_date FROM assignments WHERE id = $1`
	if r.tx != nil {
		// serializes concurrent add/remove per assignment
		q += ` FOR UPDATE`
	}

	var a entity.Assignment
	err := r.db.QueryRow(ctx, q, id).Scan(&a.ID, &a.TenantID, &a.UnitID, &a.AnchorDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usecase.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("get assignment id=%d: %w", id, err)
	}
	return &a, nil
}

func (r *BillingRepository) GetUnit(ctx context.Context, id int64) (*entity.Unit, error) {
	var (
		u        entity.Unit
		priceRaw string
		details  []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, property_id, name, price::text, details FROM units WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.PropertyID, &u.Name, &priceRaw, &details)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// a dangling unit reference leaves the assignment aggregate unusable
			return nil, usecase.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("get unit id=%d: %w", id, err)
	}

	u.Price = billing.ParseAmount(priceRaw)
	u.Details, err = entity.ParseUnitDetails(details)
	if err != nil {
		return nil, fmt.Errorf("get unit id=%d: decode details: %w", id, err)
	}
	return &u, nil
}

func (r *BillingRepository) GetService(ctx context.Context, id int64) (*entity.Service, error) {
	s, err := scanService(r.db.QueryRow(ctx,
		`SELECT id, name, price::text, is_base, is_active FROM services WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usecase.ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service id=%d: %w", id, err)
	}
	return s, nil
}

func (r *BillingRepository) ListServices(ctx context.Context, onlyAddons bool) ([]*entity.Service, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price::text, is_base, is_active
		   FROM services
		  WHERE is_active = TRUE AND (NOT $1 OR is_base = FALSE)
		  ORDER BY id`, onlyAddons)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return collectServices(rows)
}

func (r *BillingRepository) ListBaseServices(ctx context.Context) ([]*entity.Service, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price::text, is_base, is_active
		   FROM services
		  WHERE is_active = TRUE AND is_base = TRUE
		  ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list base services: %w", err)
	}
	return collectServices(rows)
}

func (r *BillingRepository) ListLinks(ctx context.Context, assignmentID int64) ([]*entity.ServiceLink, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, assignment_id, service_id, state, price_snapshot::text, effective_from, effective_until, added_at
		   FROM assignment_services
		  WHERE assignment_id = $1
		  ORDER BY id`, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("list links assignment_id=%d: %w", assignmentID, err)
	}
	defer rows.Close()

	var out []*entity.ServiceLink
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("list links assignment_id=%d: %w", assignmentID, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list links assignment_id=%d: %w", assignmentID, err)
	}
	return out, nil
}

func (r *BillingRepository) CreateLink(ctx context.Context, l *entity.ServiceLink) (*entity.ServiceLink, error) {
	if l == nil {
		return nil, usecase.ErrLinkNotFound
	}
	var snapshot *string
	if l.PriceSnapshot != nil {
		s := l.PriceSnapshot.String()
		snapshot = &s
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO assignment_services
		        (assignment_id, service_id, state, price_snapshot, effective_from, effective_until, added_at)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6, COALESCE($7, now()))
		 RETURNING id, added_at`,
		l.AssignmentID, l.ServiceID, string(l.State), snapshot, l.EffectiveFrom, l.EffectiveUntil, nilIfZero(l.AddedAt),
	).Scan(&l.ID, &l.AddedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// lost the race against a concurrent add of the same pair
			return nil, usecase.ErrAlreadyActive
		}
		return nil, fmt.Errorf("create link: %w", err)
	}
	return l, nil
}

func (r *BillingRepository) UpdateLink(ctx context.Context, l *entity.ServiceLink) error {
	if l == nil {
		return usecase.ErrLinkNotFound
	}
	var snapshot *string
	if l.PriceSnapshot != nil {
		s := l.PriceSnapshot.String()
		snapshot = &s
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE assignment_services
		    SET state = $2, price_snapshot = $3::numeric, effective_from = $4, effective_until = $5
		  WHERE id = $1`,
		l.ID, string(l.State), snapshot, l.EffectiveFrom, l.EffectiveUntil)
	if err != nil {
		return fmt.Errorf("update link id=%d: %w", l.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrLinkNotFound
	}
	return nil
}

func (r *BillingRepository) DeleteLink(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assignment_services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete link id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrLinkNotFound
	}
	return nil
}

func (r *BillingRepository) GetTenantContact(ctx context.Context, tenantID int64) (*entity.TenantContact, error) {
	var c entity.TenantContact
	err := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(email, '') FROM tenants WHERE id = $1`, tenantID,
	).Scan(&c.ID, &c.Name, &c.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// assignment points at a tenant that no longer exists
			return nil, usecase.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("get tenant contact id=%d: %w", tenantID, err)
	}
	return &c, nil
}

func scanService(row pgx.Row) (*entity.Service, error) {
	var (
		s        entity.Service
		priceRaw string
	)
	if err := row.Scan(&s.ID, &s.Name, &priceRaw, &s.IsBase, &s.IsActive); err != nil {
		return nil, err
	}
	s.Price = billing.ParseAmount(priceRaw)
	return &s, nil
}

func collectServices(rows pgx.Rows) ([]*entity.Service, error) {
	defer rows.Close()
	var out []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read services: %w", err)
	}
	return out, nil
}

func scanLink(rows pgx.Rows) (*entity.ServiceLink, error) {
	var (
		l        entity.ServiceLink
		state    string
		snapshot *string
	)
	if err := rows.Scan(&l.ID, &l.AssignmentID, &l.ServiceID, &state, &snapshot,
		&l.EffectiveFrom, &l.EffectiveUntil, &l.AddedAt); err != nil {
		return nil, err
	}
	l.State = entity.LinkState(state)
	if snapshot != nil {
		d := billing.ParseAmount(*snapshot)
		l.PriceSnapshot = &d
	}
	return &l, nil
}

func nilIfZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
