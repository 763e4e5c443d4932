package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
)

const orderColumns = `id, number, requester_id, service_type, equipment_type, description, photo_url, message,
                      status, agent_note, driver_note, scheduled_date, shift, cancelled_at, created_at, updated_at, version`

var newOrderID = uuid.New

type orderRepository struct {
	storage *Storage
}

func scanOrder(row rowScanner) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Number, &o.RequesterID, &o.ServiceType, &o.EquipmentType, &o.Description,
		&o.PhotoURL, &o.Message, &o.Status, &o.AgentNote, &o.DriverNote, &o.ScheduledDate, &o.Shift,
		&o.CancelledAt, &o.CreatedAt, &o.UpdatedAt, &o.Version)
	return o, err
}

func (r *orderRepository) Create(ctx context.Context, in model.NewOrder) (*model.Order, error) {
	ctx, cancel := r.storage.bound(ctx)
	defer cancel()

	const query = `INSERT INTO orders (id, requester_id, service_type, equipment_type, description, photo_url, message, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING number, created_at, updated_at, version`
	o := model.Order{
		ID:            newOrderID(),
		RequesterID:   in.RequesterID,
		ServiceType:   in.ServiceType,
		EquipmentType: in.EquipmentType,
		Description:   in.Description,
		PhotoURL:      in.PhotoURL,
		Message:       in.Message,
		Status:        model.StatusAwaitingAnalysis,
	}
	err := r.storage.pool.QueryRow(ctx, query, o.ID, o.RequesterID, string(o.ServiceType), string(o.EquipmentType),
		o.Description, o.PhotoURL, o.Message, int16(o.Status)).Scan(&o.Number, &o.CreatedAt, &o.UpdatedAt, &o.Version)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, fmt.Errorf("requester %s: %w", in.RequesterID, domainErrors.ErrNotFound)
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number int64) (*model.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE number=$1`, number)
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
}

func (r *orderRepository) getOne(ctx context.Context, query string, arg any) (*model.Order, error) {
	ctx, cancel := r.storage.bound(ctx)
	defer cancel()

	o, err := scanOrder(r.storage.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Fetch(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	ctx, cancel := r.storage.bound(ctx)
	defer cancel()

	query, args := buildFetchQuery(filter)
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// buildFetchQuery renders the filter as a parameterised SELECT. The number
// column breaks ties so repeated calls return a stable sequence.
func buildFetchQuery(filter model.OrderFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	if len(filter.Statuses) > 0 {
		statuses := make([]int16, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = int16(st)
		}
		args = append(args, statuses)
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if len(filter.RequesterIDs) > 0 {
		args = append(args, filter.RequesterIDs)
		where = append(where, fmt.Sprintf("requester_id = ANY($%d)", len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + orderColumns + ` FROM orders`)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	dir := "ASC"
	if filter.Descending {
		dir = "DESC"
	}
	switch filter.SortBy {
	case model.SortByCancelledAt:
		fmt.Fprintf(&b, " ORDER BY cancelled_at %s NULLS LAST, number %s", dir, dir)
	default:
		fmt.Fprintf(&b, " ORDER BY created_at %s, number %s", dir, dir)
	}

	return b.String(), args
}

// Update writes the patch only while the row still carries expectedVersion
// and appends the audit record inside the same transaction.
func (r *orderRepository) Update(ctx context.Context, id uuid.UUID, expectedVersion int64, patch model.OrderPatch, record model.TransitionRecord) (*model.Order, error) {
	ctx, cancel := r.storage.bound(ctx)
	defer cancel()

	const updateQuery = `UPDATE orders
                         SET status=$1, agent_note=$2, driver_note=$3, scheduled_date=$4, shift=$5, cancelled_at=$6,
                             updated_at=NOW(), version=version+1
                         WHERE id=$7 AND version=$8
                         RETURNING ` + orderColumns
	const existsQuery = `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`
	const auditQuery = `INSERT INTO order_transitions
                        (order_id, from_status, to_status, actor_id, actor_role, annotation, scheduled_date, shift)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var updated model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		updated, err = scanOrder(tx.QueryRow(ctx, updateQuery,
			int16(patch.Status), patch.AgentNote, patch.DriverNote, patch.ScheduledDate, shiftArg(patch.Shift),
			patch.CancelledAt, id, expectedVersion))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			var exists bool
			if err := tx.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domainErrors.ErrNotFound
			}
			return domainErrors.ErrConflict
		}

		_, err = tx.Exec(ctx, auditQuery, id, int16(record.From), int16(record.To), record.ActorID,
			string(record.ActorRole), record.Annotation, record.ScheduledDate, shiftArg(record.Shift))
		return err
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrConflict) {
			r.storage.logger.Debug("conditional update lost", "order_id", id, "expected_version", expectedVersion)
		}
		return nil, err
	}
	return &updated, nil
}

func (r *orderRepository) History(ctx context.Context, orderID uuid.UUID) ([]model.TransitionRecord, error) {
	ctx, cancel := r.storage.bound(ctx)
	defer cancel()

	const query = `SELECT id, order_id, from_status, to_status, actor_id, actor_role, annotation, scheduled_date, shift, created_at
                   FROM order_transitions WHERE order_id=$1 ORDER BY created_at, id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TransitionRecord
	for rows.Next() {
		var rec model.TransitionRecord
		if err := rows.Scan(&rec.ID, &rec.OrderID, &rec.From, &rec.To, &rec.ActorID, &rec.ActorRole,
			&rec.Annotation, &rec.ScheduledDate, &rec.Shift, &rec.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func shiftArg(s *model.Shift) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
