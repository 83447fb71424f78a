package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/escriturashoy/escrituras-api/internal/entity"
)

// Client and lead names are LEFT JOINed so an expediente whose lead was never
// recorded still comes back, with lead_name null.
const expedienteSelect = `
		SELECT
			e.id, e.client_id, e.lead_id, e.property_location, e.type, e.status, e.metadata,
			e.created_at, e.updated_at,
			c.name AS client_name,
			c.email AS client_email,
			l.name AS lead_name
		FROM expedientes e
		LEFT JOIN clients c ON e.client_id = c.id
		LEFT JOIN leads l ON e.lead_id = l.id`

type ExpedienteRepository struct {
	DB *sql.DB
}

var _ entity.ExpedienteRepositoryInterface = (*ExpedienteRepository)(nil)

func NewExpedienteRepository(db *sql.DB) *ExpedienteRepository {
	return &ExpedienteRepository{DB: db}
}

func (r *ExpedienteRepository) FindByID(ctx context.Context, id string) (*entity.Expediente, error) {
	query := expedienteSelect + `
		WHERE e.id = $1`

	exp, err := scanExpediente(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("expediente: find by id: %w", err)
	}
	return exp, nil
}

func (r *ExpedienteRepository) List(ctx context.Context, filter entity.ExpedienteFilter) ([]*entity.Expediente, int, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conditions = append(conditions, fmt.Sprintf("e.client_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)))
	}

	where := whereClause(conditions)

	query := fmt.Sprintf(`%s%s
		ORDER BY e.created_at DESC, e.id DESC LIMIT $%d OFFSET $%d`,
		expedienteSelect, where, len(args)+1, len(args)+2,
	)

	rows, err := r.DB.QueryContext(ctx, query, append(args, filter.Page.Limit, filter.Page.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("expediente: list: %w", err)
	}
	defer rows.Close()

	expedientes := []*entity.Expediente{}
	for rows.Next() {
		exp, err := scanExpediente(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("expediente: scan: %w", err)
		}
		expedientes = append(expedientes, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("expediente: iterate: %w", err)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM expedientes e"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("expediente: count: %w", err)
	}

	return expedientes, total, nil
}

func scanExpediente(row rowScanner) (*entity.Expediente, error) {
	exp := &entity.Expediente{}
	err := row.Scan(
		&exp.ID,
		&exp.ClientID,
		&exp.LeadID,
		&exp.PropertyLocation,
		&exp.Type,
		&exp.Status,
		&exp.Metadata,
		&exp.CreatedAt,
		&exp.UpdatedAt,
		&exp.ClientName,
		&exp.ClientEmail,
		&exp.LeadName,
	)
	if err != nil {
		return nil, err
	}
	return exp, nil
}
