package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/escriturashoy/escrituras-api/internal/entity"
)

const leadColumns = `id, name, email, phone, property_location, property_type, urgency, status, notes, created_at, updated_at`

type LeadRepository struct {
	DB *sql.DB
}

var _ entity.LeadRepositoryInterface = (*LeadRepository)(nil)

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Create inserts a new lead. Status is always written as 'nuevo'.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, name, email, phone, property_location, property_type, urgency, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, 'nuevo', $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.PropertyLocation,
		lead.PropertyType,
		lead.Urgency,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("lead: insert: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("lead: find by id: %w", err)
	}
	return lead, nil
}

// List returns one page of leads, newest first, plus the number of leads that
// match the filter regardless of the page.
func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, int, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := whereClause(conditions)

	query := fmt.Sprintf(
		`SELECT %s FROM leads%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		leadColumns, where, len(args)+1, len(args)+2,
	)

	rows, err := r.DB.QueryContext(ctx, query, append(args, filter.Page.Limit, filter.Page.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("lead: list: %w", err)
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("lead: scan: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("lead: iterate: %w", err)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM leads"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("lead: count: %w", err)
	}

	return leads, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	lead := &entity.Lead{}
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.PropertyLocation,
		&lead.PropertyType,
		&lead.Urgency,
		&lead.Status,
		&lead.Notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}
