package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/escriturashoy/escrituras-api/internal/entity"
)

// ClientRepository writes the clients that expedientes point at. It is a seed
// helper: the API has no client endpoints and cmd/api does not build one.
// Back-office tooling and the integration tests insert rows through it.
type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("client: %s already exists: %w", c.ID, err)
		}
		return fmt.Errorf("client: insert: %w", err)
	}
	return nil
}
