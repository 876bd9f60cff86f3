// Package repositories implements persistence for simulation records over
// PostgreSQL.
package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/OLVCORE/smartimport/internal/domain/simulation"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// db is the subset of pgxpool.Pool the repository uses; narrowed for tests.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SimulationRepo stores simulations as a jsonb payload with a few extracted
// columns for listing.
type SimulationRepo struct {
	db     db
	logger logging.Logger
}

// NewSimulationRepo builds a repository over a pgx pool (or compatible).
func NewSimulationRepo(conn db, logger logging.Logger) *SimulationRepo {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SimulationRepo{db: conn, logger: logger.Named("simulation-repo")}
}

const insertSQL = `
INSERT INTO simulations (id, name, currency, payload, created_at)
VALUES ($1, $2, $3, $4, $5)`

// Save persists one completed simulation.
func (r *SimulationRepo) Save(ctx context.Context, sim *simulation.Simulation) error {
	payload, err := json.Marshal(sim)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode simulation")
	}
	_, err = r.db.Exec(ctx, insertSQL,
		sim.ID, sim.Request.Name, sim.Request.Currency, payload, sim.CreatedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSimulationSaveFailed, "failed to persist simulation").
			WithDetail("id=" + sim.ID.String())
	}
	r.logger.Debug("simulation saved", logging.String("id", sim.ID.String()))
	return nil
}

const selectByIDSQL = `SELECT payload FROM simulations WHERE id = $1`

// GetByID loads one simulation by identifier.
func (r *SimulationRepo) GetByID(ctx context.Context, id uuid.UUID) (*simulation.Simulation, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, selectByIDSQL, id).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, errors.New(errors.ErrCodeSimulationNotFound, "simulation not found").
			WithDetail("id=" + id.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load simulation")
	}

	var sim simulation.Simulation
	if err := json.Unmarshal(payload, &sim); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode simulation payload")
	}
	return &sim, nil
}

const listRecentSQL = `
SELECT payload FROM simulations ORDER BY created_at DESC LIMIT $1`

// ListRecent returns the most recently created simulations, newest first.
func (r *SimulationRepo) ListRecent(ctx context.Context, limit int) ([]*simulation.Simulation, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, listRecentSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list simulations")
	}
	defer rows.Close()

	var out []*simulation.Simulation
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan simulation row")
		}
		var sim simulation.Simulation
		if err := json.Unmarshal(payload, &sim); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode simulation payload")
		}
		out = append(out, &sim)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate simulation rows")
	}
	return out, nil
}

const deleteSQL = `DELETE FROM simulations WHERE id = $1`

// Delete removes one simulation.  Deleting an absent record is a not-found.
func (r *SimulationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteSQL, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete simulation")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeSimulationNotFound, "simulation not found").
			WithDetail("id=" + id.String())
	}
	return nil
}

//Personal.AI order the ending
