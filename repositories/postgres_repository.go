package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clubnight/shuttlecup/models"
)

// PostgresTournamentRepository is the remote-database variant of the state
// store, for a deployment shared between club locations. Same blob-per-row
// contract as the SQLite store.
type PostgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) *PostgresTournamentRepository {
	return &PostgresTournamentRepository{db: db}
}

func (r *PostgresTournamentRepository) Get(ctx context.Context, tournamentID string) (*models.TournamentState, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT state FROM tournaments WHERE id = $1`, tournamentID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTournamentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load tournament %s: %w", tournamentID, err)
	}
	return decodeState(raw)
}

func (r *PostgresTournamentRepository) Replace(ctx context.Context, tournamentID string, state *models.TournamentState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode tournament %s: %w", tournamentID, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tournaments (id, state, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()`,
		tournamentID, raw)
	if err != nil {
		return fmt.Errorf("store tournament %s: %w", tournamentID, err)
	}
	return nil
}

func (r *PostgresTournamentRepository) Reset(ctx context.Context, tournamentID string) (*models.TournamentState, error) {
	state := models.NewDefaultState()
	if err := r.Replace(ctx, tournamentID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (r *PostgresTournamentRepository) PatchMatch(ctx context.Context, tournamentID string, match models.Match) error {
	return r.patch(ctx, tournamentID, func(state *models.TournamentState) error {
		return applyMatchPatch(state, match)
	})
}

func (r *PostgresTournamentRepository) PatchKnockoutMatch(ctx context.Context, tournamentID string, key string, match models.KnockoutMatch) error {
	return r.patch(ctx, tournamentID, func(state *models.TournamentState) error {
		return applyKnockoutPatch(state, key, match)
	})
}

func (r *PostgresTournamentRepository) patch(ctx context.Context, tournamentID string, apply func(*models.TournamentState) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw []byte
	// FOR UPDATE serializes concurrent patches on the same tournament row.
	err = tx.QueryRowContext(ctx,
		`SELECT state FROM tournaments WHERE id = $1 FOR UPDATE`, tournamentID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTournamentNotFound
	}
	if err != nil {
		return fmt.Errorf("load tournament %s: %w", tournamentID, err)
	}

	state, err := decodeState(raw)
	if err != nil {
		return err
	}
	if err := apply(state); err != nil {
		return err
	}

	updated, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode tournament %s: %w", tournamentID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE tournaments SET state = $1, updated_at = NOW() WHERE id = $2`,
		updated, tournamentID); err != nil {
		return fmt.Errorf("store tournament %s: %w", tournamentID, err)
	}
	return tx.Commit()
}
