package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clubnight/shuttlecup/models"
)

// SQLiteTournamentRepository persists each tournament as a single JSON state
// blob, one row per tournament. The blob is the unit of consistency, which
// matches the last-write-wins model: patches load, modify and store the blob
// inside one transaction.
type SQLiteTournamentRepository struct {
	db *sql.DB
}

func NewSQLiteTournamentRepository(db *sql.DB) *SQLiteTournamentRepository {
	return &SQLiteTournamentRepository{db: db}
}

func (r *SQLiteTournamentRepository) Get(ctx context.Context, tournamentID string) (*models.TournamentState, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT state FROM tournaments WHERE id = ?`, tournamentID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTournamentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load tournament %s: %w", tournamentID, err)
	}
	return decodeState(raw)
}

func (r *SQLiteTournamentRepository) Replace(ctx context.Context, tournamentID string, state *models.TournamentState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode tournament %s: %w", tournamentID, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tournaments (id, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET state = excluded.state, updated_at = CURRENT_TIMESTAMP`,
		tournamentID, raw)
	if err != nil {
		return fmt.Errorf("store tournament %s: %w", tournamentID, err)
	}
	return nil
}

func (r *SQLiteTournamentRepository) Reset(ctx context.Context, tournamentID string) (*models.TournamentState, error) {
	state := models.NewDefaultState()
	if err := r.Replace(ctx, tournamentID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (r *SQLiteTournamentRepository) PatchMatch(ctx context.Context, tournamentID string, match models.Match) error {
	return r.patch(ctx, tournamentID, func(state *models.TournamentState) error {
		return applyMatchPatch(state, match)
	})
}

func (r *SQLiteTournamentRepository) PatchKnockoutMatch(ctx context.Context, tournamentID string, key string, match models.KnockoutMatch) error {
	return r.patch(ctx, tournamentID, func(state *models.TournamentState) error {
		return applyKnockoutPatch(state, key, match)
	})
}

func (r *SQLiteTournamentRepository) patch(ctx context.Context, tournamentID string, apply func(*models.TournamentState) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw []byte
	err = tx.QueryRowContext(ctx,
		`SELECT state FROM tournaments WHERE id = ?`, tournamentID).Scan(&raw)
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
		`UPDATE tournaments SET state = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		updated, tournamentID); err != nil {
		return fmt.Errorf("store tournament %s: %w", tournamentID, err)
	}
	return tx.Commit()
}

func decodeState(raw []byte) (*models.TournamentState, error) {
	var state models.TournamentState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode tournament state: %w", err)
	}
	return &state, nil
}
