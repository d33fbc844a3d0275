package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
)

type HistoryRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListByPlayer(ctx context.Context, playerID string) ([]entity.GameResult, error)
	List(ctx context.Context, limit int) ([]entity.GameResult, error)
}

type historyRepository struct {
	conn *sql.DB
}

func NewHistoryRepository(conn *sql.DB) HistoryRepository {
	return &historyRepository{
		conn: conn,
	}
}

// Save - stores the result; saving the same game twice keeps the first record.
func (that *historyRepository) Save(ctx context.Context, result *entity.GameResult) error {
	query := `INSERT OR IGNORE INTO game_results
		(game_id, area_id, x, o, x_score, o_score, winner, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.GameID, result.AreaID, result.X, result.O,
		result.XScore, result.OScore, result.Winner, result.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("can't save game result: %w", err)
	}

	return nil
}

func (that *historyRepository) ListByPlayer(ctx context.Context, playerID string) ([]entity.GameResult, error) {
	query := `SELECT game_id, area_id, x, o, x_score, o_score, winner, finished_at
		FROM game_results WHERE x = ? OR o = ? ORDER BY finished_at DESC, game_id`

	rows, err := that.conn.QueryContext(ctx, query, playerID, playerID)
	if err != nil {
		return nil, fmt.Errorf("can't list game results: %w", err)
	}

	return scanResults(rows)
}

func (that *historyRepository) List(ctx context.Context, limit int) ([]entity.GameResult, error) {
	query := `SELECT game_id, area_id, x, o, x_score, o_score, winner, finished_at
		FROM game_results ORDER BY finished_at DESC, game_id LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list game results: %w", err)
	}

	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]entity.GameResult, error) {
	defer rows.Close()

	results := make([]entity.GameResult, 0)
	for rows.Next() {
		var result entity.GameResult
		if err := rows.Scan(
			&result.GameID, &result.AreaID, &result.X, &result.O,
			&result.XScore, &result.OScore, &result.Winner, &result.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("can't scan game result: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read game results: %w", err)
	}

	return results, nil
}
