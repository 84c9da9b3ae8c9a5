package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"zko-backend/internal/storage"
)

const defaultRunsLimit = 100

// SaveRun пишет один завершённый прогон планирования.
func (s *Storage) SaveRun(ctx context.Context, run storage.PlanningRun) error {
	const op = "storage.mysql.SaveRun"

	query := `
		INSERT INTO planning_runs (
			run_id, zko_id, operator, state, overwrite, max_height_mm, max_pieces,
			pallet_count, total_pieces, initial_status, final_status, message, error,
			started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		run.RunID,
		run.ZkoID,
		run.Operator,
		run.State,
		run.Overwrite,
		run.MaxHeightMM,
		run.MaxPieces,
		run.PalletCount,
		run.TotalPieces,
		run.InitialStatus,
		run.FinalStatus,
		nullString(run.Message),
		nullString(run.Error),
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: ошибка записи прогона %s: %w", op, run.RunID, err)
	}

	return nil
}

// ListRuns: последние прогоны, новые сверху. ZkoID == 0 означает все заказы.
func (s *Storage) ListRuns(ctx context.Context, filter storage.RunFilter) ([]storage.PlanningRun, error) {
	const op = "storage.mysql.ListRuns"

	limit := filter.Limit
	if limit <= 0 || limit > defaultRunsLimit {
		limit = defaultRunsLimit
	}

	query := `
		SELECT id, run_id, zko_id, operator, state, overwrite, max_height_mm, max_pieces,
		       pallet_count, total_pieces, initial_status, final_status, message, error,
		       started_at, finished_at
		FROM planning_runs`
	var args []interface{}

	if filter.ZkoID > 0 {
		query += ` WHERE zko_id = ?`
		args = append(args, filter.ZkoID)
	}
	query += ` ORDER BY finished_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения журнала: %w", op, err)
	}
	defer rows.Close()

	runs := make([]storage.PlanningRun, 0)
	for rows.Next() {
		var (
			run     storage.PlanningRun
			message sql.NullString
			runErr  sql.NullString
		)

		err := rows.Scan(
			&run.ID,
			&run.RunID,
			&run.ZkoID,
			&run.Operator,
			&run.State,
			&run.Overwrite,
			&run.MaxHeightMM,
			&run.MaxPieces,
			&run.PalletCount,
			&run.TotalPieces,
			&run.InitialStatus,
			&run.FinalStatus,
			&message,
			&runErr,
			&run.StartedAt,
			&run.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки журнала: %w", op, err)
		}

		run.Message = message.String
		run.Error = runErr.String
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return runs, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
