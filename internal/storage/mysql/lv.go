package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"kolonnen-backend/internal/lvimport"
)

// SaveLVRows upserts accepted import rows in one transaction.
// Re-importing a file with the same Positions-IDs updates the existing
// lines instead of duplicating them.
func (s *Storage) SaveLVRows(ctx context.Context, rows []lvimport.LVRow) error {
	const op = "storage.mysql.SaveLVRows"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO lv_rows
		(positions_id, kurztext, einheit, ep, kategorie)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		kurztext = VALUES(kurztext), einheit = VALUES(einheit),
		ep = VALUES(ep), kategorie = VALUES(kategorie)`)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		var kategorie sql.NullString
		if row.Kategorie != "" {
			kategorie = sql.NullString{String: row.Kategorie, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, row.PositionsID, row.Kurztext, row.Einheit, row.EP, kategorie); err != nil {
			return fmt.Errorf("%s: row %s: %w", op, row.PositionsID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) GetLVRows(ctx context.Context) ([]lvimport.LVRow, error) {
	const op = "storage.mysql.GetLVRows"

	rows, err := s.db.QueryContext(ctx, `SELECT positions_id, kurztext, einheit, ep, kategorie
		FROM lv_rows ORDER BY positions_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []lvimport.LVRow
	for rows.Next() {
		var (
			row       lvimport.LVRow
			kategorie sql.NullString
		)
		if err := rows.Scan(&row.PositionsID, &row.Kurztext, &row.Einheit, &row.EP, &kategorie); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		row.Kategorie = kategorie.String
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
