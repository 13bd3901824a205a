package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"kolonnen-backend/internal/storage"
)

func (s *Storage) GetKolonnen(ctx context.Context) ([]storage.Kolonne, error) {
	const op = "storage.mysql.GetKolonnen"

	rows, err := s.db.QueryContext(ctx, `SELECT id, number, project FROM kolonnen ORDER BY number ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var kolonnen []storage.Kolonne
	for rows.Next() {
		var (
			kolonne storage.Kolonne
			project sql.NullString
		)
		if err := rows.Scan(&kolonne.ID, &kolonne.Number, &project); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if project.Valid {
			kolonne.Project = &project.String
		}
		kolonnen = append(kolonnen, kolonne)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return kolonnen, nil
}
