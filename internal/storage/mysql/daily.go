package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kolonnen-backend/internal/aggregation"
	"kolonnen-backend/internal/storage"
)

const dateLayout = "2006-01-02"

func (s *Storage) GetDailyRecords(ctx context.Context, filter storage.DailyFilter) ([]aggregation.DailyRecord, error) {
	const op = "storage.mysql.GetDailyRecords"

	query := `SELECT id, date, kolonne_id,
		employees_count, employees_plan, hours_per_employee, hours_plan,
		planned_revenue, actual_revenue, rev_per_employee, rev_per_hour, has_entries
		FROM daily_reports
		WHERE date BETWEEN ? AND ?`
	args := []interface{}{filter.From.Format(dateLayout), filter.To.Format(dateLayout)}

	if filter.KolonneID != "" {
		query += " AND kolonne_id = ?"
		args = append(args, filter.KolonneID)
	}
	query += " ORDER BY date ASC, kolonne_id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var records []aggregation.DailyRecord
	for rows.Next() {
		record, err := scanDailyRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

func (s *Storage) GetDailyReportByID(ctx context.Context, id string) (*aggregation.DailyRecord, error) {
	const op = "storage.mysql.GetDailyReportByID"

	row := s.db.QueryRowContext(ctx, `SELECT id, date, kolonne_id,
		employees_count, employees_plan, hours_per_employee, hours_plan,
		planned_revenue, actual_revenue, rev_per_employee, rev_per_hour, has_entries
		FROM daily_reports WHERE id = ?`, id)

	record, err := scanDailyRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: report %s: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &record, nil
}

func (s *Storage) SaveDailyReport(ctx context.Context, record aggregation.DailyRecord) error {
	const op = "storage.mysql.SaveDailyReport"

	_, err := s.db.ExecContext(ctx, `INSERT INTO daily_reports
		(id, date, kolonne_id,
		 employees_count, employees_plan, hours_per_employee, hours_plan,
		 planned_revenue, actual_revenue, rev_per_employee, rev_per_hour, has_entries)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Date, record.KolonneID,
		record.EmployeesCount, record.EmployeesPlan, record.HoursPerEmployee, record.HoursPlan,
		record.PlannedRevenue, record.ActualRevenue, record.RevPerEmployee, record.RevPerHour, record.HasEntries,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) UpdateDailyReport(ctx context.Context, record aggregation.DailyRecord) error {
	const op = "storage.mysql.UpdateDailyReport"

	result, err := s.db.ExecContext(ctx, `UPDATE daily_reports SET
		date = ?, kolonne_id = ?,
		employees_count = ?, employees_plan = ?, hours_per_employee = ?, hours_plan = ?,
		planned_revenue = ?, actual_revenue = ?, rev_per_employee = ?, rev_per_hour = ?, has_entries = ?
		WHERE id = ?`,
		record.Date, record.KolonneID,
		record.EmployeesCount, record.EmployeesPlan, record.HoursPerEmployee, record.HoursPlan,
		record.PlannedRevenue, record.ActualRevenue, record.RevPerEmployee, record.RevPerHour, record.HasEntries,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: report %s: %w", op, record.ID, storage.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDailyRecord(row rowScanner) (aggregation.DailyRecord, error) {
	var (
		record           aggregation.DailyRecord
		employeesCount   sql.NullFloat64
		employeesPlan    sql.NullFloat64
		hoursPerEmployee sql.NullFloat64
		hoursPlan        sql.NullFloat64
		plannedRevenue   sql.NullFloat64
		actualRevenue    sql.NullFloat64
		revPerEmployee   sql.NullFloat64
		revPerHour       sql.NullFloat64
		hasEntries       sql.NullBool
	)

	err := row.Scan(&record.ID, &record.Date, &record.KolonneID,
		&employeesCount, &employeesPlan, &hoursPerEmployee, &hoursPlan,
		&plannedRevenue, &actualRevenue, &revPerEmployee, &revPerHour, &hasEntries)
	if err != nil {
		return aggregation.DailyRecord{}, err
	}

	record.EmployeesCount = employeesCount.Float64
	record.EmployeesPlan = employeesPlan.Float64
	record.HoursPerEmployee = hoursPerEmployee.Float64
	record.HoursPlan = hoursPlan.Float64
	record.PlannedRevenue = plannedRevenue.Float64
	record.ActualRevenue = actualRevenue.Float64
	if revPerEmployee.Valid {
		record.RevPerEmployee = &revPerEmployee.Float64
	}
	if revPerHour.Valid {
		record.RevPerHour = &revPerHour.Float64
	}
	if hasEntries.Valid {
		record.HasEntries = &hasEntries.Bool
	}
	return record, nil
}
