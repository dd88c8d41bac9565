package db

import (
	"fmt"

	"github.com/mkravets/gridact/model"
)

// CountByStatus aggregates task counts per status column, in the fixed
// board order. Statuses with no tasks are reported with a zero count so
// the board always renders every column.
func (s *SQLiteStorage) CountByStatus() ([]model.StatusCount, error) {
	rows, err := s.db.Query(
		`select status, count(*) as cnt
	    from tasks
	    group by status`)
	if err != nil {
		return nil, fmt.Errorf("could not count tasks by status: %w", err)
	}

	defer rows.Close()

	counts := make(map[model.Status]int)

	for rows.Next() {
		var status string
		var count int

		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("could not scan status count: %w", err)
		}

		counts[model.Status(status)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read status counts: %w", err)
	}

	result := make([]model.StatusCount, 0, len(model.Statuses()))
	for _, status := range model.Statuses() {
		result = append(result, model.StatusCount{Status: status, Count: counts[status]})
	}

	return result, nil
}
