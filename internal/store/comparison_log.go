package store

import (
	"fmt"

	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
)

// CreateComparisonLog 记录一次对账操作，返回日志 ID
func (s *Store) CreateComparisonLog(entry *model.ComparisonLog) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO comparison_logs (
			comparison_id, username,
			file1_name, file1_size, file2_name, file2_size,
			records_compared, differences_found
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ComparisonID, entry.Username,
		entry.File1Name, entry.File1Size, entry.File2Name, entry.File2Size,
		entry.RecordsCompared, entry.DifferencesFound)
	if err != nil {
		return 0, fmt.Errorf("failed to create comparison log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get comparison log id: %w", err)
	}
	return id, nil
}

// ListComparisonLogs 最近的对账日志，按时间倒序，limit<=0 时返回全部
func (s *Store) ListComparisonLogs(limit int) ([]*model.ComparisonLog, error) {
	query := `
		SELECT id, comparison_id, username,
			file1_name, file1_size, file2_name, file2_size,
			records_compared, differences_found, created_at
		FROM comparison_logs ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparison logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*model.ComparisonLog, 0)
	for rows.Next() {
		entry := &model.ComparisonLog{}
		if err := rows.Scan(
			&entry.ID, &entry.ComparisonID, &entry.Username,
			&entry.File1Name, &entry.File1Size, &entry.File2Name, &entry.File2Size,
			&entry.RecordsCompared, &entry.DifferencesFound, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comparison log: %w", err)
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
