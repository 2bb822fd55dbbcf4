package store

import (
	"database/sql"
	"fmt"

	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
)

// CreateUser 创建用户，返回用户 ID
func (s *Store) CreateUser(username, email, passwordHash string, isAdmin bool) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO users (username, email, password_hash, is_admin)
		VALUES (?, ?, ?, ?)
	`, username, email, passwordHash, isAdmin)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}
	return id, nil
}

// GetUserByUsername 按用户名查找用户，不存在时返回 nil
func (s *Store) GetUserByUsername(username string) (*model.User, error) {
	u := &model.User{}
	err := s.db.QueryRow(`
		SELECT id, username, email, password_hash, is_admin, created_at
		FROM users WHERE username = ?
	`, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// GetUserByEmail 按邮箱查找用户，不存在时返回 nil
func (s *Store) GetUserByEmail(email string) (*model.User, error) {
	u := &model.User{}
	err := s.db.QueryRow(`
		SELECT id, username, email, password_hash, is_admin, created_at
		FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// ListUsers 列出全部用户（不带密码散列），按创建顺序排列
func (s *Store) ListUsers() ([]*model.User, error) {
	rows, err := s.db.Query(`
		SELECT id, username, email, is_admin, created_at
		FROM users ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		u := &model.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsers 用户总数
func (s *Store) CountUsers() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
