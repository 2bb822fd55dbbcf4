package model

import "time"

// User 系统用户
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// ComparisonLog 一次对账操作的留痕记录（不保存表格内容，只记录规模）
type ComparisonLog struct {
	ID               int64     `json:"id"`
	ComparisonID     string    `json:"comparison_id"`
	Username         string    `json:"username"`
	File1Name        string    `json:"file1_name"`
	File1Size        int64     `json:"file1_size"`
	File2Name        string    `json:"file2_name"`
	File2Size        int64     `json:"file2_size"`
	RecordsCompared  int       `json:"records_compared"`
	DifferencesFound int       `json:"differences_found"`
	CreatedAt        time.Time `json:"created_at"`
}
