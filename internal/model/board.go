package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Board is the persisted board row. Columns and tasks are embedded JSON
// documents so a board is replaced as a single unit.
type Board struct {
	ID          string     `gorm:"column:id;primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Description string     `gorm:"column:description;not null"`
	Columns     ColumnList `gorm:"column:columns;type:jsonb;not null"`
	Tasks       TaskList   `gorm:"column:tasks;type:jsonb;not null"`
	Version     int64      `gorm:"column:version;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Board) TableName() string {
	return "boards"
}

type Column struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// NormalizePriority maps empty or unknown priorities to medium.
func NormalizePriority(p string) string {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	default:
		return PriorityMedium
	}
}

// TaskRecord is a task as stored: user references are plain ids.
type TaskRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	DueDate     *Date     `json:"dueDate,omitempty"`
	AssignedTo  []string  `json:"assignedTo"`
	CreatedBy   string    `json:"createdBy"`
	ColumnID    string    `json:"columnId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ColumnList []Column

func (l ColumnList) Value() (driver.Value, error) {
	if l == nil {
		l = ColumnList{}
	}
	return marshalJSONB([]Column(l))
}

func (l *ColumnList) Scan(src any) error {
	return scanJSONB(src, (*[]Column)(l))
}

type TaskList []TaskRecord

func (l TaskList) Value() (driver.Value, error) {
	if l == nil {
		l = TaskList{}
	}
	return marshalJSONB([]TaskRecord(l))
}

func (l *TaskList) Scan(src any) error {
	return scanJSONB(src, (*[]TaskRecord)(l))
}

func marshalJSONB(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSONB(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}
}
