package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Notice is a school-wide announcement.
type Notice struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Author    string    `db:"author" json:"author"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Homework is an assignment entry.
type Homework struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Subject   string    `db:"subject" json:"subject"`
	Teacher   string    `db:"teacher" json:"teacher"`
	DueDate   string    `db:"due_date" json:"due_date"`
	Author    string    `db:"author" json:"author"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RoutinePeriod is one slot inside a routine day.
type RoutinePeriod struct {
	PeriodNumber int    `json:"period_number"`
	Subject      string `json:"subject"`
	Teacher      string `json:"teacher"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// RoutineDay groups the periods of a single weekday.
type RoutineDay struct {
	DayName string          `json:"day_name"`
	Periods []RoutinePeriod `json:"periods"`
}

// RoutineDays is stored as a JSONB column.
type RoutineDays []RoutineDay

// Value implements driver.Valuer.
func (d RoutineDays) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *RoutineDays) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = nil
		return nil
	default:
		return fmt.Errorf("unsupported routine days source %T", src)
	}
}

// RoutineSet is a full weekly class routine.
type RoutineSet struct {
	ID        int64       `db:"id" json:"id"`
	Days      RoutineDays `db:"days" json:"days"`
	Author    string      `db:"author" json:"author"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}

// ClassTimeSlot is a single entry of the class time schedule.
type ClassTimeSlot struct {
	ID        int64     `db:"id" json:"id"`
	WeekDay   string    `db:"week_day" json:"week_day"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Subject   string    `db:"subject" json:"subject"`
	Teacher   string    `db:"teacher" json:"teacher"`
	Author    string    `db:"author" json:"author"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
