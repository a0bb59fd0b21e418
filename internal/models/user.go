package models

import "time"

// ApprovalStatus tracks a student application through review.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// User represents a portal account stored in the users table. Visitors never
// get a row; they exist only as issued tokens.
type User struct {
	ID           string         `db:"id" json:"id"`
	Username     string         `db:"username" json:"username"`
	PasswordHash string         `db:"password_hash" json:"-"`
	FullName     string         `db:"full_name" json:"full_name"`
	Role         Role           `db:"role" json:"role"`
	Approval     ApprovalStatus `db:"approval" json:"approval"`
	ClassName    string         `db:"class_name" json:"class_name"`
	ClassSection string         `db:"class_section" json:"class_section"`
	LastLogin    *time.Time     `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// StudentApplication is the submitted-but-unreviewed signup payload as the
// admin console lists it.
type StudentApplication struct {
	ID           string         `db:"id" json:"id"`
	Username     string         `db:"username" json:"username"`
	FullName     string         `db:"full_name" json:"full_name"`
	ClassName    string         `db:"class_name" json:"class_name"`
	ClassSection string         `db:"class_section" json:"class_section"`
	Status       ApprovalStatus `db:"status" json:"status"`
	SubmittedAt  time.Time      `db:"submitted_at" json:"submitted_at"`
	ReviewedBy   *string        `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time     `db:"reviewed_at" json:"reviewed_at,omitempty"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
