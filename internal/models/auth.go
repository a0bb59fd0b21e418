package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the access token payload.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// VisitorLoginRequest carries the display name a visitor enters.
type VisitorLoginRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=64"`
}

// ApplicationRequest is the student signup payload.
type ApplicationRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=32"`
	Password     string `json:"password" validate:"required,min=8"`
	FullName     string `json:"full_name" validate:"required"`
	ClassName    string `json:"class_name" validate:"required"`
	ClassSection string `json:"class_section" validate:"required"`
}

// StudentLoginOutcome enumerates the possible results of a student login
// attempt. pending and rejected do not carry a token.
type StudentLoginOutcome string

const (
	StudentLoginPending            StudentLoginOutcome = "pending"
	StudentLoginApproved           StudentLoginOutcome = "approved"
	StudentLoginRejected           StudentLoginOutcome = "rejected"
	StudentLoginInvalidCredentials StudentLoginOutcome = "invalidCredentials"
)

// LoginResponse is returned to any successfully authenticated caller.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	Session     Session   `json:"session"`
}

// StudentLoginResponse wraps the outcome; Login is nil unless approved.
type StudentLoginResponse struct {
	Outcome StudentLoginOutcome `json:"outcome"`
	Login   *LoginResponse      `json:"login,omitempty"`
}
