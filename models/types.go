package models

import "time"

// Moderator status constants
const (
	ModeratorPending  = "pending"
	ModeratorApproved = "approved"
	ModeratorRejected = "rejected"
)

// Alert severity constants
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Request types

type AlertRequest struct {
	Title     string     `json:"title" validate:"required,max=200"`
	Message   string     `json:"message" validate:"required,max=2000"`
	Severity  string     `json:"severity" validate:"required,oneof=info warning critical"`
	Region    string     `json:"region" validate:"max=100"`
	Active    *bool      `json:"active"` // defaults to true
	ExpiresAt *time.Time `json:"expires_at"`
}

type PriceRequest struct {
	Commodity string  `json:"commodity" validate:"required,max=100"`
	Market    string  `json:"market" validate:"required,max=100"`
	Price     float64 `json:"price" validate:"gt=0"`
	Unit      string  `json:"unit" validate:"required,max=30"`
	Currency  string  `json:"currency" validate:"required,alpha,len=3"`
}

type ScheduleRequest struct {
	RouteName     string `json:"route_name" validate:"required,max=100"`
	Origin        string `json:"origin" validate:"required,max=100"`
	Destination   string `json:"destination" validate:"required,max=100"`
	DepartureTime string `json:"departure_time" validate:"required,datetime=15:04"`
	Days          string `json:"days" validate:"max=100"`
	Operator      string `json:"operator" validate:"max=100"`
	Notes         string `json:"notes" validate:"max=500"`
}

type ModeratorApplyRequest struct {
	Email        string `json:"email" validate:"required,email,max=254"`
	DisplayName  string `json:"display_name" validate:"required,min=2,max=100"`
	Organization string `json:"organization" validate:"max=200"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Response types

type CreatedResponse struct {
	ID string `json:"id"`
}

type UpdatedResponse struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ModeratorStatusResponse struct {
	ModeratorID string `json:"moderator_id"`
	Status      string `json:"status"`
}

type ApproveModeratorResponse struct {
	ModeratorID string `json:"moderator_id"`
	Token       string `json:"token"`
}

type ContactResponse struct {
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// Domain types

type Alert struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Severity  string     `json:"severity"`
	Region    string     `json:"region"`
	Active    bool       `json:"active"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type MarketPrice struct {
	ID        string    `json:"id"`
	Commodity string    `json:"commodity"`
	Market    string    `json:"market"`
	Price     float64   `json:"price"`
	Unit      string    `json:"unit"`
	Currency  string    `json:"currency"`
	CreatedBy string    `json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TransportSchedule struct {
	ID            string    `json:"id"`
	RouteName     string    `json:"route_name"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime string    `json:"departure_time"` // HH:MM, local time
	Days          string    `json:"days"`
	Operator      string    `json:"operator"`
	Notes         string    `json:"notes"`
	CreatedBy     string    `json:"created_by"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Moderator struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name"`
	Organization string     `json:"organization"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Reference string    `json:"reference"`
	IPHash    string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
