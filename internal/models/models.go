// file: internal/models/models.go
// version: 1.0.0
// guid: 4f6a8c0d-2e4b-4c6d-8e0a-1b3d5f7a9c1e

package models

// Record types for the swim-school backend. Field names mirror the wire
// contract (`_id` identifiers, snake_case timestamps); timestamps stay
// strings because the backend is not consistent about formats.

// Page is a normalized slice of a paginated listing.
type Page[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

// User is the account shape shared by students, instructors, and staff.
type User struct {
	ID        string   `json:"_id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Address   string   `json:"address,omitempty"`
	Roles     []string `json:"role,omitempty"`
	IsActive  bool     `json:"is_active"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

type Student struct {
	User
	ParentName  string `json:"parent_name,omitempty"`
	ParentPhone string `json:"parent_phone,omitempty"`
	BirthDate   string `json:"birthday,omitempty"`
	Note        string `json:"note,omitempty"`
}

type Instructor struct {
	User
	Degree     string   `json:"degree,omitempty"`
	Specialty  []string `json:"specialty,omitempty"`
	Experience int      `json:"experience,omitempty"`
}

type Staff struct {
	User
	Position string `json:"position,omitempty"`
}

// Course is a catalog entry; catalogs change rarely and are cached.
type Course struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Price         int      `json:"price"`
	SessionNumber int      `json:"session_number"`
	Duration      string   `json:"session_number_duration,omitempty"`
	Media         []string `json:"media,omitempty"`
	IsActive      bool     `json:"is_active"`
	CreatedAt     string   `json:"created_at,omitempty"`
}

// Class is a scheduled instance of a course with a member roster.
type Class struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	CourseID     string   `json:"course"`
	InstructorID string   `json:"instructor,omitempty"`
	PoolID       string   `json:"pool,omitempty"`
	Members      []string `json:"member,omitempty"`
	TotalMember  int      `json:"total_member"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

type Pool struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Type     string `json:"type,omitempty"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"is_active"`
}

// Slot is a bookable time window in the weekly grid.
type Slot struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Permission maps a module action to the roles allowed to perform it.
type Permission struct {
	ID          string   `json:"_id"`
	Module      string   `json:"module"`
	Action      string   `json:"action"`
	Roles       []string `json:"role,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ReviewRequest is one item in the data-review approval queue: a proposed
// change held until a manager approves or rejects it.
type ReviewRequest struct {
	ID          string `json:"_id"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	RequestedBy string `json:"created_by,omitempty"`
	Payload     any    `json:"data,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ScheduleEntry is one cell of the scheduling calendar.
type ScheduleEntry struct {
	ID      string `json:"_id"`
	Date    string `json:"date"`
	SlotID  string `json:"slot"`
	ClassID string `json:"classroom"`
	PoolID  string `json:"pool,omitempty"`
}

type Tenant struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// LoginResult carries the bearer token the backend issues plus the
// authenticated user record.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
