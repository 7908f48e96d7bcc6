// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// UserType represents which side of the marketplace an account belongs to.
type UserType string

const (
	// UserTypeWorker indicates a worker account that browses and applies to offers.
	UserTypeWorker UserType = "worker"
	// UserTypeCompany indicates a company account that posts offers and manages applicants.
	UserTypeCompany UserType = "company"
)

var userTypeLabels = map[UserType]string{
	UserTypeWorker:  "Worker",
	UserTypeCompany: "Company",
}

// String returns the string representation of the UserType.
func (t UserType) String() string {
	return string(t)
}

// IsValid checks if the UserType is a valid value.
func (t UserType) IsValid() bool {
	_, ok := userTypeLabels[t]

	return ok
}

// Label returns the display label for the UserType.
func (t UserType) Label() string {
	if label, ok := userTypeLabels[t]; ok {
		return label
	}

	return string(t)
}

// Identity holds the backend's view of the authenticated account, as returned
// by the identity-introspection endpoint and cached on the device.
type Identity struct {
	UserID   int64    // Numeric account id assigned by the backend.
	Email    string   // Login email.
	UserType UserType // worker or company.
	Verified bool     // Whether the account passed backend verification.
}

// WorkerProfile holds data specific to the worker role. It is fetched from the
// backend and displayed; no client-side state machine mutates it.
type WorkerProfile struct {
	ID         int64
	UserID     int64
	FirstName  string
	LastName   string
	Phone      string
	Bio        string
	Experience ExperienceLevel
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CompanyProfile holds data specific to the company role.
type CompanyProfile struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	Industry    string
	Website     string
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
