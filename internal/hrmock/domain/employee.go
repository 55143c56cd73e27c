// Package domain holds the employee records served by the mock HR
// identity service.
package domain

import "time"

// Employee is an HR directory record. ID is a ULID assigned at creation;
// UserID is the login identifier printed on the physical badge.
type Employee struct {
	ID           string
	UserID       string
	FullName     string
	Department   string
	Email        string
	PhoneNumber  string
	PasswordHash string
	CreatedAt    time.Time
}
