package entity

import "time"

// Inquiry is a contact-form submission.
type Inquiry struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Subject     string
	Message     string
	CreatedAt   time.Time
}
