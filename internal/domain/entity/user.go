package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The row doubles as the credential record:
// PasswordHash and Role live here and are looked up by email at login.
type User struct {
	ID           uuid.UUID
	FullName     string
	Username     string
	Email        string
	DOB          string
	Gender       string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Address *Address
}

// Address is the delivery address captured at registration. One per user,
// created in the same transaction as the user row.
type Address struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Street   string
	City     string
	Postcode string
}
