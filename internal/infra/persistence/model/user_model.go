// Package model holds the GORM table mappings. Mapping to and from domain
// entities happens in the repositories.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via
// uuid_generate_v4(). The row carries the credential hash and the role.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	Username     string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	DOB          string    `gorm:"type:varchar(20)"`
	Gender       string    `gorm:"type:varchar(20)"`
	Phone        string    `gorm:"type:varchar(30)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Address       *AddressModel       `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// AddressModel mirrors the 'user_addresses' table. One address per user.
type AddressModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Street   string    `gorm:"type:varchar(255);not null"`
	City     string    `gorm:"type:varchar(100);not null"`
	Postcode string    `gorm:"type:varchar(20);not null"`
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "user_addresses"
}
