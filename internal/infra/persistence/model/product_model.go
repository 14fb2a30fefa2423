package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. Price is decimal text.
type ProductModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	SKU          string    `gorm:"type:varchar(64);unique;not null"`
	Category     string    `gorm:"type:varchar(100);index"`
	AvailableQty int64     `gorm:"not null;default:0"`
	Price        string    `gorm:"type:varchar(20);not null"`
	ImageOne     string    `gorm:"type:varchar(512)"`
	ImageTwo     string    `gorm:"type:varchar(512)"`
	ImageThree   string    `gorm:"type:varchar(512)"`
	ImageFour    string    `gorm:"type:varchar(512)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// FavouriteModel mirrors the 'favourites' table. One row per (user, product).
type FavouriteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favourites_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favourites_user_product"`
	CreatedAt time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (FavouriteModel) TableName() string {
	return "favourites"
}
