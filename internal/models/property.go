package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	ID    string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title string `gorm:"type:text;not null" json:"title"`
	Slug  string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`

	Type    PropertyType    `gorm:"type:varchar(20);not null;index" json:"type"`
	Purpose PropertyPurpose `gorm:"type:varchar(20);not null;index" json:"purpose"`

	Price        float64 `gorm:"type:decimal(14,2);not null" json:"price"`
	City         string  `gorm:"type:varchar(120);not null" json:"city"`
	Neighborhood string  `gorm:"type:varchar(120)" json:"neighborhood"`

	Bedrooms     int `gorm:"not null;default:0" json:"bedrooms"`
	Bathrooms    int `gorm:"not null;default:0" json:"bathrooms"`
	ParkingSpots int `gorm:"not null;default:0" json:"parking_spots"`

	BuiltArea *float64 `gorm:"type:decimal(10,2)" json:"built_area,omitempty"`
	TotalArea *float64 `gorm:"type:decimal(10,2)" json:"total_area,omitempty"`

	Description string         `gorm:"type:text" json:"description"`
	Status      PropertyStatus `gorm:"type:varchar(20);not null;default:'disponivel';index" json:"status"`
	Featured    bool           `gorm:"not null;default:false" json:"featured"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_properties_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Images []PropertyImage `gorm:"foreignKey:PropertyID" json:"images,omitempty"`
}

// PropertyType is the kind of property being offered.
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "casa"
	PropertyTypeApartment  PropertyType = "apto"
	PropertyTypeLand       PropertyType = "terreno"
	PropertyTypeCommercial PropertyType = "comercial"
)

// PropertyPurpose distinguishes sale from rental listings.
type PropertyPurpose string

const (
	PropertyPurposeSale PropertyPurpose = "venda"
	PropertyPurposeRent PropertyPurpose = "aluguel"
)

// PropertyStatus tracks the commercial state of a listing.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "disponivel"
	PropertyStatusReserved  PropertyStatus = "reservado"
	PropertyStatusSold      PropertyStatus = "vendido"
	PropertyStatusRented    PropertyStatus = "alugado"
)

// TableName specifies the table name for Property
func (Property) TableName() string {
	return "properties"
}

// BeforeCreate assigns a UUID if the caller did not set one
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ValidType reports whether t is one of the recognized property types.
func ValidType(t PropertyType) bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeLand, PropertyTypeCommercial:
		return true
	}
	return false
}

// ValidPurpose reports whether p is one of the recognized purposes.
func ValidPurpose(p PropertyPurpose) bool {
	return p == PropertyPurposeSale || p == PropertyPurposeRent
}

// ValidStatus reports whether s is one of the recognized statuses.
func ValidStatus(s PropertyStatus) bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusReserved, PropertyStatusSold, PropertyStatusRented:
		return true
	}
	return false
}
