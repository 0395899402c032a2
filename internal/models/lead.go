package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadStatus is managed out of band; the portal only ever writes the
// database default.
type LeadStatus string

const (
	LeadStatusNew LeadStatus = "novo"
)

// Lead is a contact request captured by the public lead form.
type Lead struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID *string    `gorm:"type:varchar(36);index" json:"property_id,omitempty"`
	Name       string     `gorm:"type:varchar(200);not null" json:"name"`
	Email      string     `gorm:"type:varchar(200);not null" json:"email"`
	Phone      string     `gorm:"type:varchar(60);not null" json:"phone"`
	Message    *string    `gorm:"type:text" json:"message,omitempty"`
	Status     LeadStatus `gorm:"type:varchar(20);not null;default:'novo'" json:"status"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

// TableName specifies the table name for Lead
func (Lead) TableName() string {
	return "leads"
}

// BeforeCreate assigns a UUID if the caller did not set one
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
