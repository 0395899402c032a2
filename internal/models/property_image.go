package models

import "time"

// PropertyImage represents an uploaded image associated with a property.
// At most one image per property carries IsCover = true; the upload
// workflow clears the flags in bulk before inserting a new batch.
type PropertyImage struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID string    `gorm:"type:varchar(36);not null;index" json:"property_id"`
	URL        string    `gorm:"type:text;not null" json:"url"`
	IsCover    bool      `gorm:"not null;default:false" json:"is_cover"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for PropertyImage
func (PropertyImage) TableName() string {
	return "property_images"
}
