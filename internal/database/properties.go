package database

import (
	"errors"
	"strings"

	"casa-certa-portal/internal/models"

	"gorm.io/gorm"
)

// ErrPropertyNotFound is returned when a property lookup matches nothing.
var ErrPropertyNotFound = errors.New("property not found")

// Sort orders accepted by ListProperties. Anything else falls back to
// SortRecent.
const (
	SortRecent    = "recent"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// FilterParams is the recognized catalog filter set. Empty or "all"
// disables a filter; filters compose with AND.
type FilterParams struct {
	Query   string
	Type    string
	Purpose string
	Sort    string
}

// escapeLike escapes SQL LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// ListProperties returns the full matching set, filtered and sorted.
// There is no pagination; the catalog is expected to stay small.
func (gdb *GormDB) ListProperties(params FilterParams) ([]models.Property, error) {
	q := gdb.db.Model(&models.Property{})

	if params.Type != "" && params.Type != "all" {
		q = q.Where("type = ?", params.Type)
	}
	if params.Purpose != "" && params.Purpose != "all" {
		q = q.Where("purpose = ?", params.Purpose)
	}

	if text := strings.TrimSpace(params.Query); text != "" {
		pattern := "%" + strings.ToLower(escapeLike(text)) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(city) LIKE ? OR LOWER(neighborhood) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	switch params.Sort {
	case SortPriceAsc:
		q = q.Order("price ASC")
	case SortPriceDesc:
		q = q.Order("price DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var properties []models.Property
	if err := q.Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// FeaturedProperties returns the newest available properties with their
// images preloaded, for the home-page grid.
func (gdb *GormDB) FeaturedProperties(limit int) ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_cover DESC, created_at ASC")
		}).
		Where("status = ?", models.PropertyStatusAvailable).
		Order("created_at DESC").
		Limit(limit).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// FindPropertyByID retrieves a property by its identifier.
func (gdb *GormDB) FindPropertyByID(id string) (*models.Property, error) {
	var p models.Property
	err := gdb.db.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPropertyBySlug retrieves a property by its slug.
func (gdb *GormDB) FindPropertyBySlug(slug string) (*models.Property, error) {
	var p models.Property
	err := gdb.db.Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SlugExists reports whether any property already carries slug.
func (gdb *GormDB) SlugExists(slug string) (bool, error) {
	var count int64
	err := gdb.db.Model(&models.Property{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpsertProperty inserts a new property when p.ID is empty, otherwise
// updates the existing row (preserving its creation time). The saved
// record, including the assigned identifier, is written back into p.
func (gdb *GormDB) UpsertProperty(p *models.Property) error {
	if p.ID == "" {
		return gdb.db.Create(p).Error
	}

	var existing models.Property
	err := gdb.db.Where("id = ?", p.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPropertyNotFound
	}
	if err != nil {
		return err
	}

	p.CreatedAt = existing.CreatedAt
	return gdb.db.Save(p).Error
}

// DeleteProperty removes a property and its image rows.
func (gdb *GormDB) DeleteProperty(id string) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Property{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPropertyNotFound
		}
		return nil
	})
}
