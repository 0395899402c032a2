package database

import "casa-certa-portal/internal/models"

// ClearCoverFlags unsets is_cover on every persisted image of the
// property. Idempotent when the property has no images yet.
func (gdb *GormDB) ClearCoverFlags(propertyID string) error {
	return gdb.db.Model(&models.PropertyImage{}).
		Where("property_id = ?", propertyID).
		Update("is_cover", false).Error
}

// InsertImages bulk-inserts a batch of image metadata rows.
func (gdb *GormDB) InsertImages(images []models.PropertyImage) error {
	if len(images) == 0 {
		return nil
	}
	return gdb.db.Create(&images).Error
}

// ListImagesByProperty returns a property's images cover-first, with
// creation time as the tiebreak.
func (gdb *GormDB) ListImagesByProperty(propertyID string) ([]models.PropertyImage, error) {
	var images []models.PropertyImage
	err := gdb.db.
		Where("property_id = ?", propertyID).
		Order("is_cover DESC").
		Order("created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// AllImageURLs returns every persisted image URL. The storage janitor
// uses this as the reference set when sweeping orphaned objects.
func (gdb *GormDB) AllImageURLs() ([]string, error) {
	var urls []string
	err := gdb.db.Model(&models.PropertyImage{}).Pluck("url", &urls).Error
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// DeleteImagesByProperty removes all image rows of a property and
// returns the URLs that were referenced, so callers can clean storage.
func (gdb *GormDB) DeleteImagesByProperty(propertyID string) ([]string, error) {
	var urls []string
	err := gdb.db.Model(&models.PropertyImage{}).
		Where("property_id = ?", propertyID).
		Pluck("url", &urls).Error
	if err != nil {
		return nil, err
	}
	err = gdb.db.Where("property_id = ?", propertyID).Delete(&models.PropertyImage{}).Error
	if err != nil {
		return nil, err
	}
	return urls, nil
}
