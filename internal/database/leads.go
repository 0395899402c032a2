package database

import "casa-certa-portal/internal/models"

// InsertLead stores a new lead. The status column keeps its database
// default; this layer never sets it.
func (gdb *GormDB) InsertLead(lead *models.Lead) error {
	return gdb.db.Omit("Status").Create(lead).Error
}

// ListLeads returns all leads, newest first, for the admin inbox.
func (gdb *GormDB) ListLeads() ([]models.Lead, error) {
	var leads []models.Lead
	err := gdb.db.Order("created_at DESC").Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}
