package services

import (
	"strings"

	"casa-certa-portal/internal/apperr"
	"casa-certa-portal/internal/models"
)

// LeadStore is the persistence surface the lead service needs.
// *database.GormDB implements it.
type LeadStore interface {
	InsertLead(lead *models.Lead) error
	ListLeads() ([]models.Lead, error)
}

// ILeadService is the handler-facing lead API.
type ILeadService interface {
	Create(input CreateLeadInput) (*models.Lead, error)
	List() ([]models.Lead, error)
}

// CreateLeadInput is the public lead form payload.
type CreateLeadInput struct {
	PropertyID string
	Name       string
	Email      string
	Phone      string
	Message    string
}

// LeadService implements ILeadService.
type LeadService struct {
	store LeadStore
}

// NewLeadService creates a new LeadService.
func NewLeadService(store LeadStore) *LeadService {
	return &LeadService{store: store}
}

// Create validates and stores a contact request. The status column is
// left to the database default.
func (s *LeadService) Create(input CreateLeadInput) (*models.Lead, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)

	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	if phone == "" {
		return nil, apperr.Validation("phone is required")
	}

	lead := &models.Lead{
		Name:  name,
		Email: email,
		Phone: phone,
	}
	if pid := strings.TrimSpace(input.PropertyID); pid != "" {
		lead.PropertyID = &pid
	}
	if msg := strings.TrimSpace(input.Message); msg != "" {
		lead.Message = &msg
	}

	if err := s.store.InsertLead(lead); err != nil {
		return nil, apperr.Remote(err.Error(), err)
	}
	return lead, nil
}

// List returns the lead inbox, newest first.
func (s *LeadService) List() ([]models.Lead, error) {
	leads, err := s.store.ListLeads()
	if err != nil {
		return nil, apperr.Remote(err.Error(), err)
	}
	return leads, nil
}
