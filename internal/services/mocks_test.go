package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"casa-certa-portal/internal/database"
	"casa-certa-portal/internal/models"
	"casa-certa-portal/internal/staging"
)

type MockPropertyStore struct {
	mock.Mock
}

func (m *MockPropertyStore) ListProperties(params database.FilterParams) ([]models.Property, error) {
	args := m.Called(params)
	if props, ok := args.Get(0).([]models.Property); ok {
		return props, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyStore) FeaturedProperties(limit int) ([]models.Property, error) {
	args := m.Called(limit)
	if props, ok := args.Get(0).([]models.Property); ok {
		return props, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyStore) FindPropertyByID(id string) (*models.Property, error) {
	args := m.Called(id)
	if p, ok := args.Get(0).(*models.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyStore) FindPropertyBySlug(slug string) (*models.Property, error) {
	args := m.Called(slug)
	if p, ok := args.Get(0).(*models.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyStore) SlugExists(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyStore) UpsertProperty(p *models.Property) error {
	args := m.Called(p)
	if p.ID == "" {
		p.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockPropertyStore) DeleteProperty(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPropertyStore) ListImagesByProperty(propertyID string) ([]models.PropertyImage, error) {
	args := m.Called(propertyID)
	if imgs, ok := args.Get(0).([]models.PropertyImage); ok {
		return imgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyStore) DeleteImagesByProperty(propertyID string) ([]string, error) {
	args := m.Called(propertyID)
	if urls, ok := args.Get(0).([]string); ok {
		return urls, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Run(ctx context.Context, propertyID string, staged []staging.StagedImage, coverIndex int) error {
	args := m.Called(ctx, propertyID, staged, coverIndex)
	return args.Error(0)
}

type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) InsertLead(lead *models.Lead) error {
	args := m.Called(lead)
	return args.Error(0)
}

func (m *MockLeadStore) ListLeads() ([]models.Lead, error) {
	args := m.Called()
	if leads, ok := args.Get(0).([]models.Lead); ok {
		return leads, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAdminStore struct {
	mock.Mock
}

func (m *MockAdminStore) FindAdminByEmail(email string) (*models.AdminUser, error) {
	args := m.Called(email)
	if u, ok := args.Get(0).(*models.AdminUser); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
