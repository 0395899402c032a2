package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"casa-certa-portal/internal/database"
	"casa-certa-portal/internal/models"
	"casa-certa-portal/internal/services"
)

type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) Catalog(params database.FilterParams) ([]models.Property, error) {
	args := m.Called(params)
	if props, ok := args.Get(0).([]models.Property); ok {
		return props, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyService) Featured() ([]services.PropertyWithImages, error) {
	args := m.Called()
	if props, ok := args.Get(0).([]services.PropertyWithImages); ok {
		return props, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyService) Detail(slugOrID string) (*services.PropertyWithImages, error) {
	args := m.Called(slugOrID)
	if p, ok := args.Get(0).(*services.PropertyWithImages); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyService) AdminGet(id string) (*models.Property, error) {
	args := m.Called(id)
	if p, ok := args.Get(0).(*models.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyService) AdminList() ([]models.Property, error) {
	args := m.Called()
	if props, ok := args.Get(0).([]models.Property); ok {
		return props, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyService) Save(ctx context.Context, input services.SaveInput) (*models.Property, error) {
	args := m.Called(ctx, input)
	if p, ok := args.Get(0).(*models.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) Create(input services.CreateLeadInput) (*models.Lead, error) {
	args := m.Called(input)
	if l, ok := args.Get(0).(*models.Lead); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadService) List() ([]models.Lead, error) {
	args := m.Called()
	if leads, ok := args.Get(0).([]models.Lead); ok {
		return leads, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(email, password string) (*models.AdminUser, error) {
	args := m.Called(email, password)
	if u, ok := args.Get(0).(*models.AdminUser); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
