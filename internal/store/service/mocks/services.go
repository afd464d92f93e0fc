package mocks

import (
	"context"

	"music-store-server/internal/shared/models"
	"music-store-server/internal/store/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock AuthService
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, input service.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, input)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *AuthService) Activate(ctx context.Context, link string) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *AuthService) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, username, password)
	var result *service.LoginResult
	if args.Get(0) != nil {
		result = args.Get(0).(*service.LoginResult)
	}
	return result, args.Error(1)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (*service.LoginResult, error) {
	args := m.Called(ctx, refreshToken)
	var result *service.LoginResult
	if args.Get(0) != nil {
		result = args.Get(0).(*service.LoginResult)
	}
	return result, args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *AuthService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock CatalogService
type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	args := m.Called(ctx, name)
	var brand *models.Brand
	if args.Get(0) != nil {
		brand = args.Get(0).(*models.Brand)
	}
	return brand, args.Error(1)
}

func (m *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	args := m.Called(ctx)
	var brands []models.Brand
	if args.Get(0) != nil {
		brands = args.Get(0).([]models.Brand)
	}
	return brands, args.Error(1)
}

func (m *CatalogService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CatalogService) CreateType(ctx context.Context, name string) (*models.DeviceType, error) {
	args := m.Called(ctx, name)
	var deviceType *models.DeviceType
	if args.Get(0) != nil {
		deviceType = args.Get(0).(*models.DeviceType)
	}
	return deviceType, args.Error(1)
}

func (m *CatalogService) ListTypes(ctx context.Context) ([]models.DeviceType, error) {
	args := m.Called(ctx)
	var types []models.DeviceType
	if args.Get(0) != nil {
		types = args.Get(0).([]models.DeviceType)
	}
	return types, args.Error(1)
}

func (m *CatalogService) DeleteType(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock DeviceService
type DeviceService struct {
	mock.Mock
}

func (m *DeviceService) Create(ctx context.Context, input service.CreateDeviceInput) (*models.Device, error) {
	args := m.Called(ctx, input)
	var device *models.Device
	if args.Get(0) != nil {
		device = args.Get(0).(*models.Device)
	}
	return device, args.Error(1)
}

func (m *DeviceService) Get(ctx context.Context, id uuid.UUID) (*models.Device, error) {
	args := m.Called(ctx, id)
	var device *models.Device
	if args.Get(0) != nil {
		device = args.Get(0).(*models.Device)
	}
	return device, args.Error(1)
}

func (m *DeviceService) List(ctx context.Context, input service.ListDevicesInput) (*models.DevicePage, error) {
	args := m.Called(ctx, input)
	var page *models.DevicePage
	if args.Get(0) != nil {
		page = args.Get(0).(*models.DevicePage)
	}
	return page, args.Error(1)
}

func (m *DeviceService) Update(ctx context.Context, id uuid.UUID, input service.UpdateDeviceInput) (*models.Device, error) {
	args := m.Called(ctx, id, input)
	var device *models.Device
	if args.Get(0) != nil {
		device = args.Get(0).(*models.Device)
	}
	return device, args.Error(1)
}

func (m *DeviceService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DeviceService) AddToBasket(ctx context.Context, userID, deviceID uuid.UUID) error {
	args := m.Called(ctx, userID, deviceID)
	return args.Error(0)
}

func (m *DeviceService) RemoveFromBasket(ctx context.Context, userID, deviceID uuid.UUID) error {
	args := m.Called(ctx, userID, deviceID)
	return args.Error(0)
}

func (m *DeviceService) Rate(ctx context.Context, deviceID, userID uuid.UUID, rating int) error {
	args := m.Called(ctx, deviceID, userID, rating)
	return args.Error(0)
}

func (m *DeviceService) Comment(ctx context.Context, deviceID, userID uuid.UUID, username, feedback string) (*models.DeviceComment, error) {
	args := m.Called(ctx, deviceID, userID, username, feedback)
	var comment *models.DeviceComment
	if args.Get(0) != nil {
		comment = args.Get(0).(*models.DeviceComment)
	}
	return comment, args.Error(1)
}
