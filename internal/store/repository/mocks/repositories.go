package mocks

import (
	"context"

	"music-store-server/internal/shared/models"
	"music-store-server/internal/store/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUserWithBasket(ctx context.Context, user *models.User) (uuid.UUID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) GetUserByActivationLink(ctx context.Context, link string) (*models.User, error) {
	args := m.Called(ctx, link)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) ActivateUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepository) GetBasketIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// Mock CatalogRepository
type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *CatalogRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	args := m.Called(ctx)
	var brands []models.Brand
	if args.Get(0) != nil {
		brands = args.Get(0).([]models.Brand)
	}
	return brands, args.Error(1)
}

func (m *CatalogRepository) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CatalogRepository) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	args := m.Called(ctx, name)
	var brand *models.Brand
	if args.Get(0) != nil {
		brand = args.Get(0).(*models.Brand)
	}
	return brand, args.Error(1)
}

func (m *CatalogRepository) CreateType(ctx context.Context, deviceType *models.DeviceType) error {
	args := m.Called(ctx, deviceType)
	return args.Error(0)
}

func (m *CatalogRepository) ListTypes(ctx context.Context) ([]models.DeviceType, error) {
	args := m.Called(ctx)
	var types []models.DeviceType
	if args.Get(0) != nil {
		types = args.Get(0).([]models.DeviceType)
	}
	return types, args.Error(1)
}

func (m *CatalogRepository) DeleteType(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CatalogRepository) GetTypeByName(ctx context.Context, name string) (*models.DeviceType, error) {
	args := m.Called(ctx, name)
	var deviceType *models.DeviceType
	if args.Get(0) != nil {
		deviceType = args.Get(0).(*models.DeviceType)
	}
	return deviceType, args.Error(1)
}

// Mock DeviceRepository
type DeviceRepository struct {
	mock.Mock
}

func (m *DeviceRepository) CreateDevice(ctx context.Context, device *models.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *DeviceRepository) GetDeviceByID(ctx context.Context, id uuid.UUID) (*models.Device, error) {
	args := m.Called(ctx, id)
	var device *models.Device
	if args.Get(0) != nil {
		device = args.Get(0).(*models.Device)
	}
	return device, args.Error(1)
}

func (m *DeviceRepository) ListDevices(ctx context.Context, filter repository.DeviceFilter) (*models.DevicePage, error) {
	args := m.Called(ctx, filter)
	var page *models.DevicePage
	if args.Get(0) != nil {
		page = args.Get(0).(*models.DevicePage)
	}
	return page, args.Error(1)
}

func (m *DeviceRepository) UpdateDevice(ctx context.Context, id uuid.UUID, update repository.DeviceUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *DeviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DeviceRepository) AddRating(ctx context.Context, deviceID, userID uuid.UUID, rating int) error {
	args := m.Called(ctx, deviceID, userID, rating)
	return args.Error(0)
}

func (m *DeviceRepository) GetUserRating(ctx context.Context, deviceID, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, deviceID, userID)
	return args.Int(0), args.Error(1)
}

func (m *DeviceRepository) AddComment(ctx context.Context, comment *models.DeviceComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// Mock BasketRepository
type BasketRepository struct {
	mock.Mock
}

func (m *BasketRepository) AddDevice(ctx context.Context, basketID, deviceID uuid.UUID) error {
	args := m.Called(ctx, basketID, deviceID)
	return args.Error(0)
}

func (m *BasketRepository) RemoveDevice(ctx context.Context, basketID, deviceID uuid.UUID) error {
	args := m.Called(ctx, basketID, deviceID)
	return args.Error(0)
}

func (m *BasketRepository) GetBasketByUserID(ctx context.Context, userID uuid.UUID) (*models.Basket, error) {
	args := m.Called(ctx, userID)
	var basket *models.Basket
	if args.Get(0) != nil {
		basket = args.Get(0).(*models.Basket)
	}
	return basket, args.Error(1)
}
