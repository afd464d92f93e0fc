package repository

import (
	"context"

	"music-store-server/internal/shared/models"

	"github.com/google/uuid"
)

// UserRepository определяет доступ к пользователям магазина. Регистрация
// создает пользователя вместе с корзиной в одной транзакции.
type UserRepository interface {
	CreateUserWithBasket(ctx context.Context, user *models.User) (basketID uuid.UUID, err error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByActivationLink(ctx context.Context, link string) (*models.User, error)
	ActivateUser(ctx context.Context, id uuid.UUID) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	GetBasketIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

// CatalogRepository определяет доступ к брендам и типам устройств.
type CatalogRepository interface {
	CreateBrand(ctx context.Context, brand *models.Brand) error
	ListBrands(ctx context.Context) ([]models.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error
	GetBrandByName(ctx context.Context, name string) (*models.Brand, error)

	CreateType(ctx context.Context, deviceType *models.DeviceType) error
	ListTypes(ctx context.Context) ([]models.DeviceType, error)
	DeleteType(ctx context.Context, id uuid.UUID) error
	GetTypeByName(ctx context.Context, name string) (*models.DeviceType, error)
}

// DeviceFilter ограничивает выборку устройств.
type DeviceFilter struct {
	BrandID *uuid.UUID
	TypeID  *uuid.UUID
	Limit   int
	Offset  int
}

// DeviceUpdate описывает частичное обновление устройства. Nil-поля не
// трогаются.
type DeviceUpdate struct {
	Name    *string
	Price   *int
	BrandID *uuid.UUID
	TypeID  *uuid.UUID
	ImgPath *string
	Info    []models.DeviceInfo // nil - не менять, пустой слайс - очистить
}

// DeviceRepository определяет доступ к устройствам, их характеристикам,
// оценкам и отзывам.
type DeviceRepository interface {
	CreateDevice(ctx context.Context, device *models.Device) error
	GetDeviceByID(ctx context.Context, id uuid.UUID) (*models.Device, error)
	ListDevices(ctx context.Context, filter DeviceFilter) (*models.DevicePage, error)
	UpdateDevice(ctx context.Context, id uuid.UUID, update DeviceUpdate) error
	DeleteDevice(ctx context.Context, id uuid.UUID) error

	AddRating(ctx context.Context, deviceID, userID uuid.UUID, rating int) error
	GetUserRating(ctx context.Context, deviceID, userID uuid.UUID) (int, error)
	AddComment(ctx context.Context, comment *models.DeviceComment) error
}

// BasketRepository определяет операции над корзиной. Суммарная стоимость
// корзины поддерживается в той же транзакции, что и позиции.
type BasketRepository interface {
	AddDevice(ctx context.Context, basketID, deviceID uuid.UUID) error
	RemoveDevice(ctx context.Context, basketID, deviceID uuid.UUID) error
	GetBasketByUserID(ctx context.Context, userID uuid.UUID) (*models.Basket, error)
}
