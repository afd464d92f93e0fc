package service

import (
	"context"
	"mime/multipart"

	"music-store-server/internal/shared/auth"
	"music-store-server/internal/shared/models"

	"github.com/google/uuid"
)

// RegisterInput - входные данные регистрации.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// LoginResult - результат успешного входа или обновления токенов. Payload
// токенов включает идентификатор корзины пользователя.
type LoginResult struct {
	User   *models.User
	Tokens auth.TokenPair
}

// AuthService описывает операции аутентификации магазина.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Activate(ctx context.Context, link string) error
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
	Logout(ctx context.Context, refreshToken string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// CatalogService описывает операции над брендами и типами.
type CatalogService interface {
	CreateBrand(ctx context.Context, name string) (*models.Brand, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error

	CreateType(ctx context.Context, name string) (*models.DeviceType, error)
	ListTypes(ctx context.Context) ([]models.DeviceType, error)
	DeleteType(ctx context.Context, id uuid.UUID) error
}

// InfoInput - характеристика устройства при создании или обновлении.
type InfoInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreateDeviceInput - входные данные создания устройства.
type CreateDeviceInput struct {
	Name      string
	Price     int
	BrandName string
	TypeName  string
	Info      []InfoInput
	Img       *multipart.FileHeader
}

// UpdateDeviceInput - частичное обновление устройства. Nil-поля не трогаются.
type UpdateDeviceInput struct {
	Name      *string
	Price     *int
	BrandName *string
	TypeName  *string
	Info      []InfoInput // nil - не менять
	HasInfo   bool
	Img       *multipart.FileHeader
}

// ListDevicesInput - фильтр и пагинация каталога.
type ListDevicesInput struct {
	BrandName string
	TypeName  string
	Page      int
	Limit     int
}

// DeviceService описывает операции каталога устройств, корзины и оценок.
type DeviceService interface {
	Create(ctx context.Context, input CreateDeviceInput) (*models.Device, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Device, error)
	List(ctx context.Context, input ListDevicesInput) (*models.DevicePage, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateDeviceInput) (*models.Device, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddToBasket(ctx context.Context, userID, deviceID uuid.UUID) error
	RemoveFromBasket(ctx context.Context, userID, deviceID uuid.UUID) error
	Rate(ctx context.Context, deviceID, userID uuid.UUID, rating int) error
	Comment(ctx context.Context, deviceID, userID uuid.UUID, username, feedback string) (*models.DeviceComment, error)
}
