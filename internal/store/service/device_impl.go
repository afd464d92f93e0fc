package service

import (
	"context"
	"fmt"
	"strings"

	"music-store-server/internal/shared/models"
	"music-store-server/internal/shared/storage"
	"music-store-server/internal/store/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure deviceServiceImpl implements DeviceService
var _ DeviceService = (*deviceServiceImpl)(nil)

const (
	defaultDevicePage  = 1
	defaultDeviceLimit = 10
	maxDeviceLimit     = 100
)

type deviceServiceImpl struct {
	devices repository.DeviceRepository
	catalog repository.CatalogRepository
	baskets repository.BasketRepository
	users   repository.UserRepository
	files   storage.FileStore
	logger  *zap.Logger
}

// NewDeviceService creates the device catalog service.
func NewDeviceService(
	devices repository.DeviceRepository,
	catalog repository.CatalogRepository,
	baskets repository.BasketRepository,
	users repository.UserRepository,
	files storage.FileStore,
	logger *zap.Logger,
) DeviceService {
	return &deviceServiceImpl{
		devices: devices,
		catalog: catalog,
		baskets: baskets,
		users:   users,
		files:   files,
		logger:  logger.Named("DeviceService"),
	}
}

func infoToModels(deviceID uuid.UUID, input []InfoInput) []models.DeviceInfo {
	info := make([]models.DeviceInfo, 0, len(input))
	for _, i := range input {
		info = append(info, models.DeviceInfo{
			DeviceID:    deviceID,
			Title:       i.Title,
			Description: i.Description,
		})
	}
	return info
}

// Create resolves the brand and type by name, stores the image and inserts
// the device with its info rows.
func (s *deviceServiceImpl) Create(ctx context.Context, input CreateDeviceInput) (*models.Device, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price <= 0 {
		return nil, fmt.Errorf("validation error: name and positive price are required: %w", models.ErrInvalidInput)
	}
	if input.Img == nil {
		return nil, fmt.Errorf("validation error: device image is required: %w", models.ErrInvalidInput)
	}

	brand, err := s.catalog.GetBrandByName(ctx, strings.TrimSpace(input.BrandName))
	if err != nil {
		return nil, err
	}
	deviceType, err := s.catalog.GetTypeByName(ctx, strings.TrimSpace(input.TypeName))
	if err != nil {
		return nil, err
	}

	imgPath, err := s.files.Save(input.Img, "image")
	if err != nil {
		return nil, err
	}

	device := &models.Device{
		Name:    name,
		Price:   input.Price,
		ImgPath: imgPath,
		BrandID: brand.ID,
		TypeID:  deviceType.ID,
		Info:    infoToModels(uuid.Nil, input.Info),
	}
	if err := s.devices.CreateDevice(ctx, device); err != nil {
		_ = s.files.Remove(imgPath)
		return nil, err
	}
	return device, nil
}

// Get returns a device with its info and comments.
func (s *deviceServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Device, error) {
	return s.devices.GetDeviceByID(ctx, id)
}

// List returns a filtered page of devices. Unknown brand or type names
// yield an empty page rather than an error.
func (s *deviceServiceImpl) List(ctx context.Context, input ListDevicesInput) (*models.DevicePage, error) {
	page := input.Page
	if page < 1 {
		page = defaultDevicePage
	}
	limit := input.Limit
	if limit <= 0 || limit > maxDeviceLimit {
		limit = defaultDeviceLimit
	}

	filter := repository.DeviceFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if brandName := strings.TrimSpace(input.BrandName); brandName != "" {
		brand, err := s.catalog.GetBrandByName(ctx, brandName)
		if err != nil {
			if err == models.ErrBrandNotFound {
				return &models.DevicePage{Count: 0, Rows: []models.Device{}}, nil
			}
			return nil, err
		}
		filter.BrandID = &brand.ID
	}
	if typeName := strings.TrimSpace(input.TypeName); typeName != "" {
		deviceType, err := s.catalog.GetTypeByName(ctx, typeName)
		if err != nil {
			if err == models.ErrTypeNotFound {
				return &models.DevicePage{Count: 0, Rows: []models.Device{}}, nil
			}
			return nil, err
		}
		filter.TypeID = &deviceType.ID
	}

	return s.devices.ListDevices(ctx, filter)
}

// Update applies the provided fields independently. A new image replaces the
// stored file; a provided info list replaces all info rows.
func (s *deviceServiceImpl) Update(ctx context.Context, id uuid.UUID, input UpdateDeviceInput) (*models.Device, error) {
	current, err := s.devices.GetDeviceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := repository.DeviceUpdate{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("validation error: name must not be empty: %w", models.ErrInvalidInput)
		}
		update.Name = &name
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, fmt.Errorf("validation error: price must be positive: %w", models.ErrInvalidInput)
		}
		update.Price = input.Price
	}
	if input.BrandName != nil {
		brand, err := s.catalog.GetBrandByName(ctx, strings.TrimSpace(*input.BrandName))
		if err != nil {
			return nil, err
		}
		update.BrandID = &brand.ID
	}
	if input.TypeName != nil {
		deviceType, err := s.catalog.GetTypeByName(ctx, strings.TrimSpace(*input.TypeName))
		if err != nil {
			return nil, err
		}
		update.TypeID = &deviceType.ID
	}
	if input.HasInfo {
		update.Info = infoToModels(id, input.Info)
	}

	var newImgPath string
	if input.Img != nil {
		newImgPath, err = s.files.Save(input.Img, "image")
		if err != nil {
			return nil, err
		}
		update.ImgPath = &newImgPath
	}

	if err := s.devices.UpdateDevice(ctx, id, update); err != nil {
		if newImgPath != "" {
			_ = s.files.Remove(newImgPath)
		}
		return nil, err
	}
	if newImgPath != "" {
		_ = s.files.Remove(current.ImgPath)
	}

	return s.devices.GetDeviceByID(ctx, id)
}

// Delete removes the device row, its dependents and the image file.
func (s *deviceServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	device, err := s.devices.GetDeviceByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.devices.DeleteDevice(ctx, id); err != nil {
		return err
	}
	_ = s.files.Remove(device.ImgPath)
	return nil
}

// AddToBasket puts the device into the caller's basket.
func (s *deviceServiceImpl) AddToBasket(ctx context.Context, userID, deviceID uuid.UUID) error {
	basketID, err := s.users.GetBasketIDByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.baskets.AddDevice(ctx, basketID, deviceID)
}

// RemoveFromBasket takes the device out of the caller's basket.
func (s *deviceServiceImpl) RemoveFromBasket(ctx context.Context, userID, deviceID uuid.UUID) error {
	basketID, err := s.users.GetBasketIDByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.baskets.RemoveDevice(ctx, basketID, deviceID)
}

// Rate records the caller's rating of the device.
func (s *deviceServiceImpl) Rate(ctx context.Context, deviceID, userID uuid.UUID, rating int) error {
	if rating < 1 || rating > 5 {
		return models.ErrRatingOutOfRange
	}
	return s.devices.AddRating(ctx, deviceID, userID, rating)
}

// Comment stores the caller's feedback together with the rating they gave
// the device (0 if they have not rated it).
func (s *deviceServiceImpl) Comment(ctx context.Context, deviceID, userID uuid.UUID, username, feedback string) (*models.DeviceComment, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, fmt.Errorf("validation error: feedback is required: %w", models.ErrInvalidInput)
	}

	rating, err := s.devices.GetUserRating(ctx, deviceID, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.DeviceComment{
		DeviceID: deviceID,
		UserID:   userID,
		Username: username,
		Feedback: feedback,
		Rating:   rating,
	}
	if err := s.devices.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
