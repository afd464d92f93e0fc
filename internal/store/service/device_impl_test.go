package service_test

import (
	"context"
	"testing"

	"music-store-server/internal/shared/models"
	"music-store-server/internal/store/repository"
	repoMocks "music-store-server/internal/store/repository/mocks"
	"music-store-server/internal/store/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type deviceServiceMocks struct {
	devices *repoMocks.DeviceRepository
	catalog *repoMocks.CatalogRepository
	baskets *repoMocks.BasketRepository
	users   *repoMocks.UserRepository
}

func newDeviceService(t *testing.T) (service.DeviceService, *deviceServiceMocks) {
	t.Helper()
	m := &deviceServiceMocks{
		devices: new(repoMocks.DeviceRepository),
		catalog: new(repoMocks.CatalogRepository),
		baskets: new(repoMocks.BasketRepository),
		users:   new(repoMocks.UserRepository),
	}
	// Файловое хранилище в этих сценариях не используется
	svc := service.NewDeviceService(m.devices, m.catalog, m.baskets, m.users, nil, zap.NewNop())
	return svc, m
}

func TestListDevices(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults applied for page and limit", func(t *testing.T) {
		svc, m := newDeviceService(t)

		m.devices.On("ListDevices", ctx, repository.DeviceFilter{Limit: 10, Offset: 0}).
			Return(&models.DevicePage{Count: 0, Rows: []models.Device{}}, nil).Once()

		_, err := svc.List(ctx, service.ListDevicesInput{Page: 0, Limit: 0})
		require.NoError(t, err)
		m.devices.AssertExpectations(t)
	})

	t.Run("Oversized limit falls back to default", func(t *testing.T) {
		svc, m := newDeviceService(t)

		m.devices.On("ListDevices", ctx, repository.DeviceFilter{Limit: 10, Offset: 20}).
			Return(&models.DevicePage{Count: 0, Rows: []models.Device{}}, nil).Once()

		_, err := svc.List(ctx, service.ListDevicesInput{Page: 3, Limit: 1000})
		require.NoError(t, err)
		m.devices.AssertExpectations(t)
	})

	t.Run("Brand filter resolved by name", func(t *testing.T) {
		svc, m := newDeviceService(t)

		brand := &models.Brand{ID: uuid.New(), Name: "Apple"}
		m.catalog.On("GetBrandByName", ctx, "Apple").Return(brand, nil).Once()
		m.devices.On("ListDevices", ctx, mock.MatchedBy(func(f repository.DeviceFilter) bool {
			return f.BrandID != nil && *f.BrandID == brand.ID && f.TypeID == nil
		})).Return(&models.DevicePage{Count: 1, Rows: []models.Device{{Name: "iPhone"}}}, nil).Once()

		page, err := svc.List(ctx, service.ListDevicesInput{BrandName: "Apple", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Count)
	})

	t.Run("Unknown brand yields an empty page", func(t *testing.T) {
		svc, m := newDeviceService(t)

		m.catalog.On("GetBrandByName", ctx, "Nokia").Return(nil, models.ErrBrandNotFound).Once()

		page, err := svc.List(ctx, service.ListDevicesInput{BrandName: "Nokia", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 0, page.Count)
		assert.Empty(t, page.Rows)
		m.devices.AssertNotCalled(t, "ListDevices", mock.Anything, mock.Anything)
	})

	t.Run("Unknown type yields an empty page", func(t *testing.T) {
		svc, m := newDeviceService(t)

		m.catalog.On("GetTypeByName", ctx, "toaster").Return(nil, models.ErrTypeNotFound).Once()

		page, err := svc.List(ctx, service.ListDevicesInput{TypeName: "toaster", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 0, page.Count)
	})
}

func TestBasketOperations(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deviceID := uuid.New()
	basketID := uuid.New()

	t.Run("Add resolves the caller's basket", func(t *testing.T) {
		svc, m := newDeviceService(t)

		m.users.On("GetBasketIDByUserID", ctx, userID).Return(basketID, nil).Once()
		m.baskets.On("AddDevice", ctx, basketID, deviceID).Return(nil).Once()

		require.NoError(t, svc.AddToBasket(ctx, userID, deviceID))
		m.baskets.AssertExpectations(t)
	})

	t.Run("Remove missing entry", func(t *testing.T) {
		svc, m := newDeviceService(t)

		m.users.On("GetBasketIDByUserID", ctx, userID).Return(basketID, nil).Once()
		m.baskets.On("RemoveDevice", ctx, basketID, deviceID).Return(models.ErrBasketEntryNotFound).Once()

		err := svc.RemoveFromBasket(ctx, userID, deviceID)
		assert.ErrorIs(t, err, models.ErrBasketEntryNotFound)
	})
}

func TestRate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deviceID := uuid.New()

	t.Run("Valid rating", func(t *testing.T) {
		svc, m := newDeviceService(t)

		m.devices.On("AddRating", ctx, deviceID, userID, 4).Return(nil).Once()

		require.NoError(t, svc.Rate(ctx, deviceID, userID, 4))
		m.devices.AssertExpectations(t)
	})

	t.Run("Out of range", func(t *testing.T) {
		svc, m := newDeviceService(t)

		for _, rating := range []int{0, -1, 6} {
			err := svc.Rate(ctx, deviceID, userID, rating)
			assert.ErrorIs(t, err, models.ErrRatingOutOfRange, "rating %d must be rejected", rating)
		}
		m.devices.AssertNotCalled(t, "AddRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Second rating from the same user", func(t *testing.T) {
		svc, m := newDeviceService(t)

		m.devices.On("AddRating", ctx, deviceID, userID, 5).Return(models.ErrRatingExists).Once()

		err := svc.Rate(ctx, deviceID, userID, 5)
		assert.ErrorIs(t, err, models.ErrRatingExists)
	})
}

func TestComment(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deviceID := uuid.New()

	t.Run("Comment carries the user's rating", func(t *testing.T) {
		svc, m := newDeviceService(t)

		m.devices.On("GetUserRating", ctx, deviceID, userID).Return(5, nil).Once()
		m.devices.On("AddComment", ctx, mock.MatchedBy(func(c *models.DeviceComment) bool {
			assert.Equal(t, "great phone", c.Feedback)
			assert.Equal(t, 5, c.Rating)
			assert.Equal(t, "buyer", c.Username)
			return true
		})).Return(nil).Once()

		comment, err := svc.Comment(ctx, deviceID, userID, "buyer", "  great phone ")
		require.NoError(t, err)
		assert.Equal(t, 5, comment.Rating)
	})

	t.Run("Unrated user gets rating zero", func(t *testing.T) {
		svc, m := newDeviceService(t)

		m.devices.On("GetUserRating", ctx, deviceID, userID).Return(0, nil).Once()
		m.devices.On("AddComment", ctx, mock.MatchedBy(func(c *models.DeviceComment) bool {
			return c.Rating == 0
		})).Return(nil).Once()

		comment, err := svc.Comment(ctx, deviceID, userID, "buyer", "ok")
		require.NoError(t, err)
		assert.Equal(t, 0, comment.Rating)
	})

	t.Run("Empty feedback", func(t *testing.T) {
		svc, _ := newDeviceService(t)

		_, err := svc.Comment(ctx, deviceID, userID, "buyer", "   ")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}
