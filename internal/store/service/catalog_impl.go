package service

import (
	"context"
	"fmt"
	"strings"

	"music-store-server/internal/shared/models"
	"music-store-server/internal/store/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure catalogServiceImpl implements CatalogService
var _ CatalogService = (*catalogServiceImpl)(nil)

type catalogServiceImpl struct {
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

// NewCatalogService creates the brand/type catalog service.
func NewCatalogService(catalog repository.CatalogRepository, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{
		catalog: catalog,
		logger:  logger.Named("CatalogService"),
	}
}

func (s *catalogServiceImpl) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("validation error: brand name is required: %w", models.ErrInvalidInput)
	}
	brand := &models.Brand{Name: name}
	if err := s.catalog.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *catalogServiceImpl) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.catalog.ListBrands(ctx)
}

func (s *catalogServiceImpl) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return s.catalog.DeleteBrand(ctx, id)
}

func (s *catalogServiceImpl) CreateType(ctx context.Context, name string) (*models.DeviceType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("validation error: type name is required: %w", models.ErrInvalidInput)
	}
	deviceType := &models.DeviceType{Name: name}
	if err := s.catalog.CreateType(ctx, deviceType); err != nil {
		return nil, err
	}
	return deviceType, nil
}

func (s *catalogServiceImpl) ListTypes(ctx context.Context) ([]models.DeviceType, error) {
	return s.catalog.ListTypes(ctx)
}

func (s *catalogServiceImpl) DeleteType(ctx context.Context, id uuid.UUID) error {
	return s.catalog.DeleteType(ctx, id)
}
