package restaurant

import (
	"context"

	"github.com/shopspring/decimal"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/common/logger"
	"foxi-food/internal/domain"
)

type Storage interface {
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeactivateRestaurant(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (*Stats, error)
}

type Service struct {
	storage Storage
	log     *logger.Logger
}

func NewService(storage Storage, log *logger.Logger) *Service {
	return &Service{storage: storage, log: log}
}

type UpsertRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Address           string          `json:"address"`
	Phone             string          `json:"phone"`
	Email             string          `json:"email"`
	Website           string          `json:"website"`
	CuisineType       string          `json:"cuisine_type"`
	OpeningHours      map[string]any  `json:"opening_hours"`
	DeliveryFee       decimal.Decimal `json:"delivery_fee"`
	MinimumOrder      decimal.Decimal `json:"minimum_order"`
	DeliveryRadius    int             `json:"delivery_radius"`
	IsAcceptingOrders *bool           `json:"is_accepting_orders"`
}

func (r *UpsertRequest) validate() error {
	if r.Name == "" {
		return apperrors.Validation("name", "name is required")
	}
	if len(r.Name) > 100 {
		return apperrors.Validation("name", "name must be less than 100 characters")
	}
	if r.DeliveryFee.IsNegative() {
		return apperrors.Validation("delivery_fee", "delivery fee cannot be negative")
	}
	if r.MinimumOrder.IsNegative() {
		return apperrors.Validation("minimum_order", "minimum order cannot be negative")
	}
	return nil
}

func (r *UpsertRequest) apply(rest *domain.Restaurant) {
	rest.Name = r.Name
	rest.Description = r.Description
	rest.Address = r.Address
	rest.Phone = r.Phone
	rest.Email = r.Email
	rest.Website = r.Website
	rest.CuisineType = r.CuisineType
	rest.OpeningHours = r.OpeningHours
	rest.DeliveryFee = r.DeliveryFee
	rest.MinimumOrder = r.MinimumOrder
	if r.DeliveryRadius > 0 {
		rest.DeliveryRadius = r.DeliveryRadius
	}
	if r.IsAcceptingOrders != nil {
		rest.IsAcceptingOrders = *r.IsAcceptingOrders
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Restaurant, error) {
	return s.storage.GetRestaurant(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Restaurant, error) {
	return s.storage.ListRestaurants(ctx)
}

func (s *Service) Create(ctx context.Context, req *UpsertRequest) (*domain.Restaurant, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	rest := &domain.Restaurant{
		Slug:              Slugify(req.Name),
		DeliveryRadius:    5,
		IsActive:          true,
		IsAcceptingOrders: true,
	}
	req.apply(rest)
	if err := s.storage.CreateRestaurant(ctx, rest); err != nil {
		return nil, err
	}
	s.log.Info("restaurant_created", map[string]any{
		"restaurant_id": rest.ID,
		"slug":          rest.Slug,
	})
	return rest, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *UpsertRequest) (*domain.Restaurant, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	rest, err := s.storage.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(rest)
	if err := s.storage.UpdateRestaurant(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if err := s.storage.DeactivateRestaurant(ctx, id); err != nil {
		return err
	}
	s.log.Info("restaurant_deactivated", map[string]any{"restaurant_id": id})
	return nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.storage.GetStats(ctx)
}
