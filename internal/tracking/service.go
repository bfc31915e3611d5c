package tracking

import (
	"context"
	"encoding/json"
	"time"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/common/logger"
	"foxi-food/internal/connections/rabbitmq"
	"foxi-food/internal/domain"
)

type Storage interface {
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, limit int) ([]domain.Order, error)
	CountByRestaurant(ctx context.Context, restaurantID int64) (int, error)
	UpdateStatus(ctx context.Context, number string, status domain.OrderStatus) (domain.OrderStatus, error)
	UpdatePaymentStatus(ctx context.Context, number string, status domain.PaymentStatus) error
}

type RestaurantLookup interface {
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte) error
}

type Service struct {
	storage     Storage
	restaurants RestaurantLookup
	events      EventPublisher
	log         *logger.Logger
}

func NewService(storage Storage, restaurants RestaurantLookup, events EventPublisher, log *logger.Logger) *Service {
	return &Service{storage: storage, restaurants: restaurants, events: events, log: log}
}

func (s *Service) GetOrder(ctx context.Context, number string) (*domain.Order, error) {
	return s.storage.GetByNumber(ctx, number)
}

// RestaurantOrders is the staff dashboard view of one restaurant's orders.
type RestaurantOrders struct {
	Restaurant  RestaurantHeader `json:"restaurant"`
	Orders      []domain.Order   `json:"orders"`
	TotalOrders int              `json:"total_orders"`
}

type RestaurantHeader struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (s *Service) ListRestaurantOrders(ctx context.Context, restaurantID int64, limit int) (*RestaurantOrders, error) {
	rest, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	orders, err := s.storage.ListByRestaurant(ctx, restaurantID, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.storage.CountByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return &RestaurantOrders{
		Restaurant:  RestaurantHeader{ID: rest.ID, Name: rest.Name, Slug: rest.Slug},
		Orders:      orders,
		TotalOrders: total,
	}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, number string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("status", "unknown order status")
	}
	old, err := s.storage.UpdateStatus(ctx, number, status)
	if err != nil {
		return nil, err
	}
	if old != status {
		s.publishStatusChanged(ctx, number, old, status)
	}
	s.log.Info("order_status_updated", map[string]any{
		"order_number": number,
		"old_status":   string(old),
		"new_status":   string(status),
	})
	return s.storage.GetByNumber(ctx, number)
}

func (s *Service) UpdatePayment(ctx context.Context, number string, status domain.PaymentStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("payment_status", "unknown payment status")
	}
	if err := s.storage.UpdatePaymentStatus(ctx, number, status); err != nil {
		return nil, err
	}
	s.log.Info("order_payment_updated", map[string]any{
		"order_number":   number,
		"payment_status": string(status),
	})
	return s.storage.GetByNumber(ctx, number)
}

func (s *Service) publishStatusChanged(ctx context.Context, number string, old, updated domain.OrderStatus) {
	event := domain.OrderStatusChangedEvent{
		OrderNumber: number,
		OldStatus:   string(old),
		NewStatus:   string(updated),
		ChangedAt:   time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		s.log.Error("status_event_encode_failed", err, map[string]any{"order_number": number})
		return
	}
	if err := s.events.Publish(ctx, rabbitmq.NotificationsExchange, "", body); err != nil {
		s.log.Error("status_event_publish_failed", err, map[string]any{"order_number": number})
	}
}
