package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/common/logger"
	"foxi-food/internal/connections/rabbitmq"
	"foxi-food/internal/domain"
)

// numberAttempts bounds how often a colliding order number is regenerated
// before the request is rejected.
const numberAttempts = 5

type EventPublisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte) error
}

type Service struct {
	store   Store
	events  EventPublisher
	taxRate decimal.Decimal
	log     *logger.Logger
}

func NewService(store Store, events EventPublisher, taxRate decimal.Decimal, log *logger.Logger) *Service {
	return &Service{store: store, events: events, taxRate: taxRate, log: log}
}

// CreateOrder validates the request, prices it against the current menu and
// persists the order atomically. Prices are snapshotted into the order rows
// so later menu edits never change what a placed order cost.
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*domain.Order, error) {
	if err := validateCreateOrderRequest(req); err != nil {
		return nil, err
	}

	var created *domain.Order
	for attempt := 1; attempt <= numberAttempts; attempt++ {
		number, err := GenerateOrderNumber()
		if err != nil {
			return nil, apperrors.Persistence("generate_order_number", err)
		}

		err = s.store.WithinTx(ctx, func(tx Tx) error {
			o, err := s.buildOrder(ctx, tx, req, number)
			if err != nil {
				return err
			}
			if err := tx.InsertOrder(ctx, o); err != nil {
				return err
			}
			if err := tx.InsertOrderItems(ctx, o.ID, o.Items); err != nil {
				return err
			}
			created = o
			return nil
		})
		if errors.Is(err, ErrOrderNumberTaken) {
			s.log.Warn("order_number_collision", map[string]any{
				"order_number": number,
				"attempt":      attempt,
			})
			continue
		}
		if err != nil {
			return nil, wrapStoreError(err)
		}

		s.publishCreated(ctx, created)
		s.log.Info("order_created", map[string]any{
			"order_number":  created.OrderNumber,
			"restaurant_id": created.RestaurantID,
			"total_amount":  created.TotalAmount.StringFixed(2),
		})
		return created, nil
	}
	return nil, apperrors.Conflict("could not allocate a unique order number, try again")
}

// buildOrder resolves and prices the order inside the transaction. No row
// is written until everything has been validated.
func (s *Service) buildOrder(ctx context.Context, tx Tx, req *CreateOrderRequest, number string) (*domain.Order, error) {
	rest, err := tx.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !rest.IsActive {
		return nil, apperrors.NotFound("restaurant", fmt.Sprintf("%d", req.RestaurantID))
	}
	if !rest.IsAcceptingOrders {
		return nil, apperrors.Validation("restaurant_id", "restaurant is not accepting orders")
	}

	cust, err := tx.FindOrCreate(ctx, &domain.Customer{
		Name:    req.Customer.Name,
		Email:   req.Customer.Email,
		Phone:   req.Customer.Phone,
		Address: req.Customer.Address,
	})
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	items := make([]domain.OrderItem, 0, len(req.Items))
	for i, in := range req.Items {
		item, err := s.priceItem(ctx, tx, req.RestaurantID, i, &in)
		if err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(item.TotalPrice)
		items = append(items, *item)
	}

	tax := subtotal.Mul(s.taxRate).Round(2)
	total := subtotal.Add(rest.DeliveryFee).Add(tax)

	return &domain.Order{
		OrderNumber:     number,
		RestaurantID:    rest.ID,
		RestaurantName:  rest.Name,
		CustomerID:      cust.ID,
		CustomerName:    cust.Name,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		Subtotal:        subtotal,
		DeliveryFee:     rest.DeliveryFee,
		TaxAmount:       tax,
		TotalAmount:     total,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryPhone:   req.DeliveryPhone,
		DeliveryNotes:   req.DeliveryNotes,
		Items:           items,
	}, nil
}

func (s *Service) priceItem(ctx context.Context, tx Tx, restaurantID int64, idx int, in *OrderItemInput) (*domain.OrderItem, error) {
	mi, err := tx.GetMenuItem(ctx, in.MenuItemID)
	if err != nil {
		return nil, err
	}
	if mi.RestaurantID != restaurantID {
		return nil, apperrors.Validation(
			fmt.Sprintf("items[%d].menu_item_id", idx),
			"menu item belongs to a different restaurant")
	}
	if !mi.IsAvailable {
		return nil, apperrors.ItemUnavailable(mi.Name)
	}

	unit := mi.Price
	variations := make([]domain.OrderItemVariation, 0, len(in.VariationIDs))
	if len(in.VariationIDs) > 0 {
		found, err := tx.GetVariations(ctx, mi.ID, in.VariationIDs)
		if err != nil {
			return nil, err
		}
		for _, v := range found {
			if !v.IsAvailable {
				return nil, apperrors.ItemUnavailable(mi.Name + " (" + v.Name + ")")
			}
			unit = unit.Add(v.PriceAdjustment)
			id := v.ID
			variations = append(variations, domain.OrderItemVariation{
				VariationID:     &id,
				Name:            v.Name,
				PriceAdjustment: v.PriceAdjustment,
			})
		}
	}

	return &domain.OrderItem{
		MenuItemID:          mi.ID,
		ItemName:            mi.Name,
		Quantity:            in.Quantity,
		UnitPrice:           unit,
		TotalPrice:          unit.Mul(decimal.NewFromInt(int64(in.Quantity))),
		SpecialInstructions: in.SpecialInstructions,
		Variations:          variations,
	}, nil
}

// publishCreated announces the committed order. The order is already
// durable at this point, so a broker failure is logged and swallowed.
func (s *Service) publishCreated(ctx context.Context, o *domain.Order) {
	event := domain.OrderCreatedEvent{
		OrderNumber:  o.OrderNumber,
		RestaurantID: o.RestaurantID,
		CustomerName: o.CustomerName,
		TotalAmount:  o.TotalAmount.StringFixed(2),
		ItemCount:    len(o.Items),
		CreatedAt:    o.CreatedAt,
	}
	body, err := json.Marshal(event)
	if err != nil {
		s.log.Error("order_event_encode_failed", err, map[string]any{"order_number": o.OrderNumber})
		return
	}
	if err := s.events.Publish(ctx, rabbitmq.OrdersExchange, "order.created", body); err != nil {
		s.log.Error("order_event_publish_failed", err, map[string]any{"order_number": o.OrderNumber})
	}
}

// wrapStoreError keeps typed domain errors intact and folds everything else
// into a persistence failure.
func wrapStoreError(err error) error {
	var (
		ve *apperrors.ValidationError
		nf *apperrors.NotFoundError
		iu *apperrors.ItemUnavailableError
	)
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &iu) {
		return err
	}
	return apperrors.Persistence("create_order", err)
}
