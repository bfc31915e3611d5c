package order

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/common/logger"
	"foxi-food/internal/domain"
)

type fakeTx struct {
	restaurants map[int64]*domain.Restaurant
	items       map[int64]*domain.MenuItem
	variations  map[int64][]domain.MenuItemVariation
	customers   map[string]*domain.Customer

	nextCustomerID int64
	nextOrderID    int64
	collideFirst   int
	insertAttempts int
	inserted       []*domain.Order
}

func (t *fakeTx) GetRestaurant(_ context.Context, id int64) (*domain.Restaurant, error) {
	r, ok := t.restaurants[id]
	if !ok {
		return nil, apperrors.NotFound("restaurant", strconv.FormatInt(id, 10))
	}
	cp := *r
	return &cp, nil
}

func (t *fakeTx) GetMenuItem(_ context.Context, id int64) (*domain.MenuItem, error) {
	m, ok := t.items[id]
	if !ok {
		return nil, apperrors.NotFound("menu item", strconv.FormatInt(id, 10))
	}
	cp := *m
	return &cp, nil
}

func (t *fakeTx) GetVariations(_ context.Context, menuItemID int64, ids []int64) ([]domain.MenuItemVariation, error) {
	out := []domain.MenuItemVariation{}
	for _, id := range ids {
		found := false
		for _, v := range t.variations[menuItemID] {
			if v.ID == id {
				out = append(out, v)
				found = true
			}
		}
		if !found {
			return nil, apperrors.NotFound("variation", strconv.FormatInt(id, 10))
		}
	}
	return out, nil
}

func (t *fakeTx) FindOrCreate(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	if existing, ok := t.customers[c.Email]; ok {
		cp := *existing
		return &cp, nil
	}
	t.nextCustomerID++
	created := *c
	created.ID = t.nextCustomerID
	t.customers[c.Email] = &created
	cp := created
	return &cp, nil
}

func (t *fakeTx) InsertOrder(_ context.Context, o *domain.Order) error {
	t.insertAttempts++
	if t.insertAttempts <= t.collideFirst {
		return ErrOrderNumberTaken
	}
	t.nextOrderID++
	o.ID = t.nextOrderID
	t.inserted = append(t.inserted, o)
	return nil
}

func (t *fakeTx) InsertOrderItems(_ context.Context, orderID int64, items []domain.OrderItem) error {
	return nil
}

type fakeStore struct {
	tx        *fakeTx
	rollbacks int
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	if err := fn(s.tx); err != nil {
		s.rollbacks++
		return err
	}
	return nil
}

type fakePublisher struct {
	exchanges []string
	keys      []string
	bodies    [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, exchange, key string, body []byte) error {
	p.exchanges = append(p.exchanges, exchange)
	p.keys = append(p.keys, key)
	p.bodies = append(p.bodies, body)
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFakeTx() *fakeTx {
	return &fakeTx{
		restaurants: map[int64]*domain.Restaurant{
			1: {
				ID: 1, Name: "Pizza Bella", IsActive: true, IsAcceptingOrders: true,
				DeliveryFee: dec("2.99"),
			},
		},
		items: map[int64]*domain.MenuItem{
			10: {ID: 10, RestaurantID: 1, Name: "Margherita", Price: dec("8.99"), IsAvailable: true},
			11: {ID: 11, RestaurantID: 1, Name: "Penne Arrabbiata", Price: dec("6.99"), IsAvailable: true},
			12: {ID: 12, RestaurantID: 1, Name: "Calzone", Price: dec("10.50"), IsAvailable: false},
			20: {ID: 20, RestaurantID: 2, Name: "Classic Burger", Price: dec("7.90"), IsAvailable: true},
		},
		variations: map[int64][]domain.MenuItemVariation{
			10: {
				{ID: 100, MenuItemID: 10, Name: "40 cm", PriceAdjustment: dec("3.00"), IsAvailable: true},
				{ID: 101, MenuItemID: 10, Name: "Gluten free base", PriceAdjustment: dec("1.50"), IsAvailable: false},
			},
		},
		customers: map[string]*domain.Customer{},
	}
}

func newTestService(tx *fakeTx, taxRate string) (*Service, *fakePublisher) {
	pub := &fakePublisher{}
	svc := NewService(&fakeStore{tx: tx}, pub, dec(taxRate), logger.New("test"))
	return svc, pub
}

func TestCreateOrderTotals(t *testing.T) {
	tx := newFakeTx()
	svc, pub := newTestService(tx, "0")

	req := validRequest()
	req.Items = []OrderItemInput{
		{MenuItemID: 10, Quantity: 1},
		{MenuItemID: 11, Quantity: 2},
	}

	o, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "22.97", o.Subtotal.StringFixed(2))
	assert.Equal(t, "2.99", o.DeliveryFee.StringFixed(2))
	assert.Equal(t, "0.00", o.TaxAmount.StringFixed(2))
	assert.Equal(t, "25.96", o.TotalAmount.StringFixed(2))
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Equal(t, domain.PaymentPending, o.PaymentStatus)
	assert.Len(t, o.OrderNumber, 8)

	require.Len(t, o.Items, 2)
	assert.Equal(t, "8.99", o.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "8.99", o.Items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "6.99", o.Items[1].UnitPrice.StringFixed(2))
	assert.Equal(t, "13.98", o.Items[1].TotalPrice.StringFixed(2))

	require.Len(t, pub.keys, 1)
	assert.Equal(t, "order.created", pub.keys[0])
}

func TestCreateOrderTaxRounding(t *testing.T) {
	tx := newFakeTx()
	svc, _ := newTestService(tx, "0.10")

	req := validRequest()
	req.Items = []OrderItemInput{{MenuItemID: 10, Quantity: 1}}

	o, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)

	// 8.99 * 0.10 = 0.899, rounded to cents.
	assert.Equal(t, "0.90", o.TaxAmount.StringFixed(2))
	assert.Equal(t, "12.88", o.TotalAmount.StringFixed(2))
}

func TestCreateOrderVariationPricing(t *testing.T) {
	tx := newFakeTx()
	svc, _ := newTestService(tx, "0")

	req := validRequest()
	req.Items = []OrderItemInput{{MenuItemID: 10, Quantity: 2, VariationIDs: []int64{100}}}

	o, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, o.Items, 1)
	assert.Equal(t, "11.99", o.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "23.98", o.Items[0].TotalPrice.StringFixed(2))
	require.Len(t, o.Items[0].Variations, 1)
	require.NotNil(t, o.Items[0].Variations[0].VariationID)
	assert.Equal(t, int64(100), *o.Items[0].Variations[0].VariationID)
	assert.Equal(t, "3.00", o.Items[0].Variations[0].PriceAdjustment.StringFixed(2))
}

func TestCreateOrderDuplicateVariationIDs(t *testing.T) {
	tx := newFakeTx()
	svc, _ := newTestService(tx, "0")

	req := validRequest()
	req.Items = []OrderItemInput{{MenuItemID: 10, Quantity: 1, VariationIDs: []int64{100, 100}}}

	_, err := svc.CreateOrder(context.Background(), req)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items[0].variation_ids", ve.Field)
	assert.Empty(t, tx.inserted)
}

func TestCreateOrderSnapshotsSurviveMenuEdits(t *testing.T) {
	tx := newFakeTx()
	svc, _ := newTestService(tx, "0")

	req := validRequest()
	req.Items = []OrderItemInput{{MenuItemID: 10, Quantity: 1, VariationIDs: []int64{100}}}

	o, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)

	// Menu edits after the order was placed must not reach into it.
	tx.items[10].Name = "Margherita Grande"
	tx.items[10].Price = dec("19.99")
	tx.variations[10] = nil

	require.Len(t, tx.inserted, 1)
	stored := tx.inserted[0]
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Margherita", stored.Items[0].ItemName)
	assert.Equal(t, "11.99", stored.Items[0].UnitPrice.StringFixed(2))
	require.Len(t, stored.Items[0].Variations, 1)
	assert.Equal(t, "40 cm", stored.Items[0].Variations[0].Name)
	assert.Equal(t, "3.00", stored.Items[0].Variations[0].PriceAdjustment.StringFixed(2))
	assert.Equal(t, "14.98", o.TotalAmount.StringFixed(2))
}

func TestCreateOrderUnavailableItem(t *testing.T) {
	tx := newFakeTx()
	svc, pub := newTestService(tx, "0")

	req := validRequest()
	req.Items = []OrderItemInput{{MenuItemID: 12, Quantity: 1}}

	_, err := svc.CreateOrder(context.Background(), req)
	var iu *apperrors.ItemUnavailableError
	require.ErrorAs(t, err, &iu)
	assert.Empty(t, pub.keys)
	assert.Empty(t, tx.inserted)
}

func TestCreateOrderUnavailableVariation(t *testing.T) {
	tx := newFakeTx()
	svc, _ := newTestService(tx, "0")

	req := validRequest()
	req.Items = []OrderItemInput{{MenuItemID: 10, Quantity: 1, VariationIDs: []int64{101}}}

	_, err := svc.CreateOrder(context.Background(), req)
	var iu *apperrors.ItemUnavailableError
	require.ErrorAs(t, err, &iu)
}

func TestCreateOrderCrossRestaurantItem(t *testing.T) {
	tx := newFakeTx()
	svc, _ := newTestService(tx, "0")

	req := validRequest()
	req.Items = []OrderItemInput{{MenuItemID: 20, Quantity: 1}}

	_, err := svc.CreateOrder(context.Background(), req)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items[0].menu_item_id", ve.Field)
}

func TestCreateOrderUnknownRestaurant(t *testing.T) {
	tx := newFakeTx()
	svc, _ := newTestService(tx, "0")

	req := validRequest()
	req.RestaurantID = 99

	_, err := svc.CreateOrder(context.Background(), req)
	var nf *apperrors.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCreateOrderInactiveRestaurant(t *testing.T) {
	tx := newFakeTx()
	tx.restaurants[1].IsActive = false
	svc, _ := newTestService(tx, "0")

	_, err := svc.CreateOrder(context.Background(), validRequest())
	var nf *apperrors.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCreateOrderRestaurantNotAccepting(t *testing.T) {
	tx := newFakeTx()
	tx.restaurants[1].IsAcceptingOrders = false
	svc, _ := newTestService(tx, "0")

	_, err := svc.CreateOrder(context.Background(), validRequest())
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "restaurant_id", ve.Field)
}

func TestCreateOrderReusesCustomerByEmail(t *testing.T) {
	tx := newFakeTx()
	tx.customers["jana@example.com"] = &domain.Customer{
		ID: 42, Name: "Jana N.", Email: "jana@example.com", Phone: "+421 111",
	}
	svc, _ := newTestService(tx, "0")

	o, err := svc.CreateOrder(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), o.CustomerID)
	// The stored profile wins over whatever the request carried.
	assert.Equal(t, "Jana N.", o.CustomerName)
	assert.Equal(t, "Jana N.", tx.customers["jana@example.com"].Name)
}

func TestCreateOrderNumberCollisionRetries(t *testing.T) {
	tx := newFakeTx()
	tx.collideFirst = 2
	svc, _ := newTestService(tx, "0")

	o, err := svc.CreateOrder(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, tx.insertAttempts)
	assert.NotEmpty(t, o.OrderNumber)
}

func TestCreateOrderNumberCollisionExhausted(t *testing.T) {
	tx := newFakeTx()
	tx.collideFirst = numberAttempts
	svc, pub := newTestService(tx, "0")

	_, err := svc.CreateOrder(context.Background(), validRequest())
	var ce *apperrors.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, numberAttempts, tx.insertAttempts)
	assert.Empty(t, pub.keys)
}
