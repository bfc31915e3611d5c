package catalog

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

type fakeStorage struct {
	items      map[int64]*domain.MenuItem
	categories map[int64]*domain.Category
	variations map[int64][]domain.MenuItemVariation

	replaceCalls [][]domain.MenuItemVariation
}

func (f *fakeStorage) GetMenuItem(_ context.Context, id int64) (*domain.MenuItem, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("menu item", strconv.FormatInt(id, 10))
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStorage) ListMenuItems(_ context.Context, restaurantID int64) ([]domain.MenuItem, error) {
	out := []domain.MenuItem{}
	for _, m := range f.items {
		if m.RestaurantID == restaurantID && m.IsAvailable {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStorage) CreateMenuItem(_ context.Context, item *domain.MenuItem) error {
	item.ID = int64(len(f.items) + 1)
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeStorage) UpdateMenuItem(_ context.Context, item *domain.MenuItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeStorage) DisableMenuItem(_ context.Context, id int64) error {
	f.items[id].IsAvailable = false
	return nil
}

func (f *fakeStorage) ListVariations(_ context.Context, menuItemID int64) ([]domain.MenuItemVariation, error) {
	return append([]domain.MenuItemVariation{}, f.variations[menuItemID]...), nil
}

func (f *fakeStorage) ReplaceVariations(_ context.Context, menuItemID int64, variations []domain.MenuItemVariation) error {
	f.variations[menuItemID] = append([]domain.MenuItemVariation{}, variations...)
	f.replaceCalls = append(f.replaceCalls, variations)
	return nil
}

func (f *fakeStorage) GetCategory(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperrors.NotFound("category", strconv.FormatInt(id, 10))
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStorage) ListCategories(_ context.Context, restaurantID int64) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range f.categories {
		if c.RestaurantID == restaurantID && c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStorage) CreateCategory(_ context.Context, c *domain.Category) error {
	c.ID = int64(len(f.categories) + 1)
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeStorage) UpdateCategory(_ context.Context, c *domain.Category) error {
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeStorage) DisableCategory(_ context.Context, id int64) error {
	f.categories[id].IsActive = false
	return nil
}

type fakeRestaurants struct {
	restaurants map[int64]*domain.Restaurant
}

func (f *fakeRestaurants) GetRestaurant(_ context.Context, id int64) (*domain.Restaurant, error) {
	r, ok := f.restaurants[id]
	if !ok {
		return nil, apperrors.NotFound("restaurant", strconv.FormatInt(id, 10))
	}
	cp := *r
	return &cp, nil
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		items: map[int64]*domain.MenuItem{
			10: {
				ID: 10, RestaurantID: 1, CategoryID: 5, Name: "Margherita",
				Price: decimal.RequireFromString("8.90"), IsAvailable: true,
			},
		},
		categories: map[int64]*domain.Category{
			5: {ID: 5, RestaurantID: 1, Name: "Pizza", IsActive: true},
		},
		variations: map[int64][]domain.MenuItemVariation{
			10: {
				{ID: 100, MenuItemID: 10, Name: "32 cm", IsAvailable: true},
				{ID: 101, MenuItemID: 10, Name: "40 cm", PriceAdjustment: decimal.RequireFromString("3.00"), IsAvailable: true},
			},
		},
	}
}

func newTestService(storage *fakeStorage) *Service {
	restaurants := &fakeRestaurants{restaurants: map[int64]*domain.Restaurant{
		1: {ID: 1, Name: "Pizza Bella", IsActive: true},
	}}
	return NewService(storage, restaurants, logger.New("test"))
}

func updateRequest() *MenuItemRequest {
	return &MenuItemRequest{
		CategoryID: 5,
		Name:       "Margherita",
		Price:      decimal.RequireFromString("9.90"),
	}
}

func TestUpdateMenuItemKeepsVariationsWhenOmitted(t *testing.T) {
	storage := newFakeStorage()
	svc := newTestService(storage)

	item, err := svc.UpdateMenuItem(context.Background(), 1, 10, updateRequest())
	require.NoError(t, err)

	assert.Empty(t, storage.replaceCalls)
	require.Len(t, storage.variations[10], 2)
	require.Len(t, item.Variations, 2)
	assert.Equal(t, "32 cm", item.Variations[0].Name)
	assert.Equal(t, "9.90", item.Price.StringFixed(2))
}

func TestUpdateMenuItemClearsVariationsWithEmptyArray(t *testing.T) {
	storage := newFakeStorage()
	svc := newTestService(storage)

	req := updateRequest()
	req.Variations = &[]VariationRequest{}

	item, err := svc.UpdateMenuItem(context.Background(), 1, 10, req)
	require.NoError(t, err)

	require.Len(t, storage.replaceCalls, 1)
	assert.Empty(t, storage.variations[10])
	assert.Empty(t, item.Variations)
}

func TestUpdateMenuItemReplacesVariations(t *testing.T) {
	storage := newFakeStorage()
	svc := newTestService(storage)

	req := updateRequest()
	req.Variations = &[]VariationRequest{
		{Name: "50 cm", PriceAdjustment: decimal.RequireFromString("5.00")},
	}

	item, err := svc.UpdateMenuItem(context.Background(), 1, 10, req)
	require.NoError(t, err)

	require.Len(t, storage.variations[10], 1)
	assert.Equal(t, "50 cm", storage.variations[10][0].Name)
	require.Len(t, item.Variations, 1)
	assert.True(t, item.Variations[0].IsAvailable)
}

func TestUpdateMenuItemRejectsForeignCategory(t *testing.T) {
	storage := newFakeStorage()
	storage.categories[6] = &domain.Category{ID: 6, RestaurantID: 2, Name: "Burgery", IsActive: true}
	svc := newTestService(storage)

	req := updateRequest()
	req.CategoryID = 6

	_, err := svc.UpdateMenuItem(context.Background(), 1, 10, req)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "category_id", ve.Field)
}
