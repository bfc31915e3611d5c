package catalog

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/common/logger"
	"foxi-food/internal/domain"
)

type Storage interface {
	GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context, restaurantID int64) ([]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DisableMenuItem(ctx context.Context, id int64) error

	ListVariations(ctx context.Context, menuItemID int64) ([]domain.MenuItemVariation, error)
	ReplaceVariations(ctx context.Context, menuItemID int64, variations []domain.MenuItemVariation) error

	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, restaurantID int64) ([]domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DisableCategory(ctx context.Context, id int64) error
}

type RestaurantLookup interface {
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
}

type Service struct {
	storage     Storage
	restaurants RestaurantLookup
	log         *logger.Logger
}

func NewService(storage Storage, restaurants RestaurantLookup, log *logger.Logger) *Service {
	return &Service{storage: storage, restaurants: restaurants, log: log}
}

// Menu is the full public menu of one restaurant, grouped by category.
type Menu struct {
	Restaurant *domain.Restaurant `json:"restaurant"`
	Categories []MenuCategory     `json:"categories"`
}

type MenuCategory struct {
	domain.Category
	Items []domain.MenuItem `json:"items"`
}

func (s *Service) GetMenu(ctx context.Context, restaurantID int64) (*Menu, error) {
	rest, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	categories, err := s.storage.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := s.storage.ListMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		variations, err := s.storage.ListVariations(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Variations = variations
	}

	menu := &Menu{Restaurant: rest, Categories: make([]MenuCategory, 0, len(categories))}
	byCategory := make(map[int64][]domain.MenuItem)
	for _, item := range items {
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}
	for _, c := range categories {
		menu.Categories = append(menu.Categories, MenuCategory{
			Category: c,
			Items:    orEmptyItems(byCategory[c.ID]),
		})
	}
	return menu, nil
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

func (r *CategoryRequest) validate() error {
	if r.Name == "" {
		return apperrors.Validation("name", "name is required")
	}
	if len(r.Name) > 100 {
		return apperrors.Validation("name", "name must be less than 100 characters")
	}
	return nil
}

func (s *Service) CreateCategory(ctx context.Context, restaurantID int64, req *CategoryRequest) (*domain.Category, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	c := &domain.Category{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
		IsActive:     true,
	}
	if err := s.storage.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context, restaurantID int64) ([]domain.Category, error) {
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.storage.ListCategories(ctx, restaurantID)
}

func (s *Service) UpdateCategory(ctx context.Context, restaurantID, id int64, req *CategoryRequest) (*domain.Category, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	c, err := s.ownedCategory(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Description = req.Description
	c.SortOrder = req.SortOrder
	if err := s.storage.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DisableCategory(ctx context.Context, restaurantID, id int64) error {
	if _, err := s.ownedCategory(ctx, restaurantID, id); err != nil {
		return err
	}
	return s.storage.DisableCategory(ctx, id)
}

func (s *Service) ownedCategory(ctx context.Context, restaurantID, id int64) (*domain.Category, error) {
	c, err := s.storage.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.RestaurantID != restaurantID {
		return nil, apperrors.NotFound("category", strconv.FormatInt(id, 10))
	}
	return c, nil
}

type MenuItemRequest struct {
	CategoryID      int64              `json:"category_id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Price           decimal.Decimal    `json:"price"`
	Ingredients     string             `json:"ingredients"`
	Allergens       string             `json:"allergens"`
	PreparationTime int                `json:"preparation_time"`
	Calories        *int               `json:"calories"`
	IsVegetarian    bool               `json:"is_vegetarian"`
	IsVegan         bool               `json:"is_vegan"`
	IsGlutenFree    bool               `json:"is_gluten_free"`
	IsSpicy         bool               `json:"is_spicy"`
	IsFeatured      bool               `json:"is_featured"`
	SortOrder       int                `json:"sort_order"`
	// Variations is a full replacement set. nil means leave the current
	// set alone; an empty array removes every variation.
	Variations *[]VariationRequest `json:"variations"`
}

type VariationRequest struct {
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	IsAvailable     *bool           `json:"is_available"`
}

func (r *MenuItemRequest) validate() error {
	if r.CategoryID <= 0 {
		return apperrors.Validation("category_id", "category id is required")
	}
	if r.Name == "" {
		return apperrors.Validation("name", "name is required")
	}
	if len(r.Name) > 100 {
		return apperrors.Validation("name", "name must be less than 100 characters")
	}
	if !r.Price.IsPositive() {
		return apperrors.Validation("price", "price must be positive")
	}
	if r.Variations != nil {
		for _, v := range *r.Variations {
			if v.Name == "" {
				return apperrors.Validation("variations", "variation name is required")
			}
		}
	}
	return nil
}

func (s *Service) CreateMenuItem(ctx context.Context, restaurantID int64, req *MenuItemRequest) (*domain.MenuItem, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	category, err := s.storage.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.RestaurantID != restaurantID {
		return nil, apperrors.Validation("category_id", "category belongs to a different restaurant")
	}

	item := &domain.MenuItem{
		RestaurantID:    restaurantID,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Ingredients:     req.Ingredients,
		Allergens:       req.Allergens,
		PreparationTime: defaultPrepTime(req.PreparationTime),
		Calories:        req.Calories,
		IsVegetarian:    req.IsVegetarian,
		IsVegan:         req.IsVegan,
		IsGlutenFree:    req.IsGlutenFree,
		IsSpicy:         req.IsSpicy,
		IsAvailable:     true,
		IsFeatured:      req.IsFeatured,
		SortOrder:       req.SortOrder,
	}
	if err := s.storage.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	if req.Variations != nil && len(*req.Variations) > 0 {
		item.Variations = toVariations(*req.Variations)
		if err := s.storage.ReplaceVariations(ctx, item.ID, item.Variations); err != nil {
			return nil, err
		}
	}
	s.log.Info("menu_item_created", map[string]any{
		"menu_item_id":  item.ID,
		"restaurant_id": restaurantID,
	})
	return item, nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, restaurantID, id int64, req *MenuItemRequest) (*domain.MenuItem, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	item, err := s.ownedMenuItem(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	category, err := s.storage.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.RestaurantID != item.RestaurantID {
		return nil, apperrors.Validation("category_id", "category belongs to a different restaurant")
	}

	item.CategoryID = req.CategoryID
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Ingredients = req.Ingredients
	item.Allergens = req.Allergens
	item.PreparationTime = defaultPrepTime(req.PreparationTime)
	item.Calories = req.Calories
	item.IsVegetarian = req.IsVegetarian
	item.IsVegan = req.IsVegan
	item.IsGlutenFree = req.IsGlutenFree
	item.IsSpicy = req.IsSpicy
	item.IsFeatured = req.IsFeatured
	item.SortOrder = req.SortOrder
	if err := s.storage.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}

	if req.Variations == nil {
		item.Variations, err = s.storage.ListVariations(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		return item, nil
	}
	item.Variations = toVariations(*req.Variations)
	if err := s.storage.ReplaceVariations(ctx, item.ID, item.Variations); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ListMenuItems(ctx context.Context, restaurantID int64) ([]domain.MenuItem, error) {
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.storage.ListMenuItems(ctx, restaurantID)
}

func (s *Service) GetMenuItemFor(ctx context.Context, restaurantID, id int64) (*domain.MenuItem, error) {
	item, err := s.ownedMenuItem(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	item.Variations, err = s.storage.ListVariations(ctx, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DisableMenuItem(ctx context.Context, restaurantID, id int64) error {
	if _, err := s.ownedMenuItem(ctx, restaurantID, id); err != nil {
		return err
	}
	if err := s.storage.DisableMenuItem(ctx, id); err != nil {
		return err
	}
	s.log.Info("menu_item_disabled", map[string]any{"menu_item_id": id})
	return nil
}

func (s *Service) ownedMenuItem(ctx context.Context, restaurantID, id int64) (*domain.MenuItem, error) {
	item, err := s.storage.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != restaurantID {
		return nil, apperrors.NotFound("menu item", strconv.FormatInt(id, 10))
	}
	return item, nil
}

func toVariations(reqs []VariationRequest) []domain.MenuItemVariation {
	out := make([]domain.MenuItemVariation, 0, len(reqs))
	for _, v := range reqs {
		available := true
		if v.IsAvailable != nil {
			available = *v.IsAvailable
		}
		out = append(out, domain.MenuItemVariation{
			Name:            v.Name,
			PriceAdjustment: v.PriceAdjustment,
			IsAvailable:     available,
		})
	}
	return out
}

func defaultPrepTime(minutes int) int {
	if minutes <= 0 {
		return 15
	}
	return minutes
}

func orEmptyItems(items []domain.MenuItem) []domain.MenuItem {
	if items == nil {
		return []domain.MenuItem{}
	}
	return items
}
