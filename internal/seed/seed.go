package seed

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"foxi-food/internal/catalog"
	"foxi-food/internal/common/logger"
	"foxi-food/internal/domain"
	"foxi-food/internal/order"
	"foxi-food/internal/restaurant"
)

// Seeder loads the sample restaurants with their menus, plus a handful of
// customers and orders placed through the regular creation path. It is
// idempotent per restaurant name: an existing slug is skipped, and orders
// are only placed for restaurants created in the same run.
type Seeder struct {
	restaurants *restaurant.Repository
	menu        *catalog.Repository
	orders      *order.Service
	log         *logger.Logger
}

func New(restaurants *restaurant.Repository, menu *catalog.Repository, orders *order.Service, log *logger.Logger) *Seeder {
	return &Seeder{restaurants: restaurants, menu: menu, orders: orders, log: log}
}

type summaryRow struct {
	Restaurant string
	Categories int
	Items      int
	Variations int
	Orders     int
	Skipped    bool
}

func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.restaurants.ListRestaurants(ctx)
	if err != nil {
		return err
	}
	taken := make(map[string]bool, len(existing))
	for _, r := range existing {
		taken[r.Slug] = true
	}

	customers := sampleCustomers()
	rows := []summaryRow{}
	for _, data := range sampleRestaurants() {
		slug := restaurant.Slugify(data.Name)
		if taken[slug] {
			rows = append(rows, summaryRow{Restaurant: data.Name, Skipped: true})
			continue
		}
		row, itemIDs, restaurantID, err := s.seedRestaurant(ctx, &data)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", data.Name, err)
		}
		row.Orders, err = s.seedOrders(ctx, restaurantID, itemIDs, customers)
		if err != nil {
			return fmt.Errorf("failed to seed orders for %s: %w", data.Name, err)
		}
		rows = append(rows, *row)
	}

	printSummary(rows)
	s.log.Info("seed_completed", map[string]any{"restaurants": len(rows)})
	return nil
}

func (s *Seeder) seedRestaurant(ctx context.Context, data *restaurantData) (*summaryRow, []int64, int64, error) {
	rest := &domain.Restaurant{
		Name:              data.Name,
		Slug:              restaurant.Slugify(data.Name),
		Description:       data.Description,
		Address:           data.Address,
		Phone:             data.Phone,
		Email:             data.Email,
		CuisineType:       data.CuisineType,
		DeliveryFee:       data.DeliveryFee,
		MinimumOrder:      data.MinimumOrder,
		DeliveryRadius:    5,
		IsActive:          true,
		IsAcceptingOrders: true,
	}
	if err := s.restaurants.CreateRestaurant(ctx, rest); err != nil {
		return nil, nil, 0, err
	}

	row := summaryRow{Restaurant: data.Name}
	itemIDs := []int64{}
	for i, cat := range data.Categories {
		category := &domain.Category{
			RestaurantID: rest.ID,
			Name:         cat.Name,
			SortOrder:    i,
			IsActive:     true,
		}
		if err := s.menu.CreateCategory(ctx, category); err != nil {
			return nil, nil, 0, err
		}
		row.Categories++

		for j, it := range cat.Items {
			item := &domain.MenuItem{
				RestaurantID:    rest.ID,
				CategoryID:      category.ID,
				Name:            it.Name,
				Description:     it.Description,
				Price:           decimal.RequireFromString(it.Price),
				PreparationTime: 15,
				IsAvailable:     true,
				SortOrder:       j,
			}
			if err := s.menu.CreateMenuItem(ctx, item); err != nil {
				return nil, nil, 0, err
			}
			row.Items++
			itemIDs = append(itemIDs, item.ID)

			if len(it.Variations) > 0 {
				variations := make([]domain.MenuItemVariation, 0, len(it.Variations))
				for _, v := range it.Variations {
					variations = append(variations, domain.MenuItemVariation{
						Name:            v.Name,
						PriceAdjustment: decimal.RequireFromString(v.PriceAdjustment),
						IsAvailable:     true,
					})
				}
				if err := s.menu.ReplaceVariations(ctx, item.ID, variations); err != nil {
					return nil, nil, 0, err
				}
				row.Variations += len(variations)
			}
		}
	}
	return &row, itemIDs, rest.ID, nil
}

// seedOrders places a couple of demo orders per restaurant through the
// real creation path, so totals and snapshots come from the engine itself.
func (s *Seeder) seedOrders(ctx context.Context, restaurantID int64, itemIDs []int64, customers []customerData) (int, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	placed := 0
	for i := 0; i < 2; i++ {
		c := customers[(int(restaurantID)+i)%len(customers)]
		items := []order.OrderItemInput{{MenuItemID: itemIDs[i%len(itemIDs)], Quantity: 1}}
		if len(itemIDs) > 1 {
			items = append(items, order.OrderItemInput{
				MenuItemID: itemIDs[(i+1)%len(itemIDs)],
				Quantity:   2,
			})
		}
		_, err := s.orders.CreateOrder(ctx, &order.CreateOrderRequest{
			RestaurantID:    restaurantID,
			DeliveryAddress: c.Address,
			DeliveryPhone:   c.Phone,
			Customer: order.CustomerInput{
				Name:    c.Name,
				Email:   c.Email,
				Phone:   c.Phone,
				Address: c.Address,
			},
			Items: items,
		})
		if err != nil {
			return placed, err
		}
		placed++
	}
	return placed, nil
}

func printSummary(rows []summaryRow) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Restaurant", "Categories", "Items", "Variations", "Orders", "Status")
	for _, r := range rows {
		status := "created"
		if r.Skipped {
			status = "skipped"
		}
		_ = table.Append(r.Restaurant,
			strconv.Itoa(r.Categories), strconv.Itoa(r.Items),
			strconv.Itoa(r.Variations), strconv.Itoa(r.Orders), status)
	}
	_ = table.Render()
}
