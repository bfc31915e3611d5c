package seed

import "github.com/shopspring/decimal"

type restaurantData struct {
	Name         string
	Description  string
	Address      string
	Phone        string
	Email        string
	CuisineType  string
	DeliveryFee  decimal.Decimal
	MinimumOrder decimal.Decimal
	Categories   []categoryData
}

type categoryData struct {
	Name  string
	Items []itemData
}

type itemData struct {
	Name        string
	Description string
	Price       string
	Variations  []variationData
}

type variationData struct {
	Name            string
	PriceAdjustment string
}

type customerData struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

func sampleCustomers() []customerData {
	return []customerData{
		{Name: "Ján Novák", Email: "jan.novak@email.com", Phone: "+421 901 123 456", Address: "Testovacia 12, Bratislava"},
		{Name: "Mária Svoboda", Email: "maria.svoboda@email.com", Phone: "+421 902 234 567", Address: "Testovacia 34, Bratislava"},
		{Name: "Peter Horváth", Email: "peter.horvath@email.com", Phone: "+421 903 345 678", Address: "Testovacia 56, Bratislava"},
	}
}

func sampleRestaurants() []restaurantData {
	return []restaurantData{
		{
			Name:         "Pizza Bella",
			Description:  "Autentická talianska pizza pečená v kamennej peci",
			Address:      "Hlavná 123, Bratislava",
			Phone:        "+421 123 456 789",
			Email:        "info@pizzabella.sk",
			CuisineType:  "italian",
			DeliveryFee:  decimal.RequireFromString("2.50"),
			MinimumOrder: decimal.RequireFromString("15.00"),
			Categories: []categoryData{
				{
					Name: "Pizza",
					Items: []itemData{
						{Name: "Margherita", Description: "Rajčinová omáčka, mozzarella, bazalka", Price: "8.90",
							Variations: []variationData{
								{Name: "32 cm", PriceAdjustment: "0.00"},
								{Name: "40 cm", PriceAdjustment: "3.00"},
							}},
						{Name: "Prosciutto", Description: "Rajčinová omáčka, mozzarella, prosciutto", Price: "11.90"},
						{Name: "Quattro Stagioni", Description: "Rajčinová omáčka, mozzarella, šunka, huby, artičoky, olivy", Price: "13.90"},
						{Name: "Diavola", Description: "Rajčinová omáčka, mozzarella, pikantná saláma", Price: "12.50"},
					},
				},
				{
					Name: "Cestoviny",
					Items: []itemData{
						{Name: "Spaghetti Carbonara", Description: "Spaghetti, slanina, vajcia, parmezán", Price: "9.90"},
						{Name: "Penne Arrabbiata", Description: "Penne, pikantná rajčinová omáčka", Price: "8.50"},
					},
				},
			},
		},
		{
			Name:         "Burger House",
			Description:  "Šťavnaté burgery z čerstvého hovädzieho mäsa",
			Address:      "Obchodná 456, Bratislava",
			Phone:        "+421 987 654 321",
			Email:        "contact@burgerhouse.sk",
			CuisineType:  "burger",
			DeliveryFee:  decimal.RequireFromString("3.00"),
			MinimumOrder: decimal.RequireFromString("12.00"),
			Categories: []categoryData{
				{
					Name: "Burgery",
					Items: []itemData{
						{Name: "Classic Burger", Description: "Hovädzie mäso, syr, šalát, paradajka, cibuľa", Price: "7.90",
							Variations: []variationData{
								{Name: "Double patty", PriceAdjustment: "2.50"},
							}},
						{Name: "Bacon Burger", Description: "Hovädzie mäso, slanina, syr, šalát, paradajka", Price: "9.90"},
						{Name: "Veggie Burger", Description: "Vegetariánsky burger, šalát, paradajka, avokádo", Price: "8.50"},
					},
				},
				{
					Name: "Prílohy",
					Items: []itemData{
						{Name: "Hranolky", Description: "Chrumkavé hranolky", Price: "3.50"},
						{Name: "Cibuľové krúžky", Description: "Smažené cibuľové krúžky", Price: "4.20"},
					},
				},
			},
		},
		{
			Name:         "Sushi Zen",
			Description:  "Najčerstvejšie sushi v meste",
			Address:      "Panská 789, Bratislava",
			Phone:        "+421 555 123 456",
			Email:        "info@sushizen.sk",
			CuisineType:  "sushi",
			DeliveryFee:  decimal.RequireFromString("4.00"),
			MinimumOrder: decimal.RequireFromString("20.00"),
			Categories: []categoryData{
				{
					Name: "Sushi",
					Items: []itemData{
						{Name: "Salmon Nigiri", Description: "Čerstvý losos na ryži (2ks)", Price: "5.90"},
						{Name: "Tuna Roll", Description: "Tuniak, uhorka, avokádo (8ks)", Price: "12.90"},
						{Name: "California Roll", Description: "Krabí mäso, avokádo, uhorka (8ks)", Price: "11.50"},
					},
				},
				{
					Name: "Polievky",
					Items: []itemData{
						{Name: "Miso polievka", Description: "Tradičná japonská polievka", Price: "4.50"},
					},
				},
			},
		},
	}
}
