// Package catalog owns the curated Nashville restaurant list used when the
// live provider fails or returns nothing.
package catalog

import "nashville-eats/internal/models"

func coords(lat, lng float64) *models.Coordinates {
	return &models.Coordinates{Latitude: lat, Longitude: lng}
}

// seed is never handed out directly; Seed returns deep copies.
var seed = []models.Restaurant{
	{
		ID:            "hattie-bs-midtown",
		Name:          "Hattie B's Hot Chicken",
		Cuisine:       "Hot Chicken",
		Neighborhood:  "Midtown",
		PriceRange:    models.PriceModerate,
		Description:   "Nashville hot chicken with heat levels from Southern to Shut the Cluck Up.",
		Address:       "112 19th Ave S, Nashville, TN 37203",
		Coordinates:   coords(36.1517, -86.7966),
		Features:      []string{"Counter service", "Outdoor seating", "Local favorite"},
		Website:       "https://hattieb.com",
		InstagramLink: "https://www.instagram.com/hattiebs/",
	},
	{
		ID:           "catbird-seat",
		Name:         "The Catbird Seat",
		Cuisine:      "Modern American",
		Neighborhood: "Midtown",
		PriceRange:   models.PriceFineDining,
		Description:  "Tasting menu served around a U-shaped counter facing the open kitchen.",
		Address:      "1711 Division St, Nashville, TN 37203",
		Coordinates:  coords(36.1519, -86.7975),
		Features:     []string{"Tasting menu", "Chef's counter", "Reservations required", "Romantic"},
		Website:      "https://www.thecatbirdseatrestaurant.com",
		ResyLink:     "https://resy.com/cities/bna/the-catbird-seat",
	},
	{
		ID:            "husk-nashville",
		Name:          "Husk",
		Cuisine:       "Southern",
		Neighborhood:  "Rutledge Hill / Downtown",
		PriceRange:    models.PriceUpscale,
		Description:   "Ingredient-driven Southern cooking in a restored 1880s mansion.",
		Address:       "37 Rutledge St, Nashville, TN 37210",
		Coordinates:   coords(36.1547, -86.7695),
		Features:      []string{"Historic building", "Brunch", "Patio", "Romantic"},
		Website:       "https://husknashville.com",
		ResyLink:      "https://resy.com/cities/bna/husk-nashville",
		OpenTableLink: "https://www.opentable.com/r/husk-nashville",
	},
	{
		ID:           "rolf-and-daughters",
		Name:         "Rolf and Daughters",
		Cuisine:      "Italian",
		Neighborhood: "Germantown",
		PriceRange:   models.PriceUpscale,
		Description:  "Handmade pastas and wood-fired plates in a converted factory.",
		Address:      "700 Taylor St, Nashville, TN 37208",
		Coordinates:  coords(36.1794, -86.7906),
		Features:     []string{"Handmade pasta", "Communal tables", "Vegetarian friendly", "Lively"},
		Website:      "https://rolfanddaughters.com",
	},
	{
		ID:            "city-house",
		Name:          "City House",
		Cuisine:       "Italian",
		Neighborhood:  "Germantown",
		PriceRange:    models.PriceUpscale,
		Description:   "Southern-inflected Italian with belly ham pizza and a Sunday supper menu.",
		Address:       "1222 4th Ave N, Nashville, TN 37208",
		Coordinates:   coords(36.1785, -86.7886),
		Features:      []string{"Pizza", "Sunday supper", "Cozy"},
		Website:       "https://cityhousenashville.com",
		OpenTableLink: "https://www.opentable.com/r/city-house-nashville",
	},
	{
		ID:           "biscuit-love-gulch",
		Name:         "Biscuit Love",
		Cuisine:      "Southern Breakfast",
		Neighborhood: "The Gulch",
		PriceRange:   models.PriceModerate,
		Description:  "Biscuit-centric brunch that started as a food truck.",
		Address:      "316 11th Ave S, Nashville, TN 37203",
		Coordinates:  coords(36.1527, -86.7838),
		Features:     []string{"Brunch", "Family friendly", "Vegetarian friendly", "Casual"},
		Website:      "https://biscuitlove.com",
	},
	{
		ID:           "kayne-prime",
		Name:         "Kayne Prime",
		Cuisine:      "Steakhouse",
		Neighborhood: "The Gulch",
		PriceRange:   models.PriceFineDining,
		Description:  "Wagyu and dry-aged steaks with a playful side menu.",
		Address:      "1103 McGavock St, Nashville, TN 37203",
		Coordinates:  coords(36.1532, -86.7843),
		Features:     []string{"Steak", "Full bar", "Upscale", "Date night"},
		Website:      "https://mstreetnashville.com/kayne-prime",
	},
	{
		ID:           "arnolds-country-kitchen",
		Name:         "Arnold's Country Kitchen",
		Cuisine:      "Meat and Three",
		Neighborhood: "SoBro / Downtown",
		PriceRange:   models.PriceBudget,
		Description:  "Cafeteria-line meat-and-three serving weekday lunch since 1982.",
		Address:      "605 8th Ave S, Nashville, TN 37203",
		Coordinates:  coords(36.1493, -86.7779),
		Features:     []string{"Lunch only", "Cafeteria style", "Local favorite", "Casual"},
	},
	{
		ID:           "etch-downtown",
		Name:         "Etch",
		Cuisine:      "Global Fusion",
		Neighborhood: "Downtown",
		PriceRange:   models.PriceUpscale,
		Description:  "Globally influenced plates from chef Deb Paquette near the Music City Center.",
		Address:      "303 Demonbreun St, Nashville, TN 37201",
		Coordinates:  coords(36.1575, -86.7717),
		Features:     []string{"Vegetarian friendly", "Full bar", "Date night"},
		Website:      "https://etchrestaurant.com",
	},
	{
		ID:           "chauhan-ale-masala",
		Name:         "Chauhan Ale & Masala House",
		Cuisine:      "Indian",
		Neighborhood: "North Gulch",
		PriceRange:   models.PriceModerate,
		Description:  "Indian street food with Southern twists and craft beer.",
		Address:      "123 12th Ave N, Nashville, TN 37203",
		Coordinates:  coords(36.1611, -86.7893),
		Features:     []string{"Vegetarian friendly", "Vegan options", "Gluten-free options", "Lively"},
		Website:      "https://chauhannashville.com",
	},
	{
		ID:           "boltons-spicy-chicken",
		Name:         "Bolton's Spicy Chicken & Fish",
		Cuisine:      "Hot Chicken",
		Neighborhood: "East Nashville",
		PriceRange:   models.PriceBudget,
		Description:  "Cinder-block shack frying hot chicken and whiting since 1997.",
		Address:      "624 Main St, Nashville, TN 37206",
		Coordinates:  coords(36.1757, -86.7585),
		Features:     []string{"Counter service", "Takeout", "Casual"},
	},
	{
		ID:           "lockeland-table",
		Name:         "Lockeland Table",
		Cuisine:      "Southern",
		Neighborhood: "East Nashville",
		PriceRange:   models.PriceUpscale,
		Description:  "Community kitchen and bar with wood-fired pizzas and a nightly happy hour.",
		Address:      "1520 Woodland St, Nashville, TN 37206",
		Coordinates:  coords(36.1805, -86.7390),
		Features:     []string{"Wood-fired", "Happy hour", "Cozy", "Neighborhood spot"},
		Website:      "https://lockelandtable.com",
	},
	{
		ID:           "margot-cafe",
		Name:         "Margot Café & Bar",
		Cuisine:      "French",
		Neighborhood: "East Nashville",
		PriceRange:   models.PriceUpscale,
		Description:  "Rustic French and Italian country cooking in a former garage in Five Points.",
		Address:      "1017 Woodland St, Nashville, TN 37206",
		Coordinates:  coords(36.1771, -86.7509),
		Features:     []string{"Brunch", "Romantic", "Quiet"},
		Website:      "https://margotcafe.com",
	},
	{
		ID:           "mas-tacos",
		Name:         "Mas Tacos Por Favor",
		Cuisine:      "Mexican",
		Neighborhood: "East Nashville",
		PriceRange:   models.PriceBudget,
		Description:  "Cash-friendly taco counter with tortilla soup and agua frescas.",
		Address:      "732 McFerrin Ave, Nashville, TN 37206",
		Coordinates:  coords(36.1868, -86.7479),
		Features:     []string{"Counter service", "Vegetarian friendly", "Casual"},
	},
	{
		ID:           "butcher-and-bee",
		Name:         "Butcher & Bee",
		Cuisine:      "Mediterranean",
		Neighborhood: "East Nashville",
		PriceRange:   models.PriceModerate,
		Description:  "Middle Eastern small plates with the signature whipped feta.",
		Address:      "902 Main St, Nashville, TN 37206",
		Coordinates:  coords(36.1795, -86.7466),
		Features:     []string{"Small plates", "Vegetarian friendly", "Vegan options", "Brunch"},
		Website:      "https://butcherandbee.com",
	},
	{
		ID:           "martins-bbq-belle-meade",
		Name:         "Martin's Bar-B-Que Joint",
		Cuisine:      "BBQ",
		Neighborhood: "Belle Meade",
		PriceRange:   models.PriceModerate,
		Description:  "West Tennessee whole-hog barbecue smoked on site.",
		Coordinates:  coords(36.1131, -86.8467),
		Features:     []string{"Whole hog", "Family friendly", "Beer garden", "Casual"},
		Website:      "https://martinsbbqjoint.com",
	},
	{
		ID:           "belle-meade-pizza",
		Name:         "Belle Meade Pizza Co.",
		Cuisine:      "Pizza",
		Neighborhood: "Belle Meade",
		PriceRange:   models.PriceModerate,
		Description:  "Neighborhood pizzeria with thin-crust pies and a kids' menu.",
		Coordinates:  coords(36.1098, -86.8521),
		Features:     []string{"Family friendly", "Takeout", "Casual"},
	},
	{
		ID:           "sperrys-belle-meade",
		Name:         "Sperry's Restaurant",
		Cuisine:      "Steakhouse",
		Neighborhood: "Belle Meade",
		PriceRange:   models.PriceUpscale,
		Description:  "Old-school steakhouse with a nautical dining room, open since 1974.",
		Address:      "5109 Harding Pike, Nashville, TN 37205",
		Coordinates:  coords(36.1258, -86.8455),
		Features:     []string{"Steak", "Salad bar", "Classic", "Quiet"},
		Website:      "https://sperrys.com",
	},
	{
		ID:           "pancake-pantry",
		Name:         "Pancake Pantry",
		Cuisine:      "Breakfast",
		Neighborhood: "Hillsboro Village",
		PriceRange:   models.PriceBudget,
		Description:  "Breakfast institution with a line out the door on weekends.",
		Address:      "1796 21st Ave S, Nashville, TN 37212",
		Coordinates:  coords(36.1361, -86.8005),
		Features:     []string{"Breakfast all day", "Family friendly", "Casual"},
		Website:      "https://pancakepantry.com",
	},
	{
		ID:           "burger-up-12south",
		Name:         "Burger Up",
		Cuisine:      "American",
		Neighborhood: "12 South",
		PriceRange:   models.PriceModerate,
		Description:  "Locally sourced burgers, truffle fries and a bourbon-heavy bar.",
		Address:      "2901 12th Ave S, Nashville, TN 37204",
		Coordinates:  coords(36.1245, -86.7897),
		Features:     []string{"Burgers", "Full bar", "Gluten-free options", "Lively"},
		Website:      "https://burger-up.com",
	},
	{
		ID:           "edleys-12south",
		Name:         "Edley's Bar-B-Que",
		Cuisine:      "BBQ",
		Neighborhood: "12 South",
		PriceRange:   models.PriceModerate,
		Description:  "Brisket, pulled pork and the Tuck Special with a big patio.",
		Address:      "2706 12th Ave S, Nashville, TN 37204",
		Coordinates:  coords(36.1215, -86.7896),
		Features:     []string{"Patio", "Full bar", "Family friendly", "Casual"},
		Website:      "https://edleysbbq.com",
	},
	{
		ID:           "nickys-coal-fired",
		Name:         "Nicky's Coal Fired",
		Cuisine:      "Italian",
		Neighborhood: "The Nations",
		PriceRange:   models.PriceModerate,
		Description:  "Coal-fired pizza and pasta in a small dining room off 51st Ave.",
		Address:      "5026 Centennial Blvd, Nashville, TN 37209",
		Coordinates:  coords(36.1670, -86.8440),
		Features:     []string{"Pizza", "Cozy", "Date night"},
		Website:      "https://nickyscoalfired.com",
	},
	{
		ID:           "jenis-ice-creams",
		Name:         "Jeni's Splendid Ice Creams",
		Cuisine:      "Dessert",
		Neighborhood: "Multiple locations",
		PriceRange:   models.PriceBudget,
		Description:  "Small-batch ice cream scooped in several Nashville neighborhoods.",
		Features:     []string{"Dessert", "Vegan options", "Family friendly"},
		Website:      "https://jenis.com",
	},
	{
		ID:           "five-daughters-bakery",
		Name:         "Five Daughters Bakery",
		Cuisine:      "Bakery",
		Neighborhood: "Multiple locations",
		PriceRange:   models.PriceBudget,
		Description:  "Family-run bakery known for the 100-layer donut.",
		Features:     []string{"Bakery", "Coffee", "Vegan options"},
		Website:      "https://fivedaughtersbakery.com",
	},
}

// Seed returns a deep copy of the built-in catalog.
func Seed() []models.Restaurant {
	return models.CloneAll(seed)
}
