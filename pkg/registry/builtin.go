package registry

var neighborhoodOptions = []QuizOption{
	{Value: "downtown", Label: "Downtown", Icon: "building"},
	{Value: "east-nashville", Label: "East Nashville", Icon: "coffee"},
	{Value: "the-gulch", Label: "The Gulch", Icon: "train"},
	{Value: "germantown", Label: "Germantown", Icon: "beer"},
	{Value: "midtown", Label: "Midtown", Icon: "music"},
	{Value: "12south", Label: "12 South", Icon: "shopping-bag"},
	{Value: "belle-meade", Label: "Belle Meade", Icon: "trees"},
	{Value: "hillsboro-village", Label: "Hillsboro Village", Icon: "book"},
	{Value: "the-nations", Label: "The Nations", Icon: "factory"},
	{Value: "anything", Label: "Surprise me", Icon: "shuffle"},
}

var cuisineOptions = []QuizOption{
	{Value: "hot chicken", Label: "Hot Chicken", Icon: "flame"},
	{Value: "bbq", Label: "BBQ", Icon: "beef"},
	{Value: "southern", Label: "Southern", Icon: "utensils"},
	{Value: "italian", Label: "Italian", Icon: "pizza"},
	{Value: "mexican", Label: "Mexican", Icon: "sandwich"},
	{Value: "breakfast", Label: "Breakfast", Icon: "egg"},
	{Value: "steakhouse", Label: "Steakhouse", Icon: "beef"},
	{Value: "anything", Label: "Anything goes", Icon: "shuffle"},
}

var priceOptions = []QuizOption{
	{Value: "$", Label: "Cheap eats", Icon: "dollar-sign"},
	{Value: "$$", Label: "Moderate", Icon: "dollar-sign"},
	{Value: "$$$", Label: "Upscale", Icon: "gem"},
	{Value: "$$$$", Label: "Special occasion", Icon: "crown"},
}

var dietaryOptions = []QuizOption{
	{Value: "vegetarian", Label: "Vegetarian", Icon: "leaf"},
	{Value: "vegan", Label: "Vegan", Icon: "sprout"},
	{Value: "gluten-free", Label: "Gluten-free", Icon: "wheat-off"},
	{Value: "none", Label: "No restrictions", Icon: "check"},
}

var atmosphereOptions = []QuizOption{
	{Value: "casual", Label: "Casual", Icon: "smile"},
	{Value: "romantic", Label: "Romantic", Icon: "heart"},
	{Value: "lively", Label: "Lively", Icon: "music"},
	{Value: "family friendly", Label: "Family friendly", Icon: "users"},
	{Value: "anything", Label: "Whatever works", Icon: "shuffle"},
}

var locationOptions = []QuizOption{
	{Value: "neighborhood", Label: "Pick a neighborhood", Icon: "map"},
	{Value: "current", Label: "Near me", Icon: "locate"},
}

// ClassicSchema is the single-page quiz layout.
func ClassicSchema() *QuizSchema {
	return &QuizSchema{
		Version: VersionClassic,
		Questions: []QuizQuestion{
			{ID: "location-method", Prompt: "How should we find your spot?", Field: FieldLocationMethod, Mode: SelectSingle, Options: locationOptions},
			{ID: "neighborhood", Prompt: "Which neighborhood?", Field: FieldNeighborhoods, Mode: SelectSingle, Options: neighborhoodOptions},
			{ID: "distance", Prompt: "How far will you go (miles)?", Field: FieldDistance, Mode: SelectNumeric},
			{ID: "cuisine", Prompt: "What are you craving?", Field: FieldCuisines, Mode: SelectMultiple, Options: cuisineOptions},
			{ID: "price", Prompt: "What's the budget?", Field: FieldPrice, Mode: SelectSingle, Options: priceOptions},
			{ID: "dietary", Prompt: "Any dietary needs?", Field: FieldDietary, Mode: SelectMultiple, Options: dietaryOptions},
			{ID: "atmosphere", Prompt: "What's the vibe?", Field: FieldAtmosphere, Mode: SelectSingle, Options: atmosphereOptions},
		},
	}
}

// FlowSchema is the step-by-step quiz layout with multi-select neighborhoods.
func FlowSchema() *QuizSchema {
	return &QuizSchema{
		Version: VersionFlow,
		Questions: []QuizQuestion{
			{ID: "howToSearch", Prompt: "Where are you eating?", Field: FieldLocationMethod, Mode: SelectSingle, Options: locationOptions},
			{ID: "areas", Prompt: "Pick one or more areas", Field: FieldNeighborhoods, Mode: SelectMultiple, Options: neighborhoodOptions},
			{ID: "radius", Prompt: "Max distance", Field: FieldDistance, Mode: SelectNumeric},
			{ID: "foodTypes", Prompt: "Cuisines", Field: FieldCuisines, Mode: SelectMultiple, Options: cuisineOptions},
			{ID: "budget", Prompt: "Price range", Field: FieldPrice, Mode: SelectMultiple, Options: priceOptions},
			{ID: "diet", Prompt: "Dietary preferences", Field: FieldDietary, Mode: SelectMultiple, Options: dietaryOptions},
			{ID: "vibe", Prompt: "Atmosphere", Field: FieldAtmosphere, Mode: SelectMultiple, Options: atmosphereOptions},
		},
	}
}
