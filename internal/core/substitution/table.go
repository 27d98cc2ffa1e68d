package substitution

// entry 單一原料與其可替代食材
type entry struct {
	original    string
	substitutes []string
}

// defaultTable 內建替代表，順序即反向查詢的掃描順序
var defaultTable = []entry{
	// Proteins
	{"chicken", []string{"tofu", "tempeh", "seitan", "chickpeas", "white beans"}},
	{"chicken breast", []string{"tofu", "tempeh", "seitan", "jackfruit"}},
	{"beef", []string{"mushrooms", "jackfruit", "lentils", "black beans", "tofu"}},
	{"ground beef", []string{"lentils", "mushrooms", "walnuts", "textured vegetable protein"}},
	{"pork", []string{"tofu", "tempeh", "mushrooms", "jackfruit"}},
	{"bacon", []string{"tempeh bacon", "coconut bacon", "mushroom bacon", "eggplant bacon"}},
	{"fish", []string{"tofu", "chickpeas", "jackfruit", "hearts of palm"}},
	{"salmon", []string{"marinated carrots", "smoked tofu", "tomato slices"}},
	{"eggs", []string{"flax egg", "chia egg", "applesauce", "banana", "yogurt", "silken tofu"}},
	{"egg", []string{"flax egg", "chia egg", "applesauce", "banana", "yogurt"}},

	// Dairy
	{"milk", []string{"almond milk", "oat milk", "soy milk", "coconut milk", "rice milk"}},
	{"butter", []string{"margarine", "coconut oil", "olive oil", "avocado", "applesauce"}},
	{"cheese", []string{"nutritional yeast", "vegan cheese", "tofu", "cashew cheese"}},
	{"parmesan cheese", []string{"nutritional yeast", "vegan parmesan", "cashew parmesan"}},
	{"feta cheese", []string{"tofu feta", "cashew feta", "vegan feta"}},
	{"cream", []string{"coconut cream", "cashew cream", "silken tofu", "avocado"}},
	{"sour cream", []string{"greek yogurt", "coconut cream", "cashew sour cream"}},
	{"yogurt", []string{"coconut yogurt", "soy yogurt", "almond yogurt", "applesauce"}},

	// Oils and fats
	{"olive oil", []string{"avocado oil", "coconut oil", "vegetable oil", "canola oil", "grapeseed oil"}},
	{"vegetable oil", []string{"olive oil", "canola oil", "avocado oil", "coconut oil"}},
	{"canola oil", []string{"olive oil", "avocado oil", "vegetable oil", "coconut oil"}},

	// Grains and flours
	{"white rice", []string{"brown rice", "quinoa", "cauliflower rice", "barley", "farro"}},
	{"brown rice", []string{"white rice", "quinoa", "cauliflower rice", "millet"}},
	{"pasta", []string{"zucchini noodles", "spaghetti squash", "rice noodles", "lentil pasta"}},
	{"spaghetti", []string{"zucchini noodles", "spaghetti squash", "shirataki noodles"}},
	{"flour", []string{"almond flour", "coconut flour", "oat flour", "whole wheat flour"}},
	{"bread", []string{"lettuce wraps", "collard greens", "portobello mushrooms", "rice cakes"}},
	{"tortillas", []string{"lettuce leaves", "collard greens", "coconut wraps", "rice paper"}},

	// Vegetables
	{"onion", []string{"shallots", "leeks", "green onions", "onion powder"}},
	{"garlic", []string{"garlic powder", "shallots", "chives", "asafoetida"}},
	{"ginger", []string{"ginger powder", "galangal", "turmeric"}},
	{"potato", []string{"sweet potato", "cauliflower", "parsnips", "turnips"}},
	{"tomato", []string{"red bell pepper", "tomatillos", "sun-dried tomatoes"}},
	{"bell pepper", []string{"poblano peppers", "anaheim peppers", "carrots"}},
	{"mushrooms", []string{"eggplant", "zucchini", "tofu", "tempeh"}},
	{"carrot", []string{"sweet potato", "butternut squash", "parsnips"}},
	{"broccoli", []string{"cauliflower", "brussels sprouts", "asparagus"}},

	// Legumes
	{"black beans", []string{"kidney beans", "pinto beans", "lentils", "chickpeas"}},
	{"chickpeas", []string{"white beans", "lentils", "black beans", "tofu"}},
	{"lentils", []string{"split peas", "black beans", "chickpeas", "ground meat"}},

	// Seasonings
	{"soy sauce", []string{"tamari", "coconut aminos", "liquid aminos", "miso paste"}},
	{"salt", []string{"soy sauce", "tamari", "miso paste", "nutritional yeast"}},
	{"sugar", []string{"honey", "maple syrup", "agave nectar", "coconut sugar"}},
	{"honey", []string{"maple syrup", "agave nectar", "brown rice syrup", "molasses"}},
	{"vinegar", []string{"lemon juice", "lime juice", "white wine", "verjuice"}},
	{"lemon juice", []string{"lime juice", "vinegar", "white wine", "citric acid"}},
	{"mayonnaise", []string{"greek yogurt", "avocado", "hummus", "vegan mayonnaise"}},
}

// curated 人工整理的品質分級，配對不分方向
var curated = []struct {
	quality Quality
	pairs   [][2]string
}{
	{Excellent, [][2]string{
		{"tofu", "chicken"},
		{"lentils", "ground beef"},
		{"almond milk", "milk"},
		{"margarine", "butter"},
		{"tamari", "soy sauce"},
		{"maple syrup", "honey"},
	}},
	{Good, [][2]string{
		{"mushrooms", "beef"},
		{"applesauce", "egg"},
		{"coconut oil", "butter"},
	}},
	{Fair, [][2]string{
		{"banana", "egg"},
		{"zucchini", "pasta"},
		{"nutritional yeast", "cheese"},
	}},
}
