package ingredient

// units 計量單位（單複數皆列出）
var units = []string{
	"cup", "cups", "tbsp", "tablespoon", "tablespoons",
	"tsp", "teaspoon", "teaspoons", "oz", "ounce", "ounces",
	"lb", "pound", "pounds", "g", "gram", "grams",
	"kg", "kilogram", "kilograms", "ml", "milliliter", "milliliters",
	"l", "liter", "liters", "pinch", "pinches", "dash", "dashes",
	"clove", "cloves", "bunch", "bunches", "can", "cans",
	"package", "packages", "jar", "jars", "bottle", "bottles",
}

// preparations 處理方式形容詞
var preparations = []string{
	"chopped", "minced", "sliced", "diced", "grated", "fresh", "frozen",
	"dried", "cooked", "raw", "peeled", "seeded", "cubed", "crushed",
	"mashed", "whipped", "beaten", "softened", "melted", "toasted",
	"roasted", "grilled", "fried", "boiled", "steamed", "baked",
}

// measurements 尺寸與品質描述
var measurements = []string{
	"small", "medium", "large", "extra large", "xl",
	"thin", "thick", "fine", "coarse", "whole", "halved",
	"quartered", "crumbled", "packed", "loose",
}

// stopWords 不可單獨作為食材的詞
var stopWords = map[string]struct{}{
	"and": {}, "or": {}, "with": {}, "for": {}, "the": {}, "a": {}, "an": {},
}

// category 食材分類
type category struct {
	name  string
	items []string
}

// categories 依序比對，先命中者為準
var categories = []category{
	{"vegetables", []string{
		"tomato", "onion", "garlic", "carrot", "bell pepper", "broccoli", "spinach",
		"potato", "cucumber", "lettuce", "celery", "mushroom", "eggplant", "zucchini",
		"cauliflower", "cabbage", "corn", "pea", "bean", "asparagus", "kale",
	}},
	{"fruits", []string{
		"apple", "banana", "orange", "lemon", "lime", "avocado", "strawberry",
		"blueberry", "raspberry", "grape", "watermelon", "pineapple", "mango",
	}},
	{"proteins", []string{
		"chicken", "beef", "pork", "fish", "salmon", "tuna", "shrimp", "egg",
		"tofu", "tempeh", "paneer", "lentil", "chickpea", "bean",
	}},
	{"grains", []string{
		"rice", "pasta", "noodle", "bread", "quinoa", "oat", "wheat", "flour",
		"cereal", "barley", "couscous",
	}},
	{"dairy", []string{"milk", "cheese", "yogurt", "butter", "cream", "mayonnaise"}},
	{"herbs", []string{
		"basil", "cilantro", "parsley", "mint", "oregano", "thyme", "rosemary",
		"ginger", "turmeric", "cinnamon",
	}},
	{"other", []string{
		"oil", "vinegar", "honey", "soy sauce", "ketchup", "mustard", "salt", "pepper", "sugar",
	}},
}

// commonIngredients 常見食材詞彙，用於優先排序與保留整段名稱
var commonIngredients = []string{
	// Vegetables
	"tomato", "onion", "garlic", "carrot", "bell pepper", "broccoli", "spinach",
	"potato", "cucumber", "lettuce", "celery", "mushroom", "eggplant", "zucchini",
	"cauliflower", "cabbage", "corn", "pea", "bean", "asparagus", "kale",

	// Fruits
	"apple", "banana", "orange", "lemon", "lime", "avocado", "strawberry",
	"blueberry", "raspberry", "grape", "watermelon", "pineapple", "mango",

	// Proteins
	"chicken", "beef", "pork", "fish", "salmon", "tuna", "shrimp", "egg",
	"tofu", "tempeh", "paneer", "lentil", "chickpea",

	// Grains
	"rice", "pasta", "noodle", "bread", "quinoa", "oat", "wheat", "flour",
	"cereal", "barley", "couscous",

	// Dairy
	"milk", "cheese", "yogurt", "butter", "cream", "mayonnaise",

	// Herbs & Spices
	"basil", "cilantro", "parsley", "mint", "oregano", "thyme", "rosemary",
	"ginger", "turmeric", "cinnamon", "pepper", "salt", "sugar",

	// Oils & Condiments
	"oil", "vinegar", "honey", "soy sauce", "ketchup", "mustard",
}

// Vocabulary 回傳常見食材詞彙的副本
func Vocabulary() []string {
	out := make([]string, len(commonIngredients))
	copy(out, commonIngredients)
	return out
}
