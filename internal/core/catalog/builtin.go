package catalog

import "recipe-matcher/internal/core/nutrition"

// ingredientCategories 常用食材清單，供前端挑選
var ingredientCategories = map[string][]string{
	"proteins": {
		"chicken breast", "ground beef", "salmon fillet", "eggs", "tofu",
		"tempeh", "black beans", "chickpeas", "lentils",
	},
	"vegetables": {
		"broccoli", "carrot", "bell pepper", "tomato", "cucumber",
		"red onion", "garlic", "ginger", "asparagus", "mushrooms",
		"zucchini", "potato", "celery", "lettuce",
	},
	"dairy": {
		"milk", "butter", "cheese", "parmesan cheese", "feta cheese",
		"sour cream", "yogurt",
	},
	"grains": {
		"spaghetti", "rice", "bread", "tortillas", "quinoa",
		"arborio rice", "flour", "taco shells",
	},
	"oils": {"olive oil", "vegetable oil", "sesame oil", "coconut oil"},
	"seasonings": {
		"soy sauce", "salt", "pepper", "black pepper", "red pepper flakes",
		"curry powder", "taco seasoning", "oregano", "herbs", "lemon juice",
		"vinegar", "sugar", "honey", "maple syrup", "baking powder",
		"baking soda", "vanilla extract",
	},
}

// IngredientCategories 回傳分類食材清單的副本
func IngredientCategories() map[string][]string {
	out := make(map[string][]string, len(ingredientCategories))
	for k, v := range ingredientCategories {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func defaultRecipes() []Recipe {
	f := nutrition.Float
	return []Recipe{
		{
			ID:          1,
			Name:        "Classic Spaghetti Carbonara",
			Ingredients: []string{"spaghetti", "eggs", "parmesan cheese", "bacon", "black pepper", "garlic"},
			Instructions: []string{
				"Cook spaghetti according to package instructions in salted water.",
				"While pasta cooks, fry bacon until crispy, then add minced garlic and cook for 1 minute.",
				"Whisk eggs and grated parmesan together in a bowl.",
				"Drain hot pasta and immediately combine with bacon mixture.",
				"Quickly mix in egg and cheese mixture off heat to create creamy sauce.",
				"Season with freshly ground black pepper and serve immediately.",
			},
			CookingTime: 20, PrepTime: 10, TotalTime: 30,
			Difficulty: DifficultyMedium,
			Servings:   4,
			Dietary:    []string{},
			Tags:       []string{"pasta", "comfort food", "quick dinner"},
			Nutrition:  nutrition.Facts{Calories: 450, Protein: 20, Carbs: 55, Fat: 15, Fiber: f(3), Sugar: f(2), Sodium: f(800)},
			Cuisine:    "Italian",
			Image:      "/images/carbonara.jpg",
			Equipment:  []string{"large pot", "skillet", "mixing bowl", "whisk"},
			Rating:     4.7, RatingCount: 128,
			Tips: []string{
				"Use freshly grated parmesan for best results",
				"Don't overcook the eggs - they should coat the pasta, not scramble",
				"Reserve some pasta water to adjust sauce consistency",
			},
		},
		{
			ID:          2,
			Name:        "Vegetable Stir Fry",
			Ingredients: []string{"broccoli", "carrot", "bell pepper", "soy sauce", "garlic", "ginger", "rice", "sesame oil"},
			Instructions: []string{
				"Cook rice according to package instructions.",
				"Chop all vegetables into uniform bite-sized pieces.",
				"Heat sesame oil in a wok or large pan over high heat.",
				"Add minced garlic and ginger, stir for 30 seconds until fragrant.",
				"Add harder vegetables first (carrots, broccoli), then softer ones (bell peppers).",
				"Stir-fry for 4-5 minutes until vegetables are tender-crisp.",
				"Add soy sauce and toss to combine.",
				"Serve immediately over cooked rice.",
			},
			CookingTime: 15, PrepTime: 15, TotalTime: 30,
			Difficulty: DifficultyEasy,
			Servings:   2,
			Dietary:    []string{"vegetarian", "vegan"},
			Tags:       []string{"quick", "healthy", "asian"},
			Nutrition:  nutrition.Facts{Calories: 320, Protein: 8, Carbs: 60, Fat: 6, Fiber: f(8), Sugar: f(12), Sodium: f(900)},
			Cuisine:    "Asian",
			Image:      "/images/stir-fry.jpg",
			Equipment:  []string{"wok or large pan", "rice cooker", "cutting board", "knife"},
			Rating:     4.5, RatingCount: 96,
			Tips: []string{
				"Cut vegetables uniformly for even cooking",
				"Keep the heat high for proper stir-frying",
				"Have all ingredients prepped before starting to cook",
			},
		},
		{
			ID:   3,
			Name: "Greek Salad",
			Ingredients: []string{
				"tomato", "cucumber", "red onion", "feta cheese", "olives",
				"olive oil", "lemon juice", "oregano", "green bell pepper",
			},
			Instructions: []string{
				"Chop tomatoes, cucumber, and green bell pepper into bite-sized pieces.",
				"Thinly slice red onion and soak in cold water for 10 minutes to reduce sharpness.",
				"Combine all vegetables in a large bowl with olives.",
				"Crumble feta cheese on top.",
				"Whisk together olive oil, lemon juice, and dried oregano for the dressing.",
				"Pour dressing over salad and toss gently.",
				"Season with salt and pepper to taste.",
				"Let sit for 5-10 minutes before serving for flavors to meld.",
			},
			CookingTime: 10, PrepTime: 15, TotalTime: 25,
			Difficulty: DifficultyEasy,
			Servings:   2,
			Dietary:    []string{"vegetarian", "gluten-free"},
			Tags:       []string{"salad", "fresh", "mediterranean"},
			Nutrition:  nutrition.Facts{Calories: 280, Protein: 10, Carbs: 15, Fat: 20, Fiber: f(4), Sugar: f(8), Sodium: f(700)},
			Cuisine:    "Mediterranean",
			Image:      "/images/greek-salad.jpg",
			Equipment:  []string{"cutting board", "knife", "mixing bowl", "whisk"},
			Rating:     4.6, RatingCount: 74,
			Tips: []string{
				"Use ripe, in-season tomatoes for best flavor",
				"Soak red onion to reduce harshness",
				"Don't overdress the salad",
			},
		},
		{
			ID:   4,
			Name: "Chicken Curry",
			Ingredients: []string{
				"chicken breast", "coconut milk", "curry powder", "onion", "garlic",
				"ginger", "rice", "vegetable oil", "salt",
			},
			Instructions: []string{
				"Cook rice according to package instructions.",
				"Dice chicken breast into bite-sized pieces, season with salt.",
				"Heat oil in a large pot, sauté chopped onion until translucent.",
				"Add minced garlic and ginger, cook for 1 minute until fragrant.",
				"Add chicken pieces and cook until browned on all sides.",
				"Stir in curry powder and cook for 30 seconds to toast spices.",
				"Pour in coconut milk, bring to simmer, then reduce heat.",
				"Simmer for 15-20 minutes until chicken is cooked through and sauce thickens.",
				"Adjust seasoning and serve over cooked rice.",
			},
			CookingTime: 30, PrepTime: 15, TotalTime: 45,
			Difficulty: DifficultyMedium,
			Servings:   4,
			Dietary:    []string{"gluten-free"},
			Tags:       []string{"curry", "comfort food", "spicy"},
			Nutrition:  nutrition.Facts{Calories: 520, Protein: 35, Carbs: 45, Fat: 22, Fiber: f(3), Sugar: f(6), Sodium: f(600)},
			Cuisine:    "Indian",
			Image:      "/images/chicken-curry.jpg",
			Equipment:  []string{"large pot", "cutting board", "knife", "rice cooker"},
			Rating:     4.8, RatingCount: 152,
			Tips: []string{
				"Toast curry powder briefly to enhance flavor",
				"Use full-fat coconut milk for creamier sauce",
				"Let curry rest for 10 minutes before serving for better flavor",
			},
		},
		{
			ID:          5,
			Name:        "Avocado Toast with Optional Toppings",
			Ingredients: []string{"bread", "avocado", "lemon juice", "red pepper flakes", "salt", "pepper", "olive oil"},
			Instructions: []string{
				"Toast bread until golden brown and crisp.",
				"While bread toasts, halve avocado and remove pit.",
				"Scoop avocado into a bowl, add lemon juice, salt, and pepper.",
				"Mash avocado with a fork to desired consistency.",
				"Spread avocado mixture evenly on warm toast.",
				"Drizzle with olive oil and sprinkle with red pepper flakes.",
				"Add optional toppings like sliced radish, microgreens, or fried egg.",
				"Serve immediately.",
			},
			CookingTime: 5, PrepTime: 5, TotalTime: 10,
			Difficulty: DifficultyEasy,
			Servings:   1,
			Dietary:    []string{"vegetarian", "vegan"},
			Tags:       []string{"breakfast", "quick", "healthy"},
			Nutrition:  nutrition.Facts{Calories: 250, Protein: 6, Carbs: 25, Fat: 15, Fiber: f(8), Sugar: f(2), Sodium: f(300)},
			Cuisine:    "American",
			Image:      "/images/avocado-toast.jpg",
			Equipment:  []string{"toaster", "bowl", "fork"},
			Rating:     4.3, RatingCount: 61,
			Tips: []string{
				"Use ripe but firm avocados",
				"Add lemon juice to prevent browning",
				"Serve immediately for best texture",
			},
		},
		{
			ID:   6,
			Name: "Beef Tacos with Fresh Toppings",
			Ingredients: []string{
				"ground beef", "taco shells", "lettuce", "tomato", "cheese",
				"sour cream", "taco seasoning", "onion", "lime",
			},
			Instructions: []string{
				"Brown ground beef in a skillet over medium heat, breaking it up.",
				"Add chopped onion and cook until softened.",
				"Stir in taco seasoning and a splash of water, simmer for 5 minutes.",
				"While beef cooks, chop lettuce and tomato, grate cheese.",
				"Warm taco shells according to package directions.",
				"Assemble tacos with beef, lettuce, tomato, and cheese.",
				"Top with sour cream and a squeeze of fresh lime juice.",
				"Serve with your favorite hot sauce.",
			},
			CookingTime: 20, PrepTime: 15, TotalTime: 35,
			Difficulty: DifficultyEasy,
			Servings:   4,
			Dietary:    []string{},
			Tags:       []string{"mexican", "family friendly", "quick"},
			Nutrition:  nutrition.Facts{Calories: 380, Protein: 25, Carbs: 30, Fat: 18, Fiber: f(3), Sugar: f(4), Sodium: f(850)},
			Cuisine:    "Mexican",
			Image:      "/images/beef-tacos.jpg",
			Equipment:  []string{"skillet", "cutting board", "knife", "grater"},
			Rating:     4.4, RatingCount: 88,
			Tips: []string{
				"Drain excess fat from beef for less greasy tacos",
				"Warm taco shells for better texture",
				"Set up a taco bar for easy assembly",
			},
		},
		{
			ID:   7,
			Name: "Hearty Vegetable Soup",
			Ingredients: []string{
				"carrot", "celery", "onion", "potato", "vegetable broth",
				"tomato", "herbs", "garlic", "olive oil", "bay leaf",
			},
			Instructions: []string{
				"Chop all vegetables into uniform pieces.",
				"Heat olive oil in a large pot over medium heat.",
				"Sauté onion, carrot, and celery until softened (5-7 minutes).",
				"Add minced garlic and cook for 1 minute until fragrant.",
				"Add potatoes, diced tomatoes, vegetable broth, and bay leaf.",
				"Bring to boil, then reduce heat and simmer for 25-30 minutes.",
				"Remove bay leaf, season with herbs, salt, and pepper.",
				"Serve hot with crusty bread.",
			},
			CookingTime: 35, PrepTime: 15, TotalTime: 50,
			Difficulty: DifficultyEasy,
			Servings:   6,
			Dietary:    []string{"vegetarian", "vegan", "gluten-free"},
			Tags:       []string{"soup", "comfort food", "healthy"},
			Nutrition:  nutrition.Facts{Calories: 180, Protein: 5, Carbs: 35, Fat: 2, Fiber: f(6), Sugar: f(8), Sodium: f(700)},
			Cuisine:    "International",
			Image:      "/images/vegetable-soup.jpg",
			Equipment:  []string{"large pot", "cutting board", "knife", "ladle"},
			Rating:     4.2, RatingCount: 45,
			Tips: []string{
				"Chop vegetables evenly for consistent cooking",
				"Don't overcook vegetables - they should retain some texture",
				"Soup tastes better the next day as flavors develop",
			},
		},
	}
}
