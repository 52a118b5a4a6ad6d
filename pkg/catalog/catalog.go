// Package catalog holds the static food catalog shared read-only by all
// plan generation calls. Nutrient values are per 100g base serving.
package catalog

import "MediPlan-Backend/domain"

var foods = []domain.Food{
	{Name: "Chicken Breast", Category: domain.CategoryProteins, Calories: 165, ProteinG: 31, CarbsG: 0, FatG: 3.6, FiberG: 0, SodiumMg: 74, SugarG: 0},
	{Name: "Salmon", Category: domain.CategoryProteins, Calories: 208, ProteinG: 20, CarbsG: 0, FatG: 13, FiberG: 0, SodiumMg: 59, SugarG: 0},
	{Name: "Eggs", Category: domain.CategoryProteins, Calories: 155, ProteinG: 13, CarbsG: 1.1, FatG: 11, FiberG: 0, SodiumMg: 124, SugarG: 1.1},
	{Name: "Tofu", Category: domain.CategoryProteins, Calories: 76, ProteinG: 8, CarbsG: 1.9, FatG: 4.8, FiberG: 0.3, SodiumMg: 7, SugarG: 0.6},
	{Name: "Lentils", Category: domain.CategoryProteins, Calories: 116, ProteinG: 9, CarbsG: 20, FatG: 0.4, FiberG: 7.9, SodiumMg: 2, SugarG: 1.8},
	{Name: "Lean Beef", Category: domain.CategoryProteins, Calories: 250, ProteinG: 26, CarbsG: 0, FatG: 15, FiberG: 0, SodiumMg: 72, SugarG: 0},

	{Name: "Brown Rice", Category: domain.CategoryCarbs, Calories: 111, ProteinG: 2.6, CarbsG: 23, FatG: 0.9, FiberG: 1.8, SodiumMg: 5, SugarG: 0.4},
	{Name: "Oatmeal", Category: domain.CategoryCarbs, Calories: 68, ProteinG: 2.4, CarbsG: 12, FatG: 1.4, FiberG: 1.7, SodiumMg: 49, SugarG: 0.5},
	{Name: "Whole Wheat Bread", Category: domain.CategoryCarbs, Calories: 247, ProteinG: 13, CarbsG: 41, FatG: 3.4, FiberG: 7, SodiumMg: 400, SugarG: 6},
	{Name: "Quinoa", Category: domain.CategoryCarbs, Calories: 120, ProteinG: 4.4, CarbsG: 21, FatG: 1.9, FiberG: 2.8, SodiumMg: 7, SugarG: 0.9},
	{Name: "Sweet Potato", Category: domain.CategoryCarbs, Calories: 86, ProteinG: 1.6, CarbsG: 20, FatG: 0.1, FiberG: 3, SodiumMg: 55, SugarG: 4.2},

	{Name: "Greek Yogurt", Category: domain.CategoryDairy, Calories: 59, ProteinG: 10, CarbsG: 3.6, FatG: 0.4, FiberG: 0, SodiumMg: 36, SugarG: 3.2},
	{Name: "Low-Fat Milk", Category: domain.CategoryDairy, Calories: 42, ProteinG: 3.4, CarbsG: 5, FatG: 1, FiberG: 0, SodiumMg: 44, SugarG: 5},
	{Name: "Cottage Cheese", Category: domain.CategoryDairy, Calories: 98, ProteinG: 11, CarbsG: 3.4, FatG: 4.3, FiberG: 0, SodiumMg: 364, SugarG: 2.7},

	{Name: "Avocado", Category: domain.CategoryFats, Calories: 160, ProteinG: 2, CarbsG: 8.5, FatG: 14.7, FiberG: 6.7, SodiumMg: 7, SugarG: 0.7},
	{Name: "Almonds", Category: domain.CategoryFats, Calories: 579, ProteinG: 21, CarbsG: 22, FatG: 50, FiberG: 12.5, SodiumMg: 1, SugarG: 4.4},
	{Name: "Olive Oil", Category: domain.CategoryFats, Calories: 884, ProteinG: 0, CarbsG: 0, FatG: 100, FiberG: 0, SodiumMg: 2, SugarG: 0},
	{Name: "Walnuts", Category: domain.CategoryFats, Calories: 654, ProteinG: 15, CarbsG: 14, FatG: 65, FiberG: 6.7, SodiumMg: 2, SugarG: 2.6},

	{Name: "Broccoli", Category: domain.CategoryVegetables, Calories: 34, ProteinG: 2.8, CarbsG: 6.6, FatG: 0.4, FiberG: 2.6, SodiumMg: 33, SugarG: 1.7},
	{Name: "Spinach", Category: domain.CategoryVegetables, Calories: 23, ProteinG: 2.9, CarbsG: 3.6, FatG: 0.4, FiberG: 2.2, SodiumMg: 79, SugarG: 0.4},
	{Name: "Carrots", Category: domain.CategoryVegetables, Calories: 41, ProteinG: 0.9, CarbsG: 9.6, FatG: 0.2, FiberG: 2.8, SodiumMg: 69, SugarG: 4.7},
	{Name: "Bell Peppers", Category: domain.CategoryVegetables, Calories: 31, ProteinG: 1, CarbsG: 6, FatG: 0.3, FiberG: 2.1, SodiumMg: 4, SugarG: 4.2},
	{Name: "Kale", Category: domain.CategoryVegetables, Calories: 49, ProteinG: 4.3, CarbsG: 8.8, FatG: 0.9, FiberG: 3.6, SodiumMg: 38, SugarG: 2.3},

	{Name: "Apple", Category: domain.CategoryFruits, Calories: 52, ProteinG: 0.3, CarbsG: 14, FatG: 0.2, FiberG: 2.4, SodiumMg: 1, SugarG: 10},
	{Name: "Banana", Category: domain.CategoryFruits, Calories: 89, ProteinG: 1.1, CarbsG: 23, FatG: 0.3, FiberG: 2.6, SodiumMg: 1, SugarG: 12},
	{Name: "Blueberries", Category: domain.CategoryFruits, Calories: 57, ProteinG: 0.7, CarbsG: 14, FatG: 0.3, FiberG: 2.4, SodiumMg: 1, SugarG: 10},
	{Name: "Orange", Category: domain.CategoryFruits, Calories: 47, ProteinG: 0.9, CarbsG: 12, FatG: 0.1, FiberG: 2.4, SodiumMg: 0, SugarG: 9},
}

// mealShortlists name the preferred foods considered first for each meal
// type. Foods filtered out by restrictions fall back to the full catalog.
var mealShortlists = map[domain.MealType][]string{
	domain.MealBreakfast: {"Oatmeal", "Greek Yogurt", "Eggs", "Banana", "Blueberries", "Whole Wheat Bread", "Low-Fat Milk"},
	domain.MealLunch:     {"Chicken Breast", "Brown Rice", "Broccoli", "Quinoa", "Spinach", "Tofu", "Lentils"},
	domain.MealSnack:     {"Apple", "Almonds", "Greek Yogurt", "Carrots", "Walnuts", "Orange"},
	domain.MealDinner:    {"Salmon", "Sweet Potato", "Kale", "Lean Beef", "Bell Peppers", "Brown Rice", "Tofu"},
}

// Foods returns a copy of the full catalog so callers can filter freely.
func Foods() []domain.Food {
	out := make([]domain.Food, len(foods))
	copy(out, foods)
	return out
}

// Shortlist returns the preferred food names for a meal type, in order.
func Shortlist(mealType domain.MealType) []string {
	names := mealShortlists[mealType]
	out := make([]string, len(names))
	copy(out, names)
	return out
}
