package model

import "time"

// Recipe is a dish owned by a chef, independent of any course until it
// is linked to a practical session.  Difficulty is a 1..5 integer that
// reporting collapses into named buckets.
//
// Fields:
//
//	ID              – primary key identifier.
//	ChefID          – owning chef.
//	Name            – recipe name.
//	Description     – short description.
//	Difficulty      – integer difficulty from 1 (easy) to 5 (hard).
//	PrepTimeMinutes – preparation time in minutes.
//	Servings        – number of servings the recipe yields.
//	Instructions    – full preparation instructions.
//	CreatedAt       – timestamp of creation.
type Recipe struct {
	ID              uint64    // recipes.id
	ChefID          uint64    // recipes.chef_id
	Name            string    // recipes.name
	Description     string    // recipes.description
	Difficulty      int       // recipes.difficulty
	PrepTimeMinutes int       // recipes.prep_time_minutes
	Servings        int       // recipes.servings
	Instructions    string    // recipes.instructions
	CreatedAt       time.Time // recipes.created_at
}
