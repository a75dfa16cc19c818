package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&User{},
		&Team{},

		// 2. Tables with single dependencies
		&AuthToken{}, // depends on: User
		&Player{},    // depends on: Team
		&Sale{},      // no FK, but evaluated against players/teams

		// 3. Catalog
		&Jersey{},      // depends on: Player
		&JerseyImage{}, // depends on: Jersey

		// 4. User-owned rows
		&Customization{}, // depends on: User, Jersey
		&Order{},         // depends on: User
		&OrderItem{},     // depends on: Order, Jersey
		&Return{},        // depends on: Order, User
		&Wishlist{},      // depends on: User, Jersey
		&Review{},        // depends on: User, Jersey
	}
}
