package model

// AllModels returns every gorm model for AutoMigrate.
func AllModels() []any {
	return []any{
		&User{},
		&Order{},
		&IdempotencyRecord{},
		&Notification{},
	}
}
