package migrations

import (
	"fmt"

	"gorm.io/gorm"

	cartpg "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence/postgres"
	catalogpg "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	identitypg "github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/persistence/postgres"
	orderspg "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/persistence/postgres"
	reviewspg "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/persistence/postgres"
	wishlistpg "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/persistence/postgres"
)

// Models lists every persisted record in dependency order.
func Models() []any {
	var models []any
	for _, group := range [][]any{
		identitypg.Models(),
		catalogpg.Models(),
		cartpg.Models(),
		orderspg.Models(),
		reviewspg.Models(),
		wishlistpg.Models(),
	} {
		models = append(models, group...)
	}
	return models
}

// Run applies the schema for every bounded context.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
