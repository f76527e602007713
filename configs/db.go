package configs

import (
	"fmt"

	"cooldeal/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionDB opens the database named by DB_DRIVER / DB_SOURCE.
func ConnectionDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBSource)
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.IsDevelopment() {
		gcfg.Logger = logger.Default.LogMode(logger.Warn)
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{}, &entity.Customer{}, &entity.City{},
		&entity.EstablishmentCategory{}, &entity.ProductCategory{},
		&entity.Establishment{}, &entity.Product{}, &entity.Favorite{},
		&entity.Session{}, &entity.Coupon{}, &entity.Cart{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.CartItem{},
		&entity.PasswordResetToken{},
		&entity.Contact{}, &entity.Newsletter{},
		&entity.SiteInfo{}, &entity.Banner{}, &entity.Testimonial{}, &entity.About{},
		&entity.WhyChooseUs{}, &entity.Gallery{}, &entity.OpeningHour{}, &entity.Partner{},
	)
}
