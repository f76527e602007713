package configs

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"cooldeal/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed fixtures/default.yaml
var defaultFixtures []byte

// SeedAdmin creates the first admin account.
func SeedAdmin(db *gorm.DB, cfg *Config, log *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ? OR username = ?", cfg.AdminEmail, cfg.AdminUsername).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("admin already exists", zap.String("email", cfg.AdminEmail))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Username:  cfg.AdminUsername,
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "CoolDeal",
		Role:      entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedLookups fills the order status table.
func SeedLookups(db *gorm.DB) error {
	for _, name := range []string{entity.OrderPending, entity.OrderPaid, entity.OrderDelivered, entity.OrderCancelled} {
		if err := db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

type Fixtures struct {
	SiteInfo     *entity.SiteInfo     `yaml:"siteInfo"`
	Abouts       []entity.About       `yaml:"abouts"`
	Banners      []entity.Banner      `yaml:"banners"`
	Partners     []entity.Partner     `yaml:"partners"`
	Testimonials []entity.Testimonial `yaml:"testimonials"`
	WhyChooseUs  []entity.WhyChooseUs `yaml:"whyChooseUs"`
	OpeningHours []entity.OpeningHour `yaml:"openingHours"`
	Galleries    []entity.Gallery     `yaml:"galleries"`
	Cities       []entity.City        `yaml:"cities"`
	Categories   []CategoryFixture    `yaml:"categories"`
	Coupons      []CouponFixture      `yaml:"coupons"`
}

type CategoryFixture struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Products    []string `yaml:"productCategories"`
}

type CouponFixture struct {
	Code      string `yaml:"code"`
	Label     string `yaml:"label"`
	Reduction string `yaml:"reduction"`
	ExpiresOn string `yaml:"expiresOn"` // YYYY-MM-DD
	MaxUses   int    `yaml:"maxUses"`
}

// LoadFixtures reads path, or the embedded defaults when path is empty.
func LoadFixtures(path string) (*Fixtures, error) {
	var raw []byte
	if path == "" {
		raw = defaultFixtures
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if raw, err = io.ReadAll(f); err != nil {
			return nil, err
		}
	}
	var fx Fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fx, nil
}

// SeedFixtures inserts the website content and catalog lookups. Rows are
// matched on a natural key so the command can be re-run.
func SeedFixtures(db *gorm.DB, fx *Fixtures, log *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if fx.SiteInfo != nil {
			var n int64
			if err := tx.Model(&entity.SiteInfo{}).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				fx.SiteInfo.Status = true
				if err := tx.Create(fx.SiteInfo).Error; err != nil {
					return err
				}
			}
		}
		for _, a := range fx.Abouts {
			a.Status = true
			if err := tx.Where(entity.About{Title: a.Title}).FirstOrCreate(&a).Error; err != nil {
				return err
			}
		}
		for _, b := range fx.Banners {
			b.Status = true
			if err := tx.Where(entity.Banner{Title: b.Title}).FirstOrCreate(&b).Error; err != nil {
				return err
			}
		}
		for _, p := range fx.Partners {
			p.Status = true
			if err := tx.Where(entity.Partner{Name: p.Name}).FirstOrCreate(&p).Error; err != nil {
				return err
			}
		}
		for _, t := range fx.Testimonials {
			t.Status = true
			if err := tx.Where(entity.Testimonial{Name: t.Name}).FirstOrCreate(&t).Error; err != nil {
				return err
			}
		}
		for _, w := range fx.WhyChooseUs {
			w.Status = true
			if err := tx.Where(entity.WhyChooseUs{Title: w.Title}).FirstOrCreate(&w).Error; err != nil {
				return err
			}
		}
		for _, h := range fx.OpeningHours {
			h.Status = true
			if err := tx.Where(entity.OpeningHour{Day: h.Day}).FirstOrCreate(&h).Error; err != nil {
				return err
			}
		}
		for _, g := range fx.Galleries {
			g.Status = true
			if err := tx.Where(entity.Gallery{Image: g.Image}).FirstOrCreate(&g).Error; err != nil {
				return err
			}
		}
		for _, c := range fx.Cities {
			if err := tx.Where(entity.City{Name: c.Name}).FirstOrCreate(&c).Error; err != nil {
				return err
			}
		}
		for _, cf := range fx.Categories {
			cat := entity.EstablishmentCategory{Name: cf.Name, Description: cf.Description, Status: true}
			if err := tx.Where(entity.EstablishmentCategory{Name: cf.Name}).FirstOrCreate(&cat).Error; err != nil {
				return err
			}
			for _, name := range cf.Products {
				pc := entity.ProductCategory{Name: name, Status: true, EstablishmentCategoryID: &cat.ID}
				if err := tx.Where(entity.ProductCategory{Name: name}).FirstOrCreate(&pc).Error; err != nil {
					return err
				}
			}
		}
		for _, cf := range fx.Coupons {
			red, err := decimal.NewFromString(cf.Reduction)
			if err != nil {
				return fmt.Errorf("coupon %s: reduction: %w", cf.Code, err)
			}
			exp, err := time.Parse(time.DateOnly, cf.ExpiresOn)
			if err != nil {
				return fmt.Errorf("coupon %s: expiresOn: %w", cf.Code, err)
			}
			cp := entity.Coupon{
				Code: cf.Code, Label: cf.Label, Reduction: red, ExpiresOn: exp,
				MaxUses: cf.MaxUses, Active: true, Status: true,
			}
			if err := tx.Where(entity.Coupon{Code: cf.Code}).FirstOrCreate(&cp).Error; err != nil {
				return err
			}
		}

		log.Info("fixtures seeded",
			zap.Int("categories", len(fx.Categories)),
			zap.Int("cities", len(fx.Cities)),
			zap.Int("coupons", len(fx.Coupons)))
		return nil
	})
}
