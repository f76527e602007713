package services

import (
	"errors"
	"strings"
	"time"

	"cooldeal/entity"
	"cooldeal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService covers the back-office screens.
type AdminService struct {
	DB             *gorm.DB
	Users          *repository.UserRepository
	Catalog        *repository.CatalogRepository
	Establishments *repository.EstablishmentRepository
	Orders         *repository.OrderRepository
	Site           *repository.SiteRepository
}

func NewAdminService(
	db *gorm.DB,
	users *repository.UserRepository,
	catalog *repository.CatalogRepository,
	ests *repository.EstablishmentRepository,
	orders *repository.OrderRepository,
	site *repository.SiteRepository,
) *AdminService {
	return &AdminService{DB: db, Users: users, Catalog: catalog, Establishments: ests, Orders: orders, Site: site}
}

type AdminDashboard struct {
	Customers      int64 `json:"customers"`
	Sellers        int64 `json:"sellers"`
	Establishments int64 `json:"establishments"`
	Products       int64 `json:"products"`
	Orders         int64 `json:"orders"`
	OrdersToday    int64 `json:"ordersToday"`
}

func (s *AdminService) Dashboard() (*AdminDashboard, error) {
	var d AdminDashboard
	var err error
	if d.Customers, err = s.Users.CountByRole(entity.RoleCustomer); err != nil {
		return nil, err
	}
	if d.Sellers, err = s.Users.CountByRole(entity.RoleSeller); err != nil {
		return nil, err
	}
	if d.Establishments, err = s.Establishments.Count(); err != nil {
		return nil, err
	}
	if d.Products, err = s.Catalog.CountProducts(); err != nil {
		return nil, err
	}
	if d.Orders, err = s.Orders.Count(); err != nil {
		return nil, err
	}
	y, m, day := time.Now().Date()
	if d.OrdersToday, err = s.Orders.CountSince(time.Date(y, m, day, 0, 0, 0, 0, time.Local)); err != nil {
		return nil, err
	}
	return &d, nil
}

type CategoryIn struct {
	Name                    string `form:"nom" json:"nom" binding:"required"`
	Description             string `form:"description" json:"description"`
	EstablishmentCategoryID *uint  `form:"categorie" json:"categorie"`
	Cover                   string `form:"-" json:"-"`
}

func (s *AdminService) CreateEstablishmentCategory(in *CategoryIn) (*entity.EstablishmentCategory, error) {
	c := entity.EstablishmentCategory{Name: in.Name, Description: in.Description, Cover: in.Cover, Status: true}
	if err := s.Catalog.CreateEstablishmentCategory(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *AdminService) CreateProductCategory(in *CategoryIn) (*entity.ProductCategory, error) {
	c := entity.ProductCategory{
		Name: in.Name, Description: in.Description, Cover: in.Cover, Status: true,
		EstablishmentCategoryID: in.EstablishmentCategoryID,
	}
	if err := s.Catalog.CreateProductCategory(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

type NewEstablishmentIn struct {
	EstablishmentIn
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password"`
}

// CreateEstablishment opens an establishment for a seller account, creating
// the account when the username is new. An existing account must already be a
// seller; customers and admins keep their role. The manager fields are copied
// onto the user.
func (s *AdminService) CreateEstablishment(in *NewEstablishmentIn) (*entity.Establishment, error) {
	var est entity.Establishment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var u entity.User
		err := tx.Where("username = ?", strings.TrimSpace(in.Username)).First(&u).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if len(in.Password) < MinPasswordLen {
				return ErrPasswordTooShort
			}
			if n, err := s.Users.CountByEmail(tx, in.Email); err != nil {
				return err
			} else if n > 0 {
				return ErrEmailTaken
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u = entity.User{Username: strings.TrimSpace(in.Username), Email: in.Email, Password: string(hash), Role: entity.RoleSeller}
			if err := s.Users.Create(tx, &u); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if u.Role != entity.RoleSeller {
				return ErrRoleConflict
			}
			var n int64
			if err := tx.Model(&entity.Establishment{}).Where("user_id = ?", u.ID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrAlreadySeller
			}
		}

		est = entity.Establishment{UserID: u.ID, Status: true}
		applyEstablishment(&est, &in.EstablishmentIn)
		return s.Establishments.Save(tx, &est)
	})
	if err != nil {
		return nil, err
	}
	return &est, nil
}

func (s *AdminService) Contacts() ([]entity.Contact, error)       { return s.Site.Contacts() }
func (s *AdminService) Subscribers() ([]entity.Newsletter, error) { return s.Site.Subscribers() }
