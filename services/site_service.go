package services

import (
	"cooldeal/entity"
	"cooldeal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	HomePartners     = 5
	HomeBanners      = 4
	HomeSuperDeals   = 3
	AboutWhyChooseUs = 3
	LayoutGalleries  = 6
)

type SiteService struct {
	Repo    *repository.SiteRepository
	Catalog *CatalogService
}

func NewSiteService(repo *repository.SiteRepository, catalog *CatalogService) *SiteService {
	return &SiteService{Repo: repo, Catalog: catalog}
}

func first(abouts []entity.About) *entity.About {
	if len(abouts) == 0 {
		return nil
	}
	return &abouts[0]
}

type Home struct {
	About        *entity.About        `json:"about"`
	Partners     []entity.Partner     `json:"partners"`
	Banners      []entity.Banner      `json:"banners"`
	Testimonials []entity.Testimonial `json:"testimonials"`
	SuperDeals   []ProductCard        `json:"superDeals"`
}

func (s *SiteService) Home() (*Home, error) {
	var h Home
	var abouts []entity.About
	var g errgroup.Group
	g.Go(func() (err error) { abouts, err = s.Repo.Abouts(1); return })
	g.Go(func() (err error) { h.Partners, err = s.Repo.Partners(HomePartners); return })
	g.Go(func() (err error) { h.Banners, err = s.Repo.Banners(HomeBanners); return })
	g.Go(func() (err error) { h.Testimonials, err = s.Repo.Testimonials(); return })
	g.Go(func() (err error) { h.SuperDeals, err = s.Catalog.SuperDeals(HomeSuperDeals); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	h.About = first(abouts)
	return &h, nil
}

type AboutPage struct {
	About       *entity.About        `json:"about"`
	WhyChooseUs []entity.WhyChooseUs `json:"whyChooseUs"`
}

func (s *SiteService) About() (*AboutPage, error) {
	abouts, err := s.Repo.Abouts(1)
	if err != nil {
		return nil, err
	}
	why, err := s.Repo.WhyChooseUs(AboutWhyChooseUs)
	if err != nil {
		return nil, err
	}
	return &AboutPage{About: first(abouts), WhyChooseUs: why}, nil
}

// Layout is what every page header and footer shows.
type Layout struct {
	Categories   []entity.EstablishmentCategory `json:"categories"`
	SiteInfo     *entity.SiteInfo               `json:"siteInfo"`
	Cities       []entity.City                  `json:"cities"`
	Galleries    []entity.Gallery               `json:"galleries"`
	OpeningHours []entity.OpeningHour           `json:"openingHours"`
	Cart         *CartView                      `json:"cart"`
}

// Layout loads the shared page context concurrently; cart may be nil.
func (s *SiteService) Layout(cart func() (*CartView, error)) (*Layout, error) {
	var l Layout
	var g errgroup.Group
	g.Go(func() (err error) { l.Categories, err = s.Catalog.Categories(); return })
	g.Go(func() (err error) { l.SiteInfo, err = s.Repo.LatestSiteInfo(); return })
	g.Go(func() (err error) { l.Cities, err = s.Repo.Cities(); return })
	g.Go(func() (err error) { l.Galleries, err = s.Repo.Galleries(LayoutGalleries); return })
	g.Go(func() (err error) { l.OpeningHours, err = s.Repo.OpeningHours(); return })
	if cart != nil {
		g.Go(func() (err error) { l.Cart, err = cart(); return })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &l, nil
}

type ContactIn struct {
	Name    string `json:"nom"`
	Email   string `json:"email"`
	Subject string `json:"sujet"`
	Message string `json:"messages"`
}

func (s *SiteService) Contact(in *ContactIn) error {
	if in.Name == "" || in.Subject == "" || in.Message == "" || !validEmail(in.Email) {
		return ErrMissingFields
	}
	return s.Repo.CreateContact(&entity.Contact{
		Name: in.Name, Email: in.Email, Subject: in.Subject, Message: in.Message,
	})
}

func (s *SiteService) Subscribe(email string) error {
	if !validEmail(email) {
		return ErrInvalidEmail
	}
	return s.Repo.Subscribe(email)
}
