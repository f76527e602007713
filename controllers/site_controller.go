package controllers

import (
	"errors"

	"cooldeal/pkg/resp"
	"cooldeal/services"

	"github.com/gin-gonic/gin"
)

type SiteController struct {
	Site  *services.SiteService
	Carts *services.CartService
}

func NewSiteController(site *services.SiteService, carts *services.CartService) *SiteController {
	return &SiteController{Site: site, Carts: carts}
}

// GET /api/home
func (s *SiteController) Home(c *gin.Context) {
	h, err := s.Site.Home()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, h)
}

// GET /api/about
func (s *SiteController) About(c *gin.Context) {
	a, err := s.Site.About()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, a)
}

// GET /api/layout
func (s *SiteController) Layout(c *gin.Context) {
	o := owner(c)
	l, err := s.Site.Layout(func() (*services.CartView, error) {
		cart, err := s.Carts.Resolve(o)
		if err != nil {
			return nil, err
		}
		return s.Carts.View(cart), nil
	})
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, l)
}

// POST /api/contact
func (s *SiteController) Contact(c *gin.Context) {
	var in services.ContactIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Result(c, false, "Merci de renseigner correctement les champs")
		return
	}
	if err := s.Site.Contact(&in); err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			resp.Result(c, false, "Merci de renseigner correctement les champs")
			return
		}
		resp.Result(c, false, message(err))
		return
	}
	resp.Result(c, true, "Merci pour votre message")
}

// POST /api/newsletter
func (s *SiteController) Newsletter(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	_ = c.ShouldBindJSON(&in)
	if err := s.Site.Subscribe(in.Email); err != nil {
		if errors.Is(err, services.ErrInvalidEmail) {
			resp.Result(c, false, "Merci de renseigner une adresse email correcte")
			return
		}
		resp.Result(c, false, message(err))
		return
	}
	resp.Result(c, true, "Félicitations vous êtes abonnés à notre newsletter")
}
