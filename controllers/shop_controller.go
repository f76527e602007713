package controllers

import (
	"strconv"

	"cooldeal/pkg/resp"
	"cooldeal/services"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
)

type ShopController struct{ Catalog *services.CatalogService }

func NewShopController(catalog *services.CatalogService) *ShopController {
	return &ShopController{Catalog: catalog}
}

// GET /api/shop?category=&page=
func (s *ShopController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	out, err := s.Catalog.Shop(c.Query("category"), page)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/shop/products/:slug
func (s *ShopController) Product(c *gin.Context) {
	out, err := s.Catalog.Product(c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/shop/categories
func (s *ShopController) Categories(c *gin.Context) {
	out, err := s.Catalog.Categories()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/shop/categories/:slug
func (s *ShopController) Category(c *gin.Context) {
	out, err := s.Catalog.Category(c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /api/shop/favorites/:id (login required)
func (s *ShopController) ToggleFavorite(c *gin.Context) {
	added, err := s.Catalog.ToggleFavorite(utils.CurrentUserID(c), utils.ParamUint(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"favorite": added})
}
