package controllers

import (
	"cooldeal/pkg/resp"
	"cooldeal/services"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Carts *services.CartService }

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

type cartLineRequest struct {
	CartID    uint `json:"panier" binding:"required"`
	ProductID uint `json:"produit" binding:"required"`
	Quantity  int  `json:"quantite"`
}

type cartDeleteRequest struct {
	CartID uint `json:"panier" binding:"required"`
	ItemID uint `json:"produit_panier" binding:"required"`
}

type couponRequest struct {
	CartID uint   `json:"panier" binding:"required"`
	Code   string `json:"coupon" binding:"required"`
}

// GET /api/cart
func (s *CartController) Show(c *gin.Context) {
	cart, err := s.Carts.Resolve(owner(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, s.Carts.View(cart))
}

// POST /api/cart/add
func (s *CartController) Add(c *gin.Context) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Result(c, false, "Requête invalide")
		return
	}
	if err := s.Carts.Add(owner(c), req.CartID, req.ProductID, req.Quantity); err != nil {
		resp.Result(c, false, message(err))
		return
	}
	resp.Result(c, true, "Produit ajouté au panier")
}

// POST /api/cart/update
func (s *CartController) Update(c *gin.Context) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Result(c, false, "Requête invalide")
		return
	}
	if err := s.Carts.Update(owner(c), req.CartID, req.ProductID, req.Quantity); err != nil {
		resp.Result(c, false, message(err))
		return
	}
	resp.Result(c, true, "Panier mis à jour")
}

// POST /api/cart/delete
func (s *CartController) Delete(c *gin.Context) {
	var req cartDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Result(c, false, "Requête invalide")
		return
	}
	if err := s.Carts.Remove(owner(c), req.CartID, req.ItemID); err != nil {
		resp.Result(c, false, message(err))
		return
	}
	resp.Result(c, true, "Produit retiré du panier")
}

// POST /api/cart/coupon
func (s *CartController) Coupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Result(c, false, "Requête invalide")
		return
	}
	cp, err := s.Carts.ApplyCoupon(owner(c), req.CartID, req.Code)
	if err != nil {
		resp.Result(c, false, message(err))
		return
	}
	resp.Result(c, true, "Coupon appliqué", gin.H{"coupon": cp})
}
