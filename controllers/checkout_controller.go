package controllers

import (
	"errors"
	"strings"

	"cooldeal/pkg/resp"
	"cooldeal/services"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
	Carts    *services.CartService
	Log      *zap.Logger
}

func NewCheckoutController(checkout *services.CheckoutService, carts *services.CartService, log *zap.Logger) *CheckoutController {
	return &CheckoutController{Checkout: checkout, Carts: carts, Log: log}
}

// GET /api/checkout (login required)
func (s *CheckoutController) Summary(c *gin.Context) {
	if _, err := s.Checkout.RequireCustomer(utils.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	cart, err := s.Carts.Resolve(owner(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, s.Carts.View(cart))
}

// POST /api/paiement/details (login required)
func (s *CheckoutController) Details(c *gin.Context) {
	var in services.CheckoutIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Result(c, false, "Requête invalide")
		return
	}
	out, err := s.Checkout.Checkout(c.Request.Context(), owner(c), in)
	if err != nil {
		if !errors.Is(err, services.ErrCartNotOwned) && !errors.Is(err, services.ErrCartEmpty) {
			s.Log.Warn("checkout failed", zap.Uint("cart_id", in.CartID), zap.Error(err))
		}
		resp.Result(c, false, message(err))
		return
	}

	msg := "Commande enregistrée"
	if out.PaymentError != "" {
		msg = "Commande enregistrée, le paiement n'a pas pu être initié: " + out.PaymentError
	}
	resp.Result(c, true, msg, gin.H{
		"order":          out.Order,
		"transaction_id": out.Order.TransactionID,
		"payment_url":    out.PaymentURL,
	})
}

type notifyRequest struct {
	CPMTransID    string `form:"cpm_trans_id" json:"cpm_trans_id"`
	TransactionID string `form:"transaction_id" json:"transaction_id"`
}

// POST /api/paiement/notify, called by the payment gateway.
func (s *CheckoutController) Notify(c *gin.Context) {
	var req notifyRequest
	_ = c.ShouldBind(&req)
	txID := strings.TrimSpace(req.CPMTransID)
	if txID == "" {
		txID = strings.TrimSpace(req.TransactionID)
	}
	if txID == "" {
		resp.BadRequest(c, "transaction id required")
		return
	}

	o, err := s.Checkout.ConfirmPayment(c.Request.Context(), txID)
	if err != nil {
		s.Log.Warn("payment notification failed", zap.String("transaction_id", txID), zap.Error(err))
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"transactionId": o.TransactionID, "status": o.OrderStatus.StatusName})
}

// GET /api/paiement/success?transaction_id=
func (s *CheckoutController) Success(c *gin.Context) {
	txID := strings.TrimSpace(c.Query("transaction_id"))
	if txID == "" {
		resp.BadRequest(c, "transaction id required")
		return
	}
	o, err := s.Checkout.ConfirmPayment(c.Request.Context(), txID)
	if err != nil && !errors.Is(err, services.ErrOrderNotFound) {
		// gateway unreachable: show what we know
		s.Log.Warn("payment check failed", zap.String("transaction_id", txID), zap.Error(err))
		o, err = s.Checkout.ByTransaction(txID)
	}
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{
		"transactionId": o.TransactionID,
		"status":        o.OrderStatus.StatusName,
		"total":         o.TotalPrice,
		"paidAt":        o.PaidAt,
	})
}
