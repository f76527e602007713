package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"cooldeal/configs"
	"cooldeal/pkg/resp"
	"cooldeal/services"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClientController serves the customer area.
type ClientController struct {
	Customers *services.CustomerService
	OrderSvc  *services.OrderService
	Receipts  *services.ReceiptService
	Cfg       *configs.Config
	Log       *zap.Logger
}

func NewClientController(
	customers *services.CustomerService,
	orders *services.OrderService,
	receipts *services.ReceiptService,
	cfg *configs.Config,
	log *zap.Logger,
) *ClientController {
	return &ClientController{Customers: customers, OrderSvc: orders, Receipts: receipts, Cfg: cfg, Log: log}
}

// GET /api/client/profile
func (s *ClientController) Profile(c *gin.Context) {
	p, err := s.Customers.Profile(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, p)
}

// GET /api/client/orders?q=&page=
func (s *ClientController) Orders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	out, err := s.OrderSvc.ListForCustomer(utils.CurrentUserID(c), c.Query("q"), page)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/client/orders/:id
func (s *ClientController) Order(c *gin.Context) {
	o, err := s.OrderSvc.DetailForCustomer(utils.CurrentUserID(c), utils.ParamUint(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /api/client/orders/:id/receipt
func (s *ClientController) Receipt(c *gin.Context) {
	name, pdf, err := s.Receipts.PDF(c.Request.Context(), utils.CurrentUserID(c), utils.ParamUint(c, "id"))
	if errors.Is(err, services.ErrOrderNotFound) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not your order", "redirect": "/client/orders"})
		return
	}
	if err != nil {
		s.Log.Error("receipt render", zap.Error(err))
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/client/wishlist
func (s *ClientController) Wishlist(c *gin.Context) {
	favs, err := s.Customers.Wishlist(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, favs)
}

// POST /api/client/settings (multipart, optional "photo")
func (s *ClientController) Settings(c *gin.Context) {
	var in services.SettingsIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	photo, err := utils.SaveUpload(c, "photo", s.Cfg.MediaRoot, "customers")
	if err != nil {
		fail(c, err)
		return
	}
	in.Photo = photo

	cust, err := s.Customers.UpdateSettings(utils.CurrentUserID(c), &in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, cust)
}
