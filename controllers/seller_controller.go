package controllers

import (
	"cooldeal/configs"
	"cooldeal/pkg/resp"
	"cooldeal/services"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
)

// SellerController is the establishment dashboard.
type SellerController struct {
	Seller   *services.SellerService
	OrderSvc *services.OrderService
	Cfg      *configs.Config
}

func NewSellerController(seller *services.SellerService, orders *services.OrderService, cfg *configs.Config) *SellerController {
	return &SellerController{Seller: seller, OrderSvc: orders, Cfg: cfg}
}

// GET /api/seller/dashboard
func (s *SellerController) Dashboard(c *gin.Context) {
	d, err := s.Seller.Dashboard(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, d)
}

// ----- Products -----

// GET /api/seller/products
func (s *SellerController) Products(c *gin.Context) {
	ps, err := s.Seller.Products(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, ps)
}

// GET /api/seller/products/:id
func (s *SellerController) Product(c *gin.Context) {
	p, err := s.Seller.Product(utils.CurrentUserID(c), utils.ParamUint(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, p)
}

func (s *SellerController) bindProduct(c *gin.Context) (*services.ProductIn, bool) {
	var in services.ProductIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return nil, false
	}
	for field, dst := range map[string]*string{"image": &in.Image, "image_2": &in.Image2, "image_3": &in.Image3} {
		p, err := utils.SaveUpload(c, field, s.Cfg.MediaRoot, "products")
		if err != nil {
			fail(c, err)
			return nil, false
		}
		*dst = p
	}
	return &in, true
}

// POST /api/seller/products (multipart)
func (s *SellerController) CreateProduct(c *gin.Context) {
	in, ok := s.bindProduct(c)
	if !ok {
		return
	}
	p, err := s.Seller.CreateProduct(utils.CurrentUserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, p)
}

// PATCH /api/seller/products/:id (multipart)
func (s *SellerController) UpdateProduct(c *gin.Context) {
	in, ok := s.bindProduct(c)
	if !ok {
		return
	}
	p, err := s.Seller.UpdateProduct(utils.CurrentUserID(c), utils.ParamUint(c, "id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, p)
}

// DELETE /api/seller/products/:id
func (s *SellerController) DeleteProduct(c *gin.Context) {
	if err := s.Seller.DeleteProduct(utils.CurrentUserID(c), utils.ParamUint(c, "id")); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// ----- Orders -----

// GET /api/seller/orders?status=&page=&limit=
func (s *SellerController) Orders(c *gin.Context) {
	page, limit := utils.Page(c, 10, 100)
	out, err := s.OrderSvc.ListForSeller(utils.CurrentUserID(c), c.Query("status"), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/seller/orders/:id
func (s *SellerController) Order(c *gin.Context) {
	o, err := s.OrderSvc.DetailForSeller(utils.CurrentUserID(c), utils.ParamUint(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, o)
}

func (s *SellerController) move(c *gin.Context, fn func(userID, orderID uint) error) {
	userID, orderID := utils.CurrentUserID(c), utils.ParamUint(c, "id")
	if err := fn(userID, orderID); err != nil {
		fail(c, err)
		return
	}
	o, err := s.OrderSvc.DetailForSeller(userID, orderID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, o)
}

// PATCH /api/seller/orders/:id/paid
func (s *SellerController) MarkPaid(c *gin.Context) { s.move(c, s.OrderSvc.SellerMarkPaid) }

// PATCH /api/seller/orders/:id/deliver
func (s *SellerController) Deliver(c *gin.Context) { s.move(c, s.OrderSvc.SellerDeliver) }

// PATCH /api/seller/orders/:id/cancel
func (s *SellerController) Cancel(c *gin.Context) { s.move(c, s.OrderSvc.SellerCancel) }

// ----- Establishment -----

// GET /api/seller/establishment
func (s *SellerController) Establishment(c *gin.Context) {
	e, err := s.Seller.Establishment(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, e)
}

// PATCH /api/seller/establishment (multipart, optional "logo" and "cover")
func (s *SellerController) UpdateEstablishment(c *gin.Context) {
	var in services.EstablishmentIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	var err error
	if in.Logo, err = utils.SaveUpload(c, "logo", s.Cfg.MediaRoot, "establishments"); err != nil {
		fail(c, err)
		return
	}
	if in.Cover, err = utils.SaveUpload(c, "cover", s.Cfg.MediaRoot, "establishments"); err != nil {
		fail(c, err)
		return
	}
	e, err := s.Seller.UpdateEstablishment(utils.CurrentUserID(c), &in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, e)
}
