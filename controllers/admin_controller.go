package controllers

import (
	"cooldeal/configs"
	"cooldeal/pkg/resp"
	"cooldeal/services"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin     *services.AdminService
	CouponSvc *services.CouponService
	Cfg       *configs.Config
}

func NewAdminController(admin *services.AdminService, coupons *services.CouponService, cfg *configs.Config) *AdminController {
	return &AdminController{Admin: admin, CouponSvc: coupons, Cfg: cfg}
}

// GET /api/admin/dashboard
func (ac *AdminController) Dashboard(c *gin.Context) {
	d, err := ac.Admin.Dashboard()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /api/admin/coupons
func (ac *AdminController) Coupons(c *gin.Context) {
	list, err := ac.CouponSvc.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, list)
}

// POST /api/admin/coupons
func (ac *AdminController) CreateCoupon(c *gin.Context) {
	var in services.CouponIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cp, err := ac.CouponSvc.Create(&in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, cp)
}

// PATCH /api/admin/coupons/:id
func (ac *AdminController) UpdateCoupon(c *gin.Context) {
	var in services.CouponIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cp, err := ac.CouponSvc.Update(utils.ParamUint(c, "id"), &in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, cp)
}

func (ac *AdminController) bindCategory(c *gin.Context) (*services.CategoryIn, bool) {
	var in services.CategoryIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return nil, false
	}
	cover, err := utils.SaveUpload(c, "cover", ac.Cfg.MediaRoot, "categories")
	if err != nil {
		fail(c, err)
		return nil, false
	}
	in.Cover = cover
	return &in, true
}

// POST /api/admin/establishment-categories
func (ac *AdminController) CreateEstablishmentCategory(c *gin.Context) {
	in, ok := ac.bindCategory(c)
	if !ok {
		return
	}
	cat, err := ac.Admin.CreateEstablishmentCategory(in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, cat)
}

// POST /api/admin/product-categories
func (ac *AdminController) CreateProductCategory(c *gin.Context) {
	in, ok := ac.bindCategory(c)
	if !ok {
		return
	}
	cat, err := ac.Admin.CreateProductCategory(in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, cat)
}

// POST /api/admin/establishments
func (ac *AdminController) CreateEstablishment(c *gin.Context) {
	var in services.NewEstablishmentIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	var err error
	if in.Logo, err = utils.SaveUpload(c, "logo", ac.Cfg.MediaRoot, "establishments"); err != nil {
		fail(c, err)
		return
	}
	if in.Cover, err = utils.SaveUpload(c, "cover", ac.Cfg.MediaRoot, "establishments"); err != nil {
		fail(c, err)
		return
	}
	est, err := ac.Admin.CreateEstablishment(&in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, est)
}

// GET /api/admin/contacts
func (ac *AdminController) Contacts(c *gin.Context) {
	list, err := ac.Admin.Contacts()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /api/admin/newsletter
func (ac *AdminController) Subscribers(c *gin.Context) {
	list, err := ac.Admin.Subscribers()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, list)
}
