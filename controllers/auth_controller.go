package controllers

import (
	"net/http"

	"cooldeal/configs"
	"cooldeal/entity"
	"cooldeal/pkg/resp"
	"cooldeal/services"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Auth  *services.AuthService
	Carts *services.CartService
	Cfg   *configs.Config
	Log   *zap.Logger
}

func NewAuthController(auth *services.AuthService, carts *services.CartService, cfg *configs.Config, log *zap.Logger) *AuthController {
	return &AuthController{Auth: auth, Carts: carts, Cfg: cfg, Log: log}
}

func (a *AuthController) setToken(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.Cfg.TokenCookie, token, maxAge, "/", "", a.Cfg.SecureCookies(), true)
}

// GET /api/customer/login
func (a *AuthController) LoginPage(c *gin.Context) {
	if utils.CurrentUserID(c) != 0 {
		resp.OK(c, gin.H{"authenticated": true, "redirect": "/"})
		return
	}
	resp.OK(c, gin.H{"authenticated": false})
}

// POST /api/customer/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Result(c, false, "Merci de renseigner correctement les champs")
		return
	}
	u, token, err := a.Auth.Login(req.Username, req.Password)
	if err != nil {
		resp.Result(c, false, message(err))
		return
	}
	a.setToken(c, token, int(a.Cfg.JWTTTL.Seconds()))

	// the visitor's anonymous cart follows them into the account
	if u.Role == entity.RoleCustomer {
		if _, err := a.Carts.Resolve(services.CartOwner{SessionKey: utils.SessionKey(c), UserID: u.ID}); err != nil {
			a.Log.Warn("cart merge on login", zap.Uint("user_id", u.ID), zap.Error(err))
		}
	}
	if err := a.Auth.AttachSession(utils.SessionKey(c), &u.ID); err != nil {
		a.Log.Warn("attach session", zap.Uint("user_id", u.ID), zap.Error(err))
	}
	resp.Result(c, true, "Connexion réussie", gin.H{"token": token, "role": u.Role})
}

// POST /api/customer/logout
func (a *AuthController) Logout(c *gin.Context) {
	a.setToken(c, "", -1)
	if err := a.Auth.AttachSession(utils.SessionKey(c), nil); err != nil {
		a.Log.Warn("detach session", zap.Error(err))
	}
	resp.Result(c, true, "Déconnexion réussie")
}

// POST /api/customer/signup (multipart, "file" is the profile photo)
func (a *AuthController) Signup(c *gin.Context) {
	var in services.RegisterIn
	if err := c.ShouldBind(&in); err != nil {
		resp.Result(c, false, "Merci de renseigner correctement les champs")
		return
	}
	if err := a.Auth.CheckRegistration(&in); err != nil {
		resp.Result(c, false, message(err))
		return
	}
	photo, err := utils.SaveUpload(c, "file", a.Cfg.MediaRoot, "customers")
	if err != nil {
		resp.Result(c, false, message(err))
		return
	}
	if photo == "" {
		resp.Result(c, false, "Merci d'ajouter une photo de profil")
		return
	}
	in.Photo = photo

	cust, err := a.Auth.Register(&in)
	if err != nil {
		resp.Result(c, false, message(err))
		return
	}
	a.Log.Info("customer registered", zap.Uint("user_id", cust.UserID))
	resp.Result(c, true, "Inscription réussie, vous pouvez vous connecter")
}

// POST /api/customer/forgot-password
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	_ = c.ShouldBindJSON(&in)
	if err := a.Auth.RequestPasswordReset(c.Request.Context(), in.Email); err != nil {
		resp.Result(c, false, message(err))
		return
	}
	resp.Result(c, true, "Si cette adresse existe, un email de réinitialisation a été envoyé")
}

// GET /api/customer/reset-password/:token
func (a *AuthController) CheckReset(c *gin.Context) {
	if _, err := a.Auth.CheckResetToken(c.Param("token")); err != nil {
		resp.Result(c, false, message(err))
		return
	}
	resp.Result(c, true, "Lien valide")
}

// POST /api/customer/reset-password/:token
func (a *AuthController) ResetPassword(c *gin.Context) {
	var in struct {
		Password     string `json:"password"`
		PasswordConf string `json:"passwordconf"`
	}
	_ = c.ShouldBindJSON(&in)
	if err := a.Auth.ResetPassword(c.Param("token"), in.Password, in.PasswordConf); err != nil {
		resp.Result(c, false, message(err))
		return
	}
	resp.Result(c, true, "Mot de passe modifié, vous pouvez vous connecter")
}
