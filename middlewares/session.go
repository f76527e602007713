package middlewares

import (
	"net/http"
	"time"

	"cooldeal/configs"
	"cooldeal/entity"
	"cooldeal/repository"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session gives every visitor a server-side session key, issuing the cookie on first visit.
func Session(repo *repository.SessionRepository, cfg *configs.Config, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		if key, err := c.Cookie(cfg.SessionCookie); err == nil && key != "" {
			if s, err := repo.FindValid(key, now); err == nil {
				c.Set(utils.CtxSessionKey, s.Key)
				c.Next()
				return
			}
		}

		s := entity.Session{Key: uuid.NewString(), ExpiresAt: now.Add(cfg.SessionTTL)}
		if err := repo.Create(&s); err != nil {
			log.Error("session create failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "session unavailable"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.SessionCookie, s.Key, int(cfg.SessionTTL.Seconds()), "/", "", cfg.SecureCookies(), true)
		c.Set(utils.CtxSessionKey, s.Key)
		c.Next()
	}
}
