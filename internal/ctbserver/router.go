package ctbserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/x140y40/coolq-telegram-bot/pkg/bot"
	"github.com/x140y40/coolq-telegram-bot/pkg/config"
)

const requestIDHeaderKey = "X-Ctb-Request-Id"

func NewRouter(
	cfg *config.Config,
	st *state,
	b *bot.Bot,
	accessLogger *log.Logger,
	accessLoggerColor bool,
) *gin.Engine {
	r := gin.New()
	r.Use(requestIDMiddleware(requestIDHeaderKey))
	if cfg.Logging.AccessLog {
		r.Use(requestLogger(accessLogger, accessLoggerColor, requestIDHeaderKey))
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "started_at": st.StartedAtUnix()})
	})

	r.POST(cfg.Webhook.Path, webhookHandler(st, b))

	return r
}
