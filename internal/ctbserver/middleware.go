package ctbserver

import (
	crand "crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/x140y40/coolq-telegram-bot/internal/logx"
)

// Context keys the webhook handler fills in for the access logger.
const (
	ctxPostType = "ctb.post_type"
	ctxMatchKey = "ctb.match_key"
	ctxRejected = "ctb.rejected"
)

var accessLogContextFields = map[string]string{
	ctxPostType: "post_type",
	ctxMatchKey: "match_key",
	ctxRejected: "rejected",
}

func requestIDMiddleware(headerKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerKey))
		if id == "" {
			id = genRequestID()
		}
		c.Header(headerKey, id)
		c.Set(headerKey, id)
		c.Next()
	}
}

func genRequestID() string {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// best effort fallback
		return time.Now().Format("20060102150405.000000")
	}
	return time.Now().Format("20060102150405") + "-" + hex.EncodeToString(b[:])
}

func requestLogger(l *log.Logger, color bool, headerKey string) gin.HandlerFunc {
	if l == nil {
		l = log.New(os.Stdout, "", log.LstdFlags)
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]any{
			"request_id": c.GetString(headerKey),
		}
		for ctxKey, logKey := range accessLogContextFields {
			if v, ok := c.Get(ctxKey); ok {
				fields[logKey] = v
			}
		}
		l.Println(logx.FormatRequestLine(
			time.Now(),
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
			fields,
			color,
		))
	}
}
