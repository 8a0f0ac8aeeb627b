package ctbserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/x140y40/coolq-telegram-bot/pkg/bot"
	"github.com/x140y40/coolq-telegram-bot/pkg/dispatch"
	"github.com/x140y40/coolq-telegram-bot/pkg/payload"
	"github.com/x140y40/coolq-telegram-bot/pkg/signature"
)

const signatureHeader = "X-Signature"

// webhookHandler authenticates an inbound gateway event against the raw
// body bytes, then hands the decoded payload to the dispatch engine.
// Signature verification runs before JSON decoding: re-serialized JSON
// would not be byte-identical and the digest would never match.
func webhookHandler(st *state, b *bot.Bot) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		if secret := st.Secret(); secret != "" {
			supplied := c.GetHeader(signatureHeader)
			if supplied == "" {
				c.Set(ctxRejected, "missing_signature")
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			if !signature.Verify(secret, raw, supplied) {
				c.Set(ctxRejected, "bad_signature")
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		p, err := payload.Parse(raw)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if pt, ok := p.PostType(); ok {
			c.Set(ctxPostType, string(pt))
		}
		if key, ok := p.MatchKey(); ok {
			c.Set(ctxMatchKey, key)
		}

		resp, err := b.Dispatch(p)
		if err != nil {
			if errors.Is(err, dispatch.ErrBadPayload) {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if resp == nil {
			// Empty response, both for "no handler matched" and for a handler
			// terminating without a body. The gateway treats them the same.
			c.Status(http.StatusOK)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
