package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/geocoder89/hallulies/internal/notifications"
	"github.com/gin-gonic/gin"
)

// dbTimeout bounds every store call a handler makes.
const dbTimeout = 3 * time.Second

func requestContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), dbTimeout)
}

// pathID reads the :id segment. A non numeric id can never match a row, so
// it is answered as not found.
func pathID(ctx *gin.Context, notFoundMsg string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondNotFound(ctx, notFoundMsg)
		return 0, false
	}
	return id, true
}

// notify renders and sends one message. It reports false instead of failing
// the request: the write it describes has already happened.
func notify(ctx *gin.Context, log *slog.Logger, mailer notifications.Mailer, compose func() (notifications.Message, error)) bool {
	msg, err := compose()
	if err != nil {
		log.ErrorContext(ctx.Request.Context(), "mail.compose_failed", "err", err)
		return false
	}

	if err := mailer.Send(ctx.Request.Context(), msg); err != nil {
		log.WarnContext(ctx.Request.Context(), "mail.send_failed",
			"kind", msg.Kind,
			"err", err,
		)
		return false
	}
	return true
}
