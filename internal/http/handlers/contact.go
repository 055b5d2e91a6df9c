package handlers

import (
	"log/slog"
	"net/http"

	"github.com/geocoder89/hallulies/internal/domain/contact"
	"github.com/geocoder89/hallulies/internal/notifications"
	"github.com/gin-gonic/gin"
)

type ContactComposer interface {
	ContactNotice(r contact.Request) (notifications.Message, error)
}

// ContactHandler relays the website contact form to the front desk. Nothing
// is stored besides the delivery record the mailer keeps.
type ContactHandler struct {
	mailer   notifications.Mailer
	composer ContactComposer
	log      *slog.Logger
}

func NewContactHandler(mailer notifications.Mailer, composer ContactComposer, log *slog.Logger) *ContactHandler {
	return &ContactHandler{mailer: mailer, composer: composer, log: log}
}

func (h *ContactHandler) Submit(ctx *gin.Context) {
	var req contact.Request

	if !BindJSON(ctx, &req) {
		return
	}

	resp := gin.H{"message": "Message sent successfully"}

	sent := notify(ctx, h.log, h.mailer, func() (notifications.Message, error) {
		return h.composer.ContactNotice(req)
	})
	if !sent {
		resp["warning"] = "Your message could not be forwarded to the front desk. Please try again later or call us directly."
	}

	ctx.JSON(http.StatusOK, resp)
}
