package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/config"
	"github.com/prestigebuild/siteapi/internal/domain/contact"
	"github.com/prestigebuild/siteapi/internal/notifications"
)

type ContactsRepo interface {
	List(ctx context.Context) ([]contact.Contact, error)
	UpdateStatus(ctx context.Context, id string, status string) (contact.Contact, error)
	Delete(ctx context.Context, id string) error
}

type ContactsHandler struct {
	repo     ContactsRepo
	notifier notifications.Notifier
	logger   *slog.Logger
}

func NewContactsHandler(repo ContactsRepo, notifier notifications.Notifier, logger *slog.Logger) *ContactsHandler {
	return &ContactsHandler{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// SubmitContact relays the public contact form to the operator mailbox. The
// submission is not stored; if the operator mail fails the whole request
// fails so the visitor knows to retry.
func (h *ContactsHandler) SubmitContact(ctx *gin.Context) {
	var req contact.SubmitRequest

	if !BindJSON(ctx, &req) {
		return
	}

	msg := notifications.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	cctx, cancel := config.WithTimeout(15 * time.Second)
	defer cancel()

	err := h.notifier.SendContactNotification(cctx, msg)

	if err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "contact notification failed",
			"error", err,
		)
		RespondError(ctx, http.StatusInternalServerError, "delivery_failed",
			"Could not deliver your message, please try again later", nil)
		return
	}

	// best effort; the visitor already got through
	if err := h.notifier.SendContactAcknowledgement(cctx, req.Email, req.Name); err != nil {
		h.logger.WarnContext(ctx.Request.Context(), "contact acknowledgement failed",
			"error", err,
		)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Your message has been sent. We will get back to you soon!",
	})
}

func (h *ContactsHandler) ListContacts(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	contacts, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list contacts")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": contacts,
		"count": len(contacts),
	})
}

func (h *ContactsHandler) UpdateContactStatus(ctx *gin.Context) {
	var req contact.UpdateStatusRequest

	if !BindJSON(ctx, &req) {
		return
	}

	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.UpdateStatus(cctx, id, req.Status)

	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			RespondNotFound(ctx, "Contact not found")
			return
		}
		RespondInternal(ctx, "Could not update contact")
		return
	}

	ctx.JSON(http.StatusOK, c)
}

func (h *ContactsHandler) DeleteContact(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			RespondNotFound(ctx, "Contact not found")
			return
		}
		RespondInternal(ctx, "Could not delete contact")
		return
	}

	ctx.Status(http.StatusNoContent)
}
