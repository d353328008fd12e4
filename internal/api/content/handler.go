// Package contentapi exposes the page documents over HTTP.
package contentapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"orchestra-site/internal/app/http/middleware"
	"orchestra-site/internal/contentsync"
	"orchestra-site/internal/domain/content"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxBodyBytes bounds a PUT body; inline images make documents large.
const MaxBodyBytes = 25 << 20

// Engine is the part of contentsync.Engine the handlers call.
type Engine interface {
	Fetch(ctx context.Context, name string) (any, error)
	Save(ctx context.Context, name string, body []byte) (any, error)
}

type Handler struct {
	engine Engine
	log    *zap.SugaredLogger
}

func NewHandler(engine Engine, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{engine: engine, log: log}
}

// ------------------------------
// GET /api/content/:type
func (h *Handler) Get(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := h.engine.Fetch(c.Request.Context(), name)
		if err != nil {
			h.internalError(c, name, "Failed to load content", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"content": doc})
	}
}

// ------------------------------
// PUT /api/content/:type
func (h *Handler) Put(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}

		doc, err := h.engine.Save(c.Request.Context(), name, body)
		if err != nil {
			var verr *contentsync.ValidationError
			switch {
			case errors.As(err, &verr):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": verr.Fields})
			case errors.Is(err, contentsync.ErrVersionConflict):
				c.JSON(http.StatusConflict, gin.H{"error": "This page was changed by someone else. Reload it and apply your edits again."})
			default:
				h.internalError(c, name, "Failed to save content", err)
			}
			return
		}

		h.log.Infow("content updated", "type", name, "user_id", c.GetUint("user_id"), "request_id", middleware.GetRequestID(c))
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   name + " content saved",
			"contentId": content.SingletonID,
			"version":   contentsync.VersionOf(doc),
			"content":   doc,
		})
	}
}

// internalError logs err and answers with a generic message; store detail
// never reaches the client.
func (h *Handler) internalError(c *gin.Context, name, message string, err error) {
	requestID := middleware.GetRequestID(c)
	h.log.Errorw(message, "type", name, "request_id", requestID, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     message,
		"requestId": requestID,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
