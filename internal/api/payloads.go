package api

import (
	"errors"
	"net/http"

	"messenger-sdk/internal/compose"
	"messenger-sdk/pkg/send"
	"messenger-sdk/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// kindRequest marks bodies that could not be decoded.
const kindRequest = "request"

type PayloadHandler struct {
	log *zap.Logger
}

func NewPayloadHandler(log *zap.Logger) *PayloadHandler {
	return &PayloadHandler{log: log}
}

// Compose turns a draft into a send API payload.
func (h *PayloadHandler) Compose(c *gin.Context) {
	var draft compose.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.badRequest(c, err)
		return
	}

	payload, err := compose.Compose(draft)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// Validate checks a raw send API payload.
func (h *PayloadHandler) Validate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.badRequest(c, err)
		return
	}

	if _, err := send.Parse(body); err != nil {
		if validation.Kind(err) == "" {
			h.badRequest(c, err)
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (h *PayloadHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PayloadHandler) badRequest(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error(), "kind": kindRequest})
		return
	}

	kind := kindRequest
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		kind = "validation"
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": kind})
}

func (h *PayloadHandler) fail(c *gin.Context, err error) {
	kind := validation.Kind(err)
	if kind == "" {
		h.log.Error("compose payload", zap.String("request_id", c.GetString(requestIDHeader)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.log.Debug("payload rejected",
		zap.String("request_id", c.GetString(requestIDHeader)),
		zap.String("kind", kind),
		zap.Error(err),
	)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": kind})
}
