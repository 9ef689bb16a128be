package handler

import (
	"net/http"

	"expodesk_backend/internal/customers/service"
	"expodesk_backend/internal/customers/transport"
	"expodesk_backend/platform/httpkit"
	"expodesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.Search)
	rg.POST("", h.Save)
}

// Search resolves a tax id or email to a customer prefill.
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Search(c.Request.Context(), req.Query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// Save creates or updates the customer record for the current visitor.
func (h *Handler) Save(c *gin.Context) {
	var req transport.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Save(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	httpkit.JSON(c, status, resp)
}
