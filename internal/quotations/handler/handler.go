package handler

import (
	"net/http"
	"strconv"

	"expodesk_backend/internal/quotations/service"
	"expodesk_backend/internal/quotations/transport"
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
	rg.POST("", h.Create)
	rg.GET("/:id", h.Details)
	rg.POST("/:id/lines", h.AddLine)
	rg.DELETE("/lines/:lineId", h.RemoveLine)
	rg.POST("/:id/confirm", h.Confirm)
	rg.POST("/:id/note", h.Annotate)
	rg.POST("/:id/email", h.ResendEmail)
}

// Create opens a quotation for the customer bound to the flow token.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, resp)
}

// Details returns the quotation with its lines.
func (h *Handler) Details(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.svc.Details(c.Request.Context(), orderID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// AddLine adds a product line by catalog code.
func (h *Handler) AddLine(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transport.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.AddLine(c.Request.Context(), orderID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, resp)
}

// RemoveLine deletes a quotation line.
func (h *Handler) RemoveLine(c *gin.Context) {
	lineID, ok := pathID(c, "lineId")
	if !ok {
		return
	}

	orderID, err := h.svc.RemoveLine(c.Request.Context(), lineID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"quotationId": orderID, "lineId": lineID})
}

// Confirm turns the quotation into a confirmed order.
func (h *Handler) Confirm(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.svc.Confirm(c.Request.Context(), orderID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// Annotate stores the picking note and payment terms and sends the email.
func (h *Handler) Annotate(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transport.AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Annotate(c.Request.Context(), orderID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// ResendEmail re-triggers the quotation email.
func (h *Handler) ResendEmail(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.svc.ResendEmail(c.Request.Context(), orderID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func pathID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return 0, false
	}
	return id, true
}
