package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/http/response"
	"github.com/rhcore/rhcore-backend/internal/services"
)

type TradeUnionHandler struct {
	unions services.TradeUnionService
}

func NewTradeUnionHandler(unions services.TradeUnionService) *TradeUnionHandler {
	return &TradeUnionHandler{unions: unions}
}

func (h *TradeUnionHandler) List(c *gin.Context) {
	page, pageSize, search := pageParams(c)
	result, err := h.unions.List(c.Request.Context(), page, pageSize, search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *TradeUnionHandler) ListAll(c *gin.Context) {
	items, err := h.unions.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *TradeUnionHandler) Get(c *gin.Context) {
	union, err := h.unions.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, union)
}

func (h *TradeUnionHandler) Create(c *gin.Context) {
	var input services.CreateTradeUnionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	union, err := h.unions.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/trade-unions/"+union.Code, union)
}

func (h *TradeUnionHandler) Update(c *gin.Context) {
	var input services.UpdateTradeUnionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	union, err := h.unions.Update(c.Request.Context(), c.Param("code"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, union)
}

func (h *TradeUnionHandler) Delete(c *gin.Context) {
	if err := h.unions.Delete(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *TradeUnionHandler) BatchDelete(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	result, err := h.unions.BatchDelete(c.Request.Context(), req.Keys)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
