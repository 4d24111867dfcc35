package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/http/response"
	"github.com/rhcore/rhcore-backend/internal/services"
)

type MunicipalityHandler struct {
	municipalities services.MunicipalityService
}

func NewMunicipalityHandler(municipalities services.MunicipalityService) *MunicipalityHandler {
	return &MunicipalityHandler{municipalities: municipalities}
}

func (h *MunicipalityHandler) List(c *gin.Context) {
	page, pageSize, search := pageParams(c)
	result, err := h.municipalities.List(c.Request.Context(), page, pageSize, search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *MunicipalityHandler) ListAll(c *gin.Context) {
	items, err := h.municipalities.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *MunicipalityHandler) Get(c *gin.Context) {
	municipality, err := h.municipalities.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, municipality)
}

func (h *MunicipalityHandler) Create(c *gin.Context) {
	var input services.CreateMunicipalityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	municipality, err := h.municipalities.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/municipalities/"+municipality.Code, municipality)
}

func (h *MunicipalityHandler) Update(c *gin.Context) {
	var input services.UpdateMunicipalityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	municipality, err := h.municipalities.Update(c.Request.Context(), c.Param("code"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, municipality)
}

func (h *MunicipalityHandler) Delete(c *gin.Context) {
	if err := h.municipalities.Delete(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *MunicipalityHandler) BatchDelete(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	result, err := h.municipalities.BatchDelete(c.Request.Context(), req.Keys)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
