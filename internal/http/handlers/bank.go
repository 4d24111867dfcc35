package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/http/response"
	"github.com/rhcore/rhcore-backend/internal/services"
)

type BankHandler struct {
	banks services.BankService
}

func NewBankHandler(banks services.BankService) *BankHandler {
	return &BankHandler{banks: banks}
}

// GET /api/banks?page&pageSize&search
func (h *BankHandler) List(c *gin.Context) {
	page, pageSize, search := pageParams(c)
	result, err := h.banks.List(c.Request.Context(), page, pageSize, search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GET /api/banks/all
func (h *BankHandler) ListAll(c *gin.Context) {
	items, err := h.banks.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// GET /api/banks/:code
func (h *BankHandler) Get(c *gin.Context) {
	bank, err := h.banks.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bank)
}

// POST /api/banks
func (h *BankHandler) Create(c *gin.Context) {
	var input services.CreateBankInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	bank, err := h.banks.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/banks/"+bank.Code, bank)
}

// PUT /api/banks/:code
func (h *BankHandler) Update(c *gin.Context) {
	var input services.UpdateBankInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	bank, err := h.banks.Update(c.Request.Context(), c.Param("code"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bank)
}

// DELETE /api/banks/:code
func (h *BankHandler) Delete(c *gin.Context) {
	if err := h.banks.Delete(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// POST /api/banks/batch-delete
// A partially failed batch still responds 200 with the tally.
func (h *BankHandler) BatchDelete(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	result, err := h.banks.BatchDelete(c.Request.Context(), req.Keys)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
