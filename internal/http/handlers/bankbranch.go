package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/http/response"
	"github.com/rhcore/rhcore-backend/internal/services"
)

// BankBranchHandler serves the branch sub-resource nested under a bank.
type BankBranchHandler struct {
	branches services.BankBranchService
}

func NewBankBranchHandler(branches services.BankBranchService) *BankBranchHandler {
	return &BankBranchHandler{branches: branches}
}

// GET /api/banks/:code/branches?page&pageSize&search
func (h *BankBranchHandler) List(c *gin.Context) {
	page, pageSize, search := pageParams(c)
	result, err := h.branches.List(c.Request.Context(), c.Param("code"), page, pageSize, search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GET /api/banks/:code/branches/:branch
func (h *BankBranchHandler) Get(c *gin.Context) {
	branch, err := h.branches.Get(c.Request.Context(), c.Param("code"), c.Param("branch"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, branch)
}

// POST /api/banks/:code/branches
func (h *BankBranchHandler) Create(c *gin.Context) {
	var input services.CreateBankBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	bankCode := c.Param("code")
	branch, err := h.branches.Create(c.Request.Context(), bankCode, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fmt.Sprintf("/api/banks/%s/branches/%s", bankCode, branch.Code), branch)
}

// PUT /api/banks/:code/branches/:branch
func (h *BankBranchHandler) Update(c *gin.Context) {
	var input services.UpdateBankBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	branch, err := h.branches.Update(c.Request.Context(), c.Param("code"), c.Param("branch"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, branch)
}

// DELETE /api/banks/:code/branches/:branch
func (h *BankBranchHandler) Delete(c *gin.Context) {
	if err := h.branches.Delete(c.Request.Context(), c.Param("code"), c.Param("branch")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// POST /api/banks/:code/branches/batch-delete
func (h *BankBranchHandler) BatchDelete(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	result, err := h.branches.BatchDelete(c.Request.Context(), c.Param("code"), req.Keys)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
