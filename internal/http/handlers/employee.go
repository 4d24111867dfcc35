package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/http/response"
	"github.com/rhcore/rhcore-backend/internal/services"
)

type EmployeeHandler struct {
	employees services.EmployeeService
}

func NewEmployeeHandler(employees services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

func (h *EmployeeHandler) List(c *gin.Context) {
	page, pageSize, search := pageParams(c)
	result, err := h.employees.List(c.Request.Context(), page, pageSize, search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.employees.Get(c.Request.Context(), c.Param("registration"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, employee)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var input services.CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	employee, err := h.employees.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/employees/"+employee.Registration, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var input services.UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	employee, err := h.employees.Update(c.Request.Context(), c.Param("registration"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.employees.Delete(c.Request.Context(), c.Param("registration")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *EmployeeHandler) BatchDelete(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	result, err := h.employees.BatchDelete(c.Request.Context(), req.Keys)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
