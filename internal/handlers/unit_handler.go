package handlers

import (
	"errors"
	"strconv"

	"rentease/internal/services"
	"rentease/pkg/pagination"
	"rentease/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UnitHandler struct {
	unitService *services.UnitService
}

func NewUnitHandler(unitService *services.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

type CreateUnitRequest struct {
	PropertyID    uint    `json:"property_id" binding:"required"`
	UnitNumber    string  `json:"unit_number" binding:"required"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	AreaSqm       float64 `json:"area_sqm"`
	RentAmount    float64 `json:"rent_amount" binding:"required"`
	DepositAmount float64 `json:"deposit_amount"`
}

type UpdateUnitRequest struct {
	UnitNumber    string  `json:"unit_number" binding:"required"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	AreaSqm       float64 `json:"area_sqm"`
	RentAmount    float64 `json:"rent_amount" binding:"required"`
	DepositAmount float64 `json:"deposit_amount"`
}

type UpdateUnitStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create 创建单元
func (h *UnitHandler) Create(c *gin.Context) {
	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	unit, err := h.unitService.Create(req.PropertyID, req.UnitNumber, req.Bedrooms, req.Bathrooms,
		req.AreaSqm, req.RentAmount, req.DepositAmount)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, unit)
}

// List 单元列表（分页+筛选）
func (h *UnitHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	status := c.Query("status")

	var propertyID *uint
	if idStr := c.Query("property_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "房产ID格式错误")
			return
		}
		uid := uint(id)
		propertyID = &uid
	}

	units, total, err := h.unitService.GetWithFiltersAndPage(propertyID, status, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "获取单元列表失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, units, pageInfo)
}

// ListByProperty 房产下的全部单元
func (h *UnitHandler) ListByProperty(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "房产ID格式错误")
		return
	}

	units, err := h.unitService.GetByProperty(uint(propertyID))
	if err != nil {
		response.ServerError(c, "获取单元列表失败")
		return
	}

	response.Success(c, units)
}

// GetByID 单元详情（含所属房产）
func (h *UnitHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "单元ID格式错误")
		return
	}

	unit, err := h.unitService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "房源单元不存在")
			return
		}
		response.ServerError(c, "获取单元失败")
		return
	}

	response.Success(c, unit)
}

// Update 更新单元
func (h *UnitHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "单元ID格式错误")
		return
	}

	var req UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	unit, err := h.unitService.Update(uint(id), req.UnitNumber, req.Bedrooms, req.Bathrooms,
		req.AreaSqm, req.RentAmount, req.DepositAmount)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "房源单元不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, unit)
}

// UpdateStatus 更新单元状态
func (h *UnitHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "单元ID格式错误")
		return
	}

	var req UpdateUnitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	unit, err := h.unitService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "房源单元不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, unit)
}

// Delete 删除单元
func (h *UnitHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "单元ID格式错误")
		return
	}

	if err := h.unitService.Delete(uint(id)); err != nil {
		response.ServerError(c, "删除单元失败")
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
