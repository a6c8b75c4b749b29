package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"rentease/internal/models"
	"rentease/internal/services"
	"rentease/pkg/pagination"
	"rentease/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MaintenanceHandler struct {
	maintenanceService *services.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

type CreateMaintenanceRequest struct {
	UnitID      uint            `json:"unit_id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Priority    string          `json:"priority"`
	Photos      json.RawMessage `json:"photos"`
}

type UpdateMaintenanceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"required"`
}

type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create 提交维修工单，报修人取当前登录用户
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenantID := c.GetUint("user_id")

	request, err := h.maintenanceService.Create(tenantID, req.UnitID, req.Title, req.Description,
		req.Priority, datatypes.JSON(req.Photos))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, request)
}

// List 工单列表（分页+筛选）
// 租客只能看到自己的工单
func (h *MaintenanceHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	status := c.Query("status")
	priority := c.Query("priority")

	var tenantID, unitID *uint
	user := c.MustGet("user").(*models.User)
	if user.Role == models.RoleTenant {
		tenantID = &user.ID
	} else if idStr := c.Query("tenant_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "租客ID格式错误")
			return
		}
		uid := uint(id)
		tenantID = &uid
	}

	if idStr := c.Query("unit_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "单元ID格式错误")
			return
		}
		uid := uint(id)
		unitID = &uid
	}

	requests, total, err := h.maintenanceService.GetWithFiltersAndPage(tenantID, unitID, status, priority,
		params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "获取工单列表失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, requests, pageInfo)
}

// ListByTenant 租客的工单列表
func (h *MaintenanceHandler) ListByTenant(c *gin.Context) {
	tenantID, err := strconv.ParseUint(c.Param("tenant_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "租客ID格式错误")
		return
	}

	requests, err := h.maintenanceService.GetByTenant(uint(tenantID))
	if err != nil {
		response.ServerError(c, "获取工单列表失败")
		return
	}

	response.Success(c, requests)
}

// ListByUnit 单元的工单列表
func (h *MaintenanceHandler) ListByUnit(c *gin.Context) {
	unitID, err := strconv.ParseUint(c.Param("unit_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "单元ID格式错误")
		return
	}

	requests, err := h.maintenanceService.GetByUnit(uint(unitID))
	if err != nil {
		response.ServerError(c, "获取工单列表失败")
		return
	}

	response.Success(c, requests)
}

// GetByID 工单详情（含留言）
func (h *MaintenanceHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "工单ID格式错误")
		return
	}

	request, err := h.maintenanceService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "维修工单不存在")
			return
		}
		response.ServerError(c, "获取工单失败")
		return
	}

	response.Success(c, request)
}

// Update 更新工单的标题、描述和优先级
func (h *MaintenanceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "工单ID格式错误")
		return
	}

	var req UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	request, err := h.maintenanceService.Update(uint(id), req.Title, req.Description, req.Priority)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "维修工单不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, request)
}

// UpdateStatus 更新工单状态
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "工单ID格式错误")
		return
	}

	var req UpdateMaintenanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	request, err := h.maintenanceService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "维修工单不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, request)
}

// Cancel 取消工单
func (h *MaintenanceHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "工单ID格式错误")
		return
	}

	request, err := h.maintenanceService.Cancel(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "维修工单不存在")
			return
		}
		response.ServerError(c, "取消工单失败")
		return
	}

	response.SuccessWithMessage(c, "工单已取消", request)
}

// AddComment 在工单下留言
func (h *MaintenanceHandler) AddComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "工单ID格式错误")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	userID := c.GetUint("user_id")

	comment, err := h.maintenanceService.AddComment(uint(id), userID, req.Content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "维修工单不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, comment)
}
