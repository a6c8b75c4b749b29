package handlers

import (
	"errors"
	"strconv"
	"time"

	"rentease/internal/models"
	"rentease/internal/services"
	"rentease/pkg/pagination"
	"rentease/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

type CreateApplicationRequest struct {
	UnitID     uint       `json:"unit_id" binding:"required"`
	MoveInDate *time.Time `json:"move_in_date"`
	Message    string     `json:"message"`
}

type UpdateApplicationStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"admin_notes"`
}

type RecommendRequest struct {
	Recommendation string `json:"recommendation" binding:"required"`
}

// Create 提交租房申请，申请人取当前登录用户
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenantID := c.GetUint("user_id")

	application, err := h.applicationService.Create(tenantID, req.UnitID, req.MoveInDate, req.Message)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, application)
}

// List 申请列表（分页+筛选）
// 租客只能看到自己的申请
func (h *ApplicationHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	status := c.Query("status")

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

	applications, total, err := h.applicationService.GetWithFiltersAndPage(tenantID, unitID, status,
		params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "获取申请列表失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, applications, pageInfo)
}

// ListByTenant 租客的申请列表
func (h *ApplicationHandler) ListByTenant(c *gin.Context) {
	tenantID, err := strconv.ParseUint(c.Param("tenant_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "租客ID格式错误")
		return
	}

	applications, err := h.applicationService.GetByTenant(uint(tenantID))
	if err != nil {
		response.ServerError(c, "获取申请列表失败")
		return
	}

	response.Success(c, applications)
}

// ListByUnit 单元收到的申请列表
func (h *ApplicationHandler) ListByUnit(c *gin.Context) {
	unitID, err := strconv.ParseUint(c.Param("unit_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "单元ID格式错误")
		return
	}

	applications, err := h.applicationService.GetByUnit(uint(unitID))
	if err != nil {
		response.ServerError(c, "获取申请列表失败")
		return
	}

	response.Success(c, applications)
}

// GetByID 申请详情
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "申请ID格式错误")
		return
	}

	application, err := h.applicationService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "申请不存在")
			return
		}
		response.ServerError(c, "获取申请失败")
		return
	}

	response.Success(c, application)
}

// UpdateStatus 审批申请（管理端）
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "申请ID格式错误")
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	application, err := h.applicationService.UpdateStatus(uint(id), req.Status, req.AdminNotes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "申请不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, application)
}

// Recommend 房东填写推荐意见
func (h *ApplicationHandler) Recommend(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "申请ID格式错误")
		return
	}

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	application, err := h.applicationService.Recommend(uint(id), req.Recommendation)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "申请不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, application)
}

// Withdraw 租客撤回申请
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "申请ID格式错误")
		return
	}

	tenantID := c.GetUint("user_id")

	application, err := h.applicationService.Withdraw(uint(id), tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "申请不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "撤回成功", application)
}
