package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rentease/internal/models"
	"rentease/internal/services"
	"rentease/pkg/pagination"
	"rentease/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type LeaseHandler struct {
	leaseService *services.LeaseService
}

func NewLeaseHandler(leaseService *services.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseService: leaseService}
}

type CreateLeaseRequest struct {
	TenantID      uint      `json:"tenant_id" binding:"required"`
	UnitID        uint      `json:"unit_id" binding:"required"`
	RentAmount    float64   `json:"rent_amount" binding:"required"`
	DepositAmount float64   `json:"deposit_amount"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
}

type UpdateLeaseRequest struct {
	RentAmount    float64   `json:"rent_amount" binding:"required"`
	DepositAmount float64   `json:"deposit_amount"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
}

// Create 签订租约
func (h *LeaseHandler) Create(c *gin.Context) {
	var req CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			errorMsg := "参数验证失败"
			for _, fieldErr := range validationErr {
				switch fieldErr.Field() {
				case "TenantID":
					errorMsg = "租客ID不能为空"
				case "UnitID":
					errorMsg = "单元ID不能为空"
				case "RentAmount":
					errorMsg = "租金不能为空"
				case "StartDate", "EndDate":
					errorMsg = "起止日期不能为空"
				default:
					errorMsg = fmt.Sprintf("字段 %s 验证失败", fieldErr.Field())
				}
				break // 只返回第一个错误
			}
			response.BadRequest(c, errorMsg)
			return
		}
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	lease, err := h.leaseService.Create(req.TenantID, req.UnitID, req.RentAmount, req.DepositAmount,
		req.StartDate, req.EndDate)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, lease)
}

// List 租约列表（分页+筛选）
// 租客只能看到自己的租约
func (h *LeaseHandler) List(c *gin.Context) {
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

	leases, total, err := h.leaseService.GetWithFiltersAndPage(tenantID, unitID, status,
		params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "获取租约列表失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, leases, pageInfo)
}

// ListByTenant 租客的租约列表
func (h *LeaseHandler) ListByTenant(c *gin.Context) {
	tenantID, err := strconv.ParseUint(c.Param("tenant_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "租客ID格式错误")
		return
	}

	leases, err := h.leaseService.GetByTenant(uint(tenantID))
	if err != nil {
		response.ServerError(c, "获取租约列表失败")
		return
	}

	response.Success(c, leases)
}

// ListByUnit 单元的租约列表
func (h *LeaseHandler) ListByUnit(c *gin.Context) {
	unitID, err := strconv.ParseUint(c.Param("unit_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "单元ID格式错误")
		return
	}

	leases, err := h.leaseService.GetByUnit(uint(unitID))
	if err != nil {
		response.ServerError(c, "获取租约列表失败")
		return
	}

	response.Success(c, leases)
}

// GetByID 租约详情
func (h *LeaseHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "租约ID格式错误")
		return
	}

	lease, err := h.leaseService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "租约不存在")
			return
		}
		response.ServerError(c, "获取租约失败")
		return
	}

	response.Success(c, lease)
}

// Update 更新租约的金额与起止日期
func (h *LeaseHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "租约ID格式错误")
		return
	}

	var req UpdateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	lease, err := h.leaseService.Update(uint(id), req.RentAmount, req.DepositAmount,
		req.StartDate, req.EndDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "租约不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, lease)
}

// End 到期结束租约
func (h *LeaseHandler) End(c *gin.Context) {
	h.closeLease(c, h.leaseService.End, "租约已结束")
}

// Terminate 提前终止租约
func (h *LeaseHandler) Terminate(c *gin.Context) {
	h.closeLease(c, h.leaseService.Terminate, "租约已终止")
}

func (h *LeaseHandler) closeLease(c *gin.Context, fn func(uint) (*models.Lease, error), message string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "租约ID格式错误")
		return
	}

	lease, err := fn(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "租约不存在")
			return
		}
		if strings.Contains(err.Error(), "租约已结束") {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "操作失败")
		return
	}

	response.SuccessWithMessage(c, message, lease)
}
