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

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type CreatePaymentRequest struct {
	TenantID uint      `json:"tenant_id" binding:"required"`
	LeaseID  uint      `json:"lease_id" binding:"required"`
	Amount   float64   `json:"amount" binding:"required"`
	DueDate  time.Time `json:"due_date" binding:"required"`
	Notes    string    `json:"notes"`
}

type RecordPaymentRequest struct {
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

// Create 创建账单
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	payment, err := h.paymentService.Create(req.TenantID, req.LeaseID, req.Amount, req.DueDate, req.Notes)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, payment)
}

// List 账单列表（分页+筛选）
// 租客只能看到自己的账单
func (h *PaymentHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	status := c.Query("status")

	var tenantID, leaseID *uint
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

	if idStr := c.Query("lease_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "租约ID格式错误")
			return
		}
		uid := uint(id)
		leaseID = &uid
	}

	payments, total, err := h.paymentService.GetWithFiltersAndPage(tenantID, leaseID, status,
		params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "获取账单列表失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, payments, pageInfo)
}

// ListByTenant 租客的账单列表
func (h *PaymentHandler) ListByTenant(c *gin.Context) {
	tenantID, err := strconv.ParseUint(c.Param("tenant_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "租客ID格式错误")
		return
	}

	payments, err := h.paymentService.GetByTenant(uint(tenantID))
	if err != nil {
		response.ServerError(c, "获取账单列表失败")
		return
	}

	response.Success(c, payments)
}

// ListByLease 租约下的账单列表
func (h *PaymentHandler) ListByLease(c *gin.Context) {
	leaseID, err := strconv.ParseUint(c.Param("lease_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "租约ID格式错误")
		return
	}

	payments, err := h.paymentService.GetByLease(uint(leaseID))
	if err != nil {
		response.ServerError(c, "获取账单列表失败")
		return
	}

	response.Success(c, payments)
}

// GetByID 账单详情
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "账单ID格式错误")
		return
	}

	payment, err := h.paymentService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "账单不存在")
			return
		}
		response.ServerError(c, "获取账单失败")
		return
	}

	response.Success(c, payment)
}

// Record 登记收款
func (h *PaymentHandler) Record(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "账单ID格式错误")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	payment, err := h.paymentService.Record(uint(id), req.Method, req.Reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "账单不存在")
			return
		}
		response.ServerError(c, "登记收款失败")
		return
	}

	response.SuccessWithMessage(c, "收款登记成功", payment)
}

// RunOverdueScan 手动触发一次逾期扫描（管理端）
func (h *PaymentHandler) RunOverdueScan(c *gin.Context) {
	scheduler := services.GetGlobalPaymentScheduler()
	if scheduler == nil {
		response.ServerError(c, "调度器未启动")
		return
	}

	count, err := scheduler.RunNow()
	if err != nil {
		response.ServerError(c, "逾期扫描失败")
		return
	}

	response.SuccessWithMessage(c, "逾期扫描完成", gin.H{"marked": count})
}

// Delete 删除账单
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "账单ID格式错误")
		return
	}

	if err := h.paymentService.Delete(uint(id)); err != nil {
		response.ServerError(c, "删除账单失败")
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
