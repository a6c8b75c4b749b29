package handlers

import (
	"rentease/internal/models"
	"rentease/internal/services"
	"rentease/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetAdminStats 平台全量统计
func (h *DashboardHandler) GetAdminStats(c *gin.Context) {
	stats, err := h.dashboardService.GetAdminStats()
	if err != nil {
		response.ServerError(c, "获取统计失败")
		return
	}
	response.Success(c, stats)
}

// GetLandlordStats 当前房东名下资产的统计
func (h *DashboardHandler) GetLandlordStats(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	stats, err := h.dashboardService.GetLandlordStats(user.ID)
	if err != nil {
		response.ServerError(c, "获取统计失败")
		return
	}
	response.Success(c, stats)
}

// GetTenantStats 当前租客的个人统计
func (h *DashboardHandler) GetTenantStats(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	stats, err := h.dashboardService.GetTenantStats(user.ID)
	if err != nil {
		response.ServerError(c, "获取统计失败")
		return
	}
	response.Success(c, stats)
}

// GetStats 按当前用户角色返回对应口径的统计
func (h *DashboardHandler) GetStats(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	switch user.Role {
	case models.RoleAdmin:
		stats, err := h.dashboardService.GetAdminStats()
		if err != nil {
			response.ServerError(c, "获取统计失败")
			return
		}
		response.Success(c, stats)

	case models.RoleLandlord:
		stats, err := h.dashboardService.GetLandlordStats(user.ID)
		if err != nil {
			response.ServerError(c, "获取统计失败")
			return
		}
		response.Success(c, stats)

	default:
		stats, err := h.dashboardService.GetTenantStats(user.ID)
		if err != nil {
			response.ServerError(c, "获取统计失败")
			return
		}
		response.Success(c, stats)
	}
}
