package handlers

import (
	"strconv"

	"rentease/internal/services"
	"rentease/pkg/pagination"
	"rentease/pkg/response"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ListRecent 最近操作流水（管理端）
func (h *ActivityHandler) ListRecent(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	activities, total, err := h.activityService.GetRecentWithPage(params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "获取操作记录失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, activities, pageInfo)
}

// ListByUser 指定用户的操作流水
func (h *ActivityHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "用户ID格式错误")
		return
	}

	params := pagination.ParsePageParams(c)

	activities, total, err := h.activityService.GetByUserWithPage(uint(userID), params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "获取操作记录失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, activities, pageInfo)
}
