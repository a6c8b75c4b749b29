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

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

type CreatePropertyRequest struct {
	LandlordID  uint            `json:"landlord_id"`
	Name        string          `json:"name" binding:"required"`
	Address     string          `json:"address" binding:"required"`
	City        string          `json:"city"`
	Description string          `json:"description"`
	Amenities   json.RawMessage `json:"amenities"`
}

type UpdatePropertyRequest struct {
	Name        string          `json:"name" binding:"required"`
	Address     string          `json:"address" binding:"required"`
	City        string          `json:"city"`
	Description string          `json:"description"`
	Status      string          `json:"status" binding:"required"`
	Amenities   json.RawMessage `json:"amenities"`
}

// Create 创建房产
// 房东只能以自己为业主创建，管理员可指定landlord_id
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user := c.MustGet("user").(*models.User)
	landlordID := req.LandlordID
	if user.Role != models.RoleAdmin || landlordID == 0 {
		landlordID = user.ID
	}

	property, err := h.propertyService.Create(landlordID, req.Name, req.Address, req.City,
		req.Description, datatypes.JSON(req.Amenities))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, property)
}

// List 房产列表（分页+筛选）
// 房东默认只看自己的，管理员可用landlord_id筛选
func (h *PropertyHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	status := c.Query("status")
	keyword := c.Query("keyword")

	var landlordID *uint
	user := c.MustGet("user").(*models.User)
	if user.Role == models.RoleLandlord {
		landlordID = &user.ID
	} else if idStr := c.Query("landlord_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "房东ID格式错误")
			return
		}
		uid := uint(id)
		landlordID = &uid
	}

	properties, total, err := h.propertyService.GetWithFiltersAndPage(landlordID, status, keyword,
		params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "获取房产列表失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, properties, pageInfo)
}

// ListByLandlord 房东名下的房产列表
func (h *PropertyHandler) ListByLandlord(c *gin.Context) {
	landlordID, err := strconv.ParseUint(c.Param("landlord_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "房东ID格式错误")
		return
	}

	properties, err := h.propertyService.GetByLandlord(uint(landlordID))
	if err != nil {
		response.ServerError(c, "获取房产列表失败")
		return
	}

	response.Success(c, properties)
}

// GetByID 房产详情（含单元列表）
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "房产ID格式错误")
		return
	}

	property, err := h.propertyService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "房产不存在")
			return
		}
		response.ServerError(c, "获取房产失败")
		return
	}

	response.Success(c, property)
}

// Update 更新房产
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "房产ID格式错误")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	property, err := h.propertyService.Update(uint(id), req.Name, req.Address, req.City,
		req.Description, req.Status, datatypes.JSON(req.Amenities))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "房产不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, property)
}

// Delete 删除房产
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "房产ID格式错误")
		return
	}

	if err := h.propertyService.Delete(uint(id)); err != nil {
		response.ServerError(c, "删除房产失败")
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
