package router

import (
	"time"

	"rentease/internal/database"
	"rentease/internal/handlers"
	"rentease/internal/middleware"
	"rentease/internal/models"
	"rentease/internal/services"
	"rentease/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {

	auth := middleware.NewAuthMiddleware()
	db := database.GetDB()

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 认证路由（登录注册无需认证）
		authHandler := handlers.NewAuthHandler(services.NewUserService(db))
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/reset-password", authHandler.ResetPassword)

			// 🔒 获取当前用户完整信息
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 🔐 用户路由（管理端）
		userHandler := handlers.NewUserHandler(services.NewUserService(db))
		users := api.Group("/users")
		{
			users.POST("", auth.RequireLogin(), auth.RequireAdmin(), userHandler.Create)
			users.GET("", auth.RequireLogin(), auth.RequireAdmin(), userHandler.List)
			users.GET("/stats", auth.RequireLogin(), auth.RequireAdmin(), userHandler.GetStats)
			users.GET("/:id", auth.RequireLogin(), auth.RequireOwnerOrAdmin(), userHandler.GetByID)
			users.PUT("/:id", auth.RequireLogin(), auth.RequireOwnerOrAdmin(), userHandler.Update)
			users.DELETE("/:id", auth.RequireLogin(), auth.RequireAdmin(), userHandler.Delete)

			// 🔒 快捷操作（仅管理员）
			users.POST("/:id/activate", auth.RequireLogin(), auth.RequireAdmin(), userHandler.Activate)
			users.POST("/:id/suspend", auth.RequireLogin(), auth.RequireAdmin(), userHandler.Suspend)
		}

		// 🔐 房产路由
		propertyHandler := handlers.NewPropertyHandler(services.NewPropertyService(db))
		properties := api.Group("/properties")
		properties.Use(auth.RequireLogin())
		{
			properties.POST("", auth.RequireRole(models.RoleLandlord), propertyHandler.Create)
			properties.GET("", propertyHandler.List)
			properties.GET("/landlord/:landlord_id", propertyHandler.ListByLandlord)
			properties.GET("/:id", propertyHandler.GetByID)
			properties.GET("/:id/units", handlers.NewUnitHandler(services.NewUnitService(db)).ListByProperty)
			properties.PUT("/:id", auth.RequireRole(models.RoleLandlord), propertyHandler.Update)
			properties.DELETE("/:id", auth.RequireRole(models.RoleLandlord), propertyHandler.Delete)
		}

		// 🔐 房源单元路由
		unitHandler := handlers.NewUnitHandler(services.NewUnitService(db))
		units := api.Group("/units")
		units.Use(auth.RequireLogin())
		{
			units.POST("", auth.RequireRole(models.RoleLandlord), unitHandler.Create)
			units.GET("", unitHandler.List)
			units.GET("/:id", unitHandler.GetByID)
			units.PUT("/:id", auth.RequireRole(models.RoleLandlord), unitHandler.Update)
			units.PUT("/:id/status", auth.RequireRole(models.RoleLandlord), unitHandler.UpdateStatus)
			units.DELETE("/:id", auth.RequireRole(models.RoleLandlord), unitHandler.Delete)
		}

		// 🔐 租房申请路由
		applicationHandler := handlers.NewApplicationHandler(services.NewApplicationService(db))
		applications := api.Group("/applications")
		applications.Use(auth.RequireLogin())
		{
			applications.POST("", auth.RequireRole(models.RoleTenant), applicationHandler.Create)
			applications.GET("", applicationHandler.List)
			applications.GET("/tenant/:tenant_id", auth.RequireRole(models.RoleLandlord), applicationHandler.ListByTenant)
			applications.GET("/unit/:unit_id", auth.RequireRole(models.RoleLandlord), applicationHandler.ListByUnit)
			applications.GET("/:id", applicationHandler.GetByID)
			applications.PUT("/:id/status", auth.RequireAdmin(), applicationHandler.UpdateStatus)
			applications.PUT("/:id/recommend", auth.RequireRole(models.RoleLandlord), applicationHandler.Recommend)
			applications.POST("/:id/withdraw", auth.RequireRole(models.RoleTenant), applicationHandler.Withdraw)
		}

		// 🔐 租约路由
		leaseHandler := handlers.NewLeaseHandler(services.NewLeaseService(db))
		leases := api.Group("/leases")
		leases.Use(auth.RequireLogin())
		{
			leases.POST("", auth.RequireRole(models.RoleLandlord), leaseHandler.Create)
			leases.GET("", leaseHandler.List)
			leases.GET("/tenant/:tenant_id", auth.RequireRole(models.RoleLandlord), leaseHandler.ListByTenant)
			leases.GET("/unit/:unit_id", auth.RequireRole(models.RoleLandlord), leaseHandler.ListByUnit)
			leases.GET("/:id", leaseHandler.GetByID)
			leases.PUT("/:id", auth.RequireRole(models.RoleLandlord), leaseHandler.Update)
			leases.POST("/:id/end", auth.RequireRole(models.RoleLandlord), leaseHandler.End)
			leases.POST("/:id/terminate", auth.RequireRole(models.RoleLandlord), leaseHandler.Terminate)
		}

		// 🔐 租金账单路由
		paymentHandler := handlers.NewPaymentHandler(services.NewPaymentService(db))
		payments := api.Group("/payments")
		payments.Use(auth.RequireLogin())
		{
			payments.POST("", auth.RequireRole(models.RoleLandlord), paymentHandler.Create)
			payments.GET("", paymentHandler.List)
			payments.GET("/tenant/:tenant_id", auth.RequireRole(models.RoleLandlord), paymentHandler.ListByTenant)
			payments.GET("/lease/:lease_id", auth.RequireRole(models.RoleLandlord), paymentHandler.ListByLease)
			payments.GET("/:id", paymentHandler.GetByID)
			payments.POST("/:id/record", auth.RequireRole(models.RoleLandlord), paymentHandler.Record)
			payments.POST("/overdue-scan", auth.RequireAdmin(), paymentHandler.RunOverdueScan)
			payments.DELETE("/:id", auth.RequireAdmin(), paymentHandler.Delete)
		}

		// 🔐 维修工单路由
		maintenanceHandler := handlers.NewMaintenanceHandler(services.NewMaintenanceService(db))
		maintenance := api.Group("/maintenance-requests")
		maintenance.Use(auth.RequireLogin())
		{
			maintenance.POST("", auth.RequireRole(models.RoleTenant), maintenanceHandler.Create)
			maintenance.GET("", maintenanceHandler.List)
			maintenance.GET("/tenant/:tenant_id", auth.RequireRole(models.RoleLandlord), maintenanceHandler.ListByTenant)
			maintenance.GET("/unit/:unit_id", auth.RequireRole(models.RoleLandlord), maintenanceHandler.ListByUnit)
			maintenance.GET("/:id", maintenanceHandler.GetByID)
			maintenance.PUT("/:id", maintenanceHandler.Update)
			maintenance.PUT("/:id/status", auth.RequireRole(models.RoleLandlord), maintenanceHandler.UpdateStatus)
			maintenance.POST("/:id/cancel", maintenanceHandler.Cancel)
			maintenance.POST("/:id/comments", maintenanceHandler.AddComment)
		}

		// 🔐 站内消息路由
		messageHandler := handlers.NewMessageHandler(services.NewMessageService(db))
		messages := api.Group("/messages")
		messages.Use(auth.RequireLogin())
		{
			messages.POST("", messageHandler.Send)
			messages.GET("/inbox", messageHandler.Inbox)
			messages.GET("/sent", messageHandler.Sent)
			messages.GET("/unread-count", messageHandler.CountUnread)
			messages.GET("/:id", messageHandler.GetByID)
			messages.POST("/:id/read", messageHandler.MarkAsRead)
			messages.DELETE("/:id", messageHandler.Delete)
		}

		// 🔐 操作流水路由（管理端）
		activityHandler := handlers.NewActivityHandler(services.NewActivityService(db))
		activities := api.Group("/activities")
		activities.Use(auth.RequireLogin())
		{
			activities.GET("", auth.RequireAdmin(), activityHandler.ListRecent)
			activities.GET("/users/:id", auth.RequireOwnerOrAdmin(), activityHandler.ListByUser)
		}

		// 🔐 仪表盘路由
		dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService(db))
		dashboard := api.Group("/dashboard")
		dashboard.Use(auth.RequireLogin())
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.GET("/admin", auth.RequireAdmin(), dashboardHandler.GetAdminStats)
			dashboard.GET("/landlord", auth.RequireRole(models.RoleLandlord), dashboardHandler.GetLandlordStats)
			dashboard.GET("/tenant", auth.RequireRole(models.RoleTenant), dashboardHandler.GetTenantStats)
		}
	}

	// WebSocket通知推送（token走查询参数）
	notificationHandler := handlers.NewNotificationHandler(services.NewUserService(db))
	router.GET("/ws/notifications", notificationHandler.Notifications)
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "RentEase",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
