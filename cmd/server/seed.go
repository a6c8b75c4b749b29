package main

import (
	"fmt"

	"rentease/internal/database"
	"rentease/internal/models"
	"rentease/pkg/logger"

	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	// 1. 创建默认管理员
	if err := createDefaultAdmin(db); err != nil {
		return fmt.Errorf("创建默认管理员失败: %v", err)
	}

	// 2. 创建演示房东与房产
	if err := createDemoLandlord(db); err != nil {
		return fmt.Errorf("创建演示房东失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultAdmin 创建默认管理员用户
func createDefaultAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("管理员已存在，跳过创建")
		return nil
	}

	admin := &models.User{
		Email:  "admin@rentease.local",
		Name:   "系统管理员",
		Role:   models.RoleAdmin,
		Status: models.UserStatusActive,
	}

	if err := admin.SetPassword("Admin@123"); err != nil {
		return err
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Info("默认管理员创建成功: admin@rentease.local")
	return nil
}

// createDemoLandlord 创建演示房东及其名下的房产和单元
// 仅在库里还没有任何房东时执行，方便本地联调
func createDemoLandlord(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleLandlord).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("房东已存在，跳过演示数据创建")
		return nil
	}

	landlord := &models.User{
		Email:  "landlord@rentease.local",
		Name:   "演示房东",
		Role:   models.RoleLandlord,
		Status: models.UserStatusActive,
	}

	if err := landlord.SetPassword("Landlord@123"); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(landlord).Error; err != nil {
			return err
		}

		property := &models.Property{
			LandlordID:  landlord.ID,
			Name:        "阳光花园",
			Address:     "示例路100号",
			City:        "上海",
			Description: "演示用房产",
			Status:      models.PropertyStatusActive,
		}
		if err := tx.Create(property).Error; err != nil {
			return err
		}

		units := []*models.Unit{
			{PropertyID: property.ID, UnitNumber: "101", Bedrooms: 2, Bathrooms: 1, AreaSqm: 78, Status: models.UnitStatusAvailable, RentAmount: 5200, DepositAmount: 10400},
			{PropertyID: property.ID, UnitNumber: "102", Bedrooms: 1, Bathrooms: 1, AreaSqm: 52, Status: models.UnitStatusAvailable, RentAmount: 3800, DepositAmount: 7600},
		}
		for _, unit := range units {
			if err := tx.Create(unit).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(property).Update("total_units", len(units)).Error; err != nil {
			return err
		}

		logger.GetLogger().Info("演示房东与房产创建成功: landlord@rentease.local")
		return nil
	})
}
