package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"rentease/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db         *gorm.DB
	activities *ActivityService
}

// UserStats 用户统计信息
type UserStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Pending   int64 `json:"pending"`
	Suspended int64 `json:"suspended"`
	Admins    int64 `json:"admins"`
	Landlords int64 `json:"landlords"`
	Tenants   int64 `json:"tenants"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:         db,
		activities: NewActivityService(db),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建用户（管理端），状态默认激活
func (s *UserService) Create(email, password, name string, phone *string, role string) (*models.User, error) {
	if err := s.ValidateCreateParams(email, password, name); err != nil {
		return nil, err
	}
	if !s.IsValidRole(role) {
		return nil, fmt.Errorf("角色只能是admin、landlord或tenant")
	}

	// 检查邮箱是否重复（不区分大小写）
	if s.emailExists(email, 0) {
		return nil, fmt.Errorf("邮箱已存在")
	}

	user := &models.User{
		Email:  strings.ToLower(email),
		Name:   name,
		Phone:  phone,
		Role:   role,
		Status: models.UserStatusActive,
	}

	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("密码加密失败: %v", err)
	}

	err := s.db.Create(user).Error
	return user, err
}

// Register 用户自助注册
// 角色默认tenant，显式请求landlord时允许，admin不可自助注册；
// 注册即激活，无需验证步骤
func (s *UserService) Register(email, password, name string, phone *string, role string) (*models.User, error) {
	if err := s.ValidateCreateParams(email, password, name); err != nil {
		return nil, err
	}

	if role != models.RoleLandlord {
		role = models.RoleTenant
	}

	if s.emailExists(email, 0) {
		return nil, fmt.Errorf("邮箱已存在")
	}

	user := &models.User{
		Email:  strings.ToLower(email),
		Name:   name,
		Phone:  phone,
		Role:   role,
		Status: models.UserStatusActive,
	}

	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("密码加密失败: %v", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	s.activities.Log(models.ActivityTypeUserRegistered, user.ID,
		fmt.Sprintf("用户 %s 注册成功", user.Name),
		map[string]interface{}{"email": user.Email, "role": user.Role})

	return user, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	return &user, err
}

// GetByEmail 根据邮箱获取用户（不区分大小写）
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	return &user, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *UserService) GetWithFiltersAndPage(role, status, keyword string, page, pageSize int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := s.db.Model(&models.User{})

	if role != "" {
		query = query.Where("role = ?", role)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		searchPattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("email LIKE ? OR name LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update 更新用户
func (s *UserService) Update(id uint, name, email string, phone *string, status string) (*models.User, error) {
	if err := s.ValidateUpdateParams(name, email, status); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}

	// 如果邮箱变更，检查是否重复
	if !strings.EqualFold(user.Email, email) && s.emailExists(email, id) {
		return nil, fmt.Errorf("邮箱已存在")
	}

	user.Name = name
	user.Email = strings.ToLower(email)
	user.Phone = phone
	user.Status = status

	err = s.db.Save(&user).Error
	return &user, err
}

// Delete 删除用户，ID不存在时也视为成功
func (s *UserService) Delete(id uint) error {
	return s.db.Delete(&models.User{}, id).Error
}

// ========== 快捷操作方法 ==========

// Activate 激活用户
func (s *UserService) Activate(id uint) (*models.User, error) {
	return s.setStatus(id, models.UserStatusActive)
}

// Suspend 停用用户
func (s *UserService) Suspend(id uint) (*models.User, error) {
	return s.setStatus(id, models.UserStatusSuspended)
}

func (s *UserService) setStatus(id uint, status string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}

	user.Status = status
	err = s.db.Save(&user).Error
	return &user, err
}

// UpdateLastLogin 更新最后登录时间
func (s *UserService) UpdateLastLogin(id uint) error {
	now := time.Now()
	return s.db.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", now).Error
}

// ========== 统计相关方法 ==========

// GetStats 获取用户统计
func (s *UserService) GetStats() (*UserStats, error) {
	stats := &UserStats{}

	s.db.Model(&models.User{}).Count(&stats.Total)

	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&stats.Active)
	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusPending).Count(&stats.Pending)
	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusSuspended).Count(&stats.Suspended)

	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&stats.Admins)
	s.db.Model(&models.User{}).Where("role = ?", models.RoleLandlord).Count(&stats.Landlords)
	s.db.Model(&models.User{}).Where("role = ?", models.RoleTenant).Count(&stats.Tenants)

	return stats, nil
}

// ========== 业务逻辑方法 ==========

// IsActive 检查用户是否激活
func (s *UserService) IsActive(user *models.User) bool {
	return user.Status == models.UserStatusActive
}

// IsValidStatus 检查用户状态是否有效
func (s *UserService) IsValidStatus(status string) bool {
	switch status {
	case models.UserStatusActive, models.UserStatusPending, models.UserStatusSuspended:
		return true
	default:
		return false
	}
}

// IsValidRole 检查角色是否有效
func (s *UserService) IsValidRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleLandlord, models.RoleTenant:
		return true
	default:
		return false
	}
}

// emailExists 检查邮箱是否被其他用户占用（不区分大小写）
func (s *UserService) emailExists(email string, excludeID uint) bool {
	var count int64
	query := s.db.Model(&models.User{}).Where("LOWER(email) = ?", strings.ToLower(email))
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	query.Count(&count)
	return count > 0
}

// ========== 验证相关方法 ==========

// ValidateEmail 验证邮箱
func (s *UserService) ValidateEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".") && len(email) >= 5 && len(email) <= 100
}

// ValidatePassword 验证密码
func (s *UserService) ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("密码长度不能少于6位")
	}
	if len(password) > 50 {
		return fmt.Errorf("密码长度不能超过50位")
	}
	return nil
}

// ValidateName 验证姓名
func (s *UserService) ValidateName(name string) bool {
	runeCount := utf8.RuneCountInString(name)
	return runeCount >= 2 && runeCount <= 50
}

// ValidateCreateParams 验证创建用户的参数
func (s *UserService) ValidateCreateParams(email, password, name string) error {
	if !s.ValidateEmail(email) {
		return fmt.Errorf("邮箱格式不正确")
	}
	if err := s.ValidatePassword(password); err != nil {
		return err
	}
	if !s.ValidateName(name) {
		return fmt.Errorf("姓名长度必须在2-50个字符之间")
	}
	return nil
}

// ValidateUpdateParams 验证更新用户的参数
func (s *UserService) ValidateUpdateParams(name, email, status string) error {
	if !s.ValidateName(name) {
		return fmt.Errorf("姓名长度必须在2-50个字符之间")
	}
	if !s.ValidateEmail(email) {
		return fmt.Errorf("邮箱格式不正确")
	}
	if !s.IsValidStatus(status) {
		return fmt.Errorf("状态只能是active、pending或suspended")
	}
	return nil
}
