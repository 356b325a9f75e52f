package repository

import (
	"errors"
	"strings"

	"github.com/siisjewelry/siis-api/internal/models"

	"gorm.io/gorm"
)

// MemberRepository 会员数据访问接口
type MemberRepository interface {
	GetByEmail(email string) (*models.Member, error)
	GetByID(id uint) (*models.Member, error)
	List(filter MemberListFilter) ([]models.Member, int64, error)
	Create(member *models.Member) error
	Update(member *models.Member) error
	Delete(id uint) error
}

// GormMemberRepository GORM 实现
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓库
func NewMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// GetByEmail 根据邮箱获取会员（邮箱不区分大小写）
func (r *GormMemberRepository) GetByEmail(email string) (*models.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var member models.Member
	if err := r.db.Where("LOWER(email) = ?", email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetByID 根据 ID 获取会员，未找到返回 nil
func (r *GormMemberRepository) GetByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// List 会员列表（最新在前）
func (r *GormMemberRepository) List(filter MemberListFilter) ([]models.Member, int64, error) {
	query := r.db.Model(&models.Member{})
	if level := strings.TrimSpace(filter.Level); level != "" {
		query = query.Where("member_level = ?", level)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(email) LIKE ? OR LOWER(display_name) LIKE ? OR LOWER(phone) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var members []models.Member
	if err := query.Order("created_at DESC, id DESC").Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// Create 创建会员
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// Update 更新会员
func (r *GormMemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// Delete 删除会员（软删除）
func (r *GormMemberRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Member{}, id).Error
}
