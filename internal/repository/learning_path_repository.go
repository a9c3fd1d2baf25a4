package repository

import (
	"edupath_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) Create(path *model.LearningPath) error {
	return r.DB.Create(path).Error
}

// FindByID 仅路径本体，不带关联
func (r *LearningPathRepository) FindByID(id string) (*model.LearningPath, error) {
	var p model.LearningPath
	err := r.DB.Where("id = ?", id).First(&p).Error
	return &p, err
}

// FindDetailByID 路径及其全部结构关联（模块、讲座、作业、测评）
func (r *LearningPathRepository) FindDetailByID(id string) (*model.LearningPath, error) {
	var p model.LearningPath
	err := r.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("modules.created_at asc")
		}).
		Preload("Modules.Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Order("lectures.created_at asc")
		}).
		Preload("Modules.Assignment").
		Preload("Assessment").
		Where("id = ?", id).
		First(&p).Error
	return &p, err
}

func (r *LearningPathRepository) FindByIDs(ids []string) ([]model.LearningPath, error) {
	var ps []model.LearningPath
	err := r.DB.Where("id IN ?", ids).Order("created_at asc").Find(&ps).Error
	return ps, err
}

func (r *LearningPathRepository) ListAll() ([]model.LearningPath, error) {
	var ps []model.LearningPath
	err := r.DB.Order("created_at asc").Find(&ps).Error
	return ps, err
}

func (r *LearningPathRepository) Save(path *model.LearningPath) error {
	return r.DB.Save(path).Error
}
