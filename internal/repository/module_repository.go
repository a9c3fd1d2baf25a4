package repository

import (
	"edupath_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(m *model.Module) error {
	return r.DB.Create(m).Error
}

func (r *ModuleRepository) FindByID(id string) (*model.Module, error) {
	var m model.Module
	err := r.DB.Where("id = ?", id).First(&m).Error
	return &m, err
}

func (r *ModuleRepository) FindByPath(pathID string) ([]model.Module, error) {
	var ms []model.Module
	err := r.DB.Where("learning_path_id = ?", pathID).Order("created_at asc").Find(&ms).Error
	return ms, err
}

func (r *ModuleRepository) Save(m *model.Module) error {
	return r.DB.Save(m).Error
}
