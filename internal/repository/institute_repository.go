package repository

import (
	"edupath_backend/internal/model"

	"gorm.io/gorm"
)

type InstituteRepository struct {
	DB *gorm.DB
}

func NewInstituteRepository(db *gorm.DB) *InstituteRepository {
	return &InstituteRepository{DB: db}
}

func (r *InstituteRepository) FindMappings(institution, batch string) ([]model.InstituteBatchLearningPath, error) {
	var ms []model.InstituteBatchLearningPath
	err := r.DB.Where("institution = ? AND batch = ?", institution, batch).
		Order("created_at asc").Find(&ms).Error
	return ms, err
}

func (r *InstituteRepository) FindMapping(institution, batch, pathID string) (*model.InstituteBatchLearningPath, error) {
	var m model.InstituteBatchLearningPath
	err := r.DB.Where("institution = ? AND batch = ? AND learning_path_id = ?", institution, batch, pathID).
		First(&m).Error
	return &m, err
}

func (r *InstituteRepository) CreateMapping(m *model.InstituteBatchLearningPath) error {
	return r.DB.Create(m).Error
}

func (r *InstituteRepository) DeleteMapping(institution, batch, pathID string) (int64, error) {
	res := r.DB.Where("institution = ? AND batch = ? AND learning_path_id = ?", institution, batch, pathID).
		Delete(&model.InstituteBatchLearningPath{})
	return res.RowsAffected, res.Error
}
