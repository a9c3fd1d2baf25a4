package repository

import (
	"edupath_backend/internal/model"

	"gorm.io/gorm"
)

type LectureRepository struct {
	DB *gorm.DB
}

func NewLectureRepository(db *gorm.DB) *LectureRepository {
	return &LectureRepository{DB: db}
}

func (r *LectureRepository) Create(l *model.Lecture) error {
	return r.DB.Create(l).Error
}

func (r *LectureRepository) CreateBatch(ls []model.Lecture) error {
	return r.DB.Create(&ls).Error
}

func (r *LectureRepository) FindByID(id string) (*model.Lecture, error) {
	var l model.Lecture
	err := r.DB.Where("id = ?", id).First(&l).Error
	return &l, err
}

func (r *LectureRepository) ListByModule(moduleID string) ([]model.Lecture, error) {
	var ls []model.Lecture
	err := r.DB.Where("module_id = ?", moduleID).Order("created_at asc").Find(&ls).Error
	return ls, err
}

func (r *LectureRepository) CountByModule(moduleID string) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Lecture{}).Where("module_id = ?", moduleID).Count(&n).Error
	return n, err
}

func (r *LectureRepository) Save(l *model.Lecture) error {
	return r.DB.Save(l).Error
}
