package repository

import (
	"edupath_backend/internal/model"

	"gorm.io/gorm"
)

// ProgressRepository 进度事实行的读取入口
// 写入走各服务的事务闭包，保证三级汇总同生同灭
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) GetLectureProgress(userID, lectureID string) (*model.LectureProgress, error) {
	var p model.LectureProgress
	err := r.DB.Where("user_id = ? AND lecture_id = ?", userID, lectureID).First(&p).Error
	return &p, err
}

func (r *ProgressRepository) LectureProgressMap(userID string, lectureIDs []string) (map[string]model.LectureProgress, error) {
	var ps []model.LectureProgress
	if len(lectureIDs) == 0 {
		return map[string]model.LectureProgress{}, nil
	}
	err := r.DB.Where("user_id = ? AND lecture_id IN ?", userID, lectureIDs).Find(&ps).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.LectureProgress, len(ps))
	for _, p := range ps {
		out[p.LectureID] = p
	}
	return out, nil
}

func (r *ProgressRepository) ModuleProgressMap(userID string, moduleIDs []string) (map[string]model.ModuleProgress, error) {
	var ps []model.ModuleProgress
	if len(moduleIDs) == 0 {
		return map[string]model.ModuleProgress{}, nil
	}
	err := r.DB.Where("user_id = ? AND module_id IN ?", userID, moduleIDs).Find(&ps).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.ModuleProgress, len(ps))
	for _, p := range ps {
		out[p.ModuleID] = p
	}
	return out, nil
}

func (r *ProgressRepository) GetPathProgress(userID, pathID string) (*model.LearningPathProgress, error) {
	var p model.LearningPathProgress
	err := r.DB.Where("user_id = ? AND learning_path_id = ?", userID, pathID).First(&p).Error
	return &p, err
}

func (r *ProgressRepository) PathProgressMap(userID string, pathIDs []string) (map[string]model.LearningPathProgress, error) {
	var ps []model.LearningPathProgress
	if len(pathIDs) == 0 {
		return map[string]model.LearningPathProgress{}, nil
	}
	err := r.DB.Where("user_id = ? AND learning_path_id IN ?", userID, pathIDs).Find(&ps).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.LearningPathProgress, len(ps))
	for _, p := range ps {
		out[p.LearningPathID] = p
	}
	return out, nil
}

func (r *ProgressRepository) CompletedPathProgresses(userID string, pathIDs []string) ([]model.LearningPathProgress, error) {
	var ps []model.LearningPathProgress
	if len(pathIDs) == 0 {
		return ps, nil
	}
	err := r.DB.Where("user_id = ? AND learning_path_id IN ? AND is_completed = ?", userID, pathIDs, true).
		Order("completed_at asc").Find(&ps).Error
	return ps, err
}

func (r *ProgressRepository) AssignmentAttemptMap(userID string, assignmentIDs []string) (map[string]model.AssignmentAttempt, error) {
	var as []model.AssignmentAttempt
	if len(assignmentIDs) == 0 {
		return map[string]model.AssignmentAttempt{}, nil
	}
	err := r.DB.Where("user_id = ? AND assignment_id IN ?", userID, assignmentIDs).Find(&as).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.AssignmentAttempt, len(as))
	for _, a := range as {
		out[a.AssignmentID] = a
	}
	return out, nil
}

// LatestAssessmentAttempt 取最大 attempt_number 的一次
func (r *ProgressRepository) LatestAssessmentAttempt(userID, assessmentID string) (*model.AssessmentAttempt, error) {
	var a model.AssessmentAttempt
	err := r.DB.Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Order("attempt_number desc").First(&a).Error
	return &a, err
}
