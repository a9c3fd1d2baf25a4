package service

import (
	"edupath_backend/internal/model"
	"edupath_backend/internal/repository"
	"edupath_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ProgressService 负责叶子事实翻转与两级汇总的重算
// 三张汇总表的写入全部在同一事务内完成，崩溃不会留下半套状态
type ProgressService struct {
	PathRepo     *repository.LearningPathRepository
	LectureRepo  *repository.LectureRepository
	ProgressRepo *repository.ProgressRepository
	DB           *gorm.DB
}

func NewProgressService(pathRepo *repository.LearningPathRepository, lectureRepo *repository.LectureRepository, progressRepo *repository.ProgressRepository, db *gorm.DB) *ProgressService {
	return &ProgressService{
		PathRepo:     pathRepo,
		LectureRepo:  lectureRepo,
		ProgressRepo: progressRepo,
		DB:           db,
	}
}

type ToggleResult struct {
	LectureID      string     `json:"lectureId"`
	IsViewed       bool       `json:"isViewed"`
	CompletedAt    *time.Time `json:"completedAt"`
	ModuleID       string     `json:"moduleId"`
	ModuleProgress float64    `json:"moduleProgress"`
	LearningPathID string     `json:"learningPathId"`
	PathProgress   float64    `json:"pathProgress"`
}

// ToggleLecture 翻转观看状态并重算所属模块、所属路径的进度
func (s *ProgressService) ToggleLecture(userID, lectureID string) (*ToggleResult, error) {
	var result ToggleResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var lecture model.Lecture
		if err := tx.Where("id = ?", lectureID).First(&lecture).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrLectureNotFound
			}
			return err
		}

		var module model.Module
		if err := tx.Where("id = ?", lecture.ModuleID).First(&module).Error; err != nil {
			return err
		}

		// 1. 翻转叶子事实
		var lp model.LectureProgress
		err := tx.Where("user_id = ? AND lecture_id = ?", userID, lectureID).First(&lp).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			now := time.Now()
			lp = model.LectureProgress{
				UserID:      userID,
				LectureID:   lectureID,
				IsViewed:    true,
				CompletedAt: &now,
			}
			if err := tx.Create(&lp).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			lp.IsViewed = !lp.IsViewed
			if lp.IsViewed {
				now := time.Now()
				lp.CompletedAt = &now
			} else {
				lp.CompletedAt = nil
			}
			if err := tx.Save(&lp).Error; err != nil {
				return err
			}
		}

		// 2. 重算模块进度：已观看 / 总讲座数
		moduleProgress, err := recomputeModuleProgress(tx, userID, module.ID)
		if err != nil {
			return err
		}

		// 3. 重算路径进度：各模块进度的算术平均
		pathProgress, err := recomputePathProgress(tx, userID, module.LearningPathID)
		if err != nil {
			return err
		}

		result = ToggleResult{
			LectureID:      lectureID,
			IsViewed:       lp.IsViewed,
			CompletedAt:    lp.CompletedAt,
			ModuleID:       module.ID,
			ModuleProgress: moduleProgress,
			LearningPathID: module.LearningPathID,
			PathProgress:   pathProgress,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func recomputeModuleProgress(tx *gorm.DB, userID, moduleID string) (float64, error) {
	var total int64
	if err := tx.Model(&model.Lecture{}).Where("module_id = ?", moduleID).Count(&total).Error; err != nil {
		return 0, err
	}

	var viewed int64
	if total > 0 {
		err := tx.Model(&model.LectureProgress{}).
			Where("user_id = ? AND is_viewed = ? AND lecture_id IN (?)",
				userID, true,
				tx.Session(&gorm.Session{NewDB: true}).Model(&model.Lecture{}).Select("id").Where("module_id = ?", moduleID),
			).
			Count(&viewed).Error
		if err != nil {
			return 0, err
		}
	}

	progress := 0.0
	if total > 0 {
		progress = 100 * float64(viewed) / float64(total)
	}

	var mp model.ModuleProgress
	err := tx.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&mp).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		mp = model.ModuleProgress{
			UserID:      userID,
			ModuleID:    moduleID,
			Progress:    progress,
			IsCompleted: progress >= 100,
		}
		if err := tx.Create(&mp).Error; err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	default:
		mp.Progress = progress
		mp.IsCompleted = progress >= 100
		if err := tx.Save(&mp).Error; err != nil {
			return 0, err
		}
	}
	return progress, nil
}

func recomputePathProgress(tx *gorm.DB, userID, pathID string) (float64, error) {
	var modules []model.Module
	if err := tx.Where("learning_path_id = ?", pathID).Find(&modules).Error; err != nil {
		return 0, err
	}

	// 没有进度行的模块按 0 参与平均
	progress := 0.0
	if len(modules) > 0 {
		ids := make([]string, 0, len(modules))
		for _, m := range modules {
			ids = append(ids, m.ID)
		}
		var mps []model.ModuleProgress
		if err := tx.Where("user_id = ? AND module_id IN ?", userID, ids).Find(&mps).Error; err != nil {
			return 0, err
		}
		sum := 0.0
		for _, mp := range mps {
			sum += mp.Progress
		}
		progress = sum / float64(len(modules))
	}

	var pp model.LearningPathProgress
	err := tx.Where("user_id = ? AND learning_path_id = ?", userID, pathID).First(&pp).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pp = model.LearningPathProgress{
			UserID:         userID,
			LearningPathID: pathID,
			Progress:       progress,
		}
		if err := tx.Create(&pp).Error; err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	default:
		pp.Progress = progress
		if err := tx.Save(&pp).Error; err != nil {
			return 0, err
		}
	}
	return progress, nil
}

// Enroll 显式播种零状态进度行，读取端不再做 get-or-create
// 幂等：已有行保持不动
func (s *ProgressService) Enroll(userID, pathID string) error {
	path, err := s.PathRepo.FindDetailByID(pathID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLearningPathNotFound
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		pp := model.LearningPathProgress{UserID: userID, LearningPathID: pathID}
		if err := tx.Where("user_id = ? AND learning_path_id = ?", userID, pathID).
			FirstOrCreate(&pp, pp).Error; err != nil {
			return err
		}

		for _, m := range path.Modules {
			mp := model.ModuleProgress{UserID: userID, ModuleID: m.ID}
			if err := tx.Where("user_id = ? AND module_id = ?", userID, m.ID).
				FirstOrCreate(&mp, mp).Error; err != nil {
				return err
			}

			for _, l := range m.Lectures {
				lp := model.LectureProgress{UserID: userID, LectureID: l.ID}
				if err := tx.Where("user_id = ? AND lecture_id = ?", userID, l.ID).
					FirstOrCreate(&lp, lp).Error; err != nil {
					return err
				}
			}

			if m.Assignment != nil {
				aa := model.AssignmentAttempt{
					UserID:       userID,
					AssignmentID: m.Assignment.ID,
					Status:       model.AttemptStatusNotStarted,
				}
				if err := tx.Where("user_id = ? AND assignment_id = ?", userID, m.Assignment.ID).
					FirstOrCreate(&aa, aa).Error; err != nil {
					return err
				}
			}
		}

		if path.Assessment != nil {
			at := model.AssessmentAttempt{
				UserID:        userID,
				AssessmentID:  path.Assessment.ID,
				AttemptNumber: 1,
				Status:        model.AttemptStatusNotAttempted,
			}
			if err := tx.Where("user_id = ? AND assessment_id = ? AND attempt_number = ?", userID, path.Assessment.ID, 1).
				FirstOrCreate(&at, at).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
