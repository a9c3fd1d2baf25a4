package service

import (
	"context"
	"edupath_backend/internal/model"
	"edupath_backend/internal/repository"
	"edupath_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

// LearningPathService 组装嵌套的路径视图
// 结构骨架（与用户无关的部分）走旁路缓存，用户字段每次从存储新鲜读出后叠加
type LearningPathService struct {
	PathRepo      *repository.LearningPathRepository
	InstituteRepo *repository.InstituteRepository
	ProgressRepo  *repository.ProgressRepository
	Cache         *Cache
}

func NewLearningPathService(pathRepo *repository.LearningPathRepository, instituteRepo *repository.InstituteRepository, progressRepo *repository.ProgressRepository, cache *Cache) *LearningPathService {
	return &LearningPathService{
		PathRepo:      pathRepo,
		InstituteRepo: instituteRepo,
		ProgressRepo:  progressRepo,
		Cache:         cache,
	}
}

type LectureDetail struct {
	LectureID   string     `json:"lectureId"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	VideoURL    string     `json:"videoUrl"`
	IsViewed    bool       `json:"isViewed"`
	CompletedAt *time.Time `json:"completedAt"`
}

type AssignmentDetail struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	TotalMarks     int        `json:"totalMarks"`
	TotalQuestions int        `json:"totalQuestions"`
	Attempts       int        `json:"attempts"`
	Status         string     `json:"status"`
	Score          *int       `json:"score"`
	AttemptedAt    *time.Time `json:"attemptedAt"`
}

type ModuleDetail struct {
	ModuleID    string            `json:"moduleId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Progress    float64           `json:"progress"`
	IsCompleted bool              `json:"isCompleted"`
	Lectures    []LectureDetail   `json:"lectures"`
	Assignment  *AssignmentDetail `json:"assignment,omitempty"`
}

type AssessmentDetail struct {
	ID                        string     `json:"id"`
	Name                      string     `json:"name"`
	Description               string     `json:"description"`
	TotalMarks                int        `json:"totalMarks"`
	TotalQuestions            int        `json:"totalQuestions"`
	TotalDuration             int        `json:"totalDuration"`
	TotalQualifyingPercentage float64    `json:"totalQualifyingPercentage"`
	ExamType                  string     `json:"examType"`
	PasswordExists            bool       `json:"passwordExists"`
	TabSwitchesAllowed        bool       `json:"tabSwitchesAllowed"`
	NoOfTabSwitches           int        `json:"noOfTabSwitches"`
	IsFullscreen              bool       `json:"isFullscreen"`
	Shuffle                   bool       `json:"shuffle"`
	VoiceMonitoring           bool       `json:"voiceMonitoring"`
	FaceProctoring            bool       `json:"faceProctoring"`
	ElectronicMonitoring      bool       `json:"electronicMonitoring"`
	AttemptNumber             int        `json:"attemptNumber"`
	Score                     *float64   `json:"score"`
	Status                    string     `json:"status"`
	AttemptedAt               *time.Time `json:"attemptedAt"`
}

type PathDetail struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Level          string            `json:"level"`
	Time           string            `json:"time"`
	Thumbnail      string            `json:"thumbnail"`
	IsPublished    bool              `json:"isPublished"`
	Description    string            `json:"description"`
	CertificateURL string            `json:"certificateUrl"`
	Progress       float64           `json:"progress"`
	IsCompleted    bool              `json:"isCompleted"`
	UpdatedAt      *time.Time        `json:"updatedAt"`
	Modules        []ModuleDetail    `json:"modules"`
	Assessment     *AssessmentDetail `json:"assessment,omitempty"`
}

type PathSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Level       string  `json:"level"`
	Time        string  `json:"time"`
	Thumbnail   string  `json:"thumbnail"`
	IsPublished bool    `json:"isPublished"`
	Description string  `json:"description"`
	Progress    float64 `json:"progress"`
}

type PathPage struct {
	List  []PathSummary `json:"list"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// Detail 组装路径详情：缓存的结构骨架 + 当前用户的进度叠加
func (s *LearningPathService) Detail(ctx context.Context, pathID, userID string) (*PathDetail, error) {
	var detail PathDetail
	err := s.Cache.GetOrFill(ctx, detailCacheKey(pathID), "detail", &detail, func() (interface{}, error) {
		path, err := s.PathRepo.FindDetailByID(pathID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrLearningPathNotFound
			}
			return nil, err
		}
		return buildSkeleton(path), nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.overlayUserState(&detail, userID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// buildSkeleton 只放结构字段，用户相关字段保持零态
func buildSkeleton(path *model.LearningPath) *PathDetail {
	detail := &PathDetail{
		ID:             path.ID,
		Title:          path.Title,
		Level:          path.Level,
		Time:           path.Time,
		Thumbnail:      path.Thumbnail,
		IsPublished:    path.IsPublished,
		Description:    path.Description,
		CertificateURL: path.CertificateURL,
		Modules:        make([]ModuleDetail, 0, len(path.Modules)),
	}

	for _, m := range path.Modules {
		md := ModuleDetail{
			ModuleID:    m.ID,
			Title:       m.Title,
			Description: m.Description,
			Lectures:    make([]LectureDetail, 0, len(m.Lectures)),
		}
		for _, l := range m.Lectures {
			md.Lectures = append(md.Lectures, LectureDetail{
				LectureID: l.ID,
				Title:     l.Title,
				Content:   l.Content,
				VideoURL:  l.VideoURL,
			})
		}
		if m.Assignment != nil {
			md.Assignment = &AssignmentDetail{
				ID:             m.Assignment.ID,
				Name:           m.Assignment.Name,
				Description:    m.Assignment.Description,
				TotalMarks:     m.Assignment.TotalMarks,
				TotalQuestions: m.Assignment.TotalQuestions,
				Attempts:       m.Assignment.AttemptsCount,
				Status:         model.AttemptStatusNotStarted,
			}
		}
		detail.Modules = append(detail.Modules, md)
	}

	if path.Assessment != nil {
		a := path.Assessment
		detail.Assessment = &AssessmentDetail{
			ID:                        a.ID,
			Name:                      a.Name,
			Description:               a.Description,
			TotalMarks:                a.TotalMarks,
			TotalQuestions:            a.TotalQuestions,
			TotalDuration:             a.TotalDuration,
			TotalQualifyingPercentage: a.TotalQualifyingPercentage,
			ExamType:                  a.ExamType,
			PasswordExists:            a.PasswordExists,
			TabSwitchesAllowed:        a.TabSwitchesAllowed,
			NoOfTabSwitches:           a.NoOfTabSwitches,
			IsFullscreen:              a.IsFullscreen,
			Shuffle:                   a.Shuffle,
			VoiceMonitoring:           a.VoiceMonitoring,
			FaceProctoring:            a.FaceProctoring,
			ElectronicMonitoring:      a.ElectronicMonitoring,
			AttemptNumber:             0,
			Status:                    model.AttemptStatusNotAttempted,
		}
	}

	return detail
}

// overlayUserState 将当前用户的进度行叠加到骨架上，缺行一律按零态处理
func (s *LearningPathService) overlayUserState(detail *PathDetail, userID string) error {
	lectureIDs := make([]string, 0)
	moduleIDs := make([]string, 0, len(detail.Modules))
	assignmentIDs := make([]string, 0)
	for _, m := range detail.Modules {
		moduleIDs = append(moduleIDs, m.ModuleID)
		for _, l := range m.Lectures {
			lectureIDs = append(lectureIDs, l.LectureID)
		}
		if m.Assignment != nil {
			assignmentIDs = append(assignmentIDs, m.Assignment.ID)
		}
	}

	lpMap, err := s.ProgressRepo.LectureProgressMap(userID, lectureIDs)
	if err != nil {
		return err
	}
	mpMap, err := s.ProgressRepo.ModuleProgressMap(userID, moduleIDs)
	if err != nil {
		return err
	}
	aaMap, err := s.ProgressRepo.AssignmentAttemptMap(userID, assignmentIDs)
	if err != nil {
		return err
	}

	for i := range detail.Modules {
		m := &detail.Modules[i]
		if mp, ok := mpMap[m.ModuleID]; ok {
			m.Progress = mp.Progress
			m.IsCompleted = mp.IsCompleted
		}
		for j := range m.Lectures {
			l := &m.Lectures[j]
			if lp, ok := lpMap[l.LectureID]; ok {
				l.IsViewed = lp.IsViewed
				l.CompletedAt = lp.CompletedAt
			}
		}
		if m.Assignment != nil {
			if aa, ok := aaMap[m.Assignment.ID]; ok {
				m.Assignment.Status = aa.Status
				m.Assignment.Score = aa.Score
				attemptedAt := aa.AttemptedAt
				m.Assignment.AttemptedAt = &attemptedAt
			}
		}
	}

	pp, err := s.ProgressRepo.GetPathProgress(userID, detail.ID)
	if err == nil {
		detail.Progress = pp.Progress
		detail.IsCompleted = pp.IsCompleted
		updatedAt := pp.UpdatedAt
		detail.UpdatedAt = &updatedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if detail.Assessment != nil {
		attempt, err := s.ProgressRepo.LatestAssessmentAttempt(userID, detail.Assessment.ID)
		if err == nil {
			detail.Assessment.AttemptNumber = attempt.AttemptNumber
			detail.Assessment.Score = attempt.Score
			detail.Assessment.Status = attempt.Status
			attemptedAt := attempt.AttemptedAt
			detail.Assessment.AttemptedAt = &attemptedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	return nil
}

// ListForBatch 按(机构, 批次)列出路径
// 缓存的是未分页的结构列表，分页在内存中做，进度每页每次新鲜叠加
func (s *LearningPathService) ListForBatch(ctx context.Context, institution, batch, userID string, page, limit int) (*PathPage, error) {
	var summaries []PathSummary
	err := s.Cache.GetOrFill(ctx, listCacheKey(institution, batch), "list", &summaries, func() (interface{}, error) {
		mappings, err := s.InstituteRepo.FindMappings(institution, batch)
		if err != nil {
			return nil, err
		}
		if len(mappings) == 0 {
			return nil, util.ErrMappingNotFound
		}

		ids := make([]string, 0, len(mappings))
		for _, m := range mappings {
			ids = append(ids, m.LearningPathID)
		}
		paths, err := s.PathRepo.FindByIDs(ids)
		if err != nil {
			return nil, err
		}

		out := make([]PathSummary, 0, len(paths))
		for _, p := range paths {
			out = append(out, PathSummary{
				ID:          p.ID,
				Title:       p.Title,
				Level:       p.Level,
				Time:        p.Time,
				Thumbnail:   p.Thumbnail,
				IsPublished: p.IsPublished,
				Description: p.Description,
			})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	total := int64(len(summaries))
	start := (page - 1) * limit
	if start > len(summaries) {
		start = len(summaries)
	}
	end := start + limit
	if end > len(summaries) {
		end = len(summaries)
	}
	pageItems := summaries[start:end]

	ids := make([]string, 0, len(pageItems))
	for _, it := range pageItems {
		ids = append(ids, it.ID)
	}
	ppMap, err := s.ProgressRepo.PathProgressMap(userID, ids)
	if err != nil {
		return nil, err
	}
	for i := range pageItems {
		if pp, ok := ppMap[pageItems[i].ID]; ok {
			pageItems[i].Progress = pp.Progress
		}
	}

	return &PathPage{
		List:  pageItems,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}
