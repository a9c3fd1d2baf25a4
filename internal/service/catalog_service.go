package service

import (
	"context"
	"edupath_backend/internal/model"
	"edupath_backend/internal/repository"
	"edupath_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// CatalogService 学习路径内容管理：建路径、加模块、加讲座、改元数据
// 字段校验在进入服务前由契约层（结构体 tag + util.ValidateStruct）完成
type CatalogService struct {
	PathRepo    *repository.LearningPathRepository
	ModuleRepo  *repository.ModuleRepository
	LectureRepo *repository.LectureRepository
	Cache       *Cache
	DB          *gorm.DB
}

func NewCatalogService(pathRepo *repository.LearningPathRepository, moduleRepo *repository.ModuleRepository, lectureRepo *repository.LectureRepository, cache *Cache, db *gorm.DB) *CatalogService {
	return &CatalogService{
		PathRepo:    pathRepo,
		ModuleRepo:  moduleRepo,
		LectureRepo: lectureRepo,
		Cache:       cache,
		DB:          db,
	}
}

type CreateLectureRequest struct {
	Title    string `json:"title" validate:"required,max=100"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl" validate:"omitempty,http_url,max=500"`
}

type CreateAssignmentRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Description    string `json:"description"`
	TotalMarks     int    `json:"totalMarks"`
	TotalQuestions int    `json:"totalQuestions"`
}

type CreateAssessmentRequest struct {
	Name                      string  `json:"name" validate:"required,max=100"`
	Description               string  `json:"description"`
	TotalMarks                int     `json:"totalMarks"`
	TotalQuestions            int     `json:"totalQuestions"`
	TotalDuration             int     `json:"totalDuration"`
	TotalQualifyingPercentage float64 `json:"totalQualifyingPercentage"`
	ExamType                  string  `json:"examType" validate:"max=50"`
	PasswordExists            bool    `json:"passwordExists"`
	TabSwitchesAllowed        bool    `json:"tabSwitchesAllowed"`
	NoOfTabSwitches           int     `json:"noOfTabSwitches"`
	IsFullscreen              bool    `json:"isFullscreen"`
	Shuffle                   bool    `json:"shuffle"`
	VoiceMonitoring           bool    `json:"voiceMonitoring"`
	FaceProctoring            bool    `json:"faceProctoring"`
	ElectronicMonitoring      bool    `json:"electronicMonitoring"`
}

type CreateModuleRequest struct {
	Title       string                   `json:"title" validate:"required,max=100"`
	Description string                   `json:"description"`
	Lectures    []CreateLectureRequest   `json:"lectures" validate:"dive"`
	Assignment  *CreateAssignmentRequest `json:"assignment"`
}

type CreateLearningPathRequest struct {
	Title          string                   `json:"title" validate:"required,max=100"`
	Level          string                   `json:"level" validate:"required,path_level"`
	Time           string                   `json:"time" validate:"max=50"`
	Thumbnail      string                   `json:"thumbnail" validate:"required,http_url,max=500"`
	IsPublished    bool                     `json:"isPublished"`
	Description    string                   `json:"description"`
	CertificateURL string                   `json:"certificateUrl" validate:"omitempty,http_url,max=500"`
	Modules        []CreateModuleRequest    `json:"modules" validate:"dive"`
	Assessment     *CreateAssessmentRequest `json:"assessment"`
}

type UpdateModuleRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description"`
}

type UpdateLectureRequest struct {
	Title    string `json:"title" validate:"required,max=100"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl" validate:"omitempty,http_url,max=500"`
}

// CreatePath 一个事务建齐路径、模块、讲座、作业、测评
func (s *CatalogService) CreatePath(req CreateLearningPathRequest) (*model.LearningPath, error) {
	path := &model.LearningPath{
		Title:          req.Title,
		Level:          req.Level,
		Time:           req.Time,
		Thumbnail:      req.Thumbnail,
		IsPublished:    req.IsPublished,
		Description:    req.Description,
		CertificateURL: req.CertificateURL,
	}

	for _, mr := range req.Modules {
		m := model.Module{
			Title:       mr.Title,
			Description: mr.Description,
		}
		for _, lr := range mr.Lectures {
			m.Lectures = append(m.Lectures, model.Lecture{
				Title:    lr.Title,
				Content:  lr.Content,
				VideoURL: lr.VideoURL,
			})
		}
		if mr.Assignment != nil {
			m.Assignment = &model.Assignment{
				Name:           mr.Assignment.Name,
				Description:    mr.Assignment.Description,
				TotalMarks:     mr.Assignment.TotalMarks,
				TotalQuestions: mr.Assignment.TotalQuestions,
			}
		}
		path.Modules = append(path.Modules, m)
	}

	if req.Assessment != nil {
		path.Assessment = assessmentFromRequest(req.Assessment)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(path).Error
	})
	if err != nil {
		return nil, err
	}
	return path, nil
}

func assessmentFromRequest(r *CreateAssessmentRequest) *model.Assessment {
	return &model.Assessment{
		Name:                      r.Name,
		Description:               r.Description,
		TotalMarks:                r.TotalMarks,
		TotalQuestions:            r.TotalQuestions,
		TotalDuration:             r.TotalDuration,
		TotalQualifyingPercentage: r.TotalQualifyingPercentage,
		ExamType:                  r.ExamType,
		PasswordExists:            r.PasswordExists,
		TabSwitchesAllowed:        r.TabSwitchesAllowed,
		NoOfTabSwitches:           r.NoOfTabSwitches,
		IsFullscreen:              r.IsFullscreen,
		Shuffle:                   r.Shuffle,
		VoiceMonitoring:           r.VoiceMonitoring,
		FaceProctoring:            r.FaceProctoring,
		ElectronicMonitoring:      r.ElectronicMonitoring,
	}
}

// AddModule 给已有路径追加模块，可携带讲座和作业
func (s *CatalogService) AddModule(ctx context.Context, pathID string, req CreateModuleRequest) (*model.Module, error) {
	if _, err := s.PathRepo.FindByID(pathID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLearningPathNotFound
		}
		return nil, err
	}

	m := &model.Module{
		LearningPathID: pathID,
		Title:          req.Title,
		Description:    req.Description,
	}
	for _, lr := range req.Lectures {
		m.Lectures = append(m.Lectures, model.Lecture{
			Title:    lr.Title,
			Content:  lr.Content,
			VideoURL: lr.VideoURL,
		})
	}
	if req.Assignment != nil {
		m.Assignment = &model.Assignment{
			Name:           req.Assignment.Name,
			Description:    req.Assignment.Description,
			TotalMarks:     req.Assignment.TotalMarks,
			TotalQuestions: req.Assignment.TotalQuestions,
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, detailCacheKey(pathID))
	return m, nil
}

func (s *CatalogService) UpdateModule(ctx context.Context, moduleID string, req UpdateModuleRequest) (*model.Module, error) {
	m, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	m.Title = req.Title
	m.Description = req.Description
	if err := s.ModuleRepo.Save(m); err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, detailCacheKey(m.LearningPathID))
	return m, nil
}

// AddLectures 批量挂讲座到模块
func (s *CatalogService) AddLectures(ctx context.Context, moduleID string, reqs []CreateLectureRequest) ([]model.Lecture, error) {
	m, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	lectures := make([]model.Lecture, 0, len(reqs))
	for _, lr := range reqs {
		lectures = append(lectures, model.Lecture{
			ModuleID: m.ID,
			Title:    lr.Title,
			Content:  lr.Content,
			VideoURL: lr.VideoURL,
		})
	}
	if err := s.LectureRepo.CreateBatch(lectures); err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, detailCacheKey(m.LearningPathID))
	return lectures, nil
}

func (s *CatalogService) UpdateLecture(ctx context.Context, lectureID string, req UpdateLectureRequest) (*model.Lecture, error) {
	l, err := s.LectureRepo.FindByID(lectureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLectureNotFound
		}
		return nil, err
	}

	l.Title = req.Title
	l.Content = req.Content
	l.VideoURL = req.VideoURL
	if err := s.LectureRepo.Save(l); err != nil {
		return nil, err
	}

	m, err := s.ModuleRepo.FindByID(l.ModuleID)
	if err == nil {
		s.Cache.Invalidate(ctx, detailCacheKey(m.LearningPathID))
	}
	return l, nil
}
