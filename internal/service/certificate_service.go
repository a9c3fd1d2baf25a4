package service

import (
	"edupath_backend/internal/repository"
	"edupath_backend/internal/util"
	"time"
)

// CertificateService 列出用户在某(机构, 批次)下已完成路径的证书
type CertificateService struct {
	PathRepo      *repository.LearningPathRepository
	InstituteRepo *repository.InstituteRepository
	ProgressRepo  *repository.ProgressRepository
}

func NewCertificateService(pathRepo *repository.LearningPathRepository, instituteRepo *repository.InstituteRepository, progressRepo *repository.ProgressRepository) *CertificateService {
	return &CertificateService{
		PathRepo:      pathRepo,
		InstituteRepo: instituteRepo,
		ProgressRepo:  progressRepo,
	}
}

type CertificateItem struct {
	LearningPathID string     `json:"learningPathId"`
	Title          string     `json:"title"`
	CertificateURL string     `json:"certificateUrl"`
	CompletedAt    *time.Time `json:"completedAt"`
}

func (s *CertificateService) ListForUser(institution, batch, userID string) ([]CertificateItem, error) {
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

	completed, err := s.ProgressRepo.CompletedPathProgresses(userID, ids)
	if err != nil {
		return nil, err
	}
	if len(completed) == 0 {
		return []CertificateItem{}, nil
	}

	completedIDs := make([]string, 0, len(completed))
	for _, c := range completed {
		completedIDs = append(completedIDs, c.LearningPathID)
	}
	paths, err := s.PathRepo.FindByIDs(completedIDs)
	if err != nil {
		return nil, err
	}
	pathByID := make(map[string]int, len(paths))
	for i, p := range paths {
		pathByID[p.ID] = i
	}

	items := make([]CertificateItem, 0, len(completed))
	for _, c := range completed {
		i, ok := pathByID[c.LearningPathID]
		if !ok {
			continue
		}
		items = append(items, CertificateItem{
			LearningPathID: c.LearningPathID,
			Title:          paths[i].Title,
			CertificateURL: paths[i].CertificateURL,
			CompletedAt:    c.CompletedAt,
		})
	}
	return items, nil
}
