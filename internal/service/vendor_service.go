package service

import (
	"context"
	"edupath_backend/internal/model"
	"edupath_backend/internal/repository"
	"edupath_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// VendorService 供应商侧操作：全量列表、路径与(机构, 批次)的挂载
type VendorService struct {
	PathRepo      *repository.LearningPathRepository
	InstituteRepo *repository.InstituteRepository
	Cache         *Cache
}

func NewVendorService(pathRepo *repository.LearningPathRepository, instituteRepo *repository.InstituteRepository, cache *Cache) *VendorService {
	return &VendorService{
		PathRepo:      pathRepo,
		InstituteRepo: instituteRepo,
		Cache:         cache,
	}
}

// ListAll 不过滤、不叠加进度的全量路径列表
func (s *VendorService) ListAll() ([]model.LearningPath, error) {
	return s.PathRepo.ListAll()
}

// Assign 将路径挂到(机构, 批次)，重复挂载幂等返回已有映射
func (s *VendorService) Assign(ctx context.Context, institution, batch, pathID string) (*model.InstituteBatchLearningPath, error) {
	if _, err := s.PathRepo.FindByID(pathID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLearningPathNotFound
		}
		return nil, err
	}

	existing, err := s.InstituteRepo.FindMapping(institution, batch, pathID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := &model.InstituteBatchLearningPath{
		Institution:    institution,
		Batch:          batch,
		LearningPathID: pathID,
	}
	if err := s.InstituteRepo.CreateMapping(m); err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, listCacheKey(institution, batch))
	return m, nil
}

func (s *VendorService) Unassign(ctx context.Context, institution, batch, pathID string) error {
	rows, err := s.InstituteRepo.DeleteMapping(institution, batch, pathID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrMappingNotFound
	}

	s.Cache.Invalidate(ctx, listCacheKey(institution, batch))
	return nil
}
