package service

import (
	"context"
	"edupath_backend/internal/model"
	"edupath_backend/internal/util"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPathService(f *testFixture) *LearningPathService {
	return NewLearningPathService(f.paths, f.inst, f.progress, NewCache(nil, time.Minute))
}

func TestDetailZeroStateDefaults(t *testing.T) {
	f := newFixture(t)
	svc := newPathService(f)

	// 零模块路径，但带测评
	path := &model.LearningPath{
		Title:     "空路径",
		Level:     model.LevelAdvanced,
		Thumbnail: "https://cdn.example.com/empty.png",
		Assessment: &model.Assessment{
			Name:          "直接结业",
			TotalMarks:    50,
			TotalDuration: 30,
		},
	}
	require.NoError(t, f.db.Create(path).Error)

	detail, err := svc.Detail(context.Background(), path.ID, uuid.New().String())
	require.NoError(t, err)

	assert.Zero(t, detail.Progress)
	assert.False(t, detail.IsCompleted)
	assert.Empty(t, detail.Modules)
	require.NotNil(t, detail.Assessment)
	assert.Equal(t, 0, detail.Assessment.AttemptNumber)
	assert.Equal(t, model.AttemptStatusNotAttempted, detail.Assessment.Status)
	assert.Nil(t, detail.Assessment.Score)
}

func TestDetailOverlaysUserProgress(t *testing.T) {
	f := newFixture(t)
	path := f.seedPath(t)
	pathSvc := newPathService(f)
	progSvc := newProgressService(f)
	userID := uuid.New().String()

	_, err := progSvc.ToggleLecture(userID, path.Modules[0].Lectures[0].ID)
	require.NoError(t, err)

	detail, err := pathSvc.Detail(context.Background(), path.ID, userID)
	require.NoError(t, err)

	require.Len(t, detail.Modules, 2)
	modA := detail.Modules[0]
	assert.InDelta(t, 100.0/3, modA.Progress, 0.01)
	assert.True(t, modA.Lectures[0].IsViewed)
	assert.NotNil(t, modA.Lectures[0].CompletedAt)
	assert.False(t, modA.Lectures[1].IsViewed)

	// 未报名用户的作业字段保持零态
	require.NotNil(t, modA.Assignment)
	assert.Equal(t, model.AttemptStatusNotStarted, modA.Assignment.Status)

	assert.InDelta(t, 100.0/3/2, detail.Progress, 0.01)

	// 另一个用户看同一条路径，进度互不串扰
	other, err := pathSvc.Detail(context.Background(), path.ID, uuid.New().String())
	require.NoError(t, err)
	assert.Zero(t, other.Progress)
	assert.False(t, other.Modules[0].Lectures[0].IsViewed)
}

func TestDetailUnknownPath(t *testing.T) {
	f := newFixture(t)
	svc := newPathService(f)

	_, err := svc.Detail(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, util.ErrLearningPathNotFound)
}

func TestListForBatchUnknownMapping(t *testing.T) {
	f := newFixture(t)
	f.seedPath(t)
	svc := newPathService(f)

	_, err := svc.ListForBatch(context.Background(), "nowhere", "2099", uuid.New().String(), 1, 20)
	assert.ErrorIs(t, err, util.ErrMappingNotFound)
}

func TestListForBatchPaginatesInMemory(t *testing.T) {
	f := newFixture(t)
	svc := newPathService(f)

	for i := 0; i < 5; i++ {
		path := &model.LearningPath{
			Title:     "路径",
			Level:     model.LevelBeginner,
			Thumbnail: "https://cdn.example.com/p.png",
		}
		require.NoError(t, f.db.Create(path).Error)
		require.NoError(t, f.inst.CreateMapping(&model.InstituteBatchLearningPath{
			Institution:    "parul",
			Batch:          "2026",
			LearningPathID: path.ID,
		}))
	}

	page, err := svc.ListForBatch(context.Background(), "parul", "2026", uuid.New().String(), 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.Len(t, page.List, 2)
	assert.Equal(t, 2, page.Page)

	// 超出范围的页返回空列表而不是错误
	page, err = svc.ListForBatch(context.Background(), "parul", "2026", uuid.New().String(), 9, 2)
	require.NoError(t, err)
	assert.Empty(t, page.List)
}

func TestListForBatchOverlaysProgress(t *testing.T) {
	f := newFixture(t)
	path := f.seedPath(t)
	require.NoError(t, f.inst.CreateMapping(&model.InstituteBatchLearningPath{
		Institution:    "parul",
		Batch:          "2026",
		LearningPathID: path.ID,
	}))

	pathSvc := newPathService(f)
	progSvc := newProgressService(f)
	userID := uuid.New().String()

	for _, l := range path.Modules[0].Lectures {
		_, err := progSvc.ToggleLecture(userID, l.ID)
		require.NoError(t, err)
	}

	page, err := pathSvc.ListForBatch(context.Background(), "parul", "2026", userID, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.InDelta(t, 50, page.List[0].Progress, 0.01)
}
