package service

import (
	"edupath_backend/internal/model"
	"edupath_backend/internal/util"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressService(f *testFixture) *ProgressService {
	return NewProgressService(f.paths, f.lectures, f.progress, f.db)
}

func TestToggleLectureRollsUpProgress(t *testing.T) {
	f := newFixture(t)
	path := f.seedPath(t)
	svc := newProgressService(f)
	userID := uuid.New().String()

	modA := path.Modules[0]
	modB := path.Modules[1]

	// 看完模块A的第一讲：模块 1/3，路径 (33.33 + 0) / 2
	res, err := svc.ToggleLecture(userID, modA.Lectures[0].ID)
	require.NoError(t, err)
	assert.True(t, res.IsViewed)
	assert.NotNil(t, res.CompletedAt)
	assert.InDelta(t, 100.0/3, res.ModuleProgress, 0.01)
	assert.InDelta(t, 100.0/3/2, res.PathProgress, 0.01)

	// 模块A全部看完：模块 100，路径 (100 + 0) / 2
	_, err = svc.ToggleLecture(userID, modA.Lectures[1].ID)
	require.NoError(t, err)
	res, err = svc.ToggleLecture(userID, modA.Lectures[2].ID)
	require.NoError(t, err)
	assert.InDelta(t, 100, res.ModuleProgress, 0.01)
	assert.InDelta(t, 50, res.PathProgress, 0.01)

	mp, err := f.progress.ModuleProgressMap(userID, []string{modA.ID})
	require.NoError(t, err)
	assert.True(t, mp[modA.ID].IsCompleted)

	// 两个模块都看完：路径 100 并盖完成章
	_, err = svc.ToggleLecture(userID, modB.Lectures[0].ID)
	require.NoError(t, err)
	res, err = svc.ToggleLecture(userID, modB.Lectures[1].ID)
	require.NoError(t, err)
	assert.InDelta(t, 100, res.PathProgress, 0.01)

	pp, err := f.progress.GetPathProgress(userID, path.ID)
	require.NoError(t, err)
	assert.True(t, pp.IsCompleted)
	assert.NotNil(t, pp.CompletedAt)

	// 回退一讲：进度回落，完成章被撤销
	res, err = svc.ToggleLecture(userID, modA.Lectures[0].ID)
	require.NoError(t, err)
	assert.False(t, res.IsViewed)
	assert.InDelta(t, 200.0/3, res.ModuleProgress, 0.01)
	assert.InDelta(t, (200.0/3+100)/2, res.PathProgress, 0.01)

	pp, err = f.progress.GetPathProgress(userID, path.ID)
	require.NoError(t, err)
	assert.False(t, pp.IsCompleted)
	assert.Nil(t, pp.CompletedAt)
}

func TestToggleLectureTwiceRestoresState(t *testing.T) {
	f := newFixture(t)
	path := f.seedPath(t)
	svc := newProgressService(f)
	userID := uuid.New().String()

	lectureID := path.Modules[0].Lectures[0].ID

	res, err := svc.ToggleLecture(userID, lectureID)
	require.NoError(t, err)
	assert.True(t, res.IsViewed)
	assert.NotNil(t, res.CompletedAt)

	res, err = svc.ToggleLecture(userID, lectureID)
	require.NoError(t, err)
	assert.False(t, res.IsViewed)
	assert.Nil(t, res.CompletedAt)
	assert.Zero(t, res.ModuleProgress)
	assert.Zero(t, res.PathProgress)

	lp, err := f.progress.GetLectureProgress(userID, lectureID)
	require.NoError(t, err)
	assert.False(t, lp.IsViewed)
	assert.Nil(t, lp.CompletedAt)
}

func TestToggleUnknownLecture(t *testing.T) {
	f := newFixture(t)
	f.seedPath(t)
	svc := newProgressService(f)

	_, err := svc.ToggleLecture(uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, util.ErrLectureNotFound)
}

func TestRecomputeModuleWithoutLectures(t *testing.T) {
	f := newFixture(t)
	path := f.seedPath(t)

	empty := &model.Module{LearningPathID: path.ID, Title: "空模块"}
	require.NoError(t, f.db.Create(empty).Error)

	// 零讲座模块不做除法，进度为 0
	progress, err := recomputeModuleProgress(f.db, uuid.New().String(), empty.ID)
	require.NoError(t, err)
	assert.Zero(t, progress)
}

func TestPathMeanCountsModulesWithoutRows(t *testing.T) {
	f := newFixture(t)
	path := f.seedPath(t)
	svc := newProgressService(f)
	userID := uuid.New().String()

	// 仅模块A产生了进度行，模块B按 0 参与平均
	for _, l := range path.Modules[0].Lectures {
		_, err := svc.ToggleLecture(userID, l.ID)
		require.NoError(t, err)
	}

	pp, err := f.progress.GetPathProgress(userID, path.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50, pp.Progress, 0.01)
}

func TestEnrollSeedsZeroState(t *testing.T) {
	f := newFixture(t)
	path := f.seedPath(t)
	svc := newProgressService(f)
	userID := uuid.New().String()

	require.NoError(t, svc.Enroll(userID, path.ID))

	var lectureRows, moduleRows, pathRows int64
	f.db.Model(&model.LectureProgress{}).Where("user_id = ?", userID).Count(&lectureRows)
	f.db.Model(&model.ModuleProgress{}).Where("user_id = ?", userID).Count(&moduleRows)
	f.db.Model(&model.LearningPathProgress{}).Where("user_id = ?", userID).Count(&pathRows)
	assert.EqualValues(t, 5, lectureRows)
	assert.EqualValues(t, 2, moduleRows)
	assert.EqualValues(t, 1, pathRows)

	aaMap, err := f.progress.AssignmentAttemptMap(userID, []string{path.Modules[0].Assignment.ID})
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusNotStarted, aaMap[path.Modules[0].Assignment.ID].Status)

	attempt, err := f.progress.LatestAssessmentAttempt(userID, path.Assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.AttemptNumber)
	assert.Equal(t, model.AttemptStatusNotAttempted, attempt.Status)
	assert.Nil(t, attempt.Score)
}

func TestEnrollIsIdempotent(t *testing.T) {
	f := newFixture(t)
	path := f.seedPath(t)
	svc := newProgressService(f)
	userID := uuid.New().String()

	// 先产生真实进度，再次报名不得覆盖
	_, err := svc.ToggleLecture(userID, path.Modules[0].Lectures[0].ID)
	require.NoError(t, err)

	require.NoError(t, svc.Enroll(userID, path.ID))
	require.NoError(t, svc.Enroll(userID, path.ID))

	var lectureRows int64
	f.db.Model(&model.LectureProgress{}).Where("user_id = ?", userID).Count(&lectureRows)
	assert.EqualValues(t, 5, lectureRows)

	lp, err := f.progress.GetLectureProgress(userID, path.Modules[0].Lectures[0].ID)
	require.NoError(t, err)
	assert.True(t, lp.IsViewed)
}

func TestEnrollUnknownPath(t *testing.T) {
	f := newFixture(t)
	svc := newProgressService(f)

	err := svc.Enroll(uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, util.ErrLearningPathNotFound)
}
