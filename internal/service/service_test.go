package service

import (
	"edupath_backend/internal/model"
	"edupath_backend/internal/repository"
	"edupath_backend/pkg/database"
	"edupath_backend/pkg/logger"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type testFixture struct {
	db       *gorm.DB
	paths    *repository.LearningPathRepository
	inst     *repository.InstituteRepository
	modules  *repository.ModuleRepository
	lectures *repository.LectureRepository
	progress *repository.ProgressRepository
}

func newFixture(t *testing.T) *testFixture {
	db := newTestDB(t)
	return &testFixture{
		db:       db,
		paths:    repository.NewLearningPathRepository(db),
		inst:     repository.NewInstituteRepository(db),
		modules:  repository.NewModuleRepository(db),
		lectures: repository.NewLectureRepository(db),
		progress: repository.NewProgressRepository(db),
	}
}

// seedPath 建一条两个模块的路径：模块A三个讲座带作业，模块B两个讲座，路径带测评
func (f *testFixture) seedPath(t *testing.T) *model.LearningPath {
	t.Helper()
	path := &model.LearningPath{
		Title:       "Go 后端工程师",
		Level:       model.LevelBeginner,
		Time:        "6 weeks",
		Thumbnail:   "https://cdn.example.com/go.png",
		IsPublished: true,
		Description: "从零到一",
		Modules: []model.Module{
			{
				Title: "语言基础",
				Lectures: []model.Lecture{
					{Title: "变量与类型"},
					{Title: "流程控制"},
					{Title: "函数"},
				},
				Assignment: &model.Assignment{
					Name:           "基础练习",
					TotalMarks:     100,
					TotalQuestions: 10,
				},
			},
			{
				Title: "并发编程",
				Lectures: []model.Lecture{
					{Title: "goroutine"},
					{Title: "channel"},
				},
			},
		},
		Assessment: &model.Assessment{
			Name:           "结业测评",
			TotalMarks:     100,
			TotalQuestions: 20,
			TotalDuration:  60,
			ExamType:       "online",
		},
	}
	require.NoError(t, f.db.Create(path).Error)
	return path
}
