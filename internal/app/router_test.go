package app

import (
	"bytes"
	"edupath_backend/internal/config"
	"edupath_backend/internal/model"
	"edupath_backend/internal/service"
	"edupath_backend/pkg/database"
	"edupath_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

// newTestServer 用 sqlite 内存库和空缓存把整条路由表拉起来
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	a := &App{DB: db}
	repos := a.initRepositories(db)
	cache := service.NewCache(nil, time.Minute)
	a.cache = cache

	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	cfg.Storage.PublicBaseURL = "http://localhost:8080/uploads"
	storage, err := service.NewStorageService(cfg)
	require.NoError(t, err)

	svcs := &services{
		learningPath: service.NewLearningPathService(repos.learningPath, repos.institute, repos.progress, cache),
		progress:     service.NewProgressService(repos.learningPath, repos.lecture, repos.progress, db),
		catalog:      service.NewCatalogService(repos.learningPath, repos.module, repos.lecture, cache, db),
		vendor:       service.NewVendorService(repos.learningPath, repos.institute, cache),
		certificate:  service.NewCertificateService(repos.learningPath, repos.institute, repos.progress),
		storage:      storage,
	}
	ctrls := a.initControllers(svcs, db, nil)

	router := gin.New()
	a.registerRoutes(router, ctrls)

	return &testServer{router: router, db: db}
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func validPathRequest() service.CreateLearningPathRequest {
	return service.CreateLearningPathRequest{
		Title:       "Go 后端工程师",
		Level:       model.LevelBeginner,
		Time:        "6 weeks",
		Thumbnail:   "https://cdn.example.com/go.png",
		IsPublished: true,
		Modules: []service.CreateModuleRequest{
			{
				Title: "语言基础",
				Lectures: []service.CreateLectureRequest{
					{Title: "变量与类型"},
					{Title: "流程控制"},
				},
			},
		},
		Assessment: &service.CreateAssessmentRequest{
			Name:           "结业测评",
			TotalMarks:     100,
			TotalQuestions: 20,
		},
	}
}

// createPath 通过 API 本身播种数据，顺带覆盖创建端点
func (s *testServer) createPath(t *testing.T, req service.CreateLearningPathRequest) model.LearningPath {
	t.Helper()
	w, resp := s.do(t, http.MethodPost, "/api/learning-paths", req)
	require.Equal(t, http.StatusCreated, w.Code)

	var path model.LearningPath
	require.NoError(t, json.Unmarshal(resp.Data, &path))
	require.NotEmpty(t, path.ID)
	return path
}

func TestCreatePathValidationRejectsBeforeWrite(t *testing.T) {
	s := newTestServer(t)

	longTitle := make([]byte, 101)
	for i := range longTitle {
		longTitle[i] = 'x'
	}

	cases := []struct {
		name    string
		mutate  func(*service.CreateLearningPathRequest)
		wantMsg string
	}{
		{"missing title", func(r *service.CreateLearningPathRequest) { r.Title = "" }, "field 'title' is required"},
		{"oversized title", func(r *service.CreateLearningPathRequest) { r.Title = string(longTitle) }, "field 'title' exceeds maximum length"},
		{"bad level", func(r *service.CreateLearningPathRequest) { r.Level = "expert" }, "field 'level' must be one of"},
		{"non-http thumbnail", func(r *service.CreateLearningPathRequest) { r.Thumbnail = "ftp://cdn.example.com/go.png" }, "field 'thumbnail' must be a valid http(s) URL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validPathRequest()
			tc.mutate(&req)

			w, resp := s.do(t, http.MethodPost, "/api/learning-paths", req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, resp.Message, tc.wantMsg)
		})
	}

	// 校验失败不应落任何一行
	var count int64
	require.NoError(t, s.db.Model(&model.LearningPath{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePathAndDetailRoundTrip(t *testing.T) {
	s := newTestServer(t)
	path := s.createPath(t, validPathRequest())
	userID := uuid.NewString()

	w, resp := s.do(t, http.MethodGet, "/api/learning-paths/"+path.ID+"/users/"+userID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail service.PathDetail
	require.NoError(t, json.Unmarshal(resp.Data, &detail))
	assert.Equal(t, path.ID, detail.ID)
	assert.Equal(t, "Go 后端工程师", detail.Title)
	assert.Zero(t, detail.Progress)
	require.Len(t, detail.Modules, 1)
	assert.Len(t, detail.Modules[0].Lectures, 2)

	// 未作答的测评呈现零状态快照
	require.NotNil(t, detail.Assessment)
	assert.Equal(t, 0, detail.Assessment.AttemptNumber)
	assert.Equal(t, model.AttemptStatusNotAttempted, detail.Assessment.Status)
}

func TestDetailRejectsMalformedUUID(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(t, http.MethodGet, "/api/learning-paths/not-a-uuid/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Message, "not a valid UUID")
}

func TestListRequiresInstituteBatchMapping(t *testing.T) {
	s := newTestServer(t)
	path := s.createPath(t, validPathRequest())
	userID := uuid.NewString()
	listURL := "/api/learning-paths/institutes/mit/batches/2026/users/" + userID

	// 未挂载时 404
	w, resp := s.do(t, http.MethodGet, listURL, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, resp.Message, "no learning paths mapped")

	// 供应商挂载后可见
	w, _ = s.do(t, http.MethodPost, "/api/vendor/institutes/mit/learning-paths/"+path.ID+"/batches/2026", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp = s.do(t, http.MethodGet, listURL, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page service.PathPage
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.List, 1)
	assert.Equal(t, path.ID, page.List[0].ID)

	// 解除挂载后恢复 404
	w, _ = s.do(t, http.MethodDelete, "/api/vendor/institutes/mit/learning-paths/"+path.ID+"/batches/2026", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, listURL, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleLectureOverHTTP(t *testing.T) {
	s := newTestServer(t)
	path := s.createPath(t, validPathRequest())
	userID := uuid.NewString()

	var lectures []model.Lecture
	require.NoError(t, s.db.Order("id").Find(&lectures).Error)
	require.Len(t, lectures, 2)

	w, resp := s.do(t, http.MethodPatch, "/api/learning-paths/progress/users/"+userID+"/lectures/"+lectures[0].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result service.ToggleResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.True(t, result.IsViewed)
	assert.NotNil(t, result.CompletedAt)
	assert.Equal(t, path.ID, result.LearningPathID)
	assert.InDelta(t, 50, result.ModuleProgress, 0.01)
	assert.InDelta(t, 50, result.PathProgress, 0.01)

	// 未知讲座 404
	w, _ = s.do(t, http.MethodPatch, "/api/learning-paths/progress/users/"+userID+"/lectures/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnrollOverHTTP(t *testing.T) {
	s := newTestServer(t)
	path := s.createPath(t, validPathRequest())
	userID := uuid.NewString()

	w, _ := s.do(t, http.MethodPost, "/api/learning-paths/"+path.ID+"/users/"+userID+"/enroll", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, s.db.Model(&model.LearningPathProgress{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	w, _ = s.do(t, http.MethodPost, "/api/learning-paths/"+uuid.NewString()+"/users/"+userID+"/enroll", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownVerbAndRoute(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(t, http.MethodDelete, "/api/learning-paths", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method not allowed", resp.Message)

	w, resp = s.do(t, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resource not found", resp.Message)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "ok", data.Status)
	assert.Equal(t, "up", data.Components["database"])
	assert.Equal(t, "disabled", data.Components["cache"])
}
