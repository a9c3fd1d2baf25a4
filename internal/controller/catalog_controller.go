package controller

import (
	"edupath_backend/internal/service"
	"edupath_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *service.CatalogService
}

func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{Service: svc}
}

// @Summary 创建学习路径（可嵌套模块/讲座/作业/测评）
// @Tags 内容管理
// @Accept json
// @Produce json
// @Param body body service.CreateLearningPathRequest true "路径信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /learning-paths [post]
func (c *CatalogController) CreatePath(ctx *gin.Context) {
	var req service.CreateLearningPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}
	if err := util.ValidateStruct(req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	path, err := c.Service.CreatePath(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, path)
}

// @Summary 给路径追加模块
// @Tags 内容管理
// @Accept json
// @Produce json
// @Param id path string true "路径ID"
// @Param body body service.CreateModuleRequest true "模块信息"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /learning-paths/{id}/modules [post]
func (c *CatalogController) AddModule(ctx *gin.Context) {
	pathID, err := util.ParseUUID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}
	if err := util.ValidateStruct(req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.Service.AddModule(ctx.Request.Context(), pathID, req)
	if err != nil {
		if errors.Is(err, util.ErrLearningPathNotFound) {
			util.NotFoundMsg(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, m)
}

// @Summary 修改模块标题与描述
// @Tags 内容管理
// @Accept json
// @Produce json
// @Param moduleId path string true "模块ID"
// @Param body body service.UpdateModuleRequest true "模块信息"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /modules/{moduleId} [put]
func (c *CatalogController) UpdateModule(ctx *gin.Context) {
	moduleID, err := util.ParseUUID(ctx.Param("moduleId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.UpdateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}
	if err := util.ValidateStruct(req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.Service.UpdateModule(ctx.Request.Context(), moduleID, req)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFoundMsg(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, m)
}

type addLecturesRequest struct {
	Lectures []service.CreateLectureRequest `json:"lectures" validate:"required,min=1,dive"`
}

// @Summary 给模块批量追加讲座
// @Tags 内容管理
// @Accept json
// @Produce json
// @Param moduleId path string true "模块ID"
// @Param body body addLecturesRequest true "讲座列表"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /modules/{moduleId}/lectures [post]
func (c *CatalogController) AddLectures(ctx *gin.Context) {
	moduleID, err := util.ParseUUID(ctx.Param("moduleId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req addLecturesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}
	if err := util.ValidateStruct(req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lectures, err := c.Service.AddLectures(ctx.Request.Context(), moduleID, req.Lectures)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFoundMsg(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, lectures)
}

// @Summary 修改讲座
// @Tags 内容管理
// @Accept json
// @Produce json
// @Param lectureId path string true "讲座ID"
// @Param body body service.UpdateLectureRequest true "讲座信息"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /lectures/{lectureId} [put]
func (c *CatalogController) UpdateLecture(ctx *gin.Context) {
	lectureID, err := util.ParseUUID(ctx.Param("lectureId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.UpdateLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}
	if err := util.ValidateStruct(req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	l, err := c.Service.UpdateLecture(ctx.Request.Context(), lectureID, req)
	if err != nil {
		if errors.Is(err, util.ErrLectureNotFound) {
			util.NotFoundMsg(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, l)
}
