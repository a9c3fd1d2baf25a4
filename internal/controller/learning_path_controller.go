package controller

import (
	"edupath_backend/internal/service"
	"edupath_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	Service *service.LearningPathService
}

func NewLearningPathController(svc *service.LearningPathService) *LearningPathController {
	return &LearningPathController{Service: svc}
}

// @Summary 按机构和批次列出学习路径
// @Tags 学习路径
// @Produce json
// @Param institute path string true "机构"
// @Param batch path string true "批次"
// @Param userId path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /learning-paths/institutes/{institute}/batches/{batch}/users/{userId} [get]
func (c *LearningPathController) List(ctx *gin.Context) {
	institute := ctx.Param("institute")
	batch := ctx.Param("batch")

	userID, err := util.ParseUUID(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	pageData, err := c.Service.ListForBatch(ctx.Request.Context(), institute, batch, userID, page, limit)
	if err != nil {
		if errors.Is(err, util.ErrMappingNotFound) {
			util.NotFoundMsg(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, pageData)
}

// @Summary 获取学习路径详情（含当前用户进度）
// @Tags 学习路径
// @Produce json
// @Param id path string true "路径ID"
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /learning-paths/{id}/users/{userId} [get]
func (c *LearningPathController) Detail(ctx *gin.Context) {
	pathID, err := util.ParseUUID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	userID, err := util.ParseUUID(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	detail, err := c.Service.Detail(ctx.Request.Context(), pathID, userID)
	if err != nil {
		if errors.Is(err, util.ErrLearningPathNotFound) {
			util.NotFoundMsg(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}
