package controller

import (
	"edupath_backend/internal/service"
	"edupath_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

// @Summary 翻转讲座观看状态并重算模块/路径进度
// @Tags 进度
// @Produce json
// @Param userId path string true "用户ID"
// @Param lectureId path string true "讲座ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /learning-paths/progress/users/{userId}/lectures/{lectureId} [patch]
func (c *ProgressController) ToggleLecture(ctx *gin.Context) {
	userID, err := util.ParseUUID(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lectureID, err := util.ParseUUID(ctx.Param("lectureId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.ToggleLecture(userID, lectureID)
	if err != nil {
		if errors.Is(err, util.ErrLectureNotFound) {
			util.NotFoundMsg(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 报名学习路径，播种零状态进度行（幂等）
// @Tags 进度
// @Produce json
// @Param id path string true "路径ID"
// @Param userId path string true "用户ID"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /learning-paths/{id}/users/{userId}/enroll [post]
func (c *ProgressController) Enroll(ctx *gin.Context) {
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

	if err := c.Service.Enroll(userID, pathID); err != nil {
		if errors.Is(err, util.ErrLearningPathNotFound) {
			util.NotFoundMsg(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"learningPathId": pathID, "userId": userID})
}
