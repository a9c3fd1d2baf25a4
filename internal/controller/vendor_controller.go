package controller

import (
	"edupath_backend/internal/service"
	"edupath_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type VendorController struct {
	Service *service.VendorService
}

func NewVendorController(svc *service.VendorService) *VendorController {
	return &VendorController{Service: svc}
}

// @Summary 供应商：全量学习路径列表
// @Tags 供应商
// @Produce json
// @Success 200 {object} util.Response
// @Router /vendor/learning-paths [get]
func (c *VendorController) ListAll(ctx *gin.Context) {
	paths, err := c.Service.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, paths)
}

// @Summary 供应商：将路径挂到机构批次
// @Tags 供应商
// @Produce json
// @Param institute path string true "机构"
// @Param pathId path string true "路径ID"
// @Param batch path string true "批次"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /vendor/institutes/{institute}/learning-paths/{pathId}/batches/{batch} [post]
func (c *VendorController) Assign(ctx *gin.Context) {
	institute := ctx.Param("institute")
	batch := ctx.Param("batch")
	pathID, err := util.ParseUUID(ctx.Param("pathId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.Service.Assign(ctx.Request.Context(), institute, batch, pathID)
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

// @Summary 供应商：解除路径与机构批次的挂载
// @Tags 供应商
// @Produce json
// @Param institute path string true "机构"
// @Param pathId path string true "路径ID"
// @Param batch path string true "批次"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /vendor/institutes/{institute}/learning-paths/{pathId}/batches/{batch} [delete]
func (c *VendorController) Unassign(ctx *gin.Context) {
	institute := ctx.Param("institute")
	batch := ctx.Param("batch")
	pathID, err := util.ParseUUID(ctx.Param("pathId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.Unassign(ctx.Request.Context(), institute, batch, pathID); err != nil {
		if errors.Is(err, util.ErrMappingNotFound) {
			util.NotFoundMsg(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"unassigned": pathID})
}
