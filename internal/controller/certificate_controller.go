package controller

import (
	"edupath_backend/internal/service"
	"edupath_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	Service *service.CertificateService
}

func NewCertificateController(svc *service.CertificateService) *CertificateController {
	return &CertificateController{Service: svc}
}

// @Summary 列出用户在机构批次下已完成路径的证书
// @Tags 证书
// @Produce json
// @Param institute path string true "机构"
// @Param batch path string true "批次"
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /certificates/institutes/{institute}/batches/{batch}/users/{userId} [get]
func (c *CertificateController) List(ctx *gin.Context) {
	institute := ctx.Param("institute")
	batch := ctx.Param("batch")
	userID, err := util.ParseUUID(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	items, err := c.Service.ListForUser(institute, batch, userID)
	if err != nil {
		if errors.Is(err, util.ErrMappingNotFound) {
			util.NotFoundMsg(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, items)
}
