package controller

import (
	"edupath_backend/internal/service"
	"edupath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	Storage *service.StorageService
}

func NewMediaController(storage *service.StorageService) *MediaController {
	return &MediaController{Storage: storage}
}

// @Summary 上传缩略图或证书媒体资产
// @Tags 媒体
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "图片或PDF"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /media/upload [post]
func (c *MediaController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.Storage.UploadMedia(ctx.Request.Context(), file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, gin.H{"url": url})
}
