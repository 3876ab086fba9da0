package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"thinking_edu_backend/internal/service"
	"thinking_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	Storage     *service.StorageService
}

func NewUserController(userService *service.UserService, storage *service.StorageService) *UserController {
	return &UserController{UserService: userService, Storage: storage}
}

// Me godoc
// @Summary 获取当前用户档案
// @Description 返回当前登录用户的完整档案
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response "未认证"
// @Router /api/users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "用户不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// UpdateMe godoc
// @Summary 更新当前用户档案
// @Description 更新昵称、设置或学习路径，零值字段保持不变
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.UpdateProfileRequest true "档案更新内容"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/users/me [put]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrEmptyLearningPath) {
			util.BadRequest(ctx, "学习路径不能为空")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// 头像上限2MB
const maxAvatarSize = 2 << 20

// UploadAvatar godoc
// @Summary 上传头像
// @Description 接收图片文件并更新当前用户头像
// @Tags 用户
// @Accept  mpfd
// @Produce json
// @Security BearerAuth
// @Param   avatar formData file true "头像图片(jpg/png/webp, 2MB以内)"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "文件为空或类型不支持"
// @Router /api/users/me/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "文件不能为空")
		return
	}
	if file.Size > maxAvatarSize {
		util.BadRequest(ctx, "文件过大")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedExts := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
	}
	contentType, ok := allowedExts[ext]
	if !ok {
		util.BadRequest(ctx, "不支持的文件类型")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	// 每个用户固定一个对象名，重复上传直接覆盖
	name := fmt.Sprintf("avatars/%d%s", claims.UserID, ext)
	url, err := c.Storage.Upload(ctx.Request.Context(), name, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	user, err := c.UserService.SetAvatar(claims.UserID, url)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}
