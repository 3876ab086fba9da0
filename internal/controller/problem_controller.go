package controller

import (
	"errors"

	"thinking_edu_backend/internal/model"
	"thinking_edu_backend/internal/service"
	"thinking_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProblemController struct {
	ProblemService *service.ProblemService
}

func NewProblemController(problemService *service.ProblemService) *ProblemController {
	return &ProblemController{ProblemService: problemService}
}

// Categories godoc
// @Summary 获取分类一览
// @Description 按固定目录顺序返回全部分类及题目数
// @Tags 题库
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.CategoryView}
// @Router /api/categories [get]
func (c *ProblemController) Categories(ctx *gin.Context) {
	categories, err := c.ProblemService.Categories(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}

// List godoc
// @Summary 获取题目列表
// @Description 按分类筛选题目，不传分类时返回全部
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   category query string false "分类名称"
// @Success 200 {object} util.Response{data=[]model.Problem}
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/problems [get]
func (c *ProblemController) List(ctx *gin.Context) {
	category := ctx.Query("category")

	if category == "" {
		problems, err := c.ProblemService.Catalog(ctx.Request.Context())
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, problems)
		return
	}

	if !model.IsKnownCategory(category) {
		util.NotFound(ctx, "分类不存在")
		return
	}

	problems, err := c.ProblemService.ByCategory(ctx.Request.Context(), category)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, problems)
}

// Get godoc
// @Summary 获取题目详情
// @Description 按题目ID返回题目内容
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目ID"
// @Success 200 {object} util.Response{data=model.Problem}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/problems/{id} [get]
func (c *ProblemController) Get(ctx *gin.Context) {
	problem, err := c.ProblemService.ByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrProblemNotFound) {
			util.NotFound(ctx, "题目不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, problem)
}
