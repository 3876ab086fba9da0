package controller

import (
	"errors"
	"time"

	"thinking_edu_backend/internal/service"
	"thinking_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// List godoc
// @Summary 获取当日目标
// @Description 返回当日全部目标，进度按最新答题记录刷新
// @Tags 每日目标
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.DailyGoal}
// @Router /api/goals [get]
func (c *GoalController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goals, err := c.GoalService.GetTodayGoals(claims.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, goals)
}

// Create godoc
// @Summary 创建当日目标
// @Description 创建答题数、正解数或学习分钟数目标，同类型当日已存在时返回既有目标
// @Tags 每日目标
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateGoalRequest true "目标内容"
// @Success 201 {object} util.Response{data=model.DailyGoal}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/goals [post]
func (c *GoalController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.CreateGoal(claims.UserID, req, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, goal)
}

// UpdateProgress godoc
// @Summary 更新目标
// @Description 调整目标值并重算完成状态
// @Tags 每日目标
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "目标ID"
// @Param   body body service.UpdateGoalRequest true "目标值"
// @Success 200 {object} util.Response{data=model.DailyGoal}
// @Failure 400 {object} util.Response "目标ID无效"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/goals/{id}/progress [put]
func (c *GoalController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goalID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "目标ID无效")
		return
	}

	var req service.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateGoal(claims.UserID, goalID, req, time.Now())
	if err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx, "目标不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, goal)
}
