package controller

import (
	"errors"

	"thinking_edu_backend/internal/service"
	"thinking_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
	SessionService *service.SessionService
	ProblemService *service.ProblemService
	AIService      *service.AIService
}

func NewAttemptController(
	attemptService *service.AttemptService,
	sessionService *service.SessionService,
	problemService *service.ProblemService,
	aiService *service.AIService,
) *AttemptController {
	return &AttemptController{
		AttemptService: attemptService,
		SessionService: sessionService,
		ProblemService: problemService,
		AIService:      aiService,
	}
}

// SubmitAnswer godoc
// @Summary 提交答案
// @Description 判定答案并结算经验、等级、连续天数与徽章
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目ID"
// @Param   body body service.SubmitAnswerRequest true "答案内容"
// @Success 200 {object} util.Response{data=service.SubmitAnswerResult}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "题目不存在"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/problems/{id}/attempts [post]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AttemptService.SubmitAnswer(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrProblemNotFound) {
			util.NotFound(ctx, "题目不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// HintRequest 提示请求体
type HintRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// RevealHint godoc
// @Summary 获取下一条提示
// @Description 按会话进度返回下一条提示，达到上限后拒绝
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目ID"
// @Param   body body HintRequest true "会话标识"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "题目不存在"
// @Failure 409 {object} util.Response "提示次数已用完"
// @Router /api/problems/{id}/hints [post]
func (c *AttemptController) RevealHint(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req HintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	problem, err := c.ProblemService.ByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrProblemNotFound) {
			util.NotFound(ctx, "题目不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	hint, step, err := c.SessionService.RevealHint(ctx.Request.Context(), req.SessionID, claims.UserID, problem, c.AIService)
	if err != nil {
		if errors.Is(err, util.ErrHintLimitReached) {
			util.Error(ctx, 409, "提示次数已用完")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"hint":     hint,
		"hintStep": step,
		"maxHints": util.MaxHints,
	})
}

// FollowUpRequest 追问请求体
type FollowUpRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// GenerateFollowUp godoc
// @Summary 生成フォローアップ质问
// @Description 题目自带フォローアップ优先，没有时调用生成后端
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目ID"
// @Param   body body FollowUpRequest true "用户的回答"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/problems/{id}/followup [post]
func (c *AttemptController) GenerateFollowUp(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req FollowUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	problem, err := c.ProblemService.ByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrProblemNotFound) {
			util.NotFound(ctx, "题目不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"followUp": c.AIService.FollowUp(ctx.Request.Context(), problem, req.Answer),
	})
}
