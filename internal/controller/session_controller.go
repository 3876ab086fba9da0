package controller

import (
	"thinking_edu_backend/internal/service"
	"thinking_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// Get godoc
// @Summary 获取学习会话
// @Description 返回会话进度，会话不存在时返回初始状态
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Success 200 {object} util.Response{data=model.Session}
// @Router /api/sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.SessionService.GetOrInit(ctx.Param("id"), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// Upsert godoc
// @Summary 保存学习会话
// @Description 保存当前分类、题目下标与提示进度，越界取值自动收敛
// @Tags 会话
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Param   body body service.UpsertRequest true "会话进度"
// @Success 200 {object} util.Response{data=model.Session}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/sessions/{id} [put]
func (c *SessionController) Upsert(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Upsert(ctx.Request.Context(), ctx.Param("id"), claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// ThoughtsRequest 思考笔记整体替换请求
type ThoughtsRequest struct {
	Entries []string `json:"entries"`
}

// GetThoughts godoc
// @Summary 获取思考笔记
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Param   pid path string true "题目ID"
// @Success 200 {object} util.Response{data=[]model.ThoughtLog}
// @Router /api/sessions/{id}/problems/{pid}/thoughts [get]
func (c *SessionController) GetThoughts(ctx *gin.Context) {
	logs, err := c.SessionService.GetThoughtLogs(ctx.Param("id"), ctx.Param("pid"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, logs)
}

// ReplaceThoughts godoc
// @Summary 替换思考笔记
// @Description 整体替换某题在当前会话下的思考笔记
// @Tags 会话
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Param   pid path string true "题目ID"
// @Param   body body ThoughtsRequest true "笔记条目"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/problems/{pid}/thoughts [put]
func (c *SessionController) ReplaceThoughts(ctx *gin.Context) {
	var req ThoughtsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SessionService.ReplaceThoughtLogs(ctx.Param("id"), ctx.Param("pid"), req.Entries); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"count": len(req.Entries)})
}

// ChatRequest 对话记录整体替换请求
type ChatRequest struct {
	Turns []service.ChatTurn `json:"turns" binding:"dive"`
}

// GetChat godoc
// @Summary 获取对话记录
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Param   pid path string true "题目ID"
// @Success 200 {object} util.Response{data=[]model.ChatMessage}
// @Router /api/sessions/{id}/problems/{pid}/chat [get]
func (c *SessionController) GetChat(ctx *gin.Context) {
	messages, err := c.SessionService.GetChatHistory(ctx.Param("id"), ctx.Param("pid"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, messages)
}

// ReplaceChat godoc
// @Summary 替换对话记录
// @Description 整体替换某题在当前会话下的对话记录
// @Tags 会话
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Param   pid path string true "题目ID"
// @Param   body body ChatRequest true "对话轮次"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/sessions/{id}/problems/{pid}/chat [put]
func (c *SessionController) ReplaceChat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SessionService.ReplaceChatHistory(ctx.Param("id"), ctx.Param("pid"), req.Turns); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"count": len(req.Turns)})
}
