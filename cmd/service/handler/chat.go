package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/Liunian06/LNChat-sub000/app/logic/v1"
	"github.com/Liunian06/LNChat-sub000/app/response"
	"github.com/Liunian06/LNChat-sub000/pkg/utils"
)

func (s *HttpSrv) CreateChatSession(c *gin.Context) {
	var (
		err error
		req v1.CreateSessionRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	session, err := v1.NewChatLogic(c, s.Core).CreateSession(req)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, session)
}

func (s *HttpSrv) ListChatSessions(c *gin.Context) {
	list, err := v1.NewChatLogic(c, s.Core).ListSessions()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) GetChatSession(c *gin.Context) {
	sessionID, _ := c.Params.Get("session")
	session, err := v1.NewChatLogic(c, s.Core).GetSession(sessionID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, session)
}

type UpdateSessionTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

func (s *HttpSrv) UpdateChatSessionTitle(c *gin.Context) {
	var (
		err error
		req UpdateSessionTitleRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	sessionID, _ := c.Params.Get("session")
	if err = v1.NewChatLogic(c, s.Core).UpdateSessionTitle(sessionID, req.Title); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) ListChatMessages(c *gin.Context) {
	sessionID, _ := c.Params.Get("session")
	list, err := v1.NewChatLogic(c, s.Core).ListMessages(sessionID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) CreateChatMessage(c *gin.Context) {
	var (
		err error
		req v1.NewMessageRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	sessionID, _ := c.Params.Get("session")
	msg, err := v1.NewChatLogic(c, s.Core).NewUserMessage(sessionID, req)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, msg)
}

func (s *HttpSrv) RecallChatMessage(c *gin.Context) {
	sessionID, _ := c.Params.Get("session")
	messageID, _ := c.Params.Get("message")
	if err := v1.NewChatLogic(c, s.Core).RecallMessage(sessionID, messageID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) FoldChatMessage(c *gin.Context) {
	sessionID, _ := c.Params.Get("session")
	messageID, _ := c.Params.Get("message")
	if err := v1.NewChatLogic(c, s.Core).FoldMessage(sessionID, messageID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteChatMessage(c *gin.Context) {
	sessionID, _ := c.Params.Get("session")
	messageID, _ := c.Params.Get("message")
	if err := v1.NewChatLogic(c, s.Core).DeleteMessage(sessionID, messageID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
