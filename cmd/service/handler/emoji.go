package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/Liunian06/LNChat-sub000/app/logic/v1"
	"github.com/Liunian06/LNChat-sub000/app/response"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
	"github.com/Liunian06/LNChat-sub000/pkg/utils"
)

func (s *HttpSrv) ListContactEmojis(c *gin.Context) {
	contactID, _ := c.Params.Get("contact")
	contact, err := v1.NewContactLogic(c, s.Core).Get(contactID)
	if err != nil {
		response.APIError(c, err)
		return
	}

	list, err := v1.NewEmojiLogic(c, s.Core).AvailableForContact(*contact)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

type AuthorizeEmojiRequest struct {
	EmojiID string `json:"emoji_id" binding:"required"`
	// ContactIDs 为空时授权给单个contact路径参数，非空时视为群成员批量授权
	ContactIDs []string `json:"contact_ids"`
}

func (s *HttpSrv) AuthorizeEmoji(c *gin.Context) {
	var (
		err error
		req AuthorizeEmojiRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewEmojiLogic(c, s.Core)
	if len(req.ContactIDs) > 0 {
		err = logic.AuthorizeForGroup(req.ContactIDs, req.EmojiID)
	} else {
		contactID, _ := c.Params.Get("contact")
		err = logic.AuthorizeForContact(contactID, req.EmojiID)
	}
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) CreateEmoji(c *gin.Context) {
	var (
		err error
		req types.Emoji
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if err = v1.NewEmojiLogic(c, s.Core).CreateEmoji(req); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, req)
}

func (s *HttpSrv) DeleteEmoji(c *gin.Context) {
	emojiID, _ := c.Params.Get("emoji")
	if err := v1.NewEmojiLogic(c, s.Core).DeleteEmoji(emojiID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
