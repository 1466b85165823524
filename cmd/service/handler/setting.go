package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	v1 "github.com/Liunian06/LNChat-sub000/app/logic/v1"
	"github.com/Liunian06/LNChat-sub000/app/response"
)

func (s *HttpSrv) GetSetting(c *gin.Context) {
	key, _ := c.Params.Get("key")
	setting, err := v1.NewSettingLogic(c, s.Core).Get(key)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, setting)
}

type PutSettingRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}

func (s *HttpSrv) PutSetting(c *gin.Context) {
	var (
		err error
		req PutSettingRequest
	)
	if err = c.ShouldBindJSON(&req); err != nil {
		response.APIError(c, err)
		return
	}

	key, _ := c.Params.Get("key")
	if err = v1.NewSettingLogic(c, s.Core).Put(key, req.Value); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteSetting(c *gin.Context) {
	key, _ := c.Params.Get("key")
	if err := v1.NewSettingLogic(c, s.Core).Delete(key); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
