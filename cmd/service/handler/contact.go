package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/Liunian06/LNChat-sub000/app/logic/v1"
	"github.com/Liunian06/LNChat-sub000/app/response"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
	"github.com/Liunian06/LNChat-sub000/pkg/utils"
)

func (s *HttpSrv) ListContacts(c *gin.Context) {
	list, err := v1.NewContactLogic(c, s.Core).List()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) GetContact(c *gin.Context) {
	contactID, _ := c.Params.Get("contact")
	contact, err := v1.NewContactLogic(c, s.Core).Get(contactID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, contact)
}

func (s *HttpSrv) CreateContact(c *gin.Context) {
	var (
		err error
		req types.Contact
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	contact, err := v1.NewContactLogic(c, s.Core).Create(req)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, contact)
}

func (s *HttpSrv) DeleteContact(c *gin.Context) {
	contactID, _ := c.Params.Get("contact")
	if err := v1.NewContactLogic(c, s.Core).Delete(contactID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) ListContactMemories(c *gin.Context) {
	contactID, _ := c.Params.Get("contact")
	list, err := v1.NewArchiveLogic(c, s.Core).ListMemories(contactID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) ListContactDiaries(c *gin.Context) {
	contactID, _ := c.Params.Get("contact")
	list, err := v1.NewArchiveLogic(c, s.Core).ListDiaries(contactID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) ListMoments(c *gin.Context) {
	list, err := v1.NewArchiveLogic(c, s.Core).ListMoments()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) ListPersonas(c *gin.Context) {
	list, err := v1.NewPersonaLogic(c, s.Core).List()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) CreatePersona(c *gin.Context) {
	var (
		err error
		req types.UserPersona
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	persona, err := v1.NewPersonaLogic(c, s.Core).Create(req)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, persona)
}

func (s *HttpSrv) DeletePersona(c *gin.Context) {
	personaID, _ := c.Params.Get("persona")
	if err := v1.NewPersonaLogic(c, s.Core).Delete(personaID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
