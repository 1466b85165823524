package service

import (
	"github.com/gin-gonic/gin"

	"github.com/Liunian06/LNChat-sub000/app/core"
	"github.com/Liunian06/LNChat-sub000/app/response"
	"github.com/Liunian06/LNChat-sub000/cmd/service/handler"
	"github.com/Liunian06/LNChat-sub000/cmd/service/middleware"
	"github.com/Liunian06/LNChat-sub000/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(gin.Recovery(), middleware.Cors(), middleware.I18n(), response.NewResponse(), middleware.Metrics())

	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	api := s.Engine.Group("/api/v1")
	{
		chat := api.Group("/chat")
		{
			chat.POST("/sessions", s.CreateChatSession)
			chat.GET("/sessions", s.ListChatSessions)
			chat.GET("/sessions/:session", s.GetChatSession)
			chat.PUT("/sessions/:session/title", s.UpdateChatSessionTitle)
			chat.GET("/sessions/:session/messages", s.ListChatMessages)
			chat.POST("/sessions/:session/messages", s.CreateChatMessage)
			chat.PUT("/sessions/:session/messages/:message/recall", s.RecallChatMessage)
			chat.PUT("/sessions/:session/messages/:message/fold", s.FoldChatMessage)
			chat.DELETE("/sessions/:session/messages/:message", s.DeleteChatMessage)
			chat.GET("/sessions/:session/ws", s.ChatSessionWebsocket)
		}

		contact := api.Group("/contacts")
		{
			contact.GET("", s.ListContacts)
			contact.POST("", s.CreateContact)
			contact.GET("/:contact", s.GetContact)
			contact.DELETE("/:contact", s.DeleteContact)
			contact.GET("/:contact/emojis", s.ListContactEmojis)
			contact.POST("/:contact/emojis/authorize", s.AuthorizeEmoji)
			contact.GET("/:contact/memories", s.ListContactMemories)
			contact.GET("/:contact/diaries", s.ListContactDiaries)
		}

		api.GET("/moments", s.ListMoments)

		persona := api.Group("/personas")
		{
			persona.GET("", s.ListPersonas)
			persona.POST("", s.CreatePersona)
			persona.DELETE("/:persona", s.DeletePersona)
		}

		emoji := api.Group("/emojis")
		{
			emoji.POST("", s.CreateEmoji)
			emoji.DELETE("/:emoji", s.DeleteEmoji)
		}

		setting := api.Group("/settings")
		{
			setting.GET("/:key", s.GetSetting)
			setting.PUT("/:key", s.PutSetting)
			setting.DELETE("/:key", s.DeleteSetting)
		}
	}
}
