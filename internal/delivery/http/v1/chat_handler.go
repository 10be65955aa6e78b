package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hadi891/CareerCompass/internal/delivery/http/response"
	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/pkg/apperror"
)

type ChatHandler struct {
	chatUC domain.ChatUsecase
}

func NewChatHandler(protected *gin.RouterGroup, chatUC domain.ChatUsecase) {
	handler := &ChatHandler{chatUC: chatUC}

	projects := protected.Group("/projects")
	{
		projects.GET("/:id/chat", handler.History)
		projects.POST("/:id/chat", handler.Post)
	}
}

type ChatRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.chatUC.GetChatHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Chat history", messages)
}

func (h *ChatHandler) Post(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	reply, err := h.chatUC.PostChatTurn(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Reply generated", reply)
}
