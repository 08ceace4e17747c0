package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/service/agentcore"
	"github.com/langly/backend/internal/service/chat"
)

type ChatHandler struct {
	service *chat.Service
}

func NewChatHandler(service *chat.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Message 处理聊天消息，事件以 SSE 流式返回
func (h *ChatHandler) Message(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	klog.V(6).Infof("处理聊天消息: len=%d", len(req.Message))
	h.service.HandleMessage(c.Request.Context(), req.Message, func(event agentcore.AgentEvent) {
		c.SSEvent(string(event.Type), event)
		c.Writer.Flush()
	})
}
