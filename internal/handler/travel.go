package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/service/agentcore"
	"github.com/langly/backend/internal/service/travel"
)

type TravelHandler struct {
	service *travel.Service
}

func NewTravelHandler(service *travel.Service) *TravelHandler {
	return &TravelHandler{service: service}
}

// Insights 生成旅行洞察，事件以 SSE 流式返回
func (h *TravelHandler) Insights(c *gin.Context) {
	var req travel.InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	klog.V(6).Infof("处理旅行洞察请求: destination=%s", req.Destination)
	h.service.GenerateInsights(c.Request.Context(), &req, func(event agentcore.AgentEvent) {
		c.SSEvent(string(event.Type), event)
		c.Writer.Flush()
	})
}
