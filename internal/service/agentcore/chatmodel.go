package agentcore

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"k8s.io/klog/v2"
)

// NewChatModel 创建 Eino 原生的 OpenAI ChatModel
// 直接使用 cloudwego/eino-ext/components/model/openai 实现
// apiKey: OpenAI API Key
// baseURL: API 基础 URL (可选，为空时使用默认 OpenAI URL)
// modelName: 模型名称 (如 "gpt-4o" 等)
// maxTokens: 最大生成 token 数
func NewChatModel(apiKey, baseURL, modelName string, maxTokens int) (model.ToolCallingChatModel, error) {
	klog.V(6).Infof("[ChatModel] 创建 OpenAI ChatModel: model=%s, baseURL=%s", modelName, baseURL)

	config := &openai.ChatModelConfig{
		APIKey: apiKey,
		Model:  modelName,
	}
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if maxTokens > 0 {
		config.MaxTokens = &maxTokens
	}

	chatModel, err := openai.NewChatModel(context.Background(), config)
	if err != nil {
		klog.Errorf("[ChatModel] 创建 ChatModel 失败: %v", err)
		return nil, err
	}
	return chatModel, nil
}
