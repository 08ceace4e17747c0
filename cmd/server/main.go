package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/cloudwego/eino/components/tool"

	"github.com/langly/backend/config"
	"github.com/langly/backend/internal/collab/kindora"
	"github.com/langly/backend/internal/collab/monarch"
	"github.com/langly/backend/internal/collab/news"
	"github.com/langly/backend/internal/collab/stocks"
	"github.com/langly/backend/internal/collab/weather"
	"github.com/langly/backend/internal/eventbus"
	"github.com/langly/backend/internal/handler"
	"github.com/langly/backend/internal/intent"
	"github.com/langly/backend/internal/pkg/database"
	"github.com/langly/backend/internal/repository"
	"github.com/langly/backend/internal/router"
	"github.com/langly/backend/internal/service/agentcore"
	"github.com/langly/backend/internal/service/agentcore/tools"
	"github.com/langly/backend/internal/service/chat"
	"github.com/langly/backend/internal/service/fastpath"
	"github.com/langly/backend/internal/service/orchestrator"
	"github.com/langly/backend/internal/service/travel"
	"github.com/langly/backend/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if cfg.Database.Type == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化 Repository
	todoRepo := repository.NewTodoRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// 事件总线与活动订阅
	bus := eventbus.NewBus()
	subscriber.NewActivityEventSubscriber(activityRepo).Register(bus)

	// 协作方客户端
	weatherClient := weather.NewClient()
	stockClient := stocks.NewClient()
	newsClient := news.NewClient()
	calendarClient := kindora.NewClient(cfg.Collab.KindoraURL, cfg.Collab.KindoraAPIKey, cfg.Collab.KindoraFamilyID)
	financeClient := monarch.NewClient(cfg.Collab.MonarchURL, cfg.Collab.MonarchToken)

	// 意图分类与快速路径
	classifier := intent.NewClassifier(cfg.Assistant.DefaultLocation)
	executor := fastpath.NewExecutor(fastpath.Options{
		Weather:   weatherClient,
		Stocks:    stockClient,
		News:      newsClient,
		Calendar:  calendarClient,
		Finance:   financeClient,
		Todos:     todoRepo,
		Notes:     noteRepo,
		Bus:       bus,
		OwnerName: cfg.Assistant.OwnerName,
		Watchlist: cfg.Assistant.Watchlist,
	})

	// Agent: 模型 + 工具 + 协程池
	chatModel, err := agentcore.NewChatModel(cfg.LLM.APIKey, cfg.LLM.APIURL, cfg.LLM.Model, cfg.LLM.MaxTokens)
	if err != nil {
		log.Fatalf("Failed to initialize chat model: %v", err)
	}
	agentTools := []tool.InvokableTool{
		tools.NewWeatherTool(weatherClient, cfg.Assistant.DefaultLocation),
		tools.NewStockTool(stockClient),
		tools.NewNewsTool(newsClient),
		tools.NewCalendarTool(calendarClient),
		tools.NewFinanceTool(financeClient),
		tools.NewAddTodoTool(todoRepo, bus),
		tools.NewListTodosTool(todoRepo),
	}
	runner := agentcore.NewRunner(chatModel, agentTools, cfg.Agent.MaxSteps)

	pool, err := orchestrator.NewWorkerPool(cfg.Agent.MaxWorkers)
	if err != nil {
		log.Fatalf("Failed to initialize worker pool: %v", err)
	}
	defer pool.Stop()

	// 初始化 Service
	chatService := chat.NewService(classifier, executor, runner, pool, bus, cfg.Agent.ChatTimeout)
	travelService := travel.NewService(runner, pool, bus, cfg.Agent.TravelTimeout)

	// 初始化 Handler
	chatHandler := handler.NewChatHandler(chatService)
	travelHandler := handler.NewTravelHandler(travelService)
	todoHandler := handler.NewTodoHandler(todoRepo)
	noteHandler := handler.NewNoteHandler(noteRepo)
	activityHandler := handler.NewActivityHandler(activityRepo)
	lookupHandler := handler.NewLookupHandler(weatherClient, stockClient, cfg.Assistant.DefaultLocation, cfg.Assistant.Watchlist)

	// 设置路由
	r := router.Setup(cfg, chatHandler, travelHandler, todoHandler, noteHandler, activityHandler, lookupHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
