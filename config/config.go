package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	LLM       LLMConfig       `yaml:"llm"`
	Agent     AgentConfig     `yaml:"agent"`
	Assistant AssistantConfig `yaml:"assistant"`
	Collab    CollabConfig    `yaml:"collab"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	Mode      string `yaml:"mode"` // debug, release
	AuthToken string `yaml:"auth_token"`
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type LLMConfig struct {
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type AgentConfig struct {
	MaxWorkers    int           `yaml:"max_workers"`
	MaxSteps      int           `yaml:"max_steps"`
	ChatTimeout   time.Duration `yaml:"chat_timeout"`
	TravelTimeout time.Duration `yaml:"travel_timeout"`
}

type AssistantConfig struct {
	OwnerName       string   `yaml:"owner_name"`
	DefaultLocation string   `yaml:"default_location"`
	Watchlist       []string `yaml:"watchlist"`
}

// CollabConfig 外部协作方接入配置
type CollabConfig struct {
	KindoraURL      string `yaml:"kindora_url"`
	KindoraAPIKey   string `yaml:"kindora_api_key"`
	KindoraFamilyID string `yaml:"kindora_family_id"`
	MonarchURL      string `yaml:"monarch_url"`
	MonarchToken    string `yaml:"monarch_token"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/app.db",
		},
		LLM: LLMConfig{
			APIURL:    "https://api.openai.com/v1",
			Model:     "gpt-4o",
			MaxTokens: 4096,
		},
		Agent: AgentConfig{
			MaxWorkers:    4,
			MaxSteps:      8,
			ChatTimeout:   120 * time.Second,
			TravelTimeout: 180 * time.Second,
		},
		Assistant: AssistantConfig{
			OwnerName:       "Michael",
			DefaultLocation: "Morristown, NJ",
			Watchlist:       []string{"AAPL", "TSLA", "GOOGL", "SNOW", "PLTR"},
		},
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// 环境变量优先级高于配置文件
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.LLM.APIURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL_NAME"); model != "" {
		config.LLM.Model = model
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if token := os.Getenv("AUTH_TOKEN"); token != "" {
		config.Server.AuthToken = token
	}

	if owner := os.Getenv("OWNER_NAME"); owner != "" {
		config.Assistant.OwnerName = owner
	}
	if loc := os.Getenv("DEFAULT_LOCATION"); loc != "" {
		config.Assistant.DefaultLocation = loc
	}
	if list := os.Getenv("WATCHLIST"); list != "" {
		var tickers []string
		for _, t := range strings.Split(list, ",") {
			if t = strings.TrimSpace(strings.ToUpper(t)); t != "" {
				tickers = append(tickers, t)
			}
		}
		if len(tickers) > 0 {
			config.Assistant.Watchlist = tickers
		}
	}

	if url := os.Getenv("KINDORA_API_URL"); url != "" {
		config.Collab.KindoraURL = url
	}
	if key := os.Getenv("KINDORA_API_KEY"); key != "" {
		config.Collab.KindoraAPIKey = key
	}
	if familyID := os.Getenv("KINDORA_FAMILY_ID"); familyID != "" {
		config.Collab.KindoraFamilyID = familyID
	}
	if url := os.Getenv("MONARCH_API_URL"); url != "" {
		config.Collab.MonarchURL = url
	}
	if token := os.Getenv("MONARCH_TOKEN"); token != "" {
		config.Collab.MonarchToken = token
	}

	if workers := os.Getenv("AGENT_MAX_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			config.Agent.MaxWorkers = n
		}
	}

	return config
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func UpdateConfig(newCfg *Config) {
	cfg = newCfg
}
