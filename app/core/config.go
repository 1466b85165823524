package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string     `toml:"addr"`
	Log      Log        `toml:"log"`
	Postgres PGConfig   `toml:"postgres"`
	Chat     ChatConfig `toml:"chat"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("LNCHAT_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.Chat.FromENV()
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("LNCHAT_POSTGRES_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

// ChatConfig 对话相关的部署期默认值，运行期可被settings表覆盖
type ChatConfig struct {
	ReplyDelay   float64 `toml:"reply_delay"`   // 秒
	ContextCount int     `toml:"context_count"` // 默认上下文条数
	Prompt       Prompt  `toml:"prompt"`
}

func (c *ChatConfig) FromENV() {
	if v := os.Getenv("LNCHAT_REPLY_DELAY"); v != "" {
		if delay, err := strconv.ParseFloat(v, 64); err == nil {
			c.ReplyDelay = delay
		}
	}
	if v := os.Getenv("LNCHAT_CONTEXT_COUNT"); v != "" {
		if count, err := strconv.Atoi(v); err == nil {
			c.ContextCount = count
		}
	}
}

// Prompt 配置结构
// 用于覆盖系统内置的基础提示词，为空则使用系统默认
type Prompt struct {
	Base  string `toml:"base"`
	Group string `toml:"group"`
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("LNCHAT_LOG_LEVEL")
	l.Path = os.Getenv("LNCHAT_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
