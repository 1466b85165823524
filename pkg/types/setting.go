package types

import "encoding/json"

// Setting 通用键值配置行，value为JSON
type Setting struct {
	Key   string          `json:"key" db:"key"`
	Value json.RawMessage `json:"value" db:"value"`
}

const (
	SETTING_KEY_API_PRESET    = "api_preset"
	SETTING_KEY_CONTEXT_COUNT = "context_count"
	SETTING_KEY_ENV_FLAGS     = "env_flags"
	SETTING_KEY_ENVIRONMENT   = "environment"
	SETTING_KEY_BASE_PROMPT   = "base_prompt"
	SETTING_KEY_GROUP_PROMPT  = "group_prompt"
)

// APIPreset 接口预设，由外部预设管理界面写入settings集合
type APIPreset struct {
	Endpoint   string  `json:"endpoint"`
	APIKey     string  `json:"api_key"`
	Model      string  `json:"model"`
	ReplyDelay float64 `json:"reply_delay"` // 秒
}

// EnvFlags 环境信息块的逐项开关
type EnvFlags struct {
	Date     bool `json:"date"`
	Time     bool `json:"time"`
	Location bool `json:"location"`
	Weather  bool `json:"weather"`
	Forecast bool `json:"forecast"`
	Battery  bool `json:"battery"`
}

// Environment 外部采集器写入的环境信息快照
type Environment struct {
	City         string   `json:"city"`
	Weather      string   `json:"weather"`
	Forecast     []string `json:"forecast"`
	BatteryLevel int      `json:"battery_level"`
	Charging     bool     `json:"charging"`
}
