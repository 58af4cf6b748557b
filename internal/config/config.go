package config

import (
	"fmt"
	"os"
	"strconv"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Config elderguard-data（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Redis    struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}

	// JWT 认证配置
	JWT struct {
		Secret        string
		ExpireMinutes int
	}
	// DemoLogin 允许 demo-token 免登录（开发联测用，默认开启）
	DemoLogin bool

	Upload struct {
		Dir string // 医疗报告文件存储目录
	}

	WhatsApp  WhatsAppConfig  `yaml:"whatsapp"`
	Inference InferenceConfig `yaml:"inference"`

	Alert struct {
		QueueSize       int    // 报警分发队列容量
		DefaultLocation string // 未指定位置时的默认位置标签
	}

	MQTT MQTTConfig `yaml:"mqtt"`
}

// WhatsAppConfig WhatsApp Cloud API 配置
// PhoneNumberID 和 AccessToken 任一为空时进入模拟模式（不发起网络调用）
type WhatsAppConfig struct {
	BaseURL       string `yaml:"base_url"`
	PhoneNumberID string `yaml:"phone_number_id"`
	AccessToken   string `yaml:"access_token"`
}

// InferenceConfig Hugging Face 推理服务配置
// APIKey 为空时进入模拟模式（返回固定的模拟结果）
type InferenceConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	SummarizeModel string `yaml:"summarize_model"`
	GenerateModel  string `yaml:"generate_model"`
}

// MQTTConfig MQTT 配置（用于接收跌倒检测信号，默认禁用）
type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "elderguard")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.JWT.Secret = getEnv("JWT_SECRET", "secret")
	cfg.JWT.ExpireMinutes = parseInt(getEnv("JWT_EXPIRE_MINUTES", "30"), 30)
	cfg.DemoLogin = getEnv("DEMO_LOGIN", "true") == "true"

	cfg.Upload.Dir = getEnv("UPLOAD_DIR", "uploads/medical")

	// WhatsApp 配置（凭证缺失时 Dispatcher 走模拟模式）
	cfg.WhatsApp.BaseURL = getEnv("WHATSAPP_BASE_URL", "https://graph.facebook.com/v17.0")
	cfg.WhatsApp.PhoneNumberID = getEnv("WHATSAPP_PHONE_NUMBER_ID", "")
	cfg.WhatsApp.AccessToken = getEnv("WHATSAPP_ACCESS_TOKEN", "")

	// Hugging Face 配置（APIKey 缺失时 Gateway 走模拟模式）
	cfg.Inference.BaseURL = getEnv("HF_BASE_URL", "https://api-inference.huggingface.co")
	cfg.Inference.APIKey = getEnv("HUGGINGFACE_API_KEY", "")
	cfg.Inference.SummarizeModel = getEnv("HF_SUMMARIZE_MODEL", "facebook/bart-large-cnn")
	cfg.Inference.GenerateModel = getEnv("HF_GENERATE_MODEL", "google/flan-t5-large")

	cfg.Alert.QueueSize = parseInt(getEnv("ALERT_QUEUE_SIZE", "64"), 64)
	cfg.Alert.DefaultLocation = getEnv("ALERT_DEFAULT_LOCATION", "Home Bedroom (Camera 1)")

	// MQTT 配置（用于接收跌倒检测信号，默认禁用）
	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "elderguard-data-fall")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "elderguard/fall")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
