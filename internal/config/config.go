package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Sandbox  SandboxConfig
	Room     RoomConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	RoomLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	InstanceID         string
	ActivityTopic      string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret        string
	DisplayNameTTL   time.Duration
	AnonymousDisplay string
}

type SandboxConfig struct {
	Timeout    time.Duration
	Workers    int
	QueueDepth int
	TempDir    string
	PythonBin  string
	NodeBin    string
	JavacBin   string
	CxxBin     string
}

type RoomConfig struct {
	SendBuffer     int
	DispatchQueue  int
	MaxMessageSize int64
	TimestampTZ    string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	SampleRatio float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	hostname, _ := os.Hostname()

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			RoomLogFilePath:    getEnv("ROOM_LOG_FILE_PATH", "logs/rooms.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			InstanceID:         getEnv("INSTANCE_ID", hostname),
			ActivityTopic:      getEnv("ROOM_ACTIVITY_TOPIC", "ROOM_ACTIVITY"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:        getEnv("JWT_SECRET", ""),
			DisplayNameTTL:   getEnvAsDuration("DISPLAY_NAME_TTL", 10*time.Minute),
			AnonymousDisplay: "Anonymous",
		},
		Sandbox: SandboxConfig{
			Timeout:    getEnvAsDuration("SANDBOX_TIMEOUT", 10*time.Second),
			Workers:    getEnvAsInt("SANDBOX_WORKERS", 4),
			QueueDepth: getEnvAsInt("SANDBOX_QUEUE_DEPTH", 32),
			TempDir:    getEnv("SANDBOX_TEMP_DIR", ""),
			PythonBin:  getEnv("SANDBOX_PYTHON_BIN", "python3"),
			NodeBin:    getEnv("SANDBOX_NODE_BIN", "node"),
			JavacBin:   getEnv("SANDBOX_JAVAC_BIN", "javac"),
			CxxBin:     getEnv("SANDBOX_CXX_BIN", "g++"),
		},
		Room: RoomConfig{
			SendBuffer:     getEnvAsInt("ROOM_SEND_BUFFER", 256),
			DispatchQueue:  getEnvAsInt("ROOM_DISPATCH_QUEUE", 256),
			MaxMessageSize: int64(getEnvAsInt("ROOM_MAX_MESSAGE_SIZE", 512*1024)),
			TimestampTZ:    getEnv("ROOM_TIMESTAMP_TZ", "Local"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("TRACING_ENABLED", "false") == "true",
			Endpoint:    getEnv("TRACING_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "codecollab-backend"),
			SampleRatio: getEnvAsFloat("TRACING_SAMPLE_RATIO", 1.0),
		},
	}
}

// Location resolves the configured time zone for chat timestamps, falling back to server local time.
func (c RoomConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimestampTZ)
	if err != nil {
		log.Printf("Warn: unknown ROOM_TIMESTAMP_TZ %q, using server local time", c.TimestampTZ)
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
