package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gridline/gamecast/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	DBURL                          string
	DBDisablePreparedBinary        bool
	CORSAllowedOrigins             []string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
	UptraceEnabled                 bool
	UptraceDSN                     string
	BetterStackEnabled             bool
	BetterStackEndpoint            string
	BetterStackToken               string
	BetterStackTimeout             time.Duration
	BetterStackMinLevel            logging.Level
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	InternalJobToken               string
	NarrativeBaseURL               string
	NarrativeToken                 string
	NarrativeModel                 string
	NarrativeTimeout               time.Duration
	NarrativeMaxRetries            int
	NarrativeCircuitEnabled        bool
	NarrativeCircuitFailureCount   int
	NarrativeCircuitOpenTimeout    time.Duration
	NarrativeCircuitHalfOpenMaxReq int
	SpeechBaseURL                  string
	SpeechToken                    string
	SpeechVoice                    string
	SpeechTimeout                  time.Duration
	SpeechPollInterval             time.Duration
	SpeechPollTimeout              time.Duration
	MediaBaseURL                   string
	MediaToken                     string
	MediaTimeout                   time.Duration
	MediaPollInterval              time.Duration
	MediaPollTimeout               time.Duration
	MediaWorkerCount               int
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	narrativeTimeout, err := time.ParseDuration(getEnv("NARRATIVE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NARRATIVE_TIMEOUT: %w", err)
	}
	if narrativeTimeout <= 0 {
		return Config{}, fmt.Errorf("NARRATIVE_TIMEOUT must be > 0")
	}
	narrativeMaxRetries, err := getEnvAsInt("NARRATIVE_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse NARRATIVE_MAX_RETRIES: %w", err)
	}
	if narrativeMaxRetries < 0 {
		return Config{}, fmt.Errorf("NARRATIVE_MAX_RETRIES must be >= 0")
	}
	narrativeCircuitEnabled, err := strconv.ParseBool(getEnv("NARRATIVE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NARRATIVE_CIRCUIT_ENABLED: %w", err)
	}
	narrativeCircuitFailureCount, err := getEnvAsInt("NARRATIVE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NARRATIVE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if narrativeCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NARRATIVE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	narrativeCircuitOpenTimeout, err := time.ParseDuration(getEnv("NARRATIVE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NARRATIVE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if narrativeCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NARRATIVE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	narrativeCircuitHalfOpenMaxReq, err := getEnvAsInt("NARRATIVE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NARRATIVE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if narrativeCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("NARRATIVE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	speechTimeout, err := time.ParseDuration(getEnv("SPEECH_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPEECH_TIMEOUT: %w", err)
	}
	if speechTimeout <= 0 {
		return Config{}, fmt.Errorf("SPEECH_TIMEOUT must be > 0")
	}
	speechPollInterval, err := time.ParseDuration(getEnv("SPEECH_POLL_INTERVAL", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPEECH_POLL_INTERVAL: %w", err)
	}
	if speechPollInterval <= 0 {
		return Config{}, fmt.Errorf("SPEECH_POLL_INTERVAL must be > 0")
	}
	speechPollTimeout, err := time.ParseDuration(getEnv("SPEECH_POLL_TIMEOUT", "2m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPEECH_POLL_TIMEOUT: %w", err)
	}
	if speechPollTimeout <= 0 {
		return Config{}, fmt.Errorf("SPEECH_POLL_TIMEOUT must be > 0")
	}

	mediaTimeout, err := time.ParseDuration(getEnv("MEDIA_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MEDIA_TIMEOUT: %w", err)
	}
	if mediaTimeout <= 0 {
		return Config{}, fmt.Errorf("MEDIA_TIMEOUT must be > 0")
	}
	mediaPollInterval, err := time.ParseDuration(getEnv("MEDIA_POLL_INTERVAL", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MEDIA_POLL_INTERVAL: %w", err)
	}
	if mediaPollInterval <= 0 {
		return Config{}, fmt.Errorf("MEDIA_POLL_INTERVAL must be > 0")
	}
	mediaPollTimeout, err := time.ParseDuration(getEnv("MEDIA_POLL_TIMEOUT", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MEDIA_POLL_TIMEOUT: %w", err)
	}
	if mediaPollTimeout <= 0 {
		return Config{}, fmt.Errorf("MEDIA_POLL_TIMEOUT must be > 0")
	}
	mediaWorkerCount, err := getEnvAsInt("MEDIA_WORKER_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse MEDIA_WORKER_COUNT: %w", err)
	}
	if mediaWorkerCount < 1 {
		return Config{}, fmt.Errorf("MEDIA_WORKER_COUNT must be >= 1")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "gamecast-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                          strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:        dbDisablePreparedBinary,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		BetterStackEnabled:             betterStackEnabled,
		BetterStackEndpoint:            betterStackEndpoint,
		BetterStackToken:               strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:             betterStackTimeout,
		BetterStackMinLevel:            parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		InternalJobToken:               strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		NarrativeBaseURL:               strings.TrimSpace(getEnv("NARRATIVE_BASE_URL", "")),
		NarrativeToken:                 strings.TrimSpace(getEnv("NARRATIVE_TOKEN", "")),
		NarrativeModel:                 strings.TrimSpace(getEnv("NARRATIVE_MODEL", "recap-writer-1")),
		NarrativeTimeout:               narrativeTimeout,
		NarrativeMaxRetries:            narrativeMaxRetries,
		NarrativeCircuitEnabled:        narrativeCircuitEnabled,
		NarrativeCircuitFailureCount:   narrativeCircuitFailureCount,
		NarrativeCircuitOpenTimeout:    narrativeCircuitOpenTimeout,
		NarrativeCircuitHalfOpenMaxReq: narrativeCircuitHalfOpenMaxReq,
		SpeechBaseURL:                  strings.TrimSpace(getEnv("SPEECH_BASE_URL", "")),
		SpeechToken:                    strings.TrimSpace(getEnv("SPEECH_TOKEN", "")),
		SpeechVoice:                    strings.TrimSpace(getEnv("SPEECH_VOICE", "broadcast-1")),
		SpeechTimeout:                  speechTimeout,
		SpeechPollInterval:             speechPollInterval,
		SpeechPollTimeout:              speechPollTimeout,
		MediaBaseURL:                   strings.TrimSpace(getEnv("MEDIA_BASE_URL", "")),
		MediaToken:                     strings.TrimSpace(getEnv("MEDIA_TOKEN", "")),
		MediaTimeout:                   mediaTimeout,
		MediaPollInterval:              mediaPollInterval,
		MediaPollTimeout:               mediaPollTimeout,
		MediaWorkerCount:               mediaWorkerCount,
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
