package config

import (
	"os"
	"strings"
	"time"
)

// BuildAPIURL is set at build time:
//
//	go build -ldflags "-X github.com/srinijamadireddy19/Blog-Digest/config.BuildAPIURL=https://api.example.com"
var BuildAPIURL string

const (
	DEFAULT_API_URL         = "http://localhost:5000"
	DEFAULT_REQUEST_TIMEOUT = 60 * time.Second
	DEFAULT_CACHE_SIZE      = 32

	DEFAULT_PORT          = "5000"
	DEFAULT_RESULT_TTL    = 24 * time.Hour
	DEFAULT_MAX_UPLOAD    = 10 << 20
	DEFAULT_FETCH_TIMEOUT = 20 * time.Second
	DEFAULT_OPENAI_MODEL  = "gpt-4o-mini"
)

// runtimeAPIURLKeys are checked in order after the build-time value.
var runtimeAPIURLKeys = []string{"BLOGDIGEST_API_URL", "API_URL"}

// ResolveAPIBaseURL picks the Processing Service base URL. The first
// non-empty source wins: build-time variable, runtime environment, default.
func ResolveAPIBaseURL() string {
	if v := strings.TrimSpace(BuildAPIURL); v != "" {
		return strings.TrimRight(v, "/")
	}
	for _, key := range runtimeAPIURLKeys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return strings.TrimRight(v, "/")
		}
	}
	return DEFAULT_API_URL
}

type ClientSettings struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	CacheSize      int
}

func LoadClientSettings() ClientSettings {
	return ClientSettings{
		APIBaseURL:     ResolveAPIBaseURL(),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", DEFAULT_REQUEST_TIMEOUT),
		CacheSize:      envInt("RESULT_CACHE_SIZE", DEFAULT_CACHE_SIZE),
	}
}

type ValkeySettings struct {
	Address  string
	Password string
	UseTLS   bool
}

type StubSettings struct {
	Port               string
	StoreBackend       string
	Valkey             ValkeySettings
	ResultTTL          time.Duration
	MaxUploadBytes     int64
	FetchTimeout       time.Duration
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	TranslationTargets []string
}

func LoadStubSettings() StubSettings {
	port := envString("PORT", DEFAULT_PORT)
	port = strings.TrimPrefix(port, ":")

	return StubSettings{
		Port:         port,
		StoreBackend: strings.ToLower(envString("STORE_BACKEND", "memory")),
		Valkey: ValkeySettings{
			Address:  os.Getenv("VALKEY_INIT_ADDRESS"),
			Password: os.Getenv("VALKEY_PASSWORD"),
			UseTLS:   envBool("VALKEY_TLS"),
		},
		ResultTTL:          envDuration("RESULT_TTL", DEFAULT_RESULT_TTL),
		MaxUploadBytes:     int64(envInt("MAX_UPLOAD_BYTES", DEFAULT_MAX_UPLOAD)),
		FetchTimeout:       envDuration("FETCH_TIMEOUT", DEFAULT_FETCH_TIMEOUT),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        envString("OPENAI_MODEL", DEFAULT_OPENAI_MODEL),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		TranslationTargets: envList("TRANSLATION_TARGETS", []string{"es", "fr", "de"}),
	}
}
