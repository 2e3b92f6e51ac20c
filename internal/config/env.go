package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// Midtrans Snap
	MidtransServerKey     string
	MidtransClientKey     string
	MidtransBaseURL       string
	MidtransSnapScriptURL string
	SkipSignature         bool
	GatewayTimeout        time.Duration

	MinLeadDays int

	JWTSecret string

	// operator alert channels, each optional
	KafkaBrokers    string
	KafkaAlertTopic string
	TelegramToken   string
	TelegramChatID  int64

	CORSAllowedOrigins []string
	TokenizerRPS       float64
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	return Env{
		AppAddr: appAddr,
		GinMode: ginMode,

		DBUser: getenv("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "travel_app"),

		MidtransServerKey:     strings.TrimSpace(os.Getenv("MIDTRANS_SERVER_KEY")),
		MidtransClientKey:     strings.TrimSpace(os.Getenv("MIDTRANS_CLIENT_KEY")),
		MidtransBaseURL:       getenv("MIDTRANS_BASE_URL", "https://app.sandbox.midtrans.com"),
		MidtransSnapScriptURL: getenv("MIDTRANS_SNAP_URL", "https://app.sandbox.midtrans.com/snap/snap.js"),
		SkipSignature:         getbool("MIDTRANS_SKIP_SIGNATURE", false),
		GatewayTimeout:        getduration("GATEWAY_TIMEOUT", 15*time.Second),

		MinLeadDays: getint("MIN_LEAD_DAYS", 3),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		KafkaBrokers:    strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		KafkaAlertTopic: getenv("KAFKA_ALERT_TOPIC", "travel.operator-alerts"),
		TelegramToken:   strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:  int64(getint("TELEGRAM_CHAT_ID", 0)),

		CORSAllowedOrigins: getlist("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),
		TokenizerRPS: getfloat("TOKENIZER_RPS", 5),
	}
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func getint(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getfloat(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func getbool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getduration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getlist(k string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
