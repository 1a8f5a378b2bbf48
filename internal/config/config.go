package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ProjectID      string
	Region         string
	LogLevel       string
	Port           string
	KMSKeyName     string
	VertexModel    string
	BanksURL       string
	QRImageHost    string
	HTTPTimeout    time.Duration
	SQLitePath     string
	AllowedOrigins []string
}

// New reads configuration from the environment. Names match the Cloud Run
// service definition (PROJECTID, LOGLEVEL, ...).
func New() *Config {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("loglevel", "info")
	v.SetDefault("region", "asia-southeast1")
	v.SetDefault("vertexmodel", "gemini-2.0-flash")
	v.SetDefault("banksurl", "https://api.vietqr.io/v2/banks")
	v.SetDefault("qrimagehost", "img.vietqr.io")
	v.SetDefault("httptimeout", "10s")
	v.SetDefault("sqlitepath", "luongnho.db")
	v.SetDefault("allowedorigins", "*")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return &Config{
		ProjectID:      v.GetString("projectid"),
		Region:         v.GetString("region"),
		LogLevel:       v.GetString("loglevel"),
		Port:           v.GetString("port"),
		KMSKeyName:     v.GetString("kmskeyname"),
		VertexModel:    v.GetString("vertexmodel"),
		BanksURL:       v.GetString("banksurl"),
		QRImageHost:    v.GetString("qrimagehost"),
		HTTPTimeout:    v.GetDuration("httptimeout"),
		SQLitePath:     v.GetString("sqlitepath"),
		AllowedOrigins: splitList(v.GetString("allowedorigins")),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
