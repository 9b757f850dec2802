package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName("waymark.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// SetDefaults registers default values without requiring a config file.
// Tests and the CLI harness use this directly.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./waymarklogs")
	viper.SetDefault("profile", "unnamed")

	// Gesture disambiguation timer delay in milliseconds and the pixel
	// radius inside which a press counts as hitting an existing marker.
	viper.SetDefault("gesture.delayMs", 400)
	viper.SetDefault("gesture.hitRadius", 24)

	// Trash zone geometry in viewport pixels. Shape is "rect" or "circle".
	viper.SetDefault("trash.shape", "rect")
	viper.SetDefault("trash.x", 1160)
	viper.SetDefault("trash.y", 640)
	viper.SetDefault("trash.width", 120)
	viper.SetDefault("trash.height", 80)
	viper.SetDefault("trash.centerX", 1220)
	viper.SetDefault("trash.centerY", 680)
	viper.SetDefault("trash.radius", 60)

	viper.SetDefault("icons.dir", "./icons")

	// Simulated viewport center for the console harness.
	viper.SetDefault("map.centerLat", 10.0)
	viper.SetDefault("map.centerLng", 20.0)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.sqlitePath", "./waymark.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "waymark")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "waymark-metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// GestureDelay returns the disambiguation timer delay.
func GestureDelay() time.Duration {
	return time.Duration(viper.GetInt("gesture.delayMs")) * time.Millisecond
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float64 config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}
