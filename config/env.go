// Package config loads application settings from config/app.json and .env,
// layered over built-in defaults (.env wins over app.json, app.json wins
// over defaults). Missing files are fine; a developer can run the API with
// no configuration at all against local Mongo and Redis.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

var defaults = map[string]string{
	"MONGO_URI":          "mongodb://localhost:27017",
	"MONGO_DB":           "bistroDb",
	"REDIS_ADDR":         "localhost:6379",
	"REDIS_PASSWORD":     "",
	"JWT_SECRET":         "change-me-in-production",
	"STRIPE_SECRET":      "",
	"APP_PORT":           "3000",
	"APP_ENV":            "local",
	"LOG_MONGO":          "false",
	"STORAGE_DISK":       "local",
	"STORAGE_LOCAL_ROOT": "storage",
	"STORAGE_URL":        "http://localhost:3000/storage",
	"S3_REGION":          "us-east-1",
}

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = copyDefaults()
)

func copyDefaults() map[string]string {
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

// Load reads config/app.json and .env once. Every accessor calls it, so
// explicit calls are only needed to surface file errors at startup.
func Load() error {
	loadOnce.Do(func() {
		merged := copyDefaults()
		for _, src := range []struct {
			path  string
			merge func(string, map[string]string) error
		}{
			{"config/app.json", mergeJSON},
			{".env", mergeDotEnv},
		} {
			if err := src.merge(src.path, merged); err != nil && !os.IsNotExist(err) {
				loadErr = err
				return
			}
		}

		mu.Lock()
		values = merged
		mu.Unlock()
	})
	return loadErr
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()
	if v := strings.TrimSpace(values[key]); v != "" {
		return v
	}
	return fallback
}

// Get reads any key by name with a fallback. Keys from .env and app.json
// are available after the first access.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

func MongoURI() string  { _ = Load(); return get("MONGO_URI", defaults["MONGO_URI"]) }
func MongoDB() string   { _ = Load(); return get("MONGO_DB", defaults["MONGO_DB"]) }
func RedisAddr() string { _ = Load(); return get("REDIS_ADDR", defaults["REDIS_ADDR"]) }

func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

func JWTSecret() string { _ = Load(); return get("JWT_SECRET", defaults["JWT_SECRET"]) }

// StripeSecret returns the payment processor's secret API key.
// Empty means the payment-intent endpoint is effectively disabled.
func StripeSecret() string { _ = Load(); return get("STRIPE_SECRET", "") }

func AppPort() string { _ = Load(); return get("APP_PORT", defaults["APP_PORT"]) }
func AppEnv() string  { _ = Load(); return get("APP_ENV", defaults["APP_ENV"]) }

// LogMongo reports whether log records should also be stored in MongoDB.
func LogMongo() bool { _ = Load(); return get("LOG_MONGO", "false") == "true" }

func StorageDefault() string   { _ = Load(); return get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { _ = Load(); return get("STORAGE_LOCAL_ROOT", "storage") }
func StorageURL() string       { _ = Load(); return get("STORAGE_URL", defaults["STORAGE_URL"]) }

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", defaults["S3_REGION"]) }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

func mergeJSON(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}
		if k := strings.ToUpper(strings.TrimSpace(key)); k != "" {
			out[k] = strings.TrimSpace(s)
		}
	}
	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		out[key] = strings.Trim(strings.TrimSpace(value), `"'`)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}
