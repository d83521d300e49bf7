// README: Smoke/bench runner for a deployed API; executes HTTP, DB and Redis checks and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case statusPass:
			pass++
		case statusFail:
			fail++
		case statusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 || (cfg.Strict && skipped > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	ApplyMigration bool
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
	BaseFare       float64
	RatePerKm      float64
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("OJOTO_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", envOrDefault("OJOTO_DB_DSN", ""), "Postgres DSN (empty skips DB checks)")
	flag.StringVar(&cfg.RedisAddr, "redis", envOrDefault("OJOTO_REDIS_ADDR", ""), "Redis address (empty skips Redis checks)")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", envOrDefaultBool("OJOTO_BENCH_APPLY_MIGRATION", false), "Apply embedded migrations before tests")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("OJOTO_BENCH_STRICT", false), "Fail on skipped checks")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("OJOTO_BENCH_TIMEOUT", 60*time.Second), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("OJOTO_BENCH_CONCURRENCY", 10), "Concurrency for perf checks")
	flag.DurationVar(&cfg.Duration, "duration", envOrDefaultDuration("OJOTO_BENCH_DURATION", 5*time.Second), "Duration for perf checks")
	flag.Float64Var(&cfg.BaseFare, "base-fare", envOrDefaultFloat("OJOTO_FARE_BASE", 200), "Expected base fare")
	flag.Float64Var(&cfg.RatePerKm, "rate-per-km", envOrDefaultFloat("OJOTO_FARE_PER_KM", 500), "Expected rate per km")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
