// README: Smoke cases: environment, account flow, trip lifecycle, ownership, fare quote, throughput.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"ojoto/internal/infra"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client

	// state carried between cases
	token      string
	otherToken string
	tripID     int64
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	return []TestCase{
		{Name: "Env: Postgres connect", Run: checkPostgres},
		{Name: "Env: Redis connect", Run: checkRedis},
		{Name: "Migration: apply (optional)", Run: applyMigration},
		{Name: "Migration: tables exist", Run: checkTables},
		{Name: "API: health", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodGet, "/health", "", nil, http.StatusOK, nil)
		}},

		{Name: "Auth: register passenger", Run: func(ctx context.Context, r *Runner) Result {
			tok, res := r.register(ctx)
			r.token = tok
			return res
		}},
		{Name: "Auth: register second passenger", Run: func(ctx context.Context, r *Runner) Result {
			tok, res := r.register(ctx)
			r.otherToken = tok
			return res
		}},
		{Name: "Auth: profile", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodGet, "/api/auth/profile", r.token, nil, http.StatusOK, nil)
		}},

		{Name: "Trip: create without token -> 401", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodPost, "/api/trips", "", booking(3.5), http.StatusUnauthorized, nil)
		}},
		{Name: "Trip: missing destination -> 400", Run: func(ctx context.Context, r *Runner) Result {
			body := booking(3.5)
			delete(body, "destination_address")
			return r.expect(ctx, http.MethodPost, "/api/trips", r.token, body, http.StatusBadRequest, nil)
		}},
		{Name: "Trip: create prices server-side", Run: func(ctx context.Context, r *Runner) Result {
			var out struct {
				Trip tripBody `json:"trip"`
			}
			res := r.expect(ctx, http.MethodPost, "/api/trips", r.token, booking(3.5), http.StatusCreated, &out)
			if res.Status != statusPass {
				return res
			}
			r.tripID = out.Trip.ID
			return r.checkFare(res, out.Trip.Fare, 3.5)
		}},
		{Name: "Trip: list contains created", Run: func(ctx context.Context, r *Runner) Result {
			var out []tripBody
			res := r.expect(ctx, http.MethodGet, "/api/trips", r.token, nil, http.StatusOK, &out)
			if res.Status == statusPass && (len(out) == 0 || out[len(out)-1].ID != r.tripID) {
				res.Status, res.Note = statusFail, fmt.Sprintf("trip %d missing from list", r.tripID)
			}
			return res
		}},
		{Name: "Trip: update distance reprices", Run: func(ctx context.Context, r *Runner) Result {
			var out struct {
				Trip tripBody `json:"trip"`
			}
			body := map[string]any{"distance_km": 5, "fare": 1}
			res := r.expect(ctx, http.MethodPut, r.tripPath(), r.token, body, http.StatusOK, &out)
			if res.Status != statusPass {
				return res
			}
			return r.checkFare(res, out.Trip.Fare, 5)
		}},
		{Name: "Trip: foreign get -> 404", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodGet, r.tripPath(), r.otherToken, nil, http.StatusNotFound, nil)
		}},
		{Name: "Trip: foreign delete -> 404", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodDelete, r.tripPath(), r.otherToken, nil, http.StatusNotFound, nil)
		}},
		{Name: "Trip: delete", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodDelete, r.tripPath(), r.token, nil, http.StatusOK, nil)
		}},
		{Name: "Trip: get after delete -> 404", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodGet, r.tripPath(), r.token, nil, http.StatusNotFound, nil)
		}},

		{Name: "Fare: quote", Run: func(ctx context.Context, r *Runner) Result {
			var q struct {
				Fare float64 `json:"fare"`
			}
			res := r.expect(ctx, http.MethodGet, "/api/fares/quote?distance_km=2", "", nil, http.StatusOK, &q)
			if res.Status != statusPass {
				return res
			}
			return r.checkFare(res, q.Fare, 2)
		}},
		{Name: "Contact: submit", Run: func(ctx context.Context, r *Runner) Result {
			body := map[string]any{"name": "Bench", "email": "bench@example.com", "message": "smoke test"}
			return r.expect(ctx, http.MethodPost, "/api/contact", "", body, http.StatusCreated, nil)
		}},

		{Name: "Perf: trip create throughput", Run: perfCreate},
	}
}

type tripBody struct {
	ID   int64   `json:"id"`
	Fare float64 `json:"fare"`
}

func booking(distance float64) map[string]any {
	return map[string]any{
		"origin_address":      "Ogbete Main Market",
		"destination_address": "Polo Park Mall",
		"date":                time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		"time":                "09:15",
		"distance_km":         distance,
	}
}

func (r *Runner) tripPath() string {
	return "/api/trips/" + strconv.FormatInt(r.tripID, 10)
}

func (r *Runner) checkFare(res Result, got, distance float64) Result {
	want := r.cfg.BaseFare + r.cfg.RatePerKm*distance
	if math.Abs(got-want) > 1e-9 {
		res.Status = statusFail
		res.Note = fmt.Sprintf("fare=%v want=%v", got, want)
	}
	return res
}

func (r *Runner) register(ctx context.Context) (string, Result) {
	body := map[string]any{
		"fullname":     "Bench Passenger",
		"address":      "1 Bench Road",
		"phone_number": "+2348000000000",
		"email":        "bench-" + uuid.NewString() + "@example.com",
		"password":     "bench-secret",
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	res := r.expect(ctx, http.MethodPost, "/api/auth/register", "", body, http.StatusCreated, &out)
	if res.Status == statusPass && out.AccessToken == "" {
		res.Status, res.Note = statusFail, "no access_token"
	}
	return out.AccessToken, res
}

// expect performs one request and passes when the status matches; out, when
// non-nil, receives the decoded body.
func (r *Runner) expect(ctx context.Context, method, path, token string, body any, want int, out any) Result {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, reader)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	latency := time.Since(start)

	if resp.StatusCode != want {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d body=%s", resp.StatusCode, raw)}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return Result{Status: statusFail, Latency: latency, Note: "decode: " + err.Error()}
		}
	}
	return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
}

func checkPostgres(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusSkip, Note: "db not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.db.Ping(ctx); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func checkRedis(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: statusSkip, Note: "redis not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func applyMigration(_ context.Context, r *Runner) Result {
	if !r.cfg.ApplyMigration {
		return Result{Status: statusSkip, Note: "apply-migration=false"}
	}
	if r.cfg.DSN == "" {
		return Result{Status: statusFail, Note: "db not configured"}
	}
	if err := infra.Migrate(r.cfg.DSN); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func checkTables(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusSkip, Note: "db not configured"}
	}
	for _, t := range []string{"users", "trips", "contact_messages"} {
		var exists bool
		err := r.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)", t,
		).Scan(&exists)
		if err != nil {
			return Result{Status: statusFail, Note: err.Error()}
		}
		if !exists {
			return Result{Status: statusFail, Note: "missing table: " + t}
		}
	}
	return Result{Status: statusPass}
}

func perfCreate(ctx context.Context, r *Runner) Result {
	if r.token == "" {
		return Result{Status: statusSkip, Note: "no passenger token"}
	}
	b, _ := json.Marshal(booking(1.2))
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/api/trips", bytes.NewReader(b))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer "+r.token)
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				if resp.StatusCode != http.StatusCreated {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}
