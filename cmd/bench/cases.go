// README: Bench cases for sessions, search, selection, history, plus DB/Redis and throughput checks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg     Config
	httpc   *http.Client
	db      *pgxpool.Pool
	redis   *redis.Client
	session string
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
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

	tests := selectCases(r.cases(), r.cfg.Only)
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
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
	base := r.cfg.BaseURL
	origin := map[string]float64{"lat": r.cfg.Lat, "lng": r.cfg.Lng}
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "Postgres reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Name: "db", Status: "FAIL", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "Redis reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "FAIL", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "Optionally apply migration SQL",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				stmts := splitSQL(string(sql))
				for _, s := range stmts {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "Tables from migrations/0001_init.sql exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table: " + t}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "API: server reachable",
			Focus: "API answers requests",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				resp, err := r.httpc.Get(base + "/health")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				_ = resp.Body.Close()
				return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			},
		},

		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),

		// Sessions
		httpCase("Session: create anonymous session", base+"/api/sessions", nil, []int{200}, []int{404}),
		{
			Name:  "Session: malformed id -> 400",
			Focus: "X-Session-ID must be a uuid",
			Run: func(ctx context.Context, r *Runner) Result {
				return doCase(ctx, r, http.MethodPost, base+"/api/sessions", nil,
					map[string]string{"X-Session-ID": "not-a-uuid"}, []int{400}, []int{404})
			},
		},

		// Search
		httpCase("Search: defaults", base+"/api/restaurants/search", map[string]any{
			"location": origin,
		}, []int{200}, []int{404, 502}),

		httpCase("Search: cuisine + budget", base+"/api/restaurants/search", map[string]any{
			"location": origin,
			"filters": map[string]any{
				"radius_meters":        5000,
				"max_price_level":      1,
				"min_rating":           4.5,
				"cuisine_type":         "thai",
				"max_duration_minutes": 15,
			},
		}, []int{200}, []int{404, 502}),

		httpCase("Search: missing location -> 400", base+"/api/restaurants/search", map[string]any{}, []int{400}, []int{404}),

		httpCase("Search: rating not a half step -> 400", base+"/api/restaurants/search", map[string]any{
			"location": origin,
			"filters":  map[string]any{"min_rating": 4.2},
		}, []int{400}, []int{404}),

		httpCase("Search: radius above 50km -> 400", base+"/api/restaurants/search", map[string]any{
			"location": origin,
			"filters":  map[string]any{"radius_meters": 60000},
		}, []int{400}, []int{404}),

		// Selection
		httpCase("Select: empty list -> null", base+"/api/restaurants/select", map[string]any{
			"restaurants": []any{},
		}, []int{200}, []int{404}),

		httpCase("Select: three candidates", base+"/api/restaurants/select", map[string]any{
			"restaurants": sampleRestaurants(),
		}, []int{200}, []int{404}),

		// Reveal flow
		httpCase("Recommend: defaults", base+"/api/recommendations", map[string]any{
			"location": origin,
		}, []int{200}, []int{404, 502}),

		httpCaseMethod("History: list", http.MethodGet, base+"/api/history", nil, []int{200}, []int{404}),

		httpCaseMethod("History: rating out of range -> 400", http.MethodPut, base+"/api/history/1/rating", map[string]any{
			"rating": 9,
		}, []int{400}, []int{404}),

		httpCaseMethod("History: unknown id reveal -> 404", http.MethodPost, base+"/api/history/999999999/reveal", nil, []int{404}, nil),

		manualCase("Search: relaxation notifications", "Pick a sparse area and check radius/rating/budget/cuisine warnings in order"),
		manualCase("Search: duration fail-open", "Disable the Distance Matrix API key scope and check candidates come back with travel=null"),
		manualCase("Recommend: recent visits excluded", "Recommend 10 times in one session and check no place repeats"),

		// Error handling
		manualCase("Error: Redis down -> history served from Postgres", "Stop Redis and check /api/recommendations still excludes recent visits"),
		manualCase("Error: provider quota -> terminal notification", "Exhaust the Places quota and check the search ends with the error notification"),

		// Concurrency
		{
			Name:  "Concurrency: parallel session creation",
			Focus: "Every caller gets a distinct session id",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentSessions(ctx, r, base+"/api/sessions")
			},
		},

		// Performance
		{
			Name:  "Perf: select throughput",
			Focus: "Selection is local and should sustain high rps",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/restaurants/select", map[string]any{
					"restaurants": sampleRestaurants(),
				})
			},
		},
	}
}

func sampleRestaurants() []map[string]any {
	out := make([]map[string]any, 3)
	for i := range out {
		out[i] = map[string]any{
			"place_id": fmt.Sprintf("bench-%d", i),
			"name":     fmt.Sprintf("Bench Bistro %d", i),
			"location": map[string]float64{"lat": 46.2 + float64(i)/100, "lng": 6.14},
		}
	}
	return out
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			return doCase(ctx, r, method, url, body, nil, okStatuses, pendingStatuses)
		},
	}
}

// doCase sends one request under the runner's bench session and grades the status code.
func doCase(ctx context.Context, r *Runner, method, url string, body any, header map[string]string, okStatuses, pendingStatuses []int) Result {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = strings.NewReader(string(b))
	}
	req, _ := http.NewRequestWithContext(ctx, method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if r.session != "" {
		req.Header.Set("X-Session-ID", r.session)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	if sid := resp.Header.Get("X-Session-ID"); sid != "" && r.session == "" {
		r.session = sid
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	latency := time.Since(start)

	if contains(okStatuses, resp.StatusCode) {
		return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
	}
	if contains(pendingStatuses, resp.StatusCode) {
		return Result{Status: "PENDING", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
	}
	return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
}

func manualCase(name, note string) TestCase {
	return TestCase{
		Name:  name,
		Focus: "Manual",
		Run: func(ctx context.Context, r *Runner) Result {
			return Result{Status: "SKIP", Note: note}
		},
	}
}

func concurrentSessions(ctx context.Context, r *Runner, url string) Result {
	wg := sync.WaitGroup{}
	mu := sync.Mutex{}
	seen := map[string]int{}
	failed := 0

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
			resp, err := r.httpc.Do(req)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				return
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				failed++
				return
			}
			seen[resp.Header.Get("X-Session-ID")]++
		}()
	}
	wg.Wait()

	if failed > 0 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("failed=%d", failed)}
	}
	for id, n := range seen {
		if id == "" || n > 1 {
			return Result{Status: "FAIL", Note: fmt.Sprintf("duplicate or empty session id %q", id)}
		}
	}
	return Result{Status: "PASS", Note: fmt.Sprintf("sessions=%d", len(seen))}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	cleaned := strings.Join(filtered, "\n")
	parts := strings.Split(cleaned, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
