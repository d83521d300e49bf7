package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	httptransport "ojoto/internal/http"
	"ojoto/internal/infra"
	"ojoto/internal/logging"
	"ojoto/internal/modules/contact"
	"ojoto/internal/modules/pricing"
	"ojoto/internal/modules/trip"
	"ojoto/internal/modules/user"
	"ojoto/internal/testing/fakes"
)

type stores struct {
	trips    trip.Store
	users    user.Store
	contacts contact.Store
}

// memoryStores runs the flow entirely in process.
func memoryStores(t *testing.T) stores {
	t.Helper()
	return stores{trips: fakes.NewTripStore(), users: fakes.NewUserStore(), contacts: fakes.NewContactStore()}
}

// postgresStores runs the flow against OJOTO_TEST_DSN, skipping when unset.
func postgresStores(t *testing.T) stores {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("OJOTO_TEST_DSN"))
	if dsn == "" {
		t.Skip("OJOTO_TEST_DSN not set; skipping Postgres-backed flow")
	}
	if err := infra.Migrate(dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(ctx, "TRUNCATE TABLE trips, users, contact_messages RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return stores{trips: trip.NewStore(db), users: user.NewStore(db), contacts: contact.NewStore(db)}
}

func newAPI(t *testing.T, s stores) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtm, err := infra.NewJWTManager(infra.JWTConfig{Secret: "integration-secret", Issuer: "ojoto", TTL: time.Hour})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	calc, err := pricing.NewCalculator(pricing.Rates{BaseFare: 200, RatePerKm: 500})
	if err != nil {
		t.Fatalf("calculator: %v", err)
	}
	srv := httptransport.NewServer(httptransport.ServerDeps{
		Trips:    trip.NewService(s.trips, calc, trip.Options{}),
		Pricing:  calc,
		Contact:  contact.NewService(s.contacts),
		Users:    user.NewService(s.users, jwtm).WithBcryptCost(bcrypt.MinCost),
		Verifier: jwtm,
		Logger:   logging.Discard(),
	})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			c.t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode
}

func register(t *testing.T, base, email string) *client {
	t.Helper()
	c := &client{t: t, base: base}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	status := c.do(http.MethodPost, "/api/auth/register", map[string]any{
		"fullname":     "Passenger " + email,
		"address":      "Independence Layout, Enugu",
		"phone_number": "+2348031234567",
		"email":        email,
		"password":     "ride-safe",
	}, &out)
	if status != http.StatusCreated || out.AccessToken == "" {
		t.Fatalf("register %s: status %d token %q", email, status, out.AccessToken)
	}
	c.token = out.AccessToken
	return c
}

type tripJSON struct {
	ID                 int64    `json:"id"`
	OriginAddress      string   `json:"origin_address"`
	DestinationAddress string   `json:"destination_address"`
	OriginLat          *float64 `json:"origin_lat"`
	DistanceKm         float64  `json:"distance_km"`
	Fare               float64  `json:"fare"`
	Date               string   `json:"date"`
	Time               string   `json:"time"`
	Status             string   `json:"status"`
	CreatedAt          string   `json:"created_at"`
}

type tripEnvelope struct {
	Msg   string   `json:"msg"`
	Trip  tripJSON `json:"trip"`
	Error string   `json:"error"`
}

func TestBookingFlow_InMemory(t *testing.T) {
	runBookingFlow(t, memoryStores(t))
}

func TestBookingFlow_Postgres(t *testing.T) {
	runBookingFlow(t, postgresStores(t))
}

func runBookingFlow(t *testing.T, s stores) {
	ts := newAPI(t, s)
	alice := register(t, ts.URL, "alice@example.com")
	bob := register(t, ts.URL, "bob@example.com")

	anon := &client{t: t, base: ts.URL}
	if status := anon.do(http.MethodGet, "/health", nil, nil); status != http.StatusOK {
		t.Fatalf("health: %d", status)
	}
	if status := anon.do(http.MethodGet, "/api/trips", nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("anonymous list: %d", status)
	}

	var created tripEnvelope
	status := alice.do(http.MethodPost, "/api/trips", map[string]any{
		"origin_address":      "Holy Ghost Cathedral",
		"destination_address": "Enugu Railway Station",
		"date":                "2026-11-02",
		"time":                "07:45",
		"distance_km":         "3.5",
		"origin_lat":          6.4413,
		"origin_lng":          7.4988,
		"fare":                5,
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create: %d %+v", status, created)
	}
	if created.Trip.Fare != 1950 || created.Trip.Status != "pending" || created.Trip.OriginLat == nil {
		t.Fatalf("created trip = %+v", created.Trip)
	}
	if _, err := time.Parse(time.RFC3339, created.Trip.CreatedAt); err != nil {
		t.Fatalf("created_at %q: %v", created.Trip.CreatedAt, err)
	}
	path := "/api/trips/" + strconv.FormatInt(created.Trip.ID, 10)

	var bad tripEnvelope
	if status := alice.do(http.MethodPost, "/api/trips", map[string]any{
		"origin_address": "Holy Ghost Cathedral",
		"date":           "2026-11-02",
		"time":           "07:45",
		"distance_km":    3,
	}, &bad); status != http.StatusBadRequest || bad.Error != "destination_address is required" {
		t.Fatalf("missing destination: %d %+v", status, bad)
	}

	var first, second tripEnvelope
	alice.do(http.MethodGet, path, nil, &first)
	alice.do(http.MethodGet, path, nil, &second)
	if !reflect.DeepEqual(first.Trip, second.Trip) {
		t.Fatalf("get not idempotent: %+v vs %+v", first.Trip, second.Trip)
	}

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		var env tripEnvelope
		if status := bob.do(method, path, map[string]any{"distance_km": 1}, &env); status != http.StatusNotFound {
			t.Fatalf("bob %s: expected 404, got %d", method, status)
		}
		if env.Error != "trip not found" {
			t.Fatalf("bob %s: error %q", method, env.Error)
		}
	}
	var bobTrips []tripJSON
	bob.do(http.MethodGet, "/api/trips", nil, &bobTrips)
	if len(bobTrips) != 0 {
		t.Fatalf("bob sees %d trips", len(bobTrips))
	}

	var updated tripEnvelope
	if status := alice.do(http.MethodPatch, path, map[string]any{"distance_km": 5}, &updated); status != http.StatusOK {
		t.Fatalf("update: %d", status)
	}
	if updated.Trip.Fare != 2700 || updated.Trip.OriginAddress != "Holy Ghost Cathedral" {
		t.Fatalf("updated trip = %+v", updated.Trip)
	}
	alice.do(http.MethodPut, path, map[string]any{"time": "18:00"}, &updated)
	if updated.Trip.Time != "18:00" || updated.Trip.Fare != 2700 || updated.Trip.DistanceKm != 5 {
		t.Fatalf("schedule update = %+v", updated.Trip)
	}

	var aliceTrips []tripJSON
	alice.do(http.MethodGet, "/api/trips", nil, &aliceTrips)
	if len(aliceTrips) != 1 || aliceTrips[0].ID != created.Trip.ID {
		t.Fatalf("alice trips = %+v", aliceTrips)
	}

	if status := alice.do(http.MethodDelete, path, nil, nil); status != http.StatusOK {
		t.Fatalf("delete: %d", status)
	}
	if status := alice.do(http.MethodGet, path, nil, nil); status != http.StatusNotFound {
		t.Fatalf("get after delete: %d", status)
	}

	if status := anon.do(http.MethodPost, "/api/contact", map[string]any{
		"name": "Alice", "email": "alice@example.com", "message": "Great ride",
	}, nil); status != http.StatusCreated {
		t.Fatalf("contact: %d", status)
	}
}
