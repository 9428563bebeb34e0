package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/snooker/internal/config"
	"github.com/playmatatu/snooker/internal/game"
	"github.com/playmatatu/snooker/internal/physics"
	"github.com/playmatatu/snooker/internal/table"
	"github.com/playmatatu/snooker/internal/ws"
)

func newTestRouter(t *testing.T) (*gin.Engine, context.CancelFunc) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Environment: "test", FrontendURL: "http://localhost:5173", TickRate: 60}
	layout := table.StandardLayout()
	shot := game.DefaultShotConfig(layout.BallRadius)
	session := game.NewSession(layout, physics.DefaultSettings(), shot)
	hub := ws.NewHub()
	runner := game.NewRunner(session, 5*time.Millisecond, hub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	go runner.Run(ctx)

	router := gin.New()
	SetupRoutes(router, Deps{Config: cfg, Layout: layout, Shot: shot, Runner: runner, Hub: hub})
	return router, cancel
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, "GET", "/api/v1/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "ok" || body["clients"] != float64(0) {
		t.Errorf("unexpected health body: %s", w.Body.String())
	}
}

func TestGetTableState(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, "GET", "/api/v1/table", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var snap game.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.Balls) != table.NumBalls || snap.CueBallInHand {
		t.Errorf("unexpected snapshot: balls=%d inHand=%v", len(snap.Balls), snap.CueBallInHand)
	}
}

func TestGetLayout(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, "GET", "/api/v1/table/layout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var layout table.Layout
	if err := json.Unmarshal(w.Body.Bytes(), &layout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(layout.Pockets) != 6 || len(layout.Cushions) != 6 {
		t.Errorf("expected 6 pockets and 6 cushions, got %d and %d", len(layout.Pockets), len(layout.Cushions))
	}
}

func TestUpdateSettings(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, "PUT", "/api/v1/table/settings",
		`{"friction_air":0.02,"rolling_friction":0,"density":0.002}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(router, "GET", "/api/v1/table/settings", "")
	var s physics.Settings
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.FrictionAir != 0.02 || s.RollingFriction != 0 || s.Density != 0.002 {
		t.Errorf("settings not applied: %+v", s)
	}
}

func TestUpdateSettingsRejectsBadInput(t *testing.T) {
	router, _ := newTestRouter(t)
	cases := map[string]string{
		"negative rolling": `{"friction_air":0.01,"rolling_friction":-1,"density":0.001}`,
		"zero density":     `{"friction_air":0.01,"rolling_friction":0.02,"density":0}`,
		"missing field":    `{"friction_air":0.01}`,
		"not json":         `friction`,
	}
	for name, body := range cases {
		if w := doRequest(router, "PUT", "/api/v1/table/settings", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, w.Code)
		}
	}
}

func TestPlaceCueBallWhileInPlay(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, "POST", "/api/v1/table/cue-ball/place", `{"x":600,"y":400}`)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if w := doRequest(router, "POST", "/api/v1/table/cue-ball/place", `{"x":600}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing y, got %d", w.Code)
	}
}

func TestResets(t *testing.T) {
	router, _ := newTestRouter(t)
	for _, path := range []string{"/api/v1/table/reset", "/api/v1/table/cue-ball/reset"} {
		w := doRequest(router, "POST", path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		var snap game.Snapshot
		if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
		if len(snap.Balls) != table.NumBalls {
			t.Errorf("%s: expected %d balls, got %d", path, table.NumBalls, len(snap.Balls))
		}
	}
}

func TestTableUnavailableAfterStop(t *testing.T) {
	router, cancel := newTestRouter(t)
	cancel()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if w := doRequest(router, "GET", "/api/v1/table", ""); w.Code == http.StatusServiceUnavailable {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("expected 503 once the runner has stopped")
}
