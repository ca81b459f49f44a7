package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store, record bool) (*Server, *httptest.Server) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Game = config.DefaultConfig()
	cfg.Game.TickRate = 50
	cfg.Record = record

	s := NewServer(cfg, store, log.New(io.Discard))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Shutdown() //nolint:errcheck // Test cleanup
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	//nolint:errcheck // ReadJSON reports the failure
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return f
}

func TestIndex(t *testing.T) {
	_, ts := newTestServer(t, nil, false)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, expected 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `<canvas id="board" width="200" height="200">`) {
		t.Errorf("page does not size the board from config:\n%s", body)
	}
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, nil, false)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("GET /healthz = %d %s", rec.Code, rec.Body.String())
	}
}

func TestWebsocketPlaysGame(t *testing.T) {
	_, ts := newTestServer(t, nil, false)
	conn := dial(t, ts)
	defer conn.Close()

	first := readFrame(t, conn)
	if first.Session == "" {
		t.Error("frame has no session id")
	}
	if first.Snapshot.Tick != 0 || len(first.Snapshot.Body) != 2 {
		t.Errorf("first frame = %+v, expected the start state", first.Snapshot)
	}
	if first.Draw == nil || len(first.Draw.Squares) != 3 || first.Draw.Background == "" {
		t.Fatalf("first frame draw list = %+v", first.Draw)
	}

	if err := conn.WriteJSON(Input{Button: "down"}); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	for range 50 {
		f := readFrame(t, conn)
		if f.Session != first.Session {
			t.Fatalf("session changed from %s to %s", first.Session, f.Session)
		}
		if f.Snapshot.Direction == "down" {
			return
		}
	}
	t.Error("direction never changed to down")
}

func TestWebsocketIgnoresUnknownButtons(t *testing.T) {
	_, ts := newTestServer(t, nil, false)
	conn := dial(t, ts)
	defer conn.Close()

	readFrame(t, conn)
	if err := conn.WriteJSON(Input{Button: "jump"}); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	for range 3 {
		if f := readFrame(t, conn); f.Snapshot.Direction != "right" {
			t.Fatalf("direction = %s, expected right", f.Snapshot.Direction)
		}
	}
}

func TestRecordedSessionIsListed(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	s, ts := newTestServer(t, store, true)
	conn := dial(t, ts)
	readFrame(t, conn)
	readFrame(t, conn)
	conn.Close()

	// Shutdown waits for the game to save its recording.
	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/runs = %d", rec.Code)
	}
	var runs []runSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Host != "web" {
		t.Fatalf("runs = %+v, expected one web run", runs)
	}
	if runs[0].Ticks == 0 {
		t.Error("saved run has no ticks")
	}
}
