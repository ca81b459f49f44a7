// Package web hosts snake sessions in the browser: a gin server serves a
// canvas page, and each websocket connection plays its own game.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

//go:embed assets/index.html
var assets embed.FS

const writeWait = 5 * time.Second

// Config holds configuration for the web server.
type Config struct {
	Addr      string        // host:port to listen on
	Game      config.Config // Every connection starts from this
	Record    bool          // Save each connection as a run
	Autopilot bool          // Steer every connection automatically
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr: ":8080",
		Game: config.DefaultConfig(),
	}
}

// Frame is one server-to-browser message.
type Frame struct {
	Session  string         `json:"session"`
	Snapshot snake.Snapshot `json:"snapshot"`
	Draw     *core.DrawList `json:"draw"`
}

// Input is one browser-to-server message.
type Input struct {
	Button string `json:"button"`
}

// Server serves the page and the game websocket.
type Server struct {
	cfg      Config
	store    *storage.Store
	logger   *log.Logger
	engine   *gin.Engine
	upgrader websocket.Upgrader
	http     *http.Server

	quit     chan struct{}
	quitOnce sync.Once
	conns    sync.WaitGroup
}

// NewServer builds the router. The store may be nil.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		quit: make(chan struct{}),
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(template.Must(template.ParseFS(assets, "assets/index.html")))

	r.GET("/", s.handleIndex)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/runs", s.handleRuns)
	r.GET("/ws", s.handleWS)

	s.engine = r
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// requestLogger logs each request through the shared logger.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	w := s.cfg.Game.Window
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":  w.Title,
		"Width":  w.Width,
		"Height": w.Height,
	})
}

// runSummary is the JSON shape of a run in listings.
type runSummary struct {
	ID        string    `json:"id"`
	Host      string    `json:"host"`
	Seed      int64     `json:"seed"`
	Ticks     uint64    `json:"ticks"`
	Length    int       `json:"length"`
	Presses   int       `json:"presses"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleRuns(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, []runSummary{})
		return
	}
	runs, err := s.store.RecentRuns(20)
	if err != nil {
		s.logger.Error("cannot list runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list runs"})
		return
	}
	out := make([]runSummary, len(runs))
	for i, r := range runs {
		out[i] = runSummary{
			ID:        r.ID,
			Host:      r.Host,
			Seed:      r.Seed,
			Ticks:     r.Final.Tick,
			Length:    len(r.Final.Body),
			Presses:   r.PressCount,
			CreatedAt: r.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess, err := session.New(session.Options{
		Config:    s.cfg.Game,
		Host:      "web",
		Record:    s.cfg.Record,
		Autopilot: s.cfg.Autopilot,
	})
	if err != nil {
		s.logger.Error("cannot start game", "error", err)
		conn.Close()
		return
	}

	s.conns.Add(1)
	go func() {
		defer s.conns.Done()
		s.play(conn, sess, uuid.NewString())
	}()
}

// play runs one connection's game until the browser leaves or the server
// shuts down. Reads happen on their own goroutine; this one is the only
// writer.
func (s *Server) play(conn *websocket.Conn, sess *session.Session, id string) {
	defer conn.Close()
	logger := s.logger.With("session", id, "remote", conn.RemoteAddr().String())
	logger.Info("session started", "seed", sess.Seed)

	var mu sync.Mutex
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			var in Input
			if err := conn.ReadJSON(&in); err != nil {
				return
			}
			b, err := core.ParseButton(in.Button)
			if err != nil {
				logger.Debug("ignoring input", "error", err)
				continue
			}
			mu.Lock()
			sess.Pressed(b)
			mu.Unlock()
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(max(s.cfg.Game.TickRate, 1)))
	defer ticker.Stop()

	draw := core.NewDrawList()
	send := func(update bool) error {
		mu.Lock()
		if update {
			if result := sess.Update(); result.Ate {
				logger.Debug("food eaten", "tick", result.Tick)
			}
		}
		sess.Render(draw)
		frame := Frame{Session: id, Snapshot: sess.Snapshot(), Draw: draw}
		mu.Unlock()

		//nolint:errcheck // WriteJSON reports the failure
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(frame)
	}

	err := send(false)
	for err == nil {
		select {
		case <-gone:
			err = errGone
		case <-s.quit:
			err = errGone
		case <-ticker.C:
			err = send(true)
		}
	}
	if !errors.Is(err, errGone) {
		logger.Warn("write failed", "error", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if runID, saveErr := sess.Save(s.store); saveErr != nil {
		logger.Error("could not save run", "error", saveErr)
	} else if runID != "" {
		logger.Info("run saved", "id", runID)
	}
	logger.Info("session ended", "tick", sess.Snapshot().Tick)
}

var errGone = errors.New("web: connection closed")

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown stops accepting connections, ends running games and waits for
// their recordings to be saved.
func (s *Server) Shutdown() error {
	s.quitOnce.Do(func() { close(s.quit) })

	var err error
	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = s.http.Shutdown(ctx)
	}
	s.conns.Wait()
	return err
}
