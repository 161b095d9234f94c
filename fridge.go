// Magnets Fridge
//
// Each visitor gets their own refrigerator door and a heap of word magnets.
// Words are dragged (pointer devices) or tapped and nudged (touch devices)
// from the pools onto the door to compose a poem; the refresh button sweeps
// every magnet back into the pools in a new order.
//
// Features:
// - One board per ID: /path/:boardid and /path/:boardid/ws
// - Board state lives only in memory and is owned by a single connection
// - A second connection to the same board takes it over (e.g. via the QR code)
// - Word list loaded once per board, from a file, a URL, or the built-in list
// - Pool layout chosen once per board from the device's touch capability
// - Boards auto-reaped after a configurable idle timeout
// - Random 8-char board IDs via crypto/rand, with server-side collision check

package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/magnets/poetry"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
)

// Messages coming from clients
type ClientMessage struct {
	Type   string  `json:"type"`             // "hello", "resize", "drag_start", "drop", "drag_end", "touch_start", "touch_move", "touch_end", "refresh"
	Tile   int     `json:"tile,omitempty"`   // drag_start / touch_start
	Target string  `json:"target,omitempty"` // drop
	X      float64 `json:"x,omitempty"`      // pointer position relative to the surface
	Y      float64 `json:"y,omitempty"`
	W      float64 `json:"w,omitempty"` // rendered tile size
	H      float64 `json:"h,omitempty"`
	Touch  bool    `json:"touch,omitempty"`  // hello
	Width  float64 `json:"width,omitempty"`  // hello / resize: surface size
	Height float64 `json:"height,omitempty"` // hello / resize
}

// StateMessage carries everything the client needs to redraw the board.
type StateMessage struct {
	Type    string            `json:"type"` // "state"
	Board   poetry.BoardState `json:"board"`
	Targets []string          `json:"targets"`         // containers that accept drops
	Error   string            `json:"error,omitempty"` // shown in place of the primary pool
}

// SimpleMessage is for generic notifications ("replaced", etc.)
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	conn *websocket.Conn
	send chan any
}

type clientRequest struct {
	client *Client
	msg    ClientMessage
}

type Board struct {
	id  string
	cfg *Config
	src poetry.Source
	log zerolog.Logger

	client *Client

	register chan *Client
	unreg    chan *Client
	requests chan clientRequest
	timers   chan func()
	done     chan struct{}
	stopOnce sync.Once

	mu         sync.RWMutex
	createdAt  time.Time
	lastActive time.Time

	reg     *poetry.Registry
	ctrl    *poetry.Controller
	loadErr error
}

func newBoard(cfg *Config, id string, src poetry.Source, logger zerolog.Logger) *Board {
	now := time.Now()
	return &Board{
		id:         id,
		cfg:        cfg,
		src:        src,
		log:        logger.With().Str("board", id).Logger(),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		requests:   make(chan clientRequest),
		timers:     make(chan func()),
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
	}
}

// AfterFunc schedules f back onto the board's own goroutine, so the
// controller only ever runs on one goroutine.
func (b *Board) AfterFunc(d time.Duration, f func()) poetry.Timer {
	return time.AfterFunc(d, func() {
		select {
		case b.timers <- f:
		case <-b.done:
		}
	})
}

func (b *Board) touch() {
	b.mu.Lock()
	b.lastActive = time.Now()
	b.mu.Unlock()
}

func (b *Board) idleSince() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.lastActive
}

func (b *Board) run() {
	for {
		select {
		case c := <-b.register:
			b.touch()

			// Newest connection owns the board.
			if old := b.client; old != nil {
				select {
				case old.send <- SimpleMessage{
					Type:    "replaced",
					Message: "This fridge was opened somewhere else.",
				}:
				default:
				}
				close(old.send)
			}
			b.client = c

			logf(b.cfg, "FRIDGE: Client connected to %s", b.id)

			if b.ctrl != nil {
				b.sendState()
			}

		case c := <-b.unreg:
			b.touch()

			if b.client == c {
				b.client = nil
				close(c.send)

				// The touch or drag in progress died with the connection.
				if b.ctrl != nil {
					b.ctrl.Abort()
				}
			}

		case req := <-b.requests:
			b.touch()

			if req.client != b.client {
				continue
			}
			if b.handle(req.msg) {
				b.sendState()
			}

		case f := <-b.timers:
			f()

		case <-b.done:
			if b.client != nil {
				close(b.client.send)
				_ = b.client.conn.Close()
				b.client = nil
			}
			return
		}
	}
}

func (b *Board) stop() {
	b.stopOnce.Do(func() { close(b.done) })
}

// setup loads the word list and fills the pools. It runs once, on the first
// hello, and blocks the board until the word list resolves.
func (b *Board) setup(msg ClientMessage) {
	pools := make([]*poetry.Pool, b.cfg.pools)
	for i := range pools {
		pools[i] = poetry.NewPool(fmt.Sprintf("pool-%d", i))
	}

	surface := poetry.NewSurface(poetry.Size{Width: msg.Width, Height: msg.Height})
	policy := poetry.SelectPolicy(msg.Touch)

	b.reg = poetry.NewRegistry(surface, pools, policy, poetry.WithLogger(b.log))
	b.ctrl = poetry.NewController(b.reg, poetry.NewEngine(b.reg, nil), b)

	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.fetchTimeout)
	defer cancel()

	words, err := poetry.LoadWords(ctx, b.src)
	if err != nil {
		b.loadErr = err
		b.log.Error().Err(err).Msg("failed to load word list")

		return
	}

	if err := b.reg.Populate(words); err != nil {
		return
	}

	logf(b.cfg, "FRIDGE: Filled %s with %d words (%s)", b.id, len(words), policy.Name())
}

// handle applies one client message. It reports whether the board changed.
func (b *Board) handle(msg ClientMessage) bool {
	if msg.Type == "hello" {
		if b.ctrl == nil {
			b.setup(msg)
		} else {
			b.reg.Surface().Resize(poetry.Size{Width: msg.Width, Height: msg.Height})
		}
		return true
	}

	if b.ctrl == nil {
		return false
	}

	pointer := poetry.Point{X: msg.X, Y: msg.Y}
	size := poetry.Size{Width: msg.W, Height: msg.H}

	switch msg.Type {
	case "resize":
		b.reg.Surface().Resize(poetry.Size{Width: msg.Width, Height: msg.Height})
		return false
	case "drag_start":
		return b.ctrl.DragStart(msg.Tile)
	case "drop":
		return b.ctrl.Drop(msg.Target, pointer, size)
	case "drag_end":
		return b.ctrl.DragEnd()
	case "touch_start":
		return b.ctrl.TouchStart(msg.Tile, pointer, size)
	case "touch_move":
		return b.ctrl.TouchMove(pointer, size)
	case "touch_end":
		return b.ctrl.TouchEnd()
	case "refresh":
		if err := b.ctrl.Refresh(); err != nil && !errors.Is(err, poetry.ErrNoPools) {
			b.log.Error().Err(err).Msg("refresh failed")
		}
		return true
	}

	return false
}

func (b *Board) state() StateMessage {
	msg := StateMessage{
		Type:    "state",
		Board:   b.reg.State(),
		Targets: []string{},
	}

	for _, id := range append([]string{poetry.SurfaceID}, msg.Board.Pools...) {
		if b.ctrl.DragOver(id) {
			msg.Targets = append(msg.Targets, id)
		}
	}

	if b.loadErr != nil {
		msg.Error = "Unable to load words. Please try again later."
	}

	return msg
}

func (b *Board) sendState() {
	if b.client == nil {
		return
	}

	select {
	case b.client.send <- b.state():
	default:
		log.Printf("%s | FRIDGE: Dropping slow client on %s", time.Now().Format(logDate), b.id)
		close(b.client.send)
		_ = b.client.conn.Close()
		b.client = nil
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// BoardManager holds a set of boards keyed by board ID, so each
// $path/$boardid is its own isolated fridge.
type BoardManager struct {
	mu          sync.Mutex
	boards      map[string]*Board
	idleTimeout time.Duration
	src         poetry.Source
	log         zerolog.Logger
}

func newBoardManager(idleTimeout time.Duration, src poetry.Source, logger zerolog.Logger) *BoardManager {
	bm := &BoardManager{
		boards:      make(map[string]*Board),
		idleTimeout: idleTimeout,
		src:         src,
		log:         logger,
	}
	if idleTimeout > 0 {
		go bm.reaperLoop()
	}
	return bm
}

func (bm *BoardManager) getBoard(cfg *Config, boardID string) *Board {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if board, ok := bm.boards[boardID]; ok {
		return board
	}

	board := newBoard(cfg, boardID, bm.src, bm.log)
	bm.boards[boardID] = board
	go board.run()
	return board
}

// newBoardID generates a crypto-random board ID and ensures it doesn't
// collide with existing boards.
func (bm *BoardManager) newBoardID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		bm.mu.Lock()
		_, exists := bm.boards[id]
		bm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes boards that have been idle longer than idleTimeout.
func (bm *BoardManager) reaperLoop() {
	ticker := time.NewTicker(bm.idleTimeout / 2)
	for range ticker.C {
		bm.reap(time.Now().Add(-bm.idleTimeout))
	}
}

func (bm *BoardManager) reap(cutoff time.Time) int {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	reaped := 0
	for id, board := range bm.boards {
		if board.idleSince().Before(cutoff) {
			delete(bm.boards, id)
			board.stop()
			reaped++
		}
	}
	return reaped
}

// closeAll stops every board, idle or not, and reports how many there were.
func (bm *BoardManager) closeAll() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	n := len(bm.boards)
	for id, board := range bm.boards {
		delete(bm.boards, id)
		board.stop()
	}
	return n
}

// WebSocket handler that picks the board based on :boardid
func serveWSForManager(cfg *Config, bm *BoardManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		boardID := ps.ByName("boardid")
		if boardID == "" {
			http.Error(w, "missing board id", http.StatusBadRequest)
			return
		}

		board := bm.getBoard(cfg, boardID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, 16),
		}

		select {
		case board.register <- client:
		case <-board.done:
			_ = conn.Close()
			return
		}

		logf(cfg, "SERVE: Fridge %s to %s", boardID, realIP(r))

		go client.writePump()
		client.readPump(board)
	}
}

func (c *Client) readPump(b *Board) {
	defer func() {
		select {
		case b.unreg <- c:
		case <-b.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		select {
		case b.requests <- clientRequest{client: c, msg: msg}:
		case <-b.done:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current board URL using go-qrcode.
func qrHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		boardID := ps.ByName("boardid")
		if boardID == "" {
			http.Error(w, "missing board id", http.StatusBadRequest)
			return
		}

		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		// We are at /.../:boardid/qr; strip trailing "/qr" to get the board URL.
		path := strings.TrimSuffix(r.URL.Path, "/qr")

		url := scheme + "://" + r.Host + path

		const qrSize = 320
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)
		_, _ = w.Write(png)
	}
}

func getIndexHandler(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		data, err := assets.ReadFile("assets/fridge/index.html")
		if err != nil {
			errs <- err

			return
		}
		page := strings.ReplaceAll(string(data), "{{prefix}}", cfg.prefix)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		written, err := w.Write([]byte(page))
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Fridge page (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// redirectNewBoard handles GET /path by generating a new random board ID
// (with server-side collision detection) and redirecting to /path/:boardid.
func redirectNewBoard(cfg *Config, path string, bm *BoardManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		boardID := bm.newBoardID()
		logf(cfg, "FRIDGE: Created board %s/%s", path, boardID)
		http.Redirect(w, r, cfg.prefix+path+"/"+boardID, http.StatusTemporaryRedirect)
	}
}

// registerFridge sets up routes so that:
//   - $path                  → redirects to a new random board (8-char ID)
//   - $path/:boardid         → HTML client
//   - $path/:boardid/ws      → WebSocket for that board
//   - $path/:boardid/qr      → PNG QR code for that board URL
func registerFridge(cfg *Config, path string, mux *httprouter.Router, errs chan<- error) *BoardManager {
	bm := newBoardManager(cfg.sessionTimeout, poetry.NewSource(cfg.words), newLogger(cfg))

	mux.GET(cfg.prefix+path, redirectNewBoard(cfg, path, bm))

	mux.GET(cfg.prefix+path+"/:boardid", getIndexHandler(cfg, errs))

	mux.GET(cfg.prefix+path+"/:boardid/ws", serveWSForManager(cfg, bm))

	mux.GET(cfg.prefix+path+"/:boardid/qr", qrHandler(cfg))

	return bm
}
