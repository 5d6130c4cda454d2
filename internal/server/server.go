package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/draughts/internal/evalbuilder"
	"github.com/ChizhovVadim/draughts/pkg/common"
	"github.com/ChizhovVadim/draughts/pkg/engine"
	"github.com/ChizhovVadim/draughts/pkg/eval"
)

const requestTimeout = 30 * time.Second

// Server answers analysis requests. Every request gets its own engine built from options.
type Server struct {
	options  engine.Options
	maxDepth int
	logger   zerolog.Logger
}

func New(options engine.Options, maxDepth int, logger zerolog.Logger) *Server {
	return &Server{
		options:  options,
		maxDepth: maxDepth,
		logger:   logger,
	}
}

type positionRequest struct {
	Board string `json:"board"`
	Side  string `json:"side"`
}

type movesRequest struct {
	positionRequest
	Square string `json:"square,omitempty"`
}

type movesResponse struct {
	Moves  []string `json:"moves"`
	Forced bool     `json:"forced"`
}

type evaluateRequest struct {
	positionRequest
	Scoring string `json:"scoring,omitempty"`
}

type evaluateResponse struct {
	Score float64 `json:"score"`
}

type bestTurnRequest struct {
	positionRequest
	Depth   int    `json:"depth,omitempty"`
	Scoring string `json:"scoring,omitempty"`
	Pruning string `json:"pruning,omitempty"`
}

type bestTurnResponse struct {
	Turn     string   `json:"turn"`
	Moves    []string `json:"moves"`
	Score    float64  `json:"score"`
	Depth    int      `json:"depth"`
	Nodes    int64    `json:"nodes"`
	TimeMs   int64    `json:"time_ms"`
	GameOver bool     `json:"game_over"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/moves", s.handleMoves)
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/best-turn", s.handleBestTurn)
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var server = &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}
	var serverErrCh = make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()
	s.logger.Info().Str("addr", addr).Msg("server started")

	select {
	case err := <-serverErrCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	var req movesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var board, side, err = req.position()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var eng = s.newEngine(s.options)
	var ml []common.Move
	var forced bool
	if req.Square == "" {
		ml, forced = eng.GenerateSideMoves(&board, side)
	} else {
		var sq common.Square
		sq, err = common.ParseSquare(req.Square)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		ml, forced, err = eng.GenerateSquareMoves(&board, sq)
		if errors.Is(err, engine.ErrEmptySquare) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, movesResponse{
		Moves:  movesToStrings(ml),
		Forced: forced,
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var board, side, err = req.position()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var options = s.options
	if req.Scoring != "" {
		options.Scoring, err = eval.ParseScoringMode(req.Scoring)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	var score = s.newEngine(options).Evaluate(&board, side)
	writeJSON(w, http.StatusOK, evaluateResponse{Score: score})
}

func (s *Server) handleBestTurn(w http.ResponseWriter, r *http.Request) {
	var req bestTurnRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var board, side, err = req.position()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var options = s.options
	if req.Depth > 0 {
		options.MaxDepth = req.Depth
	}
	options.MaxDepth = common.Min(options.MaxDepth, s.maxDepth)
	if req.Scoring != "" {
		options.Scoring, err = eval.ParseScoringMode(req.Scoring)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if req.Pruning != "" {
		options.Pruning = engine.ParsePruningMode(req.Pruning)
	}

	si, err := s.newEngine(options).FindBestTurn(board, side)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.logger.Debug().
		Str("request_id", middleware.GetReqID(r.Context())).
		Stringer("turn", si.Turn).
		Float64("score", si.Score).
		Int64("nodes", si.Nodes).
		Dur("time", si.Time).
		Msg("search")

	var resp = bestTurnResponse{
		Moves:    movesToStrings(si.Turn),
		Score:    si.Score,
		Depth:    si.Depth,
		Nodes:    si.Nodes,
		TimeMs:   si.Time.Milliseconds(),
		GameOver: len(si.Turn) == 0,
	}
	if !resp.GameOver {
		resp.Turn = si.Turn.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) newEngine(options engine.Options) *engine.Engine {
	return engine.NewEngine(options, evalbuilder.Get)
}

// position parses the board and side; empty values mean the initial position and white.
func (req *positionRequest) position() (common.Board, common.Side, error) {
	var board = common.InitialBoard()
	var side = common.White
	if req.Board != "" && req.Board != "startpos" {
		var err error
		board, err = common.ParseBoard(req.Board)
		if err != nil {
			return common.Board{}, side, err
		}
	}
	if req.Side != "" {
		var err error
		side, err = common.ParseSide(req.Side)
		if err != nil {
			return common.Board{}, side, err
		}
	}
	return board, side, nil
}

func movesToStrings(ml []common.Move) []string {
	var result = make([]string, len(ml))
	for i, m := range ml {
		result[i] = m.String()
	}
	return result
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			var start = time.Now()
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
