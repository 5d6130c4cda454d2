package arena

import (
	"time"

	"github.com/google/uuid"

	"github.com/ChizhovVadim/draughts/pkg/common"
)

type GameResult int

const (
	GameResultDraw GameResult = iota
	GameResultWhiteWins
	GameResultBlackWins
)

func (r GameResult) String() string {
	switch r {
	case GameResultWhiteWins:
		return "1-0"
	case GameResultBlackWins:
		return "0-1"
	case GameResultDraw:
		return "1/2-1/2"
	}
	return ""
}

type Engine interface {
	Clear()
	Search(params common.SearchParams) (common.SearchInfo, error)
}

type Config struct {
	Games        int
	Concurrency  int
	OpeningTurns int
	MaxNumTurns  int
	Seed         int64
	BotDelay     time.Duration
}

type gameInfo struct {
	id             uuid.UUID
	gameNumber     int
	opening        common.Board
	openingSide    common.Side
	engineAIsWhite bool
}

type Game struct {
	ID             uuid.UUID
	Number         int
	EngineAIsWhite bool
	Turns          []common.Turn
	Board          common.Board
	Result         GameResult
	Comment        string
}

// Stats counts results from the point of view of engine A.
type Stats struct {
	Games           int
	Wins            int
	Losses          int
	Draws           int
	WinningFraction float64
	EloDifference   float64
	LOS             float64
}
