package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/draughts/pkg/common"
)

type Engine interface {
	Prepare()
	Clear()
	GenerateSideMoves(b *common.Board, side common.Side) ([]common.Move, bool)
	GenerateSquareMoves(b *common.Board, sq common.Square) ([]common.Move, bool, error)
	Evaluate(b *common.Board, side common.Side) float64
	Search(params common.SearchParams) (common.SearchInfo, error)
}

type Protocol struct {
	name    string
	author  string
	version string
	options []Option
	engine  Engine
	board   common.Board
	side    common.Side
	out     io.Writer
}

func New(name, author, version string, engine Engine, options []Option) *Protocol {
	return &Protocol{
		name:    name,
		author:  author,
		version: version,
		engine:  engine,
		options: options,
		board:   common.InitialBoard(),
		side:    common.White,
		out:     io.Discard,
	}
}

// Run reads commands until "quit" or end of input.
func (p *Protocol) Run(in io.Reader, out io.Writer, logger zerolog.Logger) {
	p.out = out
	var scanner = bufio.NewScanner(in)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "quit" {
			return
		}
		if commandLine == "" {
			continue
		}
		var err = p.Handle(commandLine)
		if err != nil {
			logger.Error().Err(err).Str("command", commandLine).Msg("command failed")
		}
	}
}

func (p *Protocol) Handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	var h func(fields []string) error

	switch commandName {
	case "protocol":
		h = p.protocolCommand
	case "setoption":
		h = p.setOptionCommand
	case "isready":
		h = p.isReadyCommand
	case "newgame":
		h = p.newGameCommand
	case "position":
		h = p.positionCommand
	case "moves":
		h = p.movesCommand
	case "eval":
		h = p.evalCommand
	case "go":
		h = p.goCommand
	case "d":
		h = p.displayCommand
	}

	if h == nil {
		return errors.New("command not found")
	}

	return h(fields)
}

func (p *Protocol) protocolCommand(fields []string) error {
	fmt.Fprintf(p.out, "id name %s %s\n", p.name, p.version)
	fmt.Fprintf(p.out, "id author %s\n", p.author)
	for _, option := range p.options {
		fmt.Fprintln(p.out, option.OptionString())
	}
	fmt.Fprintln(p.out, "protocolok")
	return nil
}

func (p *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 || fields[0] != "name" || fields[2] != "value" {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], fields[3]
	for _, option := range p.options {
		if strings.EqualFold(option.OptionName(), name) {
			return option.Set(value)
		}
	}
	return errors.New("unhandled option")
}

func (p *Protocol) isReadyCommand(fields []string) error {
	p.engine.Prepare()
	fmt.Fprintln(p.out, "readyok")
	return nil
}

func (p *Protocol) newGameCommand(fields []string) error {
	p.engine.Clear()
	p.board = common.InitialBoard()
	p.side = common.White
	return nil
}

// position startpos|board <text> [side w|b] [moves <turn>...]
func (p *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("unknown position command")
	}
	var board common.Board
	var side = common.White
	var i int
	switch fields[0] {
	case "startpos":
		board = common.InitialBoard()
		i = 1
	case "board":
		if len(fields) < 2 {
			return errors.New("board text expected")
		}
		var err error
		board, err = common.ParseBoard(fields[1])
		if err != nil {
			return err
		}
		i = 2
	default:
		return errors.New("unknown position command")
	}
	if i+1 < len(fields) && fields[i] == "side" {
		var err error
		side, err = common.ParseSide(fields[i+1])
		if err != nil {
			return err
		}
		i += 2
	}
	if i < len(fields) {
		if fields[i] != "moves" {
			return fmt.Errorf("unexpected token %v", fields[i])
		}
		for _, sturn := range fields[i+1:] {
			var _, child, err = common.ParseTurn(board, side, sturn)
			if err != nil {
				return err
			}
			board = child
			side = side.Opposite()
		}
	}
	p.board = board
	p.side = side
	return nil
}

// moves [square]
func (p *Protocol) movesCommand(fields []string) error {
	var ml []common.Move
	var forced bool
	if len(fields) == 0 {
		ml, forced = p.engine.GenerateSideMoves(&p.board, p.side)
	} else {
		var sq, err = common.ParseSquare(fields[0])
		if err != nil {
			return err
		}
		ml, forced, err = p.engine.GenerateSquareMoves(&p.board, sq)
		if err != nil {
			return err
		}
	}
	var sb strings.Builder
	sb.WriteString("moves")
	for _, m := range ml {
		sb.WriteString(" ")
		sb.WriteString(m.String())
	}
	fmt.Fprintln(p.out, sb.String())
	fmt.Fprintf(p.out, "forced %v\n", forced)
	return nil
}

func (p *Protocol) evalCommand(fields []string) error {
	fmt.Fprintf(p.out, "eval %v\n", formatScore(p.engine.Evaluate(&p.board, p.side)))
	return nil
}

// go [depth N]
func (p *Protocol) goCommand(fields []string) error {
	var params = common.SearchParams{
		Board: p.board,
		Side:  p.side,
	}
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] == "depth" {
			var depth, err = strconv.Atoi(fields[i+1])
			if err != nil {
				return err
			}
			params.Depth = depth
			i++
		}
	}
	var si, err = p.engine.Search(params)
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out, searchInfoToString(si))
	fmt.Fprintf(p.out, "bestturn %v\n", si.Turn)
	return nil
}

func (p *Protocol) displayCommand(fields []string) error {
	fmt.Fprint(p.out, p.board.Diagram())
	fmt.Fprintf(p.out, "board %v side %v\n", p.board.String(), p.side)
	return nil
}

func searchInfoToString(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, "info depth %v score %v nodes %v time %v nps %v",
		si.Depth, formatScore(si.Score), si.Nodes, timeMs, nps)
	if len(si.Turn) != 0 {
		fmt.Fprintf(sb, " turn %v", si.Turn)
	}
	return sb.String()
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 4, 64)
}
