// Package game tracks complete chess games: tag-pair headers, the move
// list against a start position, draw and termination rules, and the PGN
// encoding.
package game

import (
	"fmt"

	"golang.org/x/exp/slices"

	"chess-library/board"
)

// Result is the game terminator token.
type Result string

const (
	NoResult  Result = "*"
	WhiteWins Result = "1-0"
	BlackWins Result = "0-1"
	Draw      Result = "1/2-1/2"
)

func (r Result) String() string { return string(r) }

// TagPair is one PGN header entry.
type TagPair struct {
	Key   string
	Value string
}

// sevenTagRoster is the canonical header order for PGN emission.
var sevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// Game is a header set, a start position and the moves played from it.
// The move list may contain board.NoMove entries for pass ("--") tokens;
// they replay as null moves.
type Game struct {
	tags          []TagPair
	startPosition board.Position
	moves         []board.Move
	positions     []board.Position
	result        Result
}

// NewGame starts a game from the classical initial position with the
// Seven-Tag Roster defaults.
func NewGame() *Game {
	return NewGameFromPosition(board.StartingPosition())
}

// NewGameFromPosition starts a game from an arbitrary position. Non-
// classical starts get SetUp and FEN headers.
func NewGameFromPosition(p board.Position) *Game {
	g := &Game{
		startPosition: p,
		positions:     []board.Position{p},
		result:        NoResult,
	}
	g.SetHeader("Event", "?")
	g.SetHeader("Site", "?")
	g.SetHeader("Date", "????.??.??")
	g.SetHeader("Round", "?")
	g.SetHeader("White", "?")
	g.SetHeader("Black", "?")
	g.SetHeader("Result", NoResult.String())
	if fen := p.FEN(); fen != board.FENStartPos {
		g.SetHeader("SetUp", "1")
		g.SetHeader("FEN", fen)
	}
	g.evaluateResult()
	return g
}

// evaluateResult settles an undecided result from the current position:
// checkmate, stalemate, and the mandatory draw rules.
func (g *Game) evaluateResult() {
	if g.result != NoResult {
		return
	}
	cur := g.CurrentPosition()
	switch {
	case cur.IsMate():
		if cur.SideToMove() == board.Black {
			g.result = WhiteWins
		} else {
			g.result = BlackWins
		}
	case cur.IsStalemate():
		g.result = Draw
	default:
		five, _ := g.FivefoldRepetition(-1)
		long, _ := g.SeventyFiveMoveRule(-1)
		if five || long {
			g.result = Draw
		}
	}
}

// SetHeader inserts or updates a header, preserving insertion order.
func (g *Game) SetHeader(key, value string) {
	if i := slices.IndexFunc(g.tags, func(t TagPair) bool { return t.Key == key }); i >= 0 {
		g.tags[i].Value = value
		return
	}
	g.tags = append(g.tags, TagPair{Key: key, Value: value})
}

// Header looks a header up by key.
func (g *Game) Header(key string) (string, bool) {
	if i := slices.IndexFunc(g.tags, func(t TagPair) bool { return t.Key == key }); i >= 0 {
		return g.tags[i].Value, true
	}
	return "", false
}

// Headers returns the header list in insertion order.
func (g *Game) Headers() []TagPair { return slices.Clone(g.tags) }

// StartPosition returns the position the game begins from.
func (g *Game) StartPosition() board.Position { return g.startPosition }

// Moves returns the played moves.
func (g *Game) Moves() []board.Move { return slices.Clone(g.moves) }

// Positions returns the running position sequence: the start position
// followed by the position after each move.
func (g *Game) Positions() []board.Position { return slices.Clone(g.positions) }

// CurrentPosition returns the position after all moves.
func (g *Game) CurrentPosition() board.Position {
	return g.positions[len(g.positions)-1]
}

// Result returns the game terminator; "*" while undecided.
func (g *Game) Result() Result { return g.result }

// SetResult overrides the terminator, e.g. for resignations.
func (g *Game) SetResult(r Result) { g.result = r }

// normalizeIndex maps an index into the position sequence; negative
// values count from the end.
func (g *Game) normalizeIndex(index int) (int, error) {
	n := len(g.positions)
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return 0, fmt.Errorf("%w: position index %d of %d", board.ErrIndexOutOfRange, index, n)
	}
	return index, nil
}

// RepetitionCount counts how many positions up to and including the
// indexed one are repetition-equal to it. Use -1 for the latest position.
func (g *Game) RepetitionCount(index int) (int, error) {
	target, err := g.normalizeIndex(index)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := 0; i <= target; i++ {
		if g.positions[i].RepetitionEqual(g.positions[target]) {
			count++
		}
	}
	return count, nil
}

// HasRepetition reports a claimable threefold repetition at the index.
func (g *Game) HasRepetition(index int) (bool, error) {
	n, err := g.RepetitionCount(index)
	return n >= 3, err
}

// FivefoldRepetition reports the mandatory fivefold draw at the index.
func (g *Game) FivefoldRepetition(index int) (bool, error) {
	n, err := g.RepetitionCount(index)
	return n >= 5, err
}

// FiftyMoveRule reports a claimable fifty-move draw at the index.
func (g *Game) FiftyMoveRule(index int) (bool, error) {
	target, err := g.normalizeIndex(index)
	if err != nil {
		return false, err
	}
	return g.positions[target].HalfmoveClock() >= 100, nil
}

// SeventyFiveMoveRule reports the mandatory seventy-five-move draw.
func (g *Game) SeventyFiveMoveRule(index int) (bool, error) {
	target, err := g.normalizeIndex(index)
	if err != nil {
		return false, err
	}
	return g.positions[target].HalfmoveClock() >= 150, nil
}

// AddMove appends a legal move (or board.NoMove, replayed as a null move)
// and re-evaluates an undecided result: mate, stalemate, and the
// mandatory draws settle it.
func (g *Game) AddMove(m board.Move) error {
	cur := g.CurrentPosition()
	if m == board.NoMove {
		g.moves = append(g.moves, m)
		g.positions = append(g.positions, cur.DoNullMove())
		return nil
	}
	if !cur.IsPseudoLegal(m) {
		return fmt.Errorf("%w: %s", board.ErrIllegalMove, m)
	}
	next := cur.DoMove(m)
	if next.InCheck(cur.SideToMove()) {
		return fmt.Errorf("%w: %s leaves the king in check", board.ErrIllegalMove, m)
	}
	g.moves = append(g.moves, m)
	g.positions = append(g.positions, next)
	g.evaluateResult()
	return nil
}

// PushMove parses SAN or UCI notation against the current position and
// appends the move.
func (g *Game) PushMove(notation string) error {
	m, err := g.CurrentPosition().ParseMove(notation)
	if err != nil {
		return err
	}
	return g.AddMove(m)
}
