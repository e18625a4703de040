// Package uci drives an external UCI chess engine subprocess. All
// operations are synchronous and single-threaded with respect to the
// engine; the driver owns the process pipes exclusively.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrEngineClosed reports use of a driver after Close.
var ErrEngineClosed = errors.New("uci: engine closed")

// Engine is a handle on a running UCI engine process. The zero value is
// not usable; start one with NewEngine. Close is idempotent and safe to
// call from a deferred cleanup even after a failure.
type Engine struct {
	proc   *exec.Cmd
	in     io.WriteCloser
	out    *bufio.Scanner
	closed bool

	Name    string
	Author  string
	Options []Option
}

// NewEngine launches the engine binary and performs the "uci" handshake,
// collecting its identity and options until "uciok".
func NewEngine(path string, args ...string) (*Engine, error) {
	cmd := exec.Command(path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("uci: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("uci: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("uci: starting %s: %w", path, err)
	}
	e := &Engine{proc: cmd, in: stdin, out: bufio.NewScanner(stdout)}
	if err := e.handshake(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// NewEngineFromStreams attaches the driver to pre-wired pipes instead of
// spawning a process. Used by harnesses that host an in-process engine.
func NewEngineFromStreams(in io.WriteCloser, out io.Reader) (*Engine, error) {
	e := &Engine{in: in, out: bufio.NewScanner(out)}
	if err := e.handshake(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) send(line string) error {
	if e.closed {
		return ErrEngineClosed
	}
	if _, err := io.WriteString(e.in, line+"\n"); err != nil {
		return fmt.Errorf("uci: writing %q: %w", line, err)
	}
	return nil
}

func (e *Engine) readLine() (string, error) {
	if e.closed {
		return "", ErrEngineClosed
	}
	if !e.out.Scan() {
		if err := e.out.Err(); err != nil {
			return "", fmt.Errorf("uci: reading: %w", err)
		}
		return "", fmt.Errorf("uci: engine output ended: %w", io.ErrUnexpectedEOF)
	}
	return e.out.Text(), nil
}

func (e *Engine) handshake() error {
	if err := e.send("uci"); err != nil {
		return err
	}
	for {
		line, err := e.readLine()
		if err != nil {
			return err
		}
		switch {
		case line == "uciok":
			return nil
		case strings.HasPrefix(line, "id name "):
			e.Name = strings.TrimPrefix(line, "id name ")
		case strings.HasPrefix(line, "id author "):
			e.Author = strings.TrimPrefix(line, "id author ")
		case strings.HasPrefix(line, "option "):
			if opt, err := ParseOption(line); err == nil {
				e.Options = append(e.Options, opt)
			}
		}
	}
}

// IsReady blocks until the engine answers "readyok".
func (e *Engine) IsReady() error {
	if err := e.send("isready"); err != nil {
		return err
	}
	for {
		line, err := e.readLine()
		if err != nil {
			return err
		}
		if line == "readyok" {
			return nil
		}
	}
}

// NewGame tells the engine the next position belongs to a fresh game.
func (e *Engine) NewGame() error { return e.send("ucinewgame") }

// SetOption sets a named engine option. An empty value suits button
// options.
func (e *Engine) SetOption(name, value string) error {
	if value == "" {
		return e.send("setoption name " + name)
	}
	return e.send(fmt.Sprintf("setoption name %s value %s", name, value))
}

// SetStartPosition loads the classical start position plus the given UCI
// moves.
func (e *Engine) SetStartPosition(moves ...string) error {
	return e.setPosition("startpos", moves)
}

// SetPositionFEN loads a position by FEN plus the given UCI moves.
func (e *Engine) SetPositionFEN(fen string, moves ...string) error {
	return e.setPosition("fen "+fen, moves)
}

func (e *Engine) setPosition(spec string, moves []string) error {
	cmd := "position " + spec
	if len(moves) > 0 {
		cmd += " moves " + strings.Join(moves, " ")
	}
	return e.send(cmd)
}

// SearchParams bounds a search request. Zero fields are omitted from the
// "go" command; an empty struct searches with "go infinite".
type SearchParams struct {
	MoveTimeMS int
	Depth      int
	Nodes      uint64
	WTimeMS    int
	BTimeMS    int
	WIncMS     int
	BIncMS     int
	MovesToGo  int
	Infinite   bool
}

func (p SearchParams) command() string {
	var sb strings.Builder
	sb.WriteString("go")
	add := func(key string, v int) {
		if v > 0 {
			fmt.Fprintf(&sb, " %s %d", key, v)
		}
	}
	add("movetime", p.MoveTimeMS)
	add("depth", p.Depth)
	if p.Nodes > 0 {
		fmt.Fprintf(&sb, " nodes %d", p.Nodes)
	}
	add("wtime", p.WTimeMS)
	add("btime", p.BTimeMS)
	add("winc", p.WIncMS)
	add("binc", p.BIncMS)
	add("movestogo", p.MovesToGo)
	if p.Infinite || sb.Len() == len("go") {
		sb.WriteString(" infinite")
	}
	return sb.String()
}

// SearchResult carries the engine's answer and the info lines seen on the
// way to it.
type SearchResult struct {
	BestMove string
	Ponder   string
	Infos    []Info
}

// Search issues a "go" command and blocks until "bestmove".
func (e *Engine) Search(params SearchParams) (SearchResult, error) {
	var res SearchResult
	if err := e.send(params.command()); err != nil {
		return res, err
	}
	for {
		line, err := e.readLine()
		if err != nil {
			return res, err
		}
		switch {
		case strings.HasPrefix(line, "info "):
			res.Infos = append(res.Infos, ParseInfo(line))
		case strings.HasPrefix(line, "bestmove"):
			fields := strings.Fields(line)
			if len(fields) > 1 {
				res.BestMove = fields[1]
			}
			if len(fields) > 3 && fields[2] == "ponder" {
				res.Ponder = fields[3]
			}
			return res, nil
		}
	}
}

// Stop asks the engine to end the current search; the pending Search call
// still returns its bestmove.
func (e *Engine) Stop() error { return e.send("stop") }

// Close shuts the engine down: "quit", close the pipes, reap the process.
// It is idempotent and never fails twice.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	// Best effort; the engine may already be gone.
	_ = e.send("quit")
	e.closed = true
	var err error
	if e.in != nil {
		err = e.in.Close()
	}
	if e.proc != nil {
		if werr := e.proc.Wait(); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return fmt.Errorf("uci: closing engine: %w", err)
	}
	return nil
}
