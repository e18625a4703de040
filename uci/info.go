package uci

import (
	"strconv"
	"strings"
)

// Info is one parsed "info ..." line. Fields missing from the line keep
// their zero value.
type Info struct {
	Depth          int
	SelDepth       int
	TimeMS         int
	Nodes          uint64
	NPS            uint64
	MultiPV        int
	CurrMove       string
	CurrMoveNumber int
	HashFull       int
	TBHits         uint64
	SBHits         uint64
	CPULoad        int

	HasScore    bool
	ScoreIsMate bool
	ScoreCP     int
	ScoreMate   int

	PV         []string
	Refutation []string
	CurrLine   []string
	String     string
}

// infoKeywords terminate a running move list (pv, refutation, currline).
var infoKeywords = map[string]bool{
	"depth": true, "seldepth": true, "time": true, "nodes": true,
	"nps": true, "score": true, "pv": true, "multipv": true,
	"currmove": true, "currmovenumber": true, "hashfull": true,
	"tbhits": true, "sbhits": true, "cpuload": true,
	"refutation": true, "currline": true, "string": true,
}

// ParseInfo reads an "info ..." line. Unknown tokens are skipped silently
// and malformed numbers are ignored, per the protocol's tolerance rules.
func ParseInfo(line string) Info {
	var info Info
	fields := strings.Fields(line)
	i := 0
	if i < len(fields) && fields[i] == "info" {
		i++
	}
	nextInt := func() (int, bool) {
		if i >= len(fields) {
			return 0, false
		}
		v, err := strconv.Atoi(fields[i])
		i++
		return v, err == nil
	}
	nextUint := func() (uint64, bool) {
		if i >= len(fields) {
			return 0, false
		}
		v, err := strconv.ParseUint(fields[i], 10, 64)
		i++
		return v, err == nil
	}
	moveList := func() []string {
		var moves []string
		for i < len(fields) && !infoKeywords[fields[i]] {
			moves = append(moves, fields[i])
			i++
		}
		return moves
	}
	for i < len(fields) {
		key := fields[i]
		i++
		switch key {
		case "depth":
			if v, ok := nextInt(); ok {
				info.Depth = v
			}
		case "seldepth":
			if v, ok := nextInt(); ok {
				info.SelDepth = v
			}
		case "time":
			if v, ok := nextInt(); ok {
				info.TimeMS = v
			}
		case "nodes":
			if v, ok := nextUint(); ok {
				info.Nodes = v
			}
		case "nps":
			if v, ok := nextUint(); ok {
				info.NPS = v
			}
		case "multipv":
			if v, ok := nextInt(); ok {
				info.MultiPV = v
			}
		case "currmove":
			if i < len(fields) {
				info.CurrMove = fields[i]
				i++
			}
		case "currmovenumber":
			if v, ok := nextInt(); ok {
				info.CurrMoveNumber = v
			}
		case "hashfull":
			if v, ok := nextInt(); ok {
				info.HashFull = v
			}
		case "tbhits":
			if v, ok := nextUint(); ok {
				info.TBHits = v
			}
		case "sbhits":
			if v, ok := nextUint(); ok {
				info.SBHits = v
			}
		case "cpuload":
			if v, ok := nextInt(); ok {
				info.CPULoad = v
			}
		case "score":
			if i >= len(fields) {
				break
			}
			unit := fields[i]
			i++
			switch unit {
			case "cp":
				if v, ok := nextInt(); ok {
					info.ScoreCP = v
					info.HasScore = true
				}
			case "mate":
				if v, ok := nextInt(); ok {
					info.ScoreMate = v
					info.ScoreIsMate = true
					info.HasScore = true
				}
			}
		case "pv":
			info.PV = moveList()
		case "refutation":
			info.Refutation = moveList()
		case "currline":
			info.CurrLine = moveList()
		case "string":
			info.String = strings.Join(fields[i:], " ")
			i = len(fields)
		default:
			// Unknown token: skip silently.
		}
	}
	return info
}
