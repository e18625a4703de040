// pgn2fen extracts the FEN after every half-move of every game in the
// given PGN files, writing one position per line to a sibling .epd file.
// The output doubles as ground truth for validating PGN parsers.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chess-library/game"
)

func main() {
	noStart := flag.Bool("no-starting-position", false, "Omit each game's starting position")
	quiet := flag.Bool("quiet", false, "Suppress per-game parse warnings")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: pgn2fen [-no-starting-position] [-quiet] file.pgn ...")
		os.Exit(2)
	}

	for _, path := range flag.Args() {
		if err := convert(path, *noStart, *quiet); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func convert(path string, noStart, quiet bool) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".epd"
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	gr := game.NewGameReader(in)
	gr.SuppressWarnings = quiet
	total := 0
	games := 0
	for {
		g, err := gr.ReadGame()
		if err != nil {
			break
		}
		games++
		for i, pos := range g.Positions() {
			if i == 0 && noStart {
				continue
			}
			if _, err := fmt.Fprintln(out, pos.FEN()); err != nil {
				return err
			}
			total++
		}
	}
	fmt.Printf("%s: %d games, %d positions -> %s\n", path, games, total, outPath)
	return nil
}
