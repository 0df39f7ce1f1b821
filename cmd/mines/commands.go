package main

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/game"
	"github.com/vancomm/minesweeper/internal/mines"
)

const help = `commands:
  o ROW COL   open a cell
  p           print the board
  l           show the leaderboard
  n [size=N] [mines=M] [seed=S] [labeling=classic|standard]
              start a new game
  h           show this help
  q           quit
`

var errQuit = errors.New("quit")

var decoder = schema.NewDecoder()

// Maps known commands to number of arguments; -1 takes any number.
var commandNargs = map[string]int{
	"o": 2,
	"p": 0,
	"l": 0,
	"n": -1,
	"h": 0,
	"q": 0,
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("row must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("column must be an int")
		return
	}
	return
}

type newGameDTO struct {
	Size     int     `schema:"size"`
	Mines    int     `schema:"mines"`
	Seed     *uint64 `schema:"seed"`
	Labeling string  `schema:"labeling"`
}

// parseNewGame reads key=value arguments on top of the current settings.
// Without a seed argument a random one is chosen.
func parseNewGame(args []string, current game.Config) (game.Config, error) {
	query, err := url.ParseQuery(strings.Join(args, "&"))
	if err != nil {
		return current, fmt.Errorf("arguments must look like key=value: %w", err)
	}

	dto := newGameDTO{
		Size:     current.Params.Size,
		Mines:    current.Params.MineCount,
		Labeling: current.Params.Labeling.String(),
	}
	if err := decoder.Decode(&dto, query); err != nil {
		return current, err
	}

	labeling, err := mines.ParseLabeling(dto.Labeling)
	if err != nil {
		return current, err
	}

	next := current
	next.Params = mines.GameParams{Size: dto.Size, MineCount: dto.Mines, Labeling: labeling}
	if err := next.Params.Validate(); err != nil {
		return current, err
	}
	if dto.Seed != nil {
		next.Seed = *dto.Seed
	} else {
		next.Seed = mines.RandomSeed()
	}
	return next, nil
}

func splitCommand(line string) (string, []string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil, nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return "", nil, fmt.Errorf("unknown command %q, h for help", parts[0])
	}
	if nargs >= 0 && nargs != len(parts)-1 {
		return "", nil, fmt.Errorf("%s takes %d arguments", parts[0], nargs)
	}
	return parts[0], parts[1:], nil
}
