package cfg

import (
	"kurve/internal"
	"kurve/internal/app/apps"
	"kurve/internal/pkg/round"
)

// BoardCfg is configuration for the board and pace of every round.
type BoardCfg struct {
	board round.Board
}

// NewBoardCfg creates a new BoardCfg from the given board.
func NewBoardCfg(board round.Board) *BoardCfg {
	return &BoardCfg{board: board}
}

// BoardFromEnv creates a new BoardCfg from the current environment.
func BoardFromEnv() *BoardCfg {
	return &BoardCfg{board: round.Board{
		Width:        uint32(internal.Width),
		Height:       uint32(internal.Height),
		GameSpeed:    uint32(internal.GameSpeed),
		TurningSpeed: uint32(internal.TurningSpeed),
	}}
}

// ApplyServerApp applies the BoardCfg to a ServerApp.
func (cfg BoardCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.Width = cfg.board.Width
	app.Height = cfg.board.Height
	app.GameSpeed = cfg.board.GameSpeed
	app.TurningSpeed = cfg.board.TurningSpeed
	return nil
}
