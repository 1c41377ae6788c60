package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IndaPlus23/eliassam-chess/internal/chess"
	"github.com/IndaPlus23/eliassam-chess/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game is a single hosted game: the rules engine plus the session state
// around it (players, clocks, history, observers). Every rules decision is
// delegated to the engine; this type never inspects the board itself.
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *chess.Game
	connections *GameConnections
	players     Players
	whiteClock  *Clock
	blackClock  *Clock
	moveHistory []Move
	captured    CapturedPieces
	lastMove    *SimpleMove
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// GameState is the snapshot sent to clients after every change.
type GameState struct {
	Board          *BoardState    `json:"boardState"`
	FEN            string         `json:"fen"`
	ToMove         string         `json:"toMove"`
	Status         string         `json:"status"`
	IsCheck        bool           `json:"isCheck"`
	Resolve        *string        `json:"resolve"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Players        Players        `json:"players"`
	LastMove       *SimpleMove    `json:"lastMove"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		engine:      chess.NewGame(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(600 * time.Second),
		blackClock:  NewClock(600 * time.Second),
		captured:    CapturedPieces{White: []Piece{}, Black: []Piece{}},
		moveHistory: []Move{},
	}
}

// RestoreGame rebuilds a session from a stored position description.
func RestoreGame(id, fen string) (*Game, error) {
	engine, err := chess.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", id, err)
	}
	g := NewGame(id)
	g.engine = engine
	return g, nil
}

func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{
			ID:       playerID,
			Color:    "white",
			TimeLeft: 6000,
		}
		return PlayerColorWhite, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{
			ID:       playerID,
			Color:    "black",
			TimeLeft: 6000,
		}
		return PlayerColorBlack, nil
	}
	return "", errors.New("game is full")
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// FEN returns the current position description, used by persistence.
func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.engine.FEN()
}

// Status returns the game status as a client-facing string.
func (g *Game) Status() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return statusName(g.engine.State())
}

// PlayerIDs returns the seated players' IDs, empty strings for open seats.
func (g *Game) PlayerIDs() (white, black string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.players.White.ID, g.players.Black.ID
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.players.White.ID != "" && g.players.White.ID == playerID {
		return true
	}
	if g.players.Black.ID != "" && g.players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// LegalMoves returns the notated destinations for the piece on a square.
func (g *Game) LegalMoves(square string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.engine.LegalMoves(square)
}

// MakeMove validates and applies a client move. The engine does all rules
// work; on success the session updates clocks, history and captures, and
// broadcasts the new state to every connection.
func (g *Game) MakeMove(move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !move.From.onBoard() || !move.To.onBoard() {
		return errors.New("invalid move, out of bounds")
	}
	piece, ok := g.engine.PieceAt(move.From.square())
	if !ok {
		return chess.ErrNoPiece
	}

	captured, isCapture := g.engine.PieceAt(move.To.square())
	// A pawn changing file onto an empty square is an en passant capture.
	epCapture := !isCapture && piece.Role == chess.Pawn && move.From.X != move.To.X

	to := move.To.square().String()
	if letter, ok := promotionLetters[move.Promotion]; ok {
		to += letter
	}
	if _, err := g.engine.Move(move.From.square().String(), to); err != nil {
		return err
	}

	ply := g.makePly(piece, move, captured, isCapture, epCapture)
	if colorName(piece.Color) == "white" {
		g.moveHistory = append(g.moveHistory, Move{WhitePly: ply})
	} else if n := len(g.moveHistory); n > 0 {
		g.moveHistory[n-1].BlackPly = ply
	} else {
		// A game restored with Black to move starts its history mid-row.
		g.moveHistory = append(g.moveHistory, Move{BlackPly: ply})
	}

	if ply.CapturedPiece != nil {
		switch ply.CapturedPiece.Color {
		case "white":
			g.captured.White = append(g.captured.White, *ply.CapturedPiece)
		case "black":
			g.captured.Black = append(g.captured.Black, *ply.CapturedPiece)
		}
	}

	g.updateClocks(piece.Color)
	g.lastMove = &SimpleMove{From: move.From, To: move.To}

	go g.broadcastState(g.snapshot())
	return nil
}

func (g *Game) updateClocks(mover chess.Color) {
	terminal := g.engine.State().Terminal()
	if mover == chess.White {
		g.whiteClock.Stop()
		if !terminal {
			g.blackClock.Start()
		}
	} else {
		g.blackClock.Stop()
		if !terminal {
			g.whiteClock.Start()
		}
	}
	g.players.White.TimeLeft = int(g.whiteClock.GetTimeLeft().Milliseconds() / 100)
	g.players.Black.TimeLeft = int(g.blackClock.GetTimeLeft().Milliseconds() / 100)
}

func (g *Game) makePly(piece chess.Piece, move WSMove, captured chess.Piece, isCapture, epCapture bool) Ply {
	ply := Ply{
		Piece: &Piece{
			Type:     roleNames[piece.Role],
			Color:    colorName(piece.Color),
			Position: move.From,
		},
		From:      move.From,
		To:        move.To,
		Promotion: move.Promotion,
		Notation:  g.getNotation(piece, move, isCapture || epCapture),
	}
	if isCapture {
		ply.CapturedPiece = &Piece{
			Type:     roleNames[captured.Role],
			Color:    colorName(captured.Color),
			Position: move.To,
		}
	} else if epCapture {
		ply.CapturedPiece = &Piece{
			Type:     roleNames[chess.Pawn],
			Color:    colorName(piece.Color.Opponent()),
			Position: Position{X: move.To.X, Y: move.From.Y},
		}
	}

	// King moving two files is a castle; patch in the rook move.
	if piece.Role == chess.King && abs(move.From.X-move.To.X) == 2 {
		switch move.To.X {
		case 2:
			ply.CastleRookMove = &CastleRookMove{
				From: Position{X: 0, Y: move.From.Y},
				To:   Position{X: 3, Y: move.From.Y},
			}
			ply.Notation = "O-O-O"
		case 6:
			ply.CastleRookMove = &CastleRookMove{
				From: Position{X: 7, Y: move.From.Y},
				To:   Position{X: 5, Y: move.From.Y},
			}
			ply.Notation = "O-O"
		}
	}
	return ply
}

func (g *Game) getNotation(piece chess.Piece, move WSMove, capture bool) string {
	prefix := pieceNotations[piece.Role]
	captureMark := ""
	if capture {
		captureMark = "x"
	}
	pawnFile := ""
	if piece.Role == chess.Pawn && move.From.X != move.To.X {
		pawnFile = move.From.getFileNotation()
	}
	return fmt.Sprintf("%s%s%s%s", prefix, pawnFile, captureMark, move.To.getSquareNotation())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func statusName(s chess.State) string {
	switch s {
	case chess.Check:
		return "check"
	case chess.Checkmate:
		return "checkmate"
	case chess.Stalemate:
		return "stalemate"
	default:
		return "inProgress"
	}
}

// snapshot builds the client state. Callers must hold g.mu.
func (g *Game) snapshot() GameState {
	state := g.engine.State()
	var resolve *string
	if state.Terminal() {
		s := statusName(state)
		resolve = &s
	}
	history := make([]Move, len(g.moveHistory))
	copy(history, g.moveHistory)
	return GameState{
		Board:          boardState(g.engine),
		FEN:            g.engine.FEN(),
		ToMove:         colorName(g.engine.Turn()),
		Status:         statusName(state),
		IsCheck:        state == chess.Check,
		Resolve:        resolve,
		MoveHistory:    history,
		CapturedPieces: g.captured,
		Players:        g.players,
		LastMove:       g.lastMove,
	}
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection, reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState(g.GetState())
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

// broadcastState pushes a state snapshot to every registered connection.
// It takes the snapshot by value so no game lock is held while writing.
func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			delete(g.connections.connections, playerID)
		}
	}
}
