package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/IndaPlus23/eliassam-chess/internal/model"
	"github.com/IndaPlus23/eliassam-chess/internal/store"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// GameManager owns every hosted game, the matchmaking queue, and the
// persistence of games across restarts.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	store            *store.Store
	mu               sync.RWMutex
}

// NewGameManager builds a manager backed by the given store and reloads
// any unfinished games it holds.
func NewGameManager(st *store.Store) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		store:            st,
	}
	gm.restoreGames()

	go gm.processMatchmaking()

	return gm
}

// restoreGames rebuilds sessions for every stored record. Finished games
// are dropped from the store instead.
func (gm *GameManager) restoreGames() {
	if gm.store == nil {
		return
	}
	records, err := gm.store.ListGames()
	if err != nil {
		log.Printf("game store: list failed: %v", err)
		return
	}
	for _, r := range records {
		if r.Status == "checkmate" || r.Status == "stalemate" {
			if err := gm.store.DeleteGame(r.ID); err != nil {
				log.Printf("game store: delete %s failed: %v", r.ID, err)
			}
			continue
		}
		game, err := model.RestoreGame(r.ID, r.FEN)
		if err != nil {
			log.Printf("game store: restore %s failed: %v", r.ID, err)
			continue
		}
		if r.White != "" {
			game.AddPlayer(r.White)
		}
		if r.Black != "" {
			game.AddPlayer(r.Black)
		}
		gm.games[r.ID] = game
	}
	if len(gm.games) > 0 {
		log.Printf("restored %d game(s) from store", len(gm.games))
	}
}

// persist writes the current state of a game to the store. Callers are
// expected to hold no game lock.
func (gm *GameManager) persist(game *model.Game) {
	if gm.store == nil {
		return
	}
	white, black := game.PlayerIDs()
	err := gm.store.SaveGame(store.Record{
		ID:     game.ID,
		FEN:    game.FEN(),
		White:  white,
		Black:  black,
		Status: game.Status(),
	})
	if err != nil {
		log.Printf("game store: save %s failed: %v", game.ID, err)
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}

	game := model.NewGame(gameID)
	gm.games[gameID] = game
	gm.persist(game)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	gm.persist(game)
	return color, nil
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) GetLegalMoves(gameID string, square string) ([]string, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(square)
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.MakeMove(move); err != nil {
		return err
	}
	gm.persist(game)
	return nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// Replace any stale channel for the same player.
	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// The channel's creator closes it; just forget it here.
	delete(gm.matchingChannels, playerID)
}

// processMatchmaking pairs the two longest-waiting players once a second.
func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.matchWaiting()
	}
}

// matchWaiting runs one pairing pass: as long as two players are queued,
// create a game, seat them, and notify both through their matchmaking
// channels.
func (gm *GameManager) matchWaiting() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for gm.queue.Size() >= 2 {
		player1, player2 := gm.queue.GetNextPair()

		gameID := uuid.New().String()
		game := model.NewGame(gameID)

		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Printf("matchmaking: seating %s failed: %v", player1.ID, err)
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Printf("matchmaking: seating %s failed: %v", player2.ID, err)
			continue
		}
		gm.games[gameID] = game
		gm.persist(game)

		gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	}
}

// notifyMatch sends the event to the player's matchmaking channel, if one
// is registered, and retires the channel. Callers must hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("matchmaking: marshal event for %s failed: %v", playerID, err)
		return
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Printf("matchmaking: player %s not listening", playerID)
	}
}
