package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pentbox/pentbox/internal/pent"
	"github.com/pentbox/pentbox/internal/repository"
)

type wsCommand string

const (
	wsNoop     wsCommand = "g"
	wsPlace    wsCommand = "p"
	wsRemove   wsCommand = "r"
	wsRemoveAt wsCommand = "c"
	wsSolve    wsCommand = "s"
	wsForfeit  wsCommand = "f"
)

var wsCommandNargs = map[wsCommand]int{
	wsNoop:     0,
	wsPlace:    3,
	wsRemove:   1,
	wsRemoveAt: 3,
	wsSolve:    0,
	wsForfeit:  0,
}

// execute applies one text command to the game. Player mistakes come
// back as errors; they do not end the connection.
func execute(
	ctx context.Context, game *pent.GameState, pieces []*pent.Piece, line string,
) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return fmt.Errorf("empty command")
	}

	cmd := wsCommand(parts[0])
	nargs, ok := wsCommandNargs[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q", parts[0])
	}
	args := parts[1:]
	if len(args) != nargs {
		return fmt.Errorf("command %q takes %d arguments", cmd, nargs)
	}

	switch cmd {
	case wsNoop:
		return nil
	case wsPlace:
		layer, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("layer must be an int")
		}
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("placement index must be an int")
		}
		return game.Place(pieceByName(pieces, args[0]), layer, index, pieces)
	case wsRemove:
		return game.Remove(args[0])
	case wsRemoveAt:
		coords, err := atois(args)
		if err != nil {
			return fmt.Errorf("layer, row and col must be ints")
		}
		return game.RemoveAt(coords[0], coords[1], coords[2])
	case wsSolve:
		return game.Solve(ctx, pieces)
	case wsForfeit:
		game.Forfeit()
		return nil
	}
	return nil
}

func atois(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// ConnectWS upgrades to a websocket play channel: the client sends text
// commands ("p plus 0 3", "r plus", "c 0 2 4", "s", "f", "g") and receives
// the full session state after each one. State is persisted per message.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, game, pieces, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(NewGameSessionDTO(session, game, pieces)); err != nil {
		return
	}

	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		for _, line := range strings.Split(strings.TrimSpace(string(buf)), "\n") {
			if err := execute(r.Context(), game, pieces, strings.TrimSpace(line)); err != nil {
				if err := conn.WriteJSON(wrapError(err)); err != nil {
					return
				}
				continue
			}
			if err := g.persistSession(r.Context(), session, game); err != nil {
				g.logger.Error("unable to persist session from ws", "error", err)
				return
			}
			if err := conn.WriteJSON(NewGameSessionDTO(session, game, pieces)); err != nil {
				return
			}
		}
	}
}

func (g GameHandler) persistSession(
	ctx context.Context, session *repository.GameSession, game *pent.GameState,
) error {
	if game.Over() && session.EndedAt == nil {
		now := time.Now().UTC()
		session.EndedAt = &now
	}
	buf, err := game.Bytes()
	if err != nil {
		return err
	}
	return g.repo.UpdateGameSession(ctx, repository.UpdateGameSessionParams{
		GameSessionId: session.GameSessionId,
		State:         buf,
		Won:           game.Won,
		UsedSolve:     game.UsedSolve,
		GaveUp:        game.GaveUp,
		EndedAt:       session.EndedAt,
	})
}
