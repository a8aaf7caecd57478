package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jordan-pw/minesweeper/internal/command"
	"github.com/jordan-pw/minesweeper/internal/config"
	"github.com/jordan-pw/minesweeper/internal/mines"
	"github.com/jordan-pw/minesweeper/internal/session"
)

const maxBatchBytes = 64 << 10

type GameHandler struct {
	logger  *logrus.Logger
	store   *session.Store
	game    config.GameConfig
	jwt     *config.JWT
	cookies *config.Cookies
	ws      *config.WebSocket
}

func NewGameHandler(
	logger *logrus.Logger,
	store *session.Store,
	game config.GameConfig,
	jwt *config.JWT,
	cookies *config.Cookies,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		logger:  logger,
		store:   store,
		game:    game,
		jwt:     jwt,
		cookies: cookies,
		ws:      ws,
	}

	return handler
}

func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := g.store.Get(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(statusFor(err))
		sendJSONOrLog(w, g.logger, wrapError(err))
		return nil, false
	}
	return s, true
}

func (g GameHandler) parseParams(w http.ResponseWriter, r *http.Request, base mines.GameParams) (mines.GameParams, bool) {
	form, err := parseForm(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return base, false
	}
	dto, err := ParseGameParamsDTO(form)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return base, false
	}
	params := dto.Apply(base)
	if err := g.game.CheckSize(params); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return base, false
	}
	return params, true
}

// respond writes the outcome of a session action.
func (g GameHandler) respond(w http.ResponseWriter, snap mines.Snapshot, err error) {
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			g.logger.WithError(err).Error("unable to apply game action")
		}
		w.WriteHeader(status)
		sendJSONOrLog(w, g.logger, wrapGameError(err, snap))
		return
	}
	sendJSONOrLog(w, g.logger, snap)
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, ok := g.parseParams(w, r, g.game.Params())
	if !ok {
		return
	}

	s, err := g.store.Create(params)
	if err != nil {
		w.WriteHeader(statusFor(err))
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	token, err := g.jwt.Issue(s.ID)
	if err != nil {
		g.store.Delete(s.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).Error("unable to issue session token")
		return
	}
	g.cookies.Set(w, token)

	g.logger.WithFields(logrus.Fields{
		"id":     s.ID,
		"params": params.String(),
	}).Debug("created game session")

	sendJSONOrLog(w, g.logger, NewCreatedGameDTO(s.ID, token, s.StartedAt, s.Snapshot()))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, s.Snapshot())
}

func (g GameHandler) move(w http.ResponseWriter, r *http.Request, kind command.Kind) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	form, err := parseForm(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	pos, err := ParsePointDTO(form)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	c := command.Command{Kind: kind, X: pos.X, Y: pos.Y}
	snap, err := s.Do(c.Apply)
	g.respond(w, snap, err)
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, command.Open)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, command.Flag)
}

func (g GameHandler) Configure(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	current := s.Snapshot()
	params, ok := g.parseParams(w, r, mines.GameParams{
		Width: current.Width, Height: current.Height, MineCount: current.MineCount,
	})
	if !ok {
		return
	}

	snap, err := s.Do(func(game *mines.Game) error {
		return game.Configure(params)
	})
	g.respond(w, snap, err)
}

func (g GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
		} else {
			w.WriteHeader(http.StatusBadRequest)
		}
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	snap, err := s.Do(func(game *mines.Game) error {
		_, err := command.Run(game, string(body))
		return err
	})

	var lineErr *command.LineError
	if errors.As(err, &lineErr) {
		w.WriteHeader(statusFor(err))
		sendJSONOrLog(w, g.logger, lineErr)
		return
	}
	g.respond(w, snap, err)
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := g.store.Delete(r.PathValue("id")); err != nil {
		w.WriteHeader(statusFor(err))
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	g.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// ConnectWS runs every text message as a batch and answers with the
// resulting snapshot, or with the failing line.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WithError(err).Warn("upgrade")
		return
	}
	defer c.Close()
	c.SetReadLimit(maxBatchBytes)

	log := g.logger.WithField("id", s.ID)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)

		snap, err := s.Do(func(game *mines.Game) error {
			_, err := command.Run(game, text)
			return err
		})

		var reply any = snap
		var lineErr *command.LineError
		if errors.As(err, &lineErr) {
			reply = lineErr
		} else if err != nil {
			reply = wrapGameError(err, snap)
		}
		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("write")
			break
		}
		log.Debug("\t< <game data>")
	}
}
