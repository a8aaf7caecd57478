package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/schema"

	"github.com/jordan-pw/minesweeper/internal/mines"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

func parseForm(r *http.Request) (map[string][]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.Form, nil
}

// GameParamsDTO holds optional board settings; missing ones fall back to
// a base configuration.
type GameParamsDTO struct {
	Width     *int `schema:"width"`
	Height    *int `schema:"height"`
	MineCount *int `schema:"mine_count"`
}

func ParseGameParamsDTO(src map[string][]string) (GameParamsDTO, error) {
	var dto GameParamsDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (d GameParamsDTO) Apply(base mines.GameParams) mines.GameParams {
	if d.Width != nil {
		base.Width = *d.Width
	}
	if d.Height != nil {
		base.Height = *d.Height
	}
	if d.MineCount != nil {
		base.MineCount = *d.MineCount
	}
	return base
}

type PointDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePointDTO(src map[string][]string) (PointDTO, error) {
	var dto PointDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type CreatedGameDTO struct {
	ID        string         `json:"id"`
	Token     string         `json:"token"`
	StartedAt int64          `json:"started_at"`
	Game      mines.Snapshot `json:"game"`
}

func NewCreatedGameDTO(id, token string, startedAt time.Time, game mines.Snapshot) *CreatedGameDTO {
	return &CreatedGameDTO{
		ID:        id,
		Token:     token,
		StartedAt: startedAt.UnixMilli(),
		Game:      game,
	}
}
