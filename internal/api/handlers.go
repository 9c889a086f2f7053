package api

import (
	"context"

	"github.com/vytor/ivanachess/internal/services"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	GameService        services.GameService
	MatchmakingService services.MatchmakingService
	DB                 Pinger
	DefaultPageSize    int
	MaxPageSize        int
}
