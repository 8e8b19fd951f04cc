package roster

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pefman/alpha-counter/internal/api"
)

const fetchTimeout = 10 * time.Second

// FromAPI loads the roster served under base. An empty base, a failed
// fetch or an invalid roster all fall back to Default.
func FromAPI(ctx context.Context, base string, log zerolog.Logger) *Catalog {
	if base == "" {
		return Default()
	}
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	c, err := Load(fetchCtx, api.NewClient(base))
	if err != nil {
		log.Warn().Err(err).Str("base", base).Msg("remote roster unavailable, using built-in")
		return Default()
	}
	log.Info().Str("base", base).Int("characters", c.Len()).Msg("remote roster loaded")
	return c
}
