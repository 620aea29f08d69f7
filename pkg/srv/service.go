package srv

import (
	"context"
	"time"

	"github.com/sandevgo/shopdesk/pkg/log"
)

const shutdownTimeout = 15 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then stops services in reverse
// start order. Each gets a fresh deadline since ctx is already cancelled.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()

	base := context.WithoutCancel(ctx)
	for i := len(services) - 1; i >= 0; i-- {
		sctx, cancel := context.WithTimeout(base, shutdownTimeout)
		if err := services[i].Shutdown(sctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
		cancel()
	}
}
