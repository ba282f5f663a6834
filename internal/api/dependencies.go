package api

import (
	"context"

	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/config"
	"trippilot/skyview/internal/db/repositories"
	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/poller"
	"trippilot/skyview/internal/providers"
	"trippilot/skyview/internal/services"
	"trippilot/skyview/internal/workers"
)

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Infra is everything built in main before the services.
type Infra struct {
	Config  config.Config
	Cache   common.CacheInterface
	Backend *providers.BackendProvider
	Metrics *metrics.MetricsRegistry

	// Nil when no history database is configured.
	History       *repositories.HistoryRepo
	HistoryWorker *workers.HistoryWorker

	// Probes are checked by /healthCheck, keyed by service name.
	Probes map[string]Pinger
}

type Services struct {
	Views   *services.ViewService
	Weather *services.WeatherService
	Chat    *services.ChatService
	Search  *services.SearchService
	Track   *services.TrackService
	History *services.HistoryService
}

type Dependencies struct {
	Services *Services
	Signer   *common.ViewTokenSigner
	Metrics  *metrics.MetricsRegistry
	Probes   map[string]Pinger
}

func InitDependencies(in Infra) *Dependencies {
	cfg := in.Config

	signer := common.NewViewTokenSigner([]byte(cfg.ViewSecret), cfg.ViewTokenTTL, in.Cache)
	weather := services.NewWeatherService(in.Cache, cfg.WeatherTTL)

	var (
		chatRecorder   services.ChatRecorder
		searchRecorder services.SearchRecorder
		historyReader  services.HistoryReader
	)
	if in.HistoryWorker != nil {
		chatRecorder = in.HistoryWorker
		searchRecorder = in.HistoryWorker
	}
	if in.History != nil {
		historyReader = in.History
	}

	views := services.NewViewService(in.Backend, signer, weather, in.Metrics, services.ViewServiceConfig{
		IdleTTL: cfg.ViewTTL,
		Poller: poller.Config{
			AirportInterval: cfg.AirportPollInterval,
			FlightInterval:  cfg.FlightPollInterval,
			FetchTimeout:    cfg.RequestTimeout,
		},
	})

	probes := in.Probes
	if probes == nil {
		probes = map[string]Pinger{}
	}

	return &Dependencies{
		Services: &Services{
			Views:   views,
			Weather: weather,
			Chat:    services.NewChatService(in.Backend, chatRecorder, in.Metrics),
			Search:  services.NewSearchService(searchRecorder, in.Metrics),
			Track:   services.NewTrackService(in.Backend, in.Cache, cfg.TrackCacheTTL),
			History: services.NewHistoryService(historyReader, 0),
		},
		Signer:  signer,
		Metrics: in.Metrics,
		Probes:  probes,
	}
}
