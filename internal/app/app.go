package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/common"
	"github.com/fikalabs/fika/internal/handlers"
	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/services/enrichment"
	"github.com/fikalabs/fika/internal/services/events"
	"github.com/fikalabs/fika/internal/services/favorites"
	"github.com/fikalabs/fika/internal/services/geocoding"
	"github.com/fikalabs/fika/internal/services/meetup"
	"github.com/fikalabs/fika/internal/services/photos"
	"github.com/fikalabs/fika/internal/services/places"
	"github.com/fikalabs/fika/internal/services/scheduler"
	"github.com/fikalabs/fika/internal/services/selection"
	"github.com/fikalabs/fika/internal/services/status"
	"github.com/fikalabs/fika/internal/storage"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Event-driven services
	EventService     interfaces.EventService
	SchedulerService *scheduler.Service
	StatusService    *status.Service

	// Discovery pipeline services
	Geocoder         interfaces.Geocoder
	PlacesClient     interfaces.PlacesClient
	PhotoStore       interfaces.PhotoStore
	Enricher         interfaces.Enricher
	MeetupService    interfaces.MeetupService
	FavoritesService interfaces.FavoritesService
	SelectionService interfaces.SelectionService

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	MeetupHandler    *handlers.MeetupHandler
	SearchHandler    *handlers.SearchHandler
	FavoritesHandler *handlers.FavoritesHandler
	SelectionHandler *handlers.SelectionHandler
	StatusHandler    *handlers.StatusHandler
	WSHandler        *handlers.WebSocketHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		return nil, err
	}
	if err := app.initHandlers(); err != nil {
		return nil, err
	}

	logger.Info().Msg("Application initialized")
	return app, nil
}

func (a *App) initStorage() error {
	manager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.StorageManager = manager
	return nil
}

func (a *App) initServices() error {
	a.EventService = events.NewService(a.Logger)

	a.Geocoder = geocoding.NewService(&a.Config.Providers, a.Logger)
	a.PlacesClient = places.NewService(&a.Config.Providers, &a.Config.Search, a.Logger)

	photoStore, err := photos.NewService(&a.Config.Photos, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize photo store: %w", err)
	}
	a.PhotoStore = photoStore

	a.Enricher = enrichment.NewService(a.PlacesClient, a.PhotoStore, &a.Config.Search, &a.Config.Photos, a.Logger)
	a.SelectionService = selection.NewService(a.EventService, a.Logger)
	a.FavoritesService = favorites.NewService(a.StorageManager.FavoriteStorage(), a.EventService, a.Logger)
	a.MeetupService = meetup.NewService(a.Geocoder, a.PlacesClient, a.Enricher, a.SelectionService, a.EventService, &a.Config.Search, a.Logger)

	a.StatusService = status.NewService(a.EventService, a.Logger)
	a.StatusService.SubscribeToSearchEvents()

	a.SchedulerService = scheduler.NewService(a.PhotoStore, a.EventService, &a.Config.Photos, a.Logger)
	if err := a.SchedulerService.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	return nil
}

func (a *App) initHandlers() error {
	a.APIHandler = handlers.NewAPIHandler()
	a.MeetupHandler = handlers.NewMeetupHandler(a.MeetupService, a.Logger)
	a.SearchHandler = handlers.NewSearchHandler(a.PlacesClient, a.Enricher, a.Logger)
	a.FavoritesHandler = handlers.NewFavoritesHandler(a.FavoritesService, a.Logger)
	a.SelectionHandler = handlers.NewSelectionHandler(a.SelectionService, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.StatusService, a.Logger)

	a.WSHandler = handlers.NewWebSocketHandler(a.EventService, a.Logger)
	a.WSHandler.SubscribeToEvents()

	return nil
}

// Close shuts down services and storage in reverse dependency order
func (a *App) Close() error {
	a.Logger.Info().Msg("Shutting down application")

	if a.SchedulerService != nil {
		a.SchedulerService.Stop()
	}

	if a.EventService != nil {
		if err := a.EventService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close event service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
			return err
		}
	}

	a.Logger.Info().Msg("Application shutdown complete")
	return nil
}
