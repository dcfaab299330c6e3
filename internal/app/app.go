package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/config"
	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/domain/fixture"
	"github.com/riskibarqy/matchday-favorites/internal/domain/league"
	"github.com/riskibarqy/matchday-favorites/internal/domain/player"
	"github.com/riskibarqy/matchday-favorites/internal/domain/team"
	cacherepo "github.com/riskibarqy/matchday-favorites/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/matchday-favorites/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday-favorites/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/matchday-favorites/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/matchday-favorites/internal/platform/cache"
	idgen "github.com/riskibarqy/matchday-favorites/internal/platform/id"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"github.com/riskibarqy/matchday-favorites/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// NewHTTPServer builds the favorites API. The returned cleanup releases the
// database pool when postgres storage is in use.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	favoriteRepo, conflictRepo, cleanup, err := newFavoriteStorage(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	catalog := newEntityCatalog(cfg)
	favoriteSvc := usecase.NewFavoriteService(favoriteRepo, catalog, usecase.FavoriteServiceConfig{
		DetailWorkers: cfg.DetailWorkers,
		FeedMaxLimit:  cfg.FeedMaxLimit,
	}, logger)
	syncSvc := usecase.NewFavoriteSyncService(
		favoriteRepo,
		conflictRepo,
		favoriteSvc,
		idgen.NewUUIDGenerator(),
		logger,
	)

	handler := httpapi.NewHandler(favoriteSvc, syncSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		APIToken:           cfg.APIToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func newFavoriteStorage(cfg config.Config, logger *logging.Logger) (favorite.Repository, favorite.ConflictRepository, func() error, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Info("favorites storage ready", "driver", config.StorageMemory)
		return memory.NewFavoriteRepository(), memory.NewConflictRepository(), func() error { return nil }, nil
	}

	db, err := openPostgres(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("favorites storage ready", "driver", config.StoragePostgres, "db_name", databaseName(cfg.DBURL))

	return postgres.NewFavoriteRepository(db), postgres.NewConflictRepository(db), db.Close, nil
}

// newEntityCatalog serves entity snapshots from the seeded reference data,
// fronted by the TTL cache when enabled.
func newEntityCatalog(cfg config.Config) *usecase.EntityCatalog {
	var (
		leagueRepo  league.Repository  = memory.NewLeagueRepository(memory.SeedLeagues())
		teamRepo    team.Repository    = memory.NewTeamRepository(memory.SeedTeams())
		playerRepo  player.Repository  = memory.NewPlayerRepository(memory.SeedPlayers())
		fixtureRepo fixture.Repository = memory.NewFixtureRepository(memory.SeedFixtures())
	)

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		leagueRepo = cacherepo.NewLeagueRepository(leagueRepo, store)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		playerRepo = cacherepo.NewPlayerRepository(playerRepo, store)
		fixtureRepo = cacherepo.NewFixtureRepository(fixtureRepo, store)
	}

	return usecase.NewEntityCatalog(leagueRepo, teamRepo, playerRepo, fixtureRepo)
}
