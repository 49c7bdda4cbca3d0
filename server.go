package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/jinzhu/configor"
	"github.com/rs/zerolog"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/api"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/service"
)

var Config AppConfig

func main() {
	configor.New(&configor.Config{ENVPrefix: "APP", Silent: true}).Load(&Config, "config.yml")

	level, err := zerolog.ParseLevel(Config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if len(Config.Server.Cors) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins:   Config.Server.Cors,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "Remote-Token", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           300,
		})
		r.Use(c.Handler)
	}

	dao := data.NewDAO(Config.DB.Path)
	srv := service.NewService(dao, service.Options{
		DefaultTimeZone: Config.Scheduler.DefaultTimeZone,
		CacheTTL:        time.Duration(Config.Scheduler.CacheTTLSeconds) * time.Second,
		FetchTimeout:    time.Duration(Config.Scheduler.FetchTimeoutSeconds) * time.Second,
		Logger:          logger,
	})

	caps := service.Capabilities{
		Search:  Config.Features.Search,
		Reports: Config.Features.Reports,
		Exports: Config.Features.Exports,
	}
	a := api.NewAPI(srv, caps, logger)
	a.InitRoutes(r)

	if Config.Server.ResetFrequence > 0 {
		go func() {
			now := time.Now().UTC()
			freq := time.Duration(Config.Server.ResetFrequence) * time.Minute

			next := now.Truncate(freq).Add(freq).Sub(now)
			time.Sleep(next)

			logger.Info().Msg("reset data")
			dao.RestartData()

			ticker := time.NewTicker(freq)
			for range ticker.C {
				logger.Info().Msg("reset data")
				dao.RestartData()
			}
		}()
	}

	logger.Info().Str("port", Config.Server.Port).Msg("starting webserver")
	if err := http.ListenAndServe(Config.Server.Port, r); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}
