package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	authHttp "github.com/skytechmk/webappV.2-sub002/internal/auth/delivery/http"
	authRepository "github.com/skytechmk/webappV.2-sub002/internal/auth/repository"
	authUsecase "github.com/skytechmk/webappV.2-sub002/internal/auth/usecase"
	eventsHttp "github.com/skytechmk/webappV.2-sub002/internal/events/delivery/http"
	eventsRepository "github.com/skytechmk/webappV.2-sub002/internal/events/repository"
	eventsUsecase "github.com/skytechmk/webappV.2-sub002/internal/events/usecase"
	mediaHttp "github.com/skytechmk/webappV.2-sub002/internal/media/delivery/http"
	mediaRepository "github.com/skytechmk/webappV.2-sub002/internal/media/repository"
	mediaUsecase "github.com/skytechmk/webappV.2-sub002/internal/media/usecase"
	"github.com/skytechmk/webappV.2-sub002/internal/middleware"
	"github.com/skytechmk/webappV.2-sub002/internal/pipeline"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	aRepo := authRepository.NewAuthRepo(s.db)
	eRepo := eventsRepository.NewEventsRepo(s.db)
	mRepo := mediaRepository.NewMediaRepo(s.db)
	mAWSRepo := mediaRepository.NewAwsRepository(s.cfg, s.s3Client, s.preSignClient)
	mRedisRepo := mediaRepository.NewMediaRedisRepo(s.redisClient)

	s.scheduler = pipeline.NewScheduler(s.cfg, pipeline.Deps{
		Store:       mRepo,
		Objects:     mAWSRepo,
		Notifier:    mRedisRepo,
		Invalidator: mRedisRepo,
		Transcoder:  pipeline.NewTranscoder(s.cfg, s.logger),
		Logger:      s.logger,
	})
	s.scheduler.Start()

	authUC := authUsecase.NewAuthUseCase(s.cfg, aRepo, s.logger)
	eventsUC := eventsUsecase.NewEventsUseCase(s.cfg, eRepo, s.logger)
	mediaUC := mediaUsecase.NewMediaUseCase(s.cfg, mRepo, mRedisRepo, mAWSRepo, s.scheduler, s.logger)

	authHandlers := authHttp.NewAuthHandler(s.cfg, authUC, s.logger)
	eventsHandlers := eventsHttp.NewEventsHandler(eventsUC, s.logger)
	mediaHandlers := mediaHttp.NewMediaHandler(mediaUC, eventsUC, s.logger)

	mw := middleware.NewMiddlewareManager(authUC, s.cfg, []string{"*"}, s.logger)

	e.Use(echoMw.RequestID())
	e.Use(echoMw.Recover())

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	authGroup := v1.Group("/auth")
	eventsGroup := v1.Group("/events")
	mediaGroup := v1.Group("/media")

	authHttp.MapAuthRoutes(authGroup, authHandlers, mw)
	eventsHttp.MapEventsRoutes(eventsGroup, eventsHandlers, mw)
	mediaHttp.MapMediaRoutes(mediaGroup, mediaHandlers, mw)

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		cpu, err := utils.GetCPUUsage()
		if err != nil {
			s.logger.Warnf("health cpu read error: %v", err)
			return c.JSON(http.StatusOK, map[string]interface{}{"status": "OK"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "OK", "cpu_percent": cpu})
	})
	return nil
}
