package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/timetable-api/api/swagger"
	internalhandler "github.com/noah-isme/timetable-api/internal/handler"
	internalmiddleware "github.com/noah-isme/timetable-api/internal/middleware"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/repository"
	"github.com/noah-isme/timetable-api/internal/service"
	"github.com/noah-isme/timetable-api/pkg/cache"
	"github.com/noah-isme/timetable-api/pkg/config"
	"github.com/noah-isme/timetable-api/pkg/database"
	"github.com/noah-isme/timetable-api/pkg/export"
	"github.com/noah-isme/timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timetable-api/pkg/middleware/requestid"
)

// @title Timetable API
// @version 0.1.0
// @description Weekly class-timetable generation service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise database", "error", err)
	}
	defer db.Close()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	authRepo := repository.NewUserRepository(db)
	authSvc := service.NewAuthService(authRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "timetable-api",
		Audience:           []string{"timetable-clients"},
	})
	authHandler := internalhandler.NewAuthHandler(authSvc)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
	authRoutes.POST("/reset-password", authHandler.ResetPassword)
	protectedAuth := authRoutes.Group("")
	protectedAuth.Use(internalmiddleware.JWT(authSvc))
	protectedAuth.POST("/logout", authHandler.Logout)
	protectedAuth.POST("/change-password", authHandler.ChangePassword)

	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(authSvc))

	if cfg.Timetable.Enabled {
		var cacheRepo service.CacheRepository
		if client, err := cache.NewRedis(cfg.Redis); err != nil {
			logr.Sugar().Warnw("timetable response cache disabled", "error", err)
		} else {
			defer client.Close()
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
		cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Timetable.ProposalTTL, logr, cacheRepo != nil)

		var pdfExporter *export.TimetablePDFExporter
		if cfg.Timetable.PDFExportEnabled {
			pdfExporter = export.NewTimetablePDFExporter()
		}

		timetableSvcCfg := service.TimetableServiceConfig{
			CatalogFromDB:     cfg.Timetable.CatalogFromDB,
			ProposalTTL:       cfg.Timetable.ProposalTTL,
			StrictSolveBudget: cfg.Timetable.StrictSolveBudget,
			HybridSolveBudget: cfg.Timetable.HybridSolveBudget,
		}

		var timetableSvc *service.TimetableService
		if cfg.Timetable.CatalogFromDB {
			catalogRepo := repository.NewTimetableCatalogRepository(db)
			timetableSvc = service.NewTimetableService(catalogRepo, cacheSvc, metricsSvc, nil, logr, timetableSvcCfg)
		} else {
			timetableSvc = service.NewTimetableService(nil, cacheSvc, metricsSvc, nil, logr, timetableSvcCfg)
		}
		timetableHandler := internalhandler.NewTimetableHandler(timetableSvc, pdfExporter, cfg.Timetable.PDFExportEnabled)

		scheduleGroup := secured.Group("/schedule")
		scheduleGroup.POST("/generate", internalmiddleware.RBAC(string(models.RoleAdmin), string(models.RoleSuperAdmin)), timetableHandler.Generate)
		scheduleGroup.POST("/generate/hybrid", internalmiddleware.RBAC(string(models.RoleAdmin), string(models.RoleSuperAdmin)), timetableHandler.GenerateHybrid)
		scheduleGroup.GET("/catalog", internalmiddleware.RBAC(string(models.RoleTeacher), string(models.RoleAdmin), string(models.RoleSuperAdmin)), timetableHandler.Catalog)
		scheduleGroup.GET("/:proposalId", internalmiddleware.RBAC(string(models.RoleTeacher), string(models.RoleAdmin), string(models.RoleSuperAdmin)), timetableHandler.GetProposal)
		scheduleGroup.GET("/:proposalId/export.pdf", internalmiddleware.RBAC(string(models.RoleTeacher), string(models.RoleAdmin), string(models.RoleSuperAdmin)), timetableHandler.ExportPDF)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
