package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/lahah11/finale-anesp-sub001/api/swagger"
	"github.com/lahah11/finale-anesp-sub001/internal/handler"
	"github.com/lahah11/finale-anesp-sub001/internal/middleware"
	"github.com/lahah11/finale-anesp-sub001/internal/models"
	"github.com/lahah11/finale-anesp-sub001/internal/repository"
	"github.com/lahah11/finale-anesp-sub001/internal/service"
	"github.com/lahah11/finale-anesp-sub001/pkg/cache"
	"github.com/lahah11/finale-anesp-sub001/pkg/config"
	"github.com/lahah11/finale-anesp-sub001/pkg/database"
	"github.com/lahah11/finale-anesp-sub001/pkg/export"
	"github.com/lahah11/finale-anesp-sub001/pkg/logger"
	"github.com/lahah11/finale-anesp-sub001/pkg/mail"
	corsmiddleware "github.com/lahah11/finale-anesp-sub001/pkg/middleware/cors"
	reqidmiddleware "github.com/lahah11/finale-anesp-sub001/pkg/middleware/requestid"
	"github.com/lahah11/finale-anesp-sub001/pkg/storage"
)

// @title Mission Orders API
// @version 1.0.0
// @description Mission order approval workflow for government institutions
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// cache is an optimization; the engine works without it
		logr.Sugar().Warnw("redis unavailable, running without cache", "error", err)
		redisClient = nil
	}

	missionRepo := repository.NewMissionRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	logisticsRepo := repository.NewLogisticsRepository(db)
	trailRepo := repository.NewValidationActionRepository(db)
	userRepo := repository.NewUserRepository(db)
	institutionRepo := repository.NewInstitutionRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()

	authService := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var documentService *service.DocumentService
	missionOpts := []service.MissionServiceOption{
		service.WithMissionMetrics(metrics),
		service.WithMissionCache(cacheRepo),
		service.WithMissionAudit(userRepo),
	}
	if cfg.Documents.Enabled {
		documentStore, err := storage.NewDocumentStore(cfg.Documents.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init document storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Documents.SignedURLSecret, cfg.Documents.SignedURLTTL)
		documentService = service.NewDocumentService(
			missionRepo, employeeRepo, logisticsRepo, trailRepo,
			institutionRepo, userRepo,
			export.NewMissionOrderRenderer(), documentStore, signer,
			mail.NewMailer(cfg.Mail),
			cfg.Documents, logr,
		)
		documentService.Start(ctx)
		defer documentService.Stop()
		missionOpts = append(missionOpts, service.WithDocumentTrigger(documentService))
	}

	missionService := service.NewMissionService(
		missionRepo, employeeRepo, logisticsRepo, trailRepo,
		nil, logr, cfg.Workflow, missionOpts...,
	)
	employeeService := service.NewEmployeeService(employeeRepo, userRepo, nil, logr)
	fleetService := service.NewFleetService(logisticsRepo, nil, logr)
	adminService := service.NewAdminService(userRepo, institutionRepo, nil, logr)

	authHandler := handler.NewAuthHandler(authService)
	missionHandler := handler.NewMissionHandler(missionService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	fleetHandler := handler.NewFleetHandler(fleetService)
	adminHandler := handler.NewAdminHandler(adminService)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	var documentHandler *handler.DocumentHandler
	if documentService != nil {
		documentHandler = handler.NewDocumentHandler(documentService)
		// token-authenticated, no session required
		r.GET("/documents/download", documentHandler.Download)
	}

	authed := api.Group("")
	authed.Use(middleware.JWT(authService))

	authed.GET("/auth/me", authHandler.Me)

	missions := authed.Group("/missions")
	{
		missions.GET("", missionHandler.List)
		missions.GET("/:id", missionHandler.Get)
		missions.GET("/:id/history", missionHandler.History)
		if cfg.Dashboard.Enabled {
			missions.GET("/dashboard", missionHandler.Dashboard)
		}
		missions.POST("", middleware.RequireRoles(models.RoleHRAdmin, models.RoleSuperAdmin), missionHandler.Create)
		missions.POST("/:id/submit", middleware.RequireRoles(models.RoleHRAdmin, models.RoleSuperAdmin), missionHandler.Submit)
		missions.POST("/:id/validate/technical", middleware.RequireRoles(models.RoleTechnical), missionHandler.Decide(models.MissionStatusPendingTechnical))
		missions.POST("/:id/validate/logistics", middleware.RequireRoles(models.RoleLogistics), missionHandler.Decide(models.MissionStatusPendingLogistics))
		missions.POST("/:id/validate/finance", middleware.RequireRoles(models.RoleFinance), missionHandler.Decide(models.MissionStatusPendingFinance))
		missions.POST("/:id/validate/dg", middleware.RequireRoles(models.RoleDG, models.RoleMSGG), missionHandler.Decide(models.MissionStatusPendingDG))
		missions.PUT("/:id/logistics", middleware.RequireRoles(models.RoleLogistics), missionHandler.AssignLogistics)
		missions.POST("/:id/archive", middleware.RequireRoles(models.RoleHRAdmin, models.RoleSuperAdmin), missionHandler.Archive)
		missions.POST("/:id/complete", middleware.RequireRoles(models.RoleHRAdmin, models.RoleSuperAdmin), missionHandler.Complete)
		missions.POST("/:id/close", middleware.RequireRoles(models.RoleHRAdmin, models.RoleSuperAdmin), missionHandler.Close)
		if documentHandler != nil {
			missions.GET("/:id/document",
				middleware.Audit(userRepo, models.AuditActionDocumentDownload, "mission_document"),
				documentHandler.DownloadURL)
		}
	}

	employees := authed.Group("/employees")
	{
		employees.GET("", employeeHandler.List)
		employees.GET("/:id", employeeHandler.Get)
		employees.POST("", middleware.RequireRoles(models.RoleHRAdmin, models.RoleSuperAdmin), employeeHandler.Create)
		employees.POST("/:id/end-mission", middleware.RequireRoles(models.RoleHRAdmin, models.RoleSuperAdmin), employeeHandler.EndMission)
	}

	fleet := authed.Group("/fleet", middleware.RequireRoles(models.RoleLogistics, models.RoleHRAdmin, models.RoleSuperAdmin))
	{
		fleet.GET("/vehicles", fleetHandler.ListVehicles)
		fleet.POST("/vehicles", fleetHandler.CreateVehicle)
		fleet.GET("/drivers", fleetHandler.ListDrivers)
		fleet.POST("/drivers", fleetHandler.CreateDriver)
	}

	admin := authed.Group("/admin")
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users", middleware.RequireRoles(models.RoleSuperAdmin), adminHandler.CreateUser)
		admin.DELETE("/users/:id", middleware.RequireRoles(models.RoleSuperAdmin), adminHandler.DeactivateUser)
		admin.GET("/institutions", middleware.RequireRoles(models.RoleSuperAdmin), adminHandler.ListInstitutions)
		admin.POST("/institutions", middleware.RequireRoles(models.RoleSuperAdmin), adminHandler.CreateInstitution)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
