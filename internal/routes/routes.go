package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/audit"
	"github.com/BruksfildServices01/reservation-scheduler/internal/auth"
	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/handlers"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/reservation-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/reservation-scheduler/internal/metrics"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
	"github.com/BruksfildServices01/reservation-scheduler/internal/timezone"
	ucReservation "github.com/BruksfildServices01/reservation-scheduler/internal/usecase/reservation"
)

// Deps are the process-wide clients built in main. Redis and Images may be nil.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Events   *audit.Dispatcher
	Flags    *featureflag.Service
	Mailer   ucReservation.Mailer
	Redis    *cache.Redis
	Images   *storage.ImageStore
	Metrics  *metrics.Metrics
	Registry prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	log := d.Log
	tenantID := cfg.Tenant.ID
	loc := timezone.Location(cfg.Tenant.Timezone)

	httperr.RegisterJSONFieldNames()

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.SecurityHeaders(),
		middleware.CORSMiddleware(cfg.Server.AllowOrigins),
		middleware.BodyLimit(cfg.Server.BodyLimit),
		middleware.Metrics(d.Metrics),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	securityLogRepo := infraRepo.NewSecurityLogGormRepository(d.DB)
	analyticsRepo := infraRepo.NewAnalyticsGormRepository(d.DB)

	tokens := auth.NewTokenManager(cfg.Auth)

	var limiter middleware.WindowLimiter
	if d.Redis != nil {
		limiter = d.Redis
	}
	rateLimit := middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, log)

	var uploader handlers.ImageUploader
	if d.Images != nil {
		uploader = d.Images
	}

	settings := ucReservation.Settings{
		Location:          loc,
		MinAdvanceMinutes: cfg.Tenant.MinAdvanceMinutes,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucReservation.NewGetAvailability(reservationRepo, d.Flags, settings)

	reservationUC := handlers.ReservationUseCases{
		Create:    ucReservation.NewCreateReservation(reservationRepo, d.Flags, settings, d.Events, d.Metrics),
		Update:    ucReservation.NewUpdateReservation(reservationRepo, d.Flags, settings, d.Metrics),
		Cancel:    ucReservation.NewCancelReservation(reservationRepo, d.Flags, settings, d.Metrics),
		Get:       ucReservation.NewGetReservation(reservationRepo),
		ListMine:  ucReservation.NewListMyReservations(reservationRepo),
		ByDate:    ucReservation.NewListReservationsByDate(reservationRepo),
		ByMonth:   ucReservation.NewListReservationsByMonth(reservationRepo),
		SetStatus: ucReservation.NewSetStatus(reservationRepo, settings),
	}

	remindersUC := ucReservation.NewSendReminders(reservationRepo, d.Flags, d.Mailer, settings, d.Metrics, log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, tokens, tenantID, d.Events, log)
	meHandler := handlers.NewMeHandler(userRepo, log)
	publicHandler := handlers.NewPublicHandler(tenantID, d.Flags, catalogRepo, availabilityUC, log)
	reservationHandler := handlers.NewReservationHandler(reservationUC, log)

	menuHandler := handlers.NewMenuHandler(catalogRepo, log)
	staffHandler := handlers.NewStaffHandler(catalogRepo, log)
	scheduleHandler := handlers.NewScheduleHandler(scheduleRepo, catalogRepo, loc, log)
	customerHandler := handlers.NewCustomerHandler(userRepo, log)
	featureFlagHandler := handlers.NewFeatureFlagHandler(d.Flags, log)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsRepo, d.Flags, loc, log)
	securityLogHandler := handlers.NewSecurityLogHandler(securityLogRepo, loc, log)
	imageHandler := handlers.NewImageHandler(uploader, d.Flags, catalogRepo, catalogRepo, log)
	cronHandler := handlers.NewCronHandler(tenantID, remindersUC, log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	authRequired := middleware.Auth(middleware.AuthOptions{
		Tokens:      tokens,
		Users:       userRepo,
		TenantID:    tenantID,
		BypassToken: cfg.Auth.TestBypassToken,
		Production:  cfg.IsProduction(),
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/feature-flags", publicHandler.FeatureFlags)
		api.GET("/menus", publicHandler.ListMenus)
		api.GET("/staff", publicHandler.ListStaff)
		api.GET("/availability", publicHandler.Availability)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", rateLimit, authHandler.Register)
		api.POST("/auth/login", rateLimit, authHandler.Login)

		// ------------------------------
		// CRON
		// ------------------------------
		api.GET("/cron/send-reminders", middleware.CronAuth(cfg.Cron.Secret), cronHandler.SendReminders)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		secured := api.Group("/")
		secured.Use(authRequired)
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/reservations", reservationHandler.ListMine)
			secured.POST("/reservations", rateLimit, reservationHandler.Create)
			secured.GET("/reservations/:id", reservationHandler.Get)
			secured.PATCH("/reservations/:id", reservationHandler.Patch)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(authRequired, middleware.RequireAdmin(d.Events))
		{
			admin.GET("/staff", staffHandler.List)
			admin.POST("/staff", staffHandler.Create)
			admin.PATCH("/staff/:id", staffHandler.Update)
			admin.DELETE("/staff/:id", staffHandler.Delete)
			admin.POST("/staff/:id/image", imageHandler.UploadStaffImage)

			admin.GET("/staff/:id/shifts", scheduleHandler.ListShifts)
			admin.PUT("/staff/:id/shifts", scheduleHandler.ReplaceShifts)
			admin.GET("/staff/:id/vacations", scheduleHandler.ListVacations)
			admin.POST("/staff/:id/vacations", scheduleHandler.CreateVacation)
			admin.DELETE("/staff/:id/vacations/:vacationId", scheduleHandler.DeleteVacation)

			admin.GET("/blocked-times", scheduleHandler.ListBlocked)
			admin.POST("/blocked-times", scheduleHandler.CreateBlocked)
			admin.DELETE("/blocked-times/:id", scheduleHandler.DeleteBlocked)

			admin.GET("/menus", menuHandler.List)
			admin.POST("/menus", menuHandler.Create)
			admin.PATCH("/menus/:id", menuHandler.Update)
			admin.DELETE("/menus/:id", menuHandler.Delete)
			admin.POST("/menus/:id/image", imageHandler.UploadMenuImage)

			admin.GET("/customers", customerHandler.List)
			admin.POST("/customers", customerHandler.Create)
			admin.GET("/customers/:id", customerHandler.Get)
			admin.PATCH("/customers/:id", customerHandler.Update)

			admin.GET("/reservations", reservationHandler.AdminList)
			admin.GET("/reservations/:id", reservationHandler.AdminGet)
			admin.PATCH("/reservations/:id", reservationHandler.AdminPatch)
			admin.PATCH("/reservations/:id/status", reservationHandler.AdminSetStatus)

			admin.GET("/feature-flags", featureFlagHandler.Get)
			admin.PATCH("/feature-flags", featureFlagHandler.Patch)

			admin.GET("/analytics", analyticsHandler.Summary)
			admin.GET("/security-logs", securityLogHandler.List)
		}
	}
}
