package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/app"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/config"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/controllers"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/middleware"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/repositories"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/routes"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/services"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize app:", err)
	}
	defer application.Close()

	unitRepo := repositories.NewUnitRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	subTenantRepo := repositories.NewSubTenantRepository(application.DB)
	ticketRepo := repositories.NewTicketRepository(application.DB)

	recaptcha := utils.NewRecaptchaVerifier(cfg.RecaptchaSecretKey)

	unitService := services.NewUnitService(unitRepo)
	occupancyService := services.NewOccupancyService(tenantRepo, subTenantRepo)
	subTenantService := services.NewSubTenantService(subTenantRepo)
	ticketService := services.NewTicketService(ticketRepo, recaptcha)

	if cfg.SeedDemoData {
		if err := app.SeedDemoUnits(unitRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed demo units")
		}
	}

	unitController := controllers.NewUnitController(unitService)
	tenantController := controllers.NewTenantController(occupancyService)
	subTenantController := controllers.NewSubTenantController(subTenantService)
	ticketController := controllers.NewTicketController(ticketService)
	healthController := controllers.NewHealthController(application)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.TicketsSubmit, ticketController.SubmitTicketHandler).Methods(http.MethodPost)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.UnitsBase, unitController.CreateUnitHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.UnitsBase, unitController.ListUnitsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UnitsSearch, unitController.SearchUnitsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UnitsByID, unitController.GetUnitHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UnitsByID, unitController.UpdateUnitHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.UnitsByID, unitController.DeleteUnitHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.TenantsBase, tenantController.AddTenantHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.TenantsBase, tenantController.ListTenantsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantsMovedIn, tenantController.ListMovedInHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantsMovedOut, tenantController.ListMovedOutHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantsByUnit, tenantController.ListByUnitHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantsMoveOut, tenantController.MoveOutTenantHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.TenantsByID, tenantController.UpdateTenantHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.TenantsByID, tenantController.DeleteTenantHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.SubTenantsBase, subTenantController.AddSubTenantHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.SubTenantsBase, subTenantController.ListSubTenantsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.SubTenantsByTenant, subTenantController.ListByMainTenantHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.SubTenantsByID, subTenantController.UpdateSubTenantHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.SubTenantsByID, subTenantController.DeleteSubTenantHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.TicketsBase, ticketController.ListTicketsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TicketsStatus, ticketController.UpdateStatusHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.TicketsByID, ticketController.GetTicketHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TicketsByID, ticketController.DeleteTicketHandler).Methods(http.MethodDelete)

	// Hourly sweep: re-derive stored occupant counts from current rows.
	c := cron.New()
	_, cronErr := c.AddFunc("@every 1h", func() {
		if e := unitService.ReconcileOccupantCounts(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Occupant count reconciliation failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule reconciliation cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Server failed to start:", err)
	}
}
