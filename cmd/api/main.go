package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jhoicas/estoque-inteligente/docs"
	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/application/sales"
	"github.com/jhoicas/estoque-inteligente/internal/application/seed"
	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
	domaininv "github.com/jhoicas/estoque-inteligente/internal/domain/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/estoque-inteligente/internal/interfaces/http"
	"github.com/jhoicas/estoque-inteligente/pkg/config"
	"github.com/jhoicas/estoque-inteligente/pkg/logger"
)

// @title        Estoque Inteligente API
// @version      1.0
// @description  Inventario, ventas y alertas de stock para pequeños comercios.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	policy, err := domaininv.ParseAlertPolicy(cfg.Inventory.AlertPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("política de alertas")
	}

	ctx := context.Background()

	var (
		txRunner  inventory.TxRunner
		repos     repository.Repositories
		dashboard repository.DashboardRepository
	)
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		if cfg.Store.AutoMigrate {
			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		repos = postgres.NewRepositories(pool)
		dashboard = postgres.NewDashboardRepository(pool)
	default:
		store := memory.NewStore()
		txRunner = store
		repos = store.Repositories()
		dashboard = store.Dashboard()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	}

	if cfg.Store.Seed {
		seeded, err := seed.IfEmpty(ctx, txRunner)
		if err != nil {
			log.Fatal().Err(err).Msg("datos iniciales")
		}
		if seeded {
			log.Info().Msg("datos iniciales cargados")
		}
	}

	ledger := inventory.NewStockLedger(txRunner, inventory.Options{
		AllowNegative: cfg.Inventory.AllowNegative,
		AlertPolicy:   policy,
	})

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:           cfg.App.Name,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		DocsPath:       cfg.HTTP.DocsPath,
		Logger:         log.Zerolog(),
	}, httpRouter.RouterDeps{
		CategoryUC:    usecase.NewCategoryUseCase(txRunner, repos),
		SupplierUC:    usecase.NewSupplierUseCase(repos.Suppliers),
		ProductUC:     usecase.NewProductUseCase(txRunner, repos, ledger),
		AlertUC:       usecase.NewAlertUseCase(repos.Alerts, repos.Products),
		CompanyUC:     usecase.NewCompanyUseCase(repos.Company),
		DashboardUC:   usecase.NewDashboardUseCase(dashboard, repos),
		Replenishment: inventory.NewReplenishmentUseCase(repos.Products, dashboard),
		Sales:         sales.NewRecorder(txRunner, ledger, repos),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
