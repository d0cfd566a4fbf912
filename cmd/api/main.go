package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestion-hotel/internal/application/consumption"
	"github.com/jhoicas/gestion-hotel/internal/application/lodging"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/application/usecase"
	infracache "github.com/jhoicas/gestion-hotel/internal/infrastructure/cache"
	"github.com/jhoicas/gestion-hotel/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/gestion-hotel/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-hotel/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gestion-hotel/internal/interfaces/http"
	"github.com/jhoicas/gestion-hotel/pkg/config"
	"github.com/jhoicas/gestion-hotel/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos    ports.Repos
		txRunner ports.TxRunner
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		repos, txRunner = store.Repos(), memory.NewTxRunner(store)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.Storage.AutoMigrate {
			if _, err := postgres.Migrate(ctx, pool, log); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repos, txRunner = postgres.NewRepos(pool), postgres.NewTxRunner(pool)
	}

	summaryCache := roomSummaryCache(ctx, cfg.Redis, log)

	roomUC := usecase.NewRoomUseCase(txRunner, repos, summaryCache, log)
	guestUC := lodging.NewGuestUseCase(txRunner, repos, summaryCache, log)
	productUC := usecase.NewProductUseCase(txRunner, repos)
	categoryUC := usecase.NewCategoryUseCase(repos.Categories)
	ledgerUC := consumption.NewLedgerUseCase(txRunner, repos, log)

	// PDF: estado de cuenta por habitación
	statementUC := consumption.NewStatementUseCase(repos, infrapdf.NewMarotoStatementGenerator(), cfg.App.HotelName)

	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: la API no exige autenticación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		RoomUC:      roomUC,
		GuestUC:     guestUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		LedgerUC:    ledgerUC,
		StatementUC: statementUC,
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
		DocsPath:    cfg.HTTP.DocsPath,
		Log:         log,
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

// roomSummaryCache usa Redis si está configurado y responde; si no, un cache nulo.
func roomSummaryCache(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) ports.RoomSummaryCache {
	if !cfg.Enabled() {
		return ports.NopRoomSummaryCache{}
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rdb, err := infracache.NewClient(pingCtx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis no disponible, resumen sin cache")
		return ports.NopRoomSummaryCache{}
	}
	return infracache.NewRoomSummaryCache(rdb, cfg.TTL, log)
}
