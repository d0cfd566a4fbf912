package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/application/usecase"
	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-hotel/pkg/config"
	"github.com/jhoicas/gestion-hotel/pkg/logger"
)

// bootDB carga configuración y abre el pool.
func bootDB(ctx context.Context) (*config.Config, *pgxpool.Pool, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "hotelctl"})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, log, err
	}
	return cfg, pool, log, nil
}

// hotelctl migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, pool, log, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		applied, err := postgres.Migrate(ctx, pool, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migraciones aplicadas\n", len(applied))
		return nil
	},
}

var (
	seedCatalogPath string
	seedLatin1      bool
)

// hotelctl seed [--catalog productos.csv] [--latin1]
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea habitaciones, categorías y productos de ejemplo (o importa un catálogo CSV)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, pool, log, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		repos := postgres.NewRepos(pool)
		txRunner := postgres.NewTxRunner(pool)

		items := defaultCatalog()
		if seedCatalogPath != "" {
			f, err := os.Open(seedCatalogPath)
			if err != nil {
				return fmt.Errorf("abrir catálogo: %w", err)
			}
			defer f.Close()
			if items, err = readCatalog(f, seedLatin1); err != nil {
				return err
			}
		} else if err := seedRooms(ctx, usecase.NewRoomUseCase(txRunner, repos, ports.NopRoomSummaryCache{}, log)); err != nil {
			return err
		}

		created, err := seedProducts(ctx, repos, usecase.NewProductUseCase(txRunner, repos), items)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d productos creados (%d en el catálogo)\n", created, len(items))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedCatalogPath, "catalog", "", "CSV nombre;categoria;precio;stock")
	seedCmd.Flags().BoolVar(&seedLatin1, "latin1", false, "el CSV está en ISO-8859-1 (exportado desde Excel)")
}

func seedRooms(ctx context.Context, uc *usecase.RoomUseCase) error {
	rooms := []dto.CreateRoomRequest{
		{Number: "101", Type: entity.RoomTypeSingle, Capacity: 1, Price: decimal.NewFromInt(90000)},
		{Number: "102", Type: entity.RoomTypeCouple, Capacity: 2, Price: decimal.NewFromInt(140000)},
		{Number: "201", Type: entity.RoomTypeFamily, Capacity: 4, Price: decimal.NewFromInt(220000)},
		{Number: "301", Type: entity.RoomTypeSuite, Capacity: 2, Price: decimal.NewFromInt(350000)},
	}
	for _, in := range rooms {
		if _, err := uc.Create(ctx, in); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("habitación %s: %w", in.Number, err)
		}
	}
	return nil
}

// seedProducts crea los productos que no existan; la categoría se reutiliza o se crea en línea.
func seedProducts(ctx context.Context, repos ports.Repos, uc *usecase.ProductUseCase, items []catalogItem) (int, error) {
	created := 0
	for _, it := range items {
		in := dto.CreateProductRequest{Name: it.Name, UnitPrice: it.Price, InitialStock: it.Stock}
		if it.Category != "" {
			cat, err := repos.Categories.GetByName(ctx, it.Category)
			if err != nil {
				return created, err
			}
			if cat != nil {
				in.CategoryID = cat.ID
			} else {
				in.NewCategory = it.Category
			}
		}
		if _, err := uc.Create(ctx, in); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			return created, fmt.Errorf("producto %q: %w", it.Name, err)
		}
		created++
	}
	return created, nil
}
