package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-inteligente/internal/application/seed"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-inteligente/pkg/config"
	"github.com/jhoicas/estoque-inteligente/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config
	var log *logger.Logger

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Migraciones y datos iniciales de la base PostgreSQL",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			log = logger.New(logger.Config{Env: c.App.Env, Level: c.App.LogLevel})
			return nil
		},
	}

	withMigrator := func(fn func(m *postgres.Migrator) error) error {
		m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
		if err != nil {
			return err
		}
		defer m.Close()
		return fn(m)
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica todas las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *postgres.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				log.Info().Msg("migraciones aplicadas")
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "down [n]",
		Short: "Revierte n migraciones (todas si se omite)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("n debe ser un entero positivo: %q", args[0])
				}
				steps = n
			}
			return withMigrator(func(m *postgres.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				log.Info().Int("steps", steps).Msg("migraciones revertidas")
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Muestra la versión aplicada",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *postgres.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Carga empresa, categoría raíz y bienvenida si la base está vacía",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()
			seeded, err := seed.IfEmpty(ctx, postgres.NewTxRunner(pool))
			if err != nil {
				return err
			}
			log.Info().Bool("seeded", seeded).Msg("seed")
			return nil
		},
	})

	return root
}
