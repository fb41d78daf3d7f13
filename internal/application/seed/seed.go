// Package seed carga los datos iniciales de una instalación nueva.
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

// Valores iniciales.
const (
	DefaultCompanyName  = "Minha Loja"
	DefaultCategoryName = "Geral"
	WelcomeMessage      = "Bem-vindo ao Estoque Inteligente! Cadastre seus produtos para começar."
)

// IfEmpty crea perfil de empresa, una categoría raíz y una notificación de bienvenida,
// todo en una transacción y solo si todavía no hay empresa configurada.
// Devuelve true si sembró datos.
func IfEmpty(ctx context.Context, tx inventory.TxRunner) (bool, error) {
	seeded := false
	err := tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Company.Get(ctx)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		now := time.Now()

		if err := repos.Company.Save(ctx, &entity.Company{
			ID:        uuid.NewString(),
			Name:      DefaultCompanyName,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}

		roots, err := repos.Categories.ListByParent(ctx, "")
		if err != nil {
			return err
		}
		if len(roots) == 0 {
			if err := repos.Categories.Create(ctx, &entity.Category{
				ID:          uuid.NewString(),
				Name:        DefaultCategoryName,
				Description: "Categoria padrão",
				CreatedAt:   now,
				UpdatedAt:   now,
			}); err != nil {
				return err
			}
		}

		if err := repos.Alerts.Create(ctx, &entity.Alert{
			ID:        uuid.NewString(),
			Type:      entity.AlertTypeSystem,
			Message:   WelcomeMessage,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		log.Info().Msg("datos iniciales cargados")
	}
	return seeded, nil
}
