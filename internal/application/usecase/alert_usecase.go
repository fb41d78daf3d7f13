package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/metrics"
)

// AlertUseCase registro de notificaciones: se agregan y se marcan como leídas, no se borran.
type AlertUseCase struct {
	alerts   repository.AlertRepository
	products repository.ProductRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(alerts repository.AlertRepository, products repository.ProductRepository) *AlertUseCase {
	return &AlertUseCase{alerts: alerts, products: products}
}

// Create agrega una alerta no leída; sin deduplicación.
func (uc *AlertUseCase) Create(ctx context.Context, in dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	typ := in.Type
	if typ == "" {
		typ = entity.AlertTypeSystem
	}
	verr := &domain.ValidationError{}
	if !entity.ValidAlertType(typ) {
		verr.Add("type", "tipo desconocido")
	}
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		verr.Add("message", "es requerido")
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID != "" {
		p, err := uc.products.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			verr.Add("productId", "el producto no existe")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	a := &entity.Alert{
		ID:        uuid.NewString(),
		Type:      typ,
		Message:   msg,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	if err := uc.alerts.Create(ctx, a); err != nil {
		return nil, err
	}
	metrics.AlertsEmitted.WithLabelValues(a.Type).Inc()
	out := dto.NewAlertResponse(a)
	return &out, nil
}

// List más recientes primero.
func (uc *AlertUseCase) List(ctx context.Context, unreadOnly bool, limit int) ([]dto.AlertResponse, error) {
	list, err := uc.alerts.List(ctx, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewAlertList(list), nil
}

func (uc *AlertUseCase) CountUnread(ctx context.Context) (int, error) {
	return uc.alerts.CountUnread(ctx)
}

// MarkRead idempotente; ErrNotFound solo si la alerta no existe.
func (uc *AlertUseCase) MarkRead(ctx context.Context, id string) (*dto.AlertResponse, error) {
	if err := uc.alerts.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	a, err := uc.alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("alerta %s: %w", id, domain.ErrNotFound)
	}
	out := dto.NewAlertResponse(a)
	return &out, nil
}

// MarkAllRead devuelve cuántas alertas pasaron a leídas.
func (uc *AlertUseCase) MarkAllRead(ctx context.Context) (int, error) {
	return uc.alerts.MarkAllRead(ctx)
}
