package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, type, message, COALESCE(product_id, ''), read, created_at`

// AlertRepo registro de alertas; seq desempata alertas creadas en el mismo instante.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO alerts (id, type, message, product_id, read, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		a.ID, a.Type, a.Message, a.ProductID, a.Read, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

func (r *AlertRepo) List(ctx context.Context, unreadOnly bool, limit int) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+alertColumns+` FROM alerts
		WHERE NOT ($1 AND read)
		ORDER BY created_at DESC, seq DESC
		LIMIT $2`, unreadOnly, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return collectAlerts(rows)
}

func (r *AlertRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+alertColumns+` FROM alerts
		WHERE product_id = $1
		ORDER BY created_at DESC, seq DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list alerts by product: %w", err)
	}
	return collectAlerts(rows)
}

// MarkRead idempotente: la fila existe aunque ya esté leída, RowsAffected sigue siendo 1.
func (r *AlertRepo) MarkRead(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE alerts SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) MarkAllRead(ctx context.Context) (int, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE alerts SET read = true WHERE NOT read`)
	if err != nil {
		return 0, fmt.Errorf("mark all alerts read: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func (r *AlertRepo) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM alerts WHERE NOT read`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread alerts: %w", err)
	}
	return n, nil
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	if err := row.Scan(&a.ID, &a.Type, &a.Message, &a.ProductID, &a.Read, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAlerts(rows pgx.Rows) ([]*entity.Alert, error) {
	defer rows.Close()
	list := make([]*entity.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
