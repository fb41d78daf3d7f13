package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const (
	saleColumns = `id, customer_name, customer_document, total_amount, payment_method, installments,
	card_brand, status, notes, created_at, updated_at`
	saleItemColumns = `id, sale_id, product_id, quantity, price, discount, created_at`
)

// SaleRepo ventas y líneas de venta sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.CustomerName, s.CustomerDocument, s.TotalAmount, s.PaymentMethod, s.Installments,
		s.CardBrand, s.Status, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales SET customer_name = $2, customer_document = $3, total_amount = $4, payment_method = $5,
			installments = $6, card_brand = $7, status = $8, notes = $9, updated_at = $10
		WHERE id = $1`,
		s.ID, s.CustomerName, s.CustomerDocument, s.TotalAmount, s.PaymentMethod,
		s.Installments, s.CardBrand, s.Status, s.Notes, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete las líneas caen por ON DELETE CASCADE.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+saleColumns+` FROM sales
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`, f.From, f.To, limitArg(f.Limit), max(f.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sale_items (`+saleItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		it.ID, it.SaleID, it.ProductID, it.Quantity, it.Price, it.Discount, it.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetItem(ctx context.Context, id string) (*entity.SaleItem, error) {
	it, err := scanSaleItem(r.q.QueryRow(ctx, `SELECT `+saleItemColumns+` FROM sale_items WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale item: %w", err)
	}
	return it, nil
}

func (r *SaleRepo) DeleteItem(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SaleRepo) DeleteItemsBySale(ctx context.Context, saleID string) (int, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return 0, fmt.Errorf("delete sale items: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func (r *SaleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+saleItemColumns+` FROM sale_items
		WHERE sale_id = $1 ORDER BY seq`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.SaleItem, 0)
	for rows.Next() {
		it, err := scanSaleItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.CustomerName, &s.CustomerDocument, &s.TotalAmount, &s.PaymentMethod,
		&s.Installments, &s.CardBrand, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSaleItem(row pgx.Row) (*entity.SaleItem, error) {
	var it entity.SaleItem
	if err := row.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.Price, &it.Discount, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}
