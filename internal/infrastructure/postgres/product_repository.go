package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
	"github.com/jhoicas/estoque-inteligente/pkg/textnorm"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, sku, barcode, description, COALESCE(category_id, ''), COALESCE(supplier_id, ''),
	cost_price, sell_price, quantity, min_quantity, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto; search_text guarda nombre, SKU y código sin acentos.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, name, sku, barcode, description, category_id, supplier_id,
			cost_price, sell_price, quantity, min_quantity, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.Name, p.SKU, p.Barcode, p.Description, p.CategoryID, p.SupplierID,
		p.CostPrice, p.SellPrice, p.Quantity, p.MinQuantity,
		textnorm.SearchText(p.Name, p.SKU, p.Barcode), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return productWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU búsqueda exacta sin distinguir mayúsculas (punto de venta).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by sku", `SELECT `+productColumns+` FROM products WHERE lower(sku) = lower($1)`, sku)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product for update", `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, sku = $3, barcode = $4, description = $5,
			category_id = NULLIF($6, ''), supplier_id = NULLIF($7, ''), cost_price = $8, sell_price = $9,
			quantity = $10, min_quantity = $11, search_text = $12, updated_at = $13
		WHERE id = $1`,
		p.ID, p.Name, p.SKU, p.Barcode, p.Description, p.CategoryID, p.SupplierID,
		p.CostPrice, p.SellPrice, p.Quantity, p.MinQuantity,
		textnorm.SearchText(p.Name, p.SKU, p.Barcode), p.UpdatedAt,
	)
	if err != nil {
		return productWriteError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity escribe solo la cantidad (usado por el libro de stock).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET quantity = $2, updated_at = $3 WHERE id = $1`, id, quantity, updatedAt)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza solo el costo del producto (costo promedio ponderado al reponer).
func (r *ProductRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET cost_price = $2 WHERE id = $1`, id, cost)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID; sus movimientos caen en cascada y las alertas quedan sin producto.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List arma el WHERE según el filtro; el texto se compara ya normalizado contra search_text.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q := textnorm.Fold(f.Query); q != "" {
		conds = append(conds, "search_text LIKE "+arg(likeContains(q)))
	}
	if len(f.CategoryIDs) > 0 {
		conds = append(conds, "category_id = ANY("+arg(f.CategoryIDs)+")")
	}
	if f.SupplierID != "" {
		conds = append(conds, "supplier_id = "+arg(f.SupplierID))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name, id LIMIT " + arg(limitArg(f.Limit)) + " OFFSET " + arg(max(f.Offset, 0))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE quantity < min_quantity
		ORDER BY quantity, name`)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, arg string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func productWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: categoría o proveedor inexistente", domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Barcode, &p.Description, &p.CategoryID, &p.SupplierID,
		&p.CostPrice, &p.SellPrice, &p.Quantity, &p.MinQuantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
