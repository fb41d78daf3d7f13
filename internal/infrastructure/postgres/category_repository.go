package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// categoryTreeLockKey clave del advisory lock que serializa los cambios de padre.
const categoryTreeLockKey int64 = 0x63617465676f7279

const categoryColumns = `id, name, description, COALESCE(parent_id, ''), created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (id, name, description, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		c.ID, c.Name, c.Description, c.ParentID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrParentNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	row := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3, parent_id = NULLIF($4, ''), updated_at = $5
		WHERE id = $1`,
		c.ID, c.Name, c.Description, c.ParentID, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrParentNotFound
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete las FK con ON DELETE RESTRICT impiden borrar una categoría con hijos o productos.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return collectCategories(rows)
}

func (r *CategoryRepo) ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE parent_id IS NOT DISTINCT FROM NULLIF($1, '')
		ORDER BY name, id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list categories by parent: %w", err)
	}
	return collectCategories(rows)
}

func (r *CategoryRepo) CountChildren(ctx context.Context, id string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count child categories: %w", err)
	}
	return n, nil
}

// LockTree toma un advisory lock de transacción; fuera de una tx se libera al terminar la sentencia.
func (r *CategoryRepo) LockTree(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, categoryTreeLockKey); err != nil {
		return fmt.Errorf("lock category tree: %w", err)
	}
	return nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCategories(rows pgx.Rows) ([]*entity.Category, error) {
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
