package memory

import (
	"context"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo perfil de empresa en memoria.
type CompanyRepo struct {
	v view
}

func (r *CompanyRepo) Get(ctx context.Context) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.read(func(st *state) error {
		if st.company != nil {
			c := *st.company
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) Save(ctx context.Context, c *entity.Company) error {
	return r.v.read(func(st *state) error {
		saved := *c
		st.company = &saved
		return nil
	})
}
