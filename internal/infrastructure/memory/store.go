// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y en despliegues de demostración (STORE_DRIVER=memory).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

// state contiene copias por valor; nunca se exponen punteros internos.
type state struct {
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
	products   map[string]entity.Product
	alerts     []entity.Alert // orden de inserción
	sales      map[string]entity.Sale
	saleItems  []entity.SaleItem
	movements  []entity.StockMovement
	company    *entity.Company
}

func newState() *state {
	return &state{
		categories: make(map[string]entity.Category),
		suppliers:  make(map[string]entity.Supplier),
		products:   make(map[string]entity.Product),
		sales:      make(map[string]entity.Sale),
	}
}

func (s *state) clone() *state {
	c := &state{
		categories: make(map[string]entity.Category, len(s.categories)),
		suppliers:  make(map[string]entity.Supplier, len(s.suppliers)),
		products:   make(map[string]entity.Product, len(s.products)),
		alerts:     append([]entity.Alert(nil), s.alerts...),
		sales:      make(map[string]entity.Sale, len(s.sales)),
		saleItems:  append([]entity.SaleItem(nil), s.saleItems...),
		movements:  append([]entity.StockMovement(nil), s.movements...),
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	if s.company != nil {
		company := *s.company
		c.company = &company
	}
	return c
}

// Store guarda todo el estado detrás de un único mutex.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view decide sobre qué estado opera un repositorio: el compartido (tomando el
// lock en cada operación) o la copia de una transacción en curso (lock ya tomado).
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

// Repositories devuelve los repositorios fuera de transacción.
func (s *Store) Repositories() repository.Repositories {
	return reposFor(view{store: s})
}

// Dashboard devuelve el repositorio de consultas agregadas.
func (s *Store) Dashboard() repository.DashboardRepository {
	return &DashboardRepo{v: view{store: s}}
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
// Las transacciones se serializan entre sí y con las operaciones sueltas.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(reposFor(view{store: s, tx: work})); err != nil {
		return err
	}
	s.st = work
	return nil
}

func reposFor(v view) repository.Repositories {
	return repository.Repositories{
		Categories: &CategoryRepo{v: v},
		Suppliers:  &SupplierRepo{v: v},
		Products:   &ProductRepo{v: v},
		Alerts:     &AlertRepo{v: v},
		Sales:      &SaleRepo{v: v},
		Movements:  &MovementRepo{v: v},
		Company:    &CompanyRepo{v: v},
	}
}

// page aplica offset/limit (limit <= 0 = sin límite).
func page[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return list[:0]
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
