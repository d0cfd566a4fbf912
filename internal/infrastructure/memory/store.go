// Package memory implementa los repositorios sobre mapas en memoria.
// Se usa en pruebas y con STORAGE_DRIVER=memory. Reproduce las restricciones
// del esquema Postgres: unicidad, cascadas y SET NULL.
package memory

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
)

type tables struct {
	rooms        map[string]entity.Room
	guests       map[string]entity.Guest
	products     map[string]entity.Product
	categories   map[string]entity.Category
	consumptions map[string]entity.Consumption
	seq          map[string]int64 // orden de inserción de consumos, desempata CreatedAt
	next         int64
}

func newTables() *tables {
	return &tables{
		rooms:        map[string]entity.Room{},
		guests:       map[string]entity.Guest{},
		products:     map[string]entity.Product{},
		categories:   map[string]entity.Category{},
		consumptions: map[string]entity.Consumption{},
		seq:          map[string]int64{},
	}
}

func (t *tables) clone() *tables {
	c := &tables{
		rooms:        make(map[string]entity.Room, len(t.rooms)),
		guests:       make(map[string]entity.Guest, len(t.guests)),
		products:     make(map[string]entity.Product, len(t.products)),
		categories:   make(map[string]entity.Category, len(t.categories)),
		consumptions: make(map[string]entity.Consumption, len(t.consumptions)),
		seq:          make(map[string]int64, len(t.seq)),
		next:         t.next,
	}
	for k, v := range t.rooms {
		c.rooms[k] = v
	}
	for k, v := range t.guests {
		c.guests[k] = v
	}
	for k, v := range t.products {
		c.products[k] = v
	}
	for k, v := range t.categories {
		c.categories[k] = v
	}
	for k, v := range t.consumptions {
		c.consumptions[k] = v
	}
	for k, v := range t.seq {
		c.seq[k] = v
	}
	return c
}

// Store guarda todas las tablas tras un único mutex.
type Store struct {
	mu   sync.Mutex
	data *tables
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newTables()}
}

// Repos devuelve los repositorios fuera de transacción.
func (s *Store) Repos() ports.Repos {
	return s.repos(nil)
}

func (s *Store) repos(tx *tables) ports.Repos {
	return ports.Repos{
		Rooms:        &RoomRepo{s: s, tx: tx},
		Guests:       &GuestRepo{s: s, tx: tx},
		Products:     &ProductRepo{s: s, tx: tx},
		Categories:   &CategoryRepo{s: s, tx: tx},
		Consumptions: &ConsumptionRepo{s: s, tx: tx},
	}
}

// with ejecuta fn sobre las tablas de la transacción o, fuera de ella, bajo el mutex.
func (s *Store) with(tx *tables, fn func(t *tables) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// TxRunner serializa las transacciones: toma el mutex, trabaja sobre una copia
// y solo la publica si fn no devuelve error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el ejecutor de transacciones del almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

var _ ports.TxRunner = (*TxRunner)(nil)

// Run ejecuta fn con repositorios atados a la copia de trabajo.
// fn no debe usar los repositorios de Store.Repos (el mutex ya está tomado).
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := r.s.data.clone()
	if err := fn(r.s.repos(work)); err != nil {
		return err
	}
	r.s.data = work
	return nil
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// page aplica limit/offset; limit <= 0 devuelve todo desde offset.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
