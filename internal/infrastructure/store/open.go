// Package store elige la implementación de CategoryStore según la configuración.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/internal/domain/repository"
	"github.com/jhoicas/catalogo/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo/internal/infrastructure/sqlite"
	"github.com/jhoicas/catalogo/pkg/config"
)

// Open abre el almacenamiento configurado y aplica su esquema. closeFn libera los
// recursos y nunca es nil.
func Open(ctx context.Context, cfg *config.Config) (s repository.CategoryStore, closeFn func(), err error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewCategoryStore(pool), pool.Close, nil
	case config.StoreDriverSQLite:
		st, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case config.StoreDriverMemory:
		return memory.NewCategoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%q: %w", cfg.Store.Driver, domain.ErrUnknownStore)
	}
}
