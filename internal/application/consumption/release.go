package consumption

import (
	"context"
	"sort"

	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/domain/inventory"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

// ReleaseRoom devuelve al stock las cantidades de todos los consumos de una habitación.
// Se invoca dentro de la transacción que elimina la habitación, antes de la cascada,
// para que ningún consumo desaparezca sin restituir su stock. Devuelve el stock final por producto.
func ReleaseRoom(ctx context.Context, r ports.Repos, roomID string) (map[string]int, error) {
	list, err := r.Consumptions.List(ctx, repository.ConsumptionFilter{RoomID: roomID}, 0, 0)
	if err != nil {
		return nil, err
	}
	qty := make(map[string]int)
	for _, c := range list {
		qty[c.ProductID] += c.Quantity
	}
	ids := make([]string, 0, len(qty))
	for id := range qty {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	stocks := make(map[string]int, len(ids))
	for _, id := range ids {
		product, err := r.Products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		stock := inventory.Release(product.Stock, qty[id])
		if err := r.Products.UpdateStock(ctx, id, stock); err != nil {
			return nil, err
		}
		stocks[id] = stock
	}
	return stocks, nil
}
