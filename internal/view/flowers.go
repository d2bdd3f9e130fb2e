package view

import (
	"github.com/asquebay/flower-shop-service/internal/model"
	"github.com/asquebay/flower-shop-service/internal/store"
)

// FlowerViews — производные представления над кэшем каталога
// используются страницами управления товарами и аналитикой
type FlowerViews struct {
	store *store.Store[model.Flower]

	stockValue memo[float64]
}

// NewFlowerViews создаёт представления над кэшем каталога
func NewFlowerViews(s *store.Store[model.Flower]) *FlowerViews {
	return &FlowerViews{store: s}
}

// ByCategory возвращает товары данной категории, сохраняя порядок кэша
func (v *FlowerViews) ByCategory(category string) []model.Flower {
	flowers, _ := v.store.Snapshot()
	out := make([]model.Flower, 0, len(flowers))
	for _, f := range flowers {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// LowStock возвращает товары с остатком не выше порога
func (v *FlowerViews) LowStock(threshold int) []model.Flower {
	flowers, _ := v.store.Snapshot()
	out := make([]model.Flower, 0, len(flowers))
	for _, f := range flowers {
		if f.Stock <= threshold {
			out = append(out, f)
		}
	}
	return out
}

// StockValue — суммарная стоимость остатков каталога: Σ price × stock
func (v *FlowerViews) StockValue() float64 {
	flowers, version := v.store.Snapshot()
	return v.stockValue.get(version, func() float64 {
		var sum float64
		for _, f := range flowers {
			sum += f.Price * float64(f.Stock)
		}
		return sum
	})
}
