package view

import (
	"sort"
	"sync"
	"time"

	"github.com/asquebay/flower-shop-service/internal/model"
	"github.com/asquebay/flower-shop-service/internal/store"
)

// memo — лениво пересчитываемое значение, привязанное к версии кэша
// пока версия кэша не изменилась, возвращается сохранённый результат,
// поэтому производное представление отстаёт от кэша не более чем на одну мутацию
type memo[T any] struct {
	mu      sync.Mutex
	version uint64
	valid   bool
	value   T
}

func (m *memo[T]) get(version uint64, compute func() T) T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.valid || m.version != version {
		m.value = compute()
		m.version = version
		m.valid = true
	}
	return m.value
}

// OrderViews — производные представления над кэшем заказов:
// чистые проекции (фильтры, сортировки, агрегаты), пересчитываемые
// при изменении кэша; сам кэш они никогда не мутируют
type OrderViews struct {
	store *store.Store[model.Order]
	now   func() time.Time

	today      memo[[]model.Order]
	pending    memo[[]model.Order]
	timeSorted memo[[]model.Order]
	todayTotal memo[float64]
}

// NewOrderViews создаёт представления над кэшем заказов
// now == nil означает time.Now; подмена часов нужна тестам
// и делает семантику "сегодня" явной: сравниваются календарные даты
// в локации, которую возвращает now()
func NewOrderViews(s *store.Store[model.Order], now func() time.Time) *OrderViews {
	if now == nil {
		now = time.Now
	}
	return &OrderViews{store: s, now: now}
}

// TodayOrders возвращает заказы с доставкой сегодня
// "сегодня" — совпадение календарной даты DeliveryDate с текущей датой,
// обе приведены к локации текущих часов, время суток отбрасывается
func (v *OrderViews) TodayOrders() []model.Order {
	orders, version := v.store.Snapshot()
	return v.today.get(version, func() []model.Order {
		now := v.now()
		return filterOrders(orders, func(o model.Order) bool {
			return sameDate(o.DeliveryDate, now)
		})
	})
}

// PendingOrders возвращает заказы в статусе pending, сохраняя порядок кэша
func (v *OrderViews) PendingOrders() []model.Order {
	orders, version := v.store.Snapshot()
	return v.pending.get(version, func() []model.Order {
		return filterOrders(orders, func(o model.Order) bool {
			return o.Status == model.StatusPending
		})
	})
}

// ByStatus возвращает заказы с данным статусом, сохраняя порядок кэша
func (v *OrderViews) ByStatus(status model.Status) []model.Order {
	orders, _ := v.store.Snapshot()
	return filterOrders(orders, func(o model.Order) bool {
		return o.Status == status
	})
}

// TimeSorted возвращает заказы, отсортированные по окну доставки:
// первичный ключ — время начала окна (лексикографически, строки "HH:MM"
// с ведущими нулями сравниваются корректно), при равном начале раньше
// идёт более короткое окно; заказы с нечитаемым окном — в конце,
// их взаимный порядок сохраняется
func (v *OrderViews) TimeSorted() []model.Order {
	orders, version := v.store.Snapshot()
	return v.timeSorted.get(version, func() []model.Order {
		sorted := make([]model.Order, len(orders))
		copy(sorted, orders)

		sort.SliceStable(sorted, func(i, j int) bool {
			wi, oki := parseWindow(sorted[i].DeliveryTime)
			wj, okj := parseWindow(sorted[j].DeliveryTime)
			if !oki || !okj {
				return oki && !okj
			}
			if wi.start != wj.start {
				return wi.start < wj.start
			}
			return wi.minutes < wj.minutes
		})
		return sorted
	})
}

// TodayTotal — суммарная выручка по сегодняшним заказам
func (v *OrderViews) TodayTotal() float64 {
	_, version := v.store.Snapshot()
	return v.todayTotal.get(version, func() float64 {
		return Revenue(v.TodayOrders())
	})
}

// Revenue — свёртка поля Total по произвольному срезу заказов
func Revenue(orders []model.Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.Total
	}
	return sum
}

func filterOrders(orders []model.Order, keep func(model.Order) bool) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// sameDate сравнивает календарные даты двух моментов в локации второго
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
