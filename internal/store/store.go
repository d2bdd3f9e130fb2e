package store

import (
	"sync"
)

// Entity — минимальный контракт для элемента кэша:
// стабильный уникальный идентификатор (формат непрозрачный, выдаётся сервером)
type Entity interface {
	EntityID() string
}

// Store — потокобезопасный in-memory кэш одной коллекции сущностей
// кэш является зеркалом последнего подтверждённого состояния сервера:
// писать в него имеет право только сервисный слой, и только после того,
// как соответствующий удалённый вызов завершился успешно
//
// порядок элементов сохраняется: ReplaceAll задаёт порядок сервера,
// Insert добавляет в конец, ReplaceOne сохраняет позицию
type Store[E Entity] struct {
	mu      sync.RWMutex
	items   []E
	index   map[string]int // id -> позиция в items
	version uint64         // растёт при каждой фактической мутации
}

// New создаёт пустой кэш
func New[E Entity]() *Store[E] {
	return &Store[E]{
		index: make(map[string]int),
	}
}

// ReplaceAll атомарно заменяет всё содержимое кэша
// используется после успешного получения полной коллекции с сервера
// при дублирующихся id остаётся первое вхождение — кэш никогда
// не содержит двух записей с одним id
func (s *Store[E]) ReplaceAll(entities []E) {
	items := make([]E, 0, len(entities))
	index := make(map[string]int, len(entities))
	for _, e := range entities {
		if _, ok := index[e.EntityID()]; ok {
			continue
		}
		index[e.EntityID()] = len(items)
		items = append(items, e)
	}

	s.mu.Lock()
	s.items = items
	s.index = index
	s.version++
	s.mu.Unlock()
}

// Insert добавляет сущность в конец кэша после успешного create
// если id уже присутствует (сервер вернул существующую запись),
// запись заменяется на месте — инвариант уникальности id сохраняется
func (s *Store[E]) Insert(entity E) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos, ok := s.index[entity.EntityID()]; ok {
		s.items[pos] = entity
		s.version++
		return
	}
	s.index[entity.EntityID()] = len(s.items)
	s.items = append(s.items, entity)
	s.version++
}

// ReplaceOne заменяет запись с данным id, сохраняя её позицию
// отсутствие id — документированный no-op, а не ошибка: удалённый вызов
// уже успел, а локальное отсутствие означает более раннее удаление
// записи вне этого процесса
func (s *Store[E]) ReplaceOne(id string, entity E) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return
	}
	s.items[pos] = entity
	s.version++
}

// RemoveOne удаляет запись с данным id; no-op, если её нет
func (s *Store[E]) RemoveOne(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return
	}
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	// позиции элементов после удалённого сдвинулись
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].EntityID()] = i
	}
	s.version++
}

// Items возвращает копию текущего содержимого кэша в его порядке
// копия нужна, чтобы потребитель не мог мутировать кэш в обход сервиса
func (s *Store[E]) Items() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// GetByID извлекает запись из кэша по её id
// возвращает запись и true, если она найдена, иначе — нулевое значение и false
func (s *Store[E]) GetByID(id string) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		var zero E
		return zero, false
	}
	return s.items[pos], true
}

// Len возвращает текущее число записей в кэше
func (s *Store[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Version возвращает монотонный счётчик мутаций
// производные представления используют его как ключ мемоизации:
// пока версия не изменилась, кэшированный результат актуален
func (s *Store[E]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot возвращает содержимое и версию одним согласованным чтением
// нужно производным представлениям, чтобы не увидеть версию одной мутации
// и содержимое другой
func (s *Store[E]) Snapshot() ([]E, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]E, len(s.items))
	copy(out, s.items)
	return out, s.version
}
