package util

import "sync"

// GenericMap is a typed wrapper over sync.Map.
type GenericMap[K comparable, V any] struct {
	m sync.Map
}

func NewGenericMap[K comparable, V any]() *GenericMap[K, V] {
	return &GenericMap[K, V]{}
}

// Load returns the value stored for key and whether it was present.
func (m *GenericMap[K, V]) Load(key K) (value V, ok bool) {
	v, loaded := m.m.Load(key)
	if !loaded {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (m *GenericMap[K, V]) Store(key K, value V) {
	m.m.Store(key, value)
}

func (m *GenericMap[K, V]) Delete(key K) {
	m.m.Delete(key)
}

// Range calls f for each entry until f returns false. See sync.Map.Range for the
// consistency guarantees.
func (m *GenericMap[K, V]) Range(f func(key K, value V) bool) {
	m.m.Range(func(k, v any) bool {
		return f(k.(K), v.(V))
	})
}

// Filter copies the entries accepted by keep into a plain map.
func (m *GenericMap[K, V]) Filter(keep func(key K, value V) bool) map[K]V {
	out := make(map[K]V)
	m.Range(func(k K, v V) bool {
		if keep == nil || keep(k, v) {
			out[k] = v
		}
		return true
	})
	return out
}
