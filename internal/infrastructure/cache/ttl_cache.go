// Package cache implementa un caché en memoria con TTL por entrada, usado para
// evitar relecturas de la DB en ventanas cortas (listados de clientes, tickets).
// Sin cota de capacidad ni LRU: las entradas viven hasta vencer el TTL o hasta
// una invalidación explícita. Apto para datasets chicos de un solo local.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry[V any] struct {
	value  V
	expiry time.Time
}

// inflight agrupa llamadas concurrentes de GetOrFetch por clave: la primera
// ejecuta el fetch y las demás esperan el mismo resultado.
type inflight[V any] struct {
	wg    sync.WaitGroup
	value V
	err   error
}

// Cache caché clave-string → valor V con vencimiento absoluto por entrada.
// Seguro para uso concurrente.
type Cache[V any] struct {
	mu       sync.Mutex
	entries  map[string]entry[V]
	pending  map[string]*inflight[V]
	now      func() time.Time // inyectable en tests
}

// New construye un caché vacío.
func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		pending: make(map[string]*inflight[V]),
		now:     time.Now,
	}
}

// Set guarda value con vencimiento now + ttl. Pisa cualquier entrada previa.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expiry: c.now().Add(ttl)}
}

// Get devuelve el valor si la entrada sigue vigente. Una lectura posterior al
// vencimiento cuenta como miss y desaloja la entrada.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(key)
}

func (c *Cache[V]) getLocked(key string) (V, bool) {
	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !c.now().Before(e.expiry) {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Has verifica vigencia sin devolver el valor.
func (c *Cache[V]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete elimina una entrada por clave.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear vacía el caché completo.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// InvalidateNamespace elimina toda clave cuyo prefijo coincida.
// Ej: InvalidateNamespace("tickets-") borra "tickets-all" y "tickets-ready"
// pero no "clientes-all".
func (c *Cache[V]) InvalidateNamespace(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// GetOrFetch devuelve el valor cacheado en hit; en miss ejecuta fetch, guarda
// el resultado con el TTL dado y lo devuelve. Llamadas concurrentes por la
// misma clave durante un fetch pendiente se agrupan: una sola ejecuta fetch y
// todas reciben el mismo resultado (o el mismo error; los errores no se cachean).
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func(ctx context.Context) (V, error)) (V, error) {
	c.mu.Lock()
	if v, ok := c.getLocked(key); ok {
		c.mu.Unlock()
		return v, nil
	}
	if call, ok := c.pending[key]; ok {
		c.mu.Unlock()
		call.wg.Wait()
		return call.value, call.err
	}
	call := &inflight[V]{}
	call.wg.Add(1)
	c.pending[key] = call
	c.mu.Unlock()

	call.value, call.err = fetch(ctx)

	c.mu.Lock()
	delete(c.pending, key)
	if call.err == nil {
		c.entries[key] = entry[V]{value: call.value, expiry: c.now().Add(ttl)}
	}
	c.mu.Unlock()

	call.wg.Done()
	return call.value, call.err
}
