package cart

import "sync"

// Manager hands out one cart per authenticated username. There is one
// active session per browser instance, so a username maps to at most
// one live cart; the mutex only guards the map itself because the
// HTTP layer serves requests concurrently.
type Manager struct {
	mu       sync.Mutex
	products ProductReader
	carts    map[string]*Cart
}

func NewManager(products ProductReader) *Manager {
	return &Manager{
		products: products,
		carts:    make(map[string]*Cart),
	}
}

// Get returns the user's cart, creating it on first use.
func (m *Manager) Get(username string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[username]
	if !ok {
		c = New(m.products)
		m.carts[username] = c
	}
	return c
}

// Drop destroys the user's cart. Called on logout.
func (m *Manager) Drop(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, username)
}
