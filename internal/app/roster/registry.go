// internal/app/roster/registry.go
package roster

import "sync"

// Registry хранит контроллеры списка по пользователям.
// Контроллер создается при первом обращении и живет, пока открыт список.
type Registry struct {
	mu      sync.Mutex
	fetcher Fetcher
	byUser  map[uint]*Controller
}

func NewRegistry(fetcher Fetcher) *Registry {
	return &Registry{
		fetcher: fetcher,
		byUser:  make(map[uint]*Controller),
	}
}

// Get возвращает контроллер пользователя, создавая его при необходимости
func (r *Registry) Get(userID uint) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctrl, ok := r.byUser[userID]
	if !ok {
		ctrl = NewController(r.fetcher)
		r.byUser[userID] = ctrl
	}
	return ctrl
}

// Drop удаляет контроллер пользователя, например при выходе из списка
func (r *Registry) Drop(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser, userID)
}
