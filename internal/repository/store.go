package repository

import "edudash/internal/model"

// UserStore is the durable credential store. Save replaces the whole
// collection; implementations must guarantee a reader never observes a
// partially written store. Callers that share one store across processes
// still need external mutual exclusion.
type UserStore interface {
	Load() ([]model.User, error)
	Save(users []model.User) error
	FindByUsername(username string) (model.User, error)
}
