// Package memory implements the repositories in process memory, for
// development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// Store holds users and recipes. Use Users and Recipes for the repository
// views and the Store itself as the ports.Transactor.
type Store struct {
	txMu sync.Mutex

	mu      sync.Mutex
	users   map[int64]domain.User
	recipes map[int64]domain.Recipe

	userSeq   int64
	recipeSeq int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:   make(map[int64]domain.User),
		recipes: make(map[int64]domain.Recipe),
	}
}

var (
	_ ports.Transactor       = (*Store)(nil)
	_ ports.UserRepository   = (*UserRepository)(nil)
	_ ports.RecipeRepository = (*RecipeRepository)(nil)
)

type snapshot struct {
	users     map[int64]domain.User
	recipes   map[int64]domain.Recipe
	userSeq   int64
	recipeSeq int64
}

// WithinTx serializes fn against other transactions and restores the
// previous state when fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		users:     make(map[int64]domain.User, len(s.users)),
		recipes:   make(map[int64]domain.Recipe, len(s.recipes)),
		userSeq:   s.userSeq,
		recipeSeq: s.recipeSeq,
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.recipes {
		snap.recipes[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.recipes = snap.recipes
	s.userSeq = snap.userSeq
	s.recipeSeq = snap.recipeSeq
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Users returns the user repository view of s.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Recipes returns the recipe repository view of s.
func (s *Store) Recipes() *RecipeRepository { return &RecipeRepository{s: s} }

// UserRepository implements ports.UserRepository on a Store.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.s.userSeq++
	clone := *user
	clone.ID = r.s.userSeq
	r.s.users[clone.ID] = clone
	out := clone
	return &out, nil
}

// Count returns the number of stored users.
func (r *UserRepository) Count() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.users)
}

// RecipeRepository implements ports.RecipeRepository on a Store.
type RecipeRepository struct {
	s *Store
}

func (r *RecipeRepository) ListByOwner(_ context.Context, userID int64) ([]domain.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Recipe, 0)
	for _, rec := range r.s.recipes {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RecipeRepository) Insert(_ context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[recipe.UserID]; !ok {
		return nil, domain.NewValidationError("user_id", "Recipe owner does not exist")
	}
	r.s.recipeSeq++
	clone := *recipe
	clone.ID = r.s.recipeSeq
	r.s.recipes[clone.ID] = clone
	out := clone
	return &out, nil
}

// Count returns the number of stored recipes.
func (r *RecipeRepository) Count() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.recipes)
}
