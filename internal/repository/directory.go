package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

// DirectoryRepository is the mock user directory: every account, keyed by
// email, stored as one blob that is rewritten in full on each mutation.
type DirectoryRepository interface {
	Initialize(ctx context.Context, admin *model.Account) (map[string]*model.Account, error)
	ByEmail(ctx context.Context, email string) (*model.Account, error)
	ByID(ctx context.Context, id string) (*model.Account, error)
	All(ctx context.Context) ([]*model.Account, error)
	Upsert(ctx context.Context, email string, account *model.Account) error
	Remove(ctx context.Context, email string) error
}

type directoryRepository struct {
	mu    sync.Mutex
	store localstore.Store
}

func NewDirectoryRepository(store localstore.Store) DirectoryRepository {
	return &directoryRepository{store: store}
}

func (r *directoryRepository) load(ctx context.Context) (map[string]*model.Account, bool, error) {
	accounts := make(map[string]*model.Account)
	found, err := loadJSON(ctx, r.store, KeyDirectory, &accounts)
	if err != nil {
		return nil, false, err
	}
	if !found || accounts == nil {
		return make(map[string]*model.Account), false, nil
	}
	return accounts, true, nil
}

// Initialize loads the directory. When nothing usable is stored it seeds the
// directory with admin alone and persists that.
func (r *directoryRepository) Initialize(ctx context.Context, admin *model.Account) (map[string]*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, found, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return accounts, nil
	}

	seeded := *admin
	seeded.Role = model.RoleAdmin
	seeded.Verified = true
	accounts = map[string]*model.Account{seeded.Email: &seeded}

	err = saveJSON(ctx, r.store, KeyDirectory, accounts)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *directoryRepository) ByEmail(ctx context.Context, email string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	account, ok := accounts[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (r *directoryRepository) ByID(ctx context.Context, id string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (r *directoryRepository) All(ctx context.Context) ([]*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*model.Account, 0, len(accounts))
	for _, account := range accounts {
		list = append(list, account)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Email < list[j].Email
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (r *directoryRepository) Upsert(ctx context.Context, email string, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, _, err := r.load(ctx)
	if err != nil {
		return err
	}

	stored := *account
	accounts[email] = &stored
	return saveJSON(ctx, r.store, KeyDirectory, accounts)
}

func (r *directoryRepository) Remove(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, _, err := r.load(ctx)
	if err != nil {
		return err
	}

	delete(accounts, email)
	return saveJSON(ctx, r.store, KeyDirectory, accounts)
}
