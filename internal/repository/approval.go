package repository

import (
	"context"
	"sync"

	"github.com/templui/soulsync/internal/localstore"
)

// ApprovalInbox holds ids of professionals whose approval has not yet been
// shown to them. Each id is delivered once.
type ApprovalInbox interface {
	Push(ctx context.Context, accountID string) error
	Consume(ctx context.Context, accountID string) (bool, error)
	Pending(ctx context.Context) ([]string, error)
}

type approvalInbox struct {
	mu    sync.Mutex
	store localstore.Store
}

func NewApprovalInbox(store localstore.Store) ApprovalInbox {
	return &approvalInbox{store: store}
}

func (r *approvalInbox) load(ctx context.Context) ([]string, error) {
	var ids []string
	_, err := loadJSON(ctx, r.store, KeyApprovals, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *approvalInbox) Push(ctx context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == accountID {
			return nil
		}
	}
	return saveJSON(ctx, r.store, KeyApprovals, append(ids, accountID))
}

// Consume removes accountID from the inbox and reports whether it was there.
func (r *approvalInbox) Consume(ctx context.Context, accountID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]string, 0, len(ids))
	found := false
	for _, id := range ids {
		if id == accountID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return false, nil
	}

	err = saveJSON(ctx, r.store, KeyApprovals, kept)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *approvalInbox) Pending(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}
