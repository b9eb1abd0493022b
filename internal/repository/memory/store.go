package memory

import (
	"context"
	"sync"

	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	"github.com/claimsdesk/claims-service/internal/domain/document"
	"github.com/claimsdesk/claims-service/internal/domain/notification"
	"github.com/claimsdesk/claims-service/internal/domain/policy"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/postgres"
	"github.com/claimsdesk/claims-service/internal/types"
)

var _ postgres.IClient = (*Store)(nil)

// Store holds every table of the in-memory backend and acts as its unit of work.
// Transactions are serialized; a failed transaction replays its undo log.
// Reads are not isolated from a concurrently running transaction.
type Store struct {
	txMu sync.Mutex
	// leaseMu serializes outbox claims
	leaseMu sync.Mutex
	logger  *logger.Logger

	Claimants     *Table[claimant.Claimant]
	Policies      *Table[policy.Policy]
	Claims        *Table[claim.Claim]
	ClaimStatuses *Table[claimstatus.ClaimStatus]
	Documents     *Table[document.Document]
	Notifications *Table[notification.Notification]
}

// NewStore creates an empty store seeded with the default claim statuses
func NewStore(logger *logger.Logger) *Store {
	s := &Store{
		logger:        logger,
		Claimants:     NewTable[claimant.Claimant](),
		Policies:      NewTable[policy.Policy](),
		Claims:        NewTable[claim.Claim](),
		ClaimStatuses: NewTable[claimstatus.ClaimStatus](),
		Documents:     NewTable[document.Document](),
		Notifications: NewTable[notification.Notification](),
	}
	s.SeedStatuses()
	return s
}

// SeedStatuses inserts the default claim statuses that are missing
func (s *Store) SeedStatuses() {
	ctx := types.SetUserID(context.Background(), types.DefaultUserID)
	for _, name := range types.DefaultClaimStatuses {
		if _, ok := s.ClaimStatuses.Find(func(cs *claimstatus.ClaimStatus) bool {
			return !cs.IsDeleted && cs.StatusName == name
		}); ok {
			continue
		}
		id := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIM_STATUS)
		s.ClaimStatuses.Put(ctx, id, claimstatus.ClaimStatus{
			ID:         id,
			StatusName: name,
			BaseModel:  types.GetDefaultBaseModel(ctx),
		})
	}
}

// Reset empties every table and reseeds statuses
func (s *Store) Reset() {
	s.Claimants.Clear()
	s.Policies.Clear()
	s.Claims.Clear()
	s.ClaimStatuses.Clear()
	s.Documents.Clear()
	s.Notifications.Clear()
	s.SeedStatuses()
}

type txKey struct{}

// memTx is the undo log of one transaction level
type memTx struct {
	mu     sync.Mutex
	undo   []func()
	parent *memTx
	id     string
}

func recordUndo(ctx context.Context, fn func()) {
	tx, ok := ctx.Value(txKey{}).(*memTx)
	if !ok {
		return
	}
	tx.mu.Lock()
	tx.undo = append(tx.undo, fn)
	tx.mu.Unlock()
}

func (tx *memTx) rollback() {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

// commit hands the undo log to the enclosing level so an outer rollback still covers it
func (tx *memTx) commit() {
	if tx.parent == nil {
		return
	}
	tx.mu.Lock()
	undo := tx.undo
	tx.undo = nil
	tx.mu.Unlock()

	tx.parent.mu.Lock()
	tx.parent.undo = append(tx.parent.undo, undo...)
	tx.parent.mu.Unlock()
}

// WithTx runs fn as one atomic unit against the store
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	parent, nested := ctx.Value(txKey{}).(*memTx)
	if !nested {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}

	tx := &memTx{parent: parent, id: types.GenerateUUID()}
	txCtx := context.WithValue(ctx, txKey{}, tx)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("panic in transaction", "tx_id", tx.id, "panic", r)
			tx.rollback()
			panic(r)
		}
	}()

	if err = fn(txCtx); err != nil {
		s.logger.Warnw("transaction failed, rolling back", "tx_id", tx.id, "error", err)
		tx.rollback()
		return err
	}

	tx.commit()
	return nil
}
