package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wallet-funding-service/internal/core/domain"
	"wallet-funding-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Customer Repo ---

type inMemoryCustomerRepo struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*domain.Customer
}

func newInMemoryCustomerRepo() *inMemoryCustomerRepo {
	return &inMemoryCustomerRepo{customers: make(map[uuid.UUID]*domain.Customer)}
}

func (r *inMemoryCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.customers {
		if existing.Email == c.Email {
			return apperror.ErrEmailExists()
		}
		if existing.ReferralCode == c.ReferralCode {
			return apperror.ErrConflict("Referral code")
		}
	}
	clone := *c
	r.customers[c.ID] = &clone
	return nil
}

func (r *inMemoryCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *inMemoryCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *inMemoryCustomerRepo) GetByReferralCode(ctx context.Context, code string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.ReferralCode == code {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *inMemoryCustomerRepo) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	c, err := r.GetByReferralCode(ctx, code)
	return c != nil, err
}

func (r *inMemoryCustomerRepo) IncrementReferralCount(ctx context.Context, referralCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.ReferralCode == referralCode {
			c.ReferralCount++
			return nil
		}
	}
	return fmt.Errorf("referral code not found")
}

// --- In-Memory Wallet Repo ---

type ledgerKey struct {
	walletID  uuid.UUID
	reference string
}

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
	ledger  map[ledgerKey]domain.Transaction
	order   []ledgerKey // insertion order per the append-only ledger
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{
		wallets: make(map[uuid.UUID]*domain.Wallet),
		ledger:  make(map[ledgerKey]domain.Transaction),
	}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.wallets {
		if existing.CustomerID == w.CustomerID {
			return apperror.ErrDuplicateWallet()
		}
	}
	clone := *w
	r.wallets[w.ID] = &clone
	return nil
}

func (r *inMemoryWalletRepo) GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.CustomerID == customerID {
			clone := *w
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByReference(ctx context.Context, reference string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for key := range r.ledger {
		if key.reference == reference {
			if w, ok := r.wallets[key.walletID]; ok {
				clone := *w
				return &clone, nil
			}
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) ListTransactions(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, key := range r.order {
		if key.walletID == walletID {
			result = append(result, r.ledger[key])
		}
	}
	return result, nil
}

func (r *inMemoryWalletRepo) InsertTransaction(ctx context.Context, tx pgx.Tx, t *domain.Transaction) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ledgerKey{walletID: t.WalletID, reference: t.Reference}
	if _, exists := r.ledger[key]; exists {
		return false, nil
	}
	r.ledger[key] = *t
	r.order = append(r.order, key)
	return true, nil
}

func (r *inMemoryWalletRepo) IncrementBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Balance += amount
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryWalletRepo) UpdateIdentity(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, email, fullName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Email = email
	w.FullName = fullName
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// --- In-Memory Airtime Order Repo ---

type inMemoryAirtimeOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.AirtimeOrder
}

func newInMemoryAirtimeOrderRepo() *inMemoryAirtimeOrderRepo {
	return &inMemoryAirtimeOrderRepo{orders: make(map[uuid.UUID]*domain.AirtimeOrder)}
}

func (r *inMemoryAirtimeOrderRepo) Create(ctx context.Context, o *domain.AirtimeOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.OrderID == o.OrderID {
			return apperror.ErrConflict("Order id")
		}
	}
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *inMemoryAirtimeOrderRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.AirtimeOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.OrderID == orderID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *inMemoryAirtimeOrderRepo) OrderIDExists(ctx context.Context, orderID string) (bool, error) {
	o, err := r.GetByOrderID(ctx, orderID)
	return o != nil, err
}

func (r *inMemoryAirtimeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AirtimeOrderStatus, providerMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order not found")
	}
	o.Status = status
	o.ProviderMessage = providerMessage
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// --- In-Memory Receipt Cache ---

type inMemoryReceiptCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func newInMemoryReceiptCache() *inMemoryReceiptCache {
	return &inMemoryReceiptCache{entries: make(map[string][]byte)}
}

func (c *inMemoryReceiptCache) Get(ctx context.Context, reference string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[reference]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (c *inMemoryReceiptCache) Set(ctx context.Context, reference string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[reference] = value
	return nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
