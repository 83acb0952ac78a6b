// Package mirror keeps a client side copy of budgets, expenses, categories and
// transactions.
//
// A State works against the server while it is online and against its local
// copy otherwise. Both paths run the rules of package ledger, so budgets and
// metrics come out the same either way.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/budgetwise/backend/internal/ledger"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// ErrNotCached is returned when a local change targets an entity the mirror does not hold.
var ErrNotCached = errors.New("the entity is not in the local mirror")

// Store persists the mirrored book.
type Store interface {
	Load(ctx context.Context) (ledger.Book, error)
	Save(ctx context.Context, book ledger.Book) error
}

// Remote is the server side of the mirror. *Client implements it.
type Remote interface {
	Budgets(ctx context.Context) ([]ledger.Budget, error)
	Expenses(ctx context.Context) ([]ledger.Expense, error)
	Categories(ctx context.Context) ([]ledger.Category, error)
	Transactions(ctx context.Context) ([]ledger.Transaction, error)
	Metrics(ctx context.Context) (ledger.DashboardMetrics, error)
	CreateBudget(ctx context.Context, b ledger.Budget) (ledger.Budget, error)
	UpdateBudget(ctx context.Context, id uuid.UUID, p ledger.BudgetPatch) (ledger.Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
	CreateExpense(ctx context.Context, e ledger.Expense) (ledger.Expense, error)
	UpdateExpense(ctx context.Context, id uuid.UUID, p ledger.ExpensePatch) (ledger.Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	ApproveExpense(ctx context.Context, id uuid.UUID) (ledger.Expense, error)
	RejectExpense(ctx context.Context, id uuid.UUID) (ledger.Expense, error)
}

// Options configure a State.
type Options struct {
	// Online selects the remote adapter. When false, Remote is never called.
	Online bool
	Remote Remote
	Store  Store

	// Actor is recorded as approver for approvals and rejections applied locally.
	Actor ledger.Actor
}

// State is the application state of a mirror client. It is safe for concurrent use.
type State struct {
	mu     sync.RWMutex
	online bool
	book   ledger.Book
	store  Store
	remote Remote
	actor  ledger.Actor
}

// New loads the local copy and returns the state.
func New(ctx context.Context, o Options) (*State, error) {
	if o.Store == nil {
		return nil, errors.New("mirror: a store is required")
	}

	if o.Online && o.Remote == nil {
		return nil, errors.New("mirror: online mode needs a remote")
	}

	book, err := o.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &State{
		online: o.Online,
		book:   book,
		store:  o.Store,
		remote: o.Remote,
		actor:  o.Actor,
	}, nil
}

// Online reports if changes are sent to the server.
func (s *State) Online() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// SetOnline switches between the remote and the local adapter.
func (s *State) SetOnline(online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if online && s.remote == nil {
		return errors.New("mirror: online mode needs a remote")
	}

	s.online = online
	return nil
}

// Book returns a copy of the mirrored entities.
func (s *State) Book() ledger.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ledger.Book{
		Budgets:      slices.Clone(s.book.Budgets),
		Expenses:     slices.Clone(s.book.Expenses),
		Categories:   slices.Clone(s.book.Categories),
		Transactions: slices.Clone(s.book.Transactions),
	}
}

// Budget returns the cached budget.
func (s *State) Budget(id uuid.UUID) (ledger.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := s.book.Budget(id)
	return b, notCached(err)
}

// Expense returns the cached expense.
func (s *State) Expense(id uuid.UUID) (ledger.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.book.Expense(id)
	return e, notCached(err)
}

// Refresh replaces the local copy with the server's data.
//
// Every resource is fetched on its own. A resource whose fetch fails keeps its
// cached copy, the others are still replaced. The returned error joins all
// failures. Refresh does nothing while offline.
func (s *State) Refresh(ctx context.Context) error {
	if !s.Online() {
		return nil
	}

	var (
		budgets      []ledger.Budget
		expenses     []ledger.Expense
		categories   []ledger.Category
		transactions []ledger.Transaction
		errs         [4]error
		g            errgroup.Group
	)

	g.Go(func() (err error) {
		budgets, err = s.remote.Budgets(ctx)
		errs[0] = wrapResource("budgets", err)
		return nil
	})
	g.Go(func() (err error) {
		expenses, err = s.remote.Expenses(ctx)
		errs[1] = wrapResource("expenses", err)
		return nil
	})
	g.Go(func() (err error) {
		categories, err = s.remote.Categories(ctx)
		errs[2] = wrapResource("categories", err)
		return nil
	})
	g.Go(func() (err error) {
		transactions, err = s.remote.Transactions(ctx)
		errs[3] = wrapResource("transactions", err)
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if errs[0] == nil {
		s.book.Budgets = budgets
	}
	if errs[1] == nil {
		s.book.Expenses = expenses
	}
	if errs[2] == nil {
		s.book.Categories = categories
	}
	if errs[3] == nil {
		s.book.Transactions = transactions
	}

	for _, err := range errs {
		if err != nil {
			log.Warn().Err(err).Msg("keeping cached copy")
		}
	}

	return errors.Join(append(errs[:], s.store.Save(ctx, s.book))...)
}

func wrapResource(resource string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("refresh %s: %w", resource, err)
}

// Metrics returns the dashboard metrics.
//
// Online, the server computes them. When that fails or the state is offline,
// they are computed from the local copy.
func (s *State) Metrics(ctx context.Context, now time.Time) ledger.DashboardMetrics {
	if s.Online() {
		m, err := s.remote.Metrics(ctx)
		if err == nil {
			return m
		}
		log.Warn().Err(err).Msg("computing metrics from the local copy")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Metrics(now)
}

// Alerts returns the alerts for the cached budgets.
func (s *State) Alerts() []ledger.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ledger.Alerts(s.book.Budgets)
}

// Health returns the display view of the cached budgets.
func (s *State) Health() []ledger.BudgetHealth {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ledger.Health(s.book.Budgets, s.book.Expenses)
}

// mutate sends a change to the server while online and applies it to the
// local copy when offline or when the server cannot be reached. Errors other
// than ErrUnavailable are returned without touching the local copy.
func (s *State) mutate(ctx context.Context, remote func(Remote) error, local func(*ledger.Book) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.online {
		err := remote(s.remote)
		if err == nil {
			return s.store.Save(ctx, s.book)
		}

		if !errors.Is(err, ErrUnavailable) {
			return err
		}
		log.Warn().Err(err).Msg("applying change to the local copy")
	}

	if err := local(&s.book); err != nil {
		return notCached(err)
	}
	return s.store.Save(ctx, s.book)
}

func notCached(err error) error {
	if errors.Is(err, ledger.ErrBudgetNotFound) || errors.Is(err, ledger.ErrExpenseNotFound) || errors.Is(err, ledger.ErrCategoryNotFound) {
		return fmt.Errorf("%w: %w", ErrNotCached, err)
	}
	return err
}

func (s *State) CreateBudget(ctx context.Context, b ledger.Budget) (created ledger.Budget, err error) {
	err = s.mutate(ctx,
		func(r Remote) error {
			created, err = r.CreateBudget(ctx, b)
			if err == nil {
				s.book.PutBudget(created)
			}
			return err
		},
		func(book *ledger.Book) error {
			created = book.AddBudget(b)
			return nil
		})
	return created, err
}

func (s *State) UpdateBudget(ctx context.Context, id uuid.UUID, p ledger.BudgetPatch) (updated ledger.Budget, err error) {
	err = s.mutate(ctx,
		func(r Remote) error {
			updated, err = r.UpdateBudget(ctx, id, p)
			if err == nil {
				s.book.PutBudget(updated)
			}
			return err
		},
		func(book *ledger.Book) error {
			updated, err = book.UpdateBudget(id, p)
			return err
		})
	return updated, err
}

func (s *State) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx,
		func(r Remote) error {
			if err := r.DeleteBudget(ctx, id); err != nil {
				return err
			}
			_ = s.book.DeleteBudget(id)
			return nil
		},
		func(book *ledger.Book) error {
			return book.DeleteBudget(id)
		})
}

func (s *State) CreateExpense(ctx context.Context, e ledger.Expense) (created ledger.Expense, err error) {
	err = s.mutate(ctx,
		func(r Remote) error {
			created, err = r.CreateExpense(ctx, e)
			if err == nil {
				s.book.PutExpense(created)
			}
			return err
		},
		func(book *ledger.Book) error {
			if e.Status != "" && e.Status != ledger.ExpensePending {
				e.ApprovedBy = s.actor.Label()
			}
			created, err = book.AddExpense(e)
			return err
		})
	return created, err
}

func (s *State) UpdateExpense(ctx context.Context, id uuid.UUID, p ledger.ExpensePatch) (updated ledger.Expense, err error) {
	err = s.mutate(ctx,
		func(r Remote) error {
			updated, err = r.UpdateExpense(ctx, id, p)
			if err == nil {
				s.book.PutExpense(updated)
			}
			return err
		},
		func(book *ledger.Book) error {
			updated, err = book.UpdateExpense(id, p)
			return err
		})
	return updated, err
}

func (s *State) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx,
		func(r Remote) error {
			if err := r.DeleteExpense(ctx, id); err != nil {
				return err
			}
			_ = s.book.DeleteExpense(id)
			return nil
		},
		func(book *ledger.Book) error {
			return book.DeleteExpense(id)
		})
}

func (s *State) Approve(ctx context.Context, id uuid.UUID) (approved ledger.Expense, err error) {
	err = s.mutate(ctx,
		func(r Remote) error {
			approved, err = r.ApproveExpense(ctx, id)
			if err == nil {
				s.book.PutExpense(approved)
			}
			return err
		},
		func(book *ledger.Book) error {
			approved, err = book.Approve(id, s.actor)
			return err
		})
	return approved, err
}

func (s *State) Reject(ctx context.Context, id uuid.UUID) (rejected ledger.Expense, err error) {
	err = s.mutate(ctx,
		func(r Remote) error {
			rejected, err = r.RejectExpense(ctx, id)
			if err == nil {
				s.book.PutExpense(rejected)
			}
			return err
		},
		func(book *ledger.Book) error {
			rejected, err = book.Reject(id, s.actor)
			return err
		})
	return rejected, err
}
