package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// fakeStore is an in-memory TransactionStore. Errors set on it are returned
// by the matching method until cleared.
type fakeStore struct {
	mu           sync.Mutex
	nextID       int64
	transactions map[int64]entity.Transaction
	categories   []entity.Category

	listErr    error
	monthlyErr error
	createErr  error
	updateErr  error
	deleteErr  error

	listCalls   int
	createCalls int

	// onDelete runs before a delete is applied.
	onDelete func(id int64)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:       1,
		transactions: map[int64]entity.Transaction{},
		categories: []entity.Category{
			{ID: 1, Name: "Salary", Type: entity.TransactionTypeIncome},
			{ID: 2, Name: "Food", Type: entity.TransactionTypeExpense},
			{ID: 3, Name: "Rent", Type: entity.TransactionTypeExpense},
		},
	}
}

func (s *fakeStore) seed(amount string, txnType entity.TransactionType, category, date string) entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	txn := entity.Transaction{
		ID:       s.nextID,
		Amount:   decimal.RequireFromString(amount),
		Type:     txnType,
		Category: category,
		Date:     parsed,
	}
	s.transactions[txn.ID] = txn
	s.nextID++
	return txn
}

func (s *fakeStore) setDeleteErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteErr = err
}

func (s *fakeStore) setListErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listErr = err
}

func (s *fakeStore) ListTransactions(_ context.Context, filter entity.TransactionFilter) ([]entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	result := make([]entity.Transaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		if filter.Category != "" && txn.Category != filter.Category {
			continue
		}
		result = append(result, txn)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (s *fakeStore) GetTransaction(_ context.Context, id int64) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.transactions[id]
	if !ok {
		return nil, domainerror.NewNotFoundError("transaction not found")
	}
	return &txn, nil
}

func (s *fakeStore) CreateTransaction(_ context.Context, input entity.TransactionInput) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	txn := entity.Transaction{
		ID:          s.nextID,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
	}
	s.transactions[txn.ID] = txn
	s.nextID++
	return &txn, nil
}

func (s *fakeStore) UpdateTransaction(_ context.Context, id int64, input entity.TransactionInput) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if _, ok := s.transactions[id]; !ok {
		return nil, domainerror.NewNotFoundError("transaction not found")
	}
	txn := entity.Transaction{
		ID:          id,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
	}
	s.transactions[id] = txn
	return &txn, nil
}

func (s *fakeStore) DeleteTransaction(_ context.Context, id int64) error {
	if s.onDelete != nil {
		s.onDelete(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.transactions[id]; !ok {
		return domainerror.NewNotFoundError("transaction not found")
	}
	delete(s.transactions, id)
	return nil
}

func (s *fakeStore) ListCategories(context.Context) ([]entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Category(nil), s.categories...), nil
}

func (s *fakeStore) CreateCategory(_ context.Context, input entity.CategoryInput) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := entity.FindCategory(s.categories, input.Name, input.Type); ok {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeStoreConflict, "category already exists", 409)
	}
	category := entity.Category{ID: int64(len(s.categories) + 1), Name: input.Name, Type: input.Type}
	s.categories = append(s.categories, category)
	return &category, nil
}

func (s *fakeStore) MonthlyReport(context.Context) ([]entity.MonthlyReportRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.monthlyErr != nil {
		return nil, s.monthlyErr
	}
	transactions := make([]entity.Transaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		transactions = append(transactions, txn)
	}
	rows := map[string]*entity.MonthlyReportRow{}
	var keys []string
	for _, txn := range transactions {
		key := entity.MonthKeyOf(txn.Date).String()
		row, ok := rows[key]
		if !ok {
			row = &entity.MonthlyReportRow{Month: key}
			rows[key] = row
			keys = append(keys, key)
		}
		if txn.Type == entity.TransactionTypeIncome {
			row.TotalIncome = row.TotalIncome.Add(txn.Amount)
		} else {
			row.TotalExpenses = row.TotalExpenses.Add(txn.Amount)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	result := make([]entity.MonthlyReportRow, 0, len(keys))
	for _, key := range keys {
		row := rows[key]
		row.NetAmount = row.TotalIncome.Sub(row.TotalExpenses)
		result = append(result, *row)
	}
	return result, nil
}

func (s *fakeStore) Ping(context.Context) error {
	return nil
}

// recordingNotifier keeps every pushed notification.
type recordingNotifier struct {
	mu     sync.Mutex
	pushed []adapter.Notification
}

func (n *recordingNotifier) Push(_ context.Context, notification adapter.Notification) (*adapter.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	notification.ID = uuid.New()
	n.pushed = append(n.pushed, notification)
	return &notification, nil
}

func (n *recordingNotifier) List(context.Context) ([]adapter.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]adapter.Notification(nil), n.pushed...), nil
}

func (n *recordingNotifier) Dismiss(context.Context, uuid.UUID) error {
	return nil
}

func (n *recordingNotifier) codes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	codes := make([]string, 0, len(n.pushed))
	for _, p := range n.pushed {
		codes = append(codes, p.Code)
	}
	return codes
}

type fixture struct {
	store    *fakeStore
	notifier *recordingNotifier
	state    *ViewState
	refresh  *RefreshDashboardUseCase
}

func newFixture() *fixture {
	store := newFakeStore()
	notifier := &recordingNotifier{}
	state := NewViewState()
	refresh := NewRefreshDashboardUseCase(store, state, notifier).
		WithClock(func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) })
	return &fixture{store: store, notifier: notifier, state: state, refresh: refresh}
}

func mustDate(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}
