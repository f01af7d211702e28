package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

func TestRefreshDashboard(t *testing.T) {
	f := newFixture()
	f.store.seed("1000", entity.TransactionTypeIncome, "Salary", "2024-01-05")
	f.store.seed("400", entity.TransactionTypeExpense, "Rent", "2024-01-10")
	f.store.seed("50", entity.TransactionTypeExpense, "Food", "2024-02-02")

	views, err := f.refresh.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1000", views.Summary.TotalIncome.String())
	assert.Equal(t, "450", views.Summary.TotalExpenses.String())
	assert.Equal(t, "550", views.Summary.Balance.String())
	assert.Len(t, views.ExpenseBreakdown, 2)
	require.Len(t, views.Series, 2)
	assert.Equal(t, "Jan 2024", views.Series[0].MonthLabel)
	assert.Equal(t, "600.00", views.Series[0].Net.StringFixed(2))

	snapshot, current := f.state.Current()
	assert.Same(t, views, current)
	assert.Len(t, snapshot.Transactions, 3)
	assert.Len(t, snapshot.Categories, 3)
}

func TestRefreshDashboard_TransportFailureKeepsPreviousState(t *testing.T) {
	f := newFixture()
	f.store.seed("10", entity.TransactionTypeIncome, "Salary", "2024-01-05")

	first, err := f.refresh.Execute(context.Background())
	require.NoError(t, err)

	f.store.setListErr(domainerror.NewTransportError(domainerror.ErrCodeStoreUnreachable, "store unreachable", 0, errors.New("connection refused")))
	_, err = f.refresh.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerror.ErrTransport)

	_, current := f.state.Current()
	assert.Same(t, first, current)
	assert.Equal(t, []string{string(domainerror.ErrCodeStoreUnreachable)}, f.notifier.codes())
}

func TestRefreshDashboard_InvalidDataIsNotified(t *testing.T) {
	f := newFixture()
	f.store.seed("0", entity.TransactionTypeIncome, "Salary", "2024-01-05")

	_, err := f.refresh.Execute(context.Background())
	assert.ErrorIs(t, err, domainerror.ErrInvalidData)
	assert.False(t, f.state.Loaded())
	assert.Equal(t, []string{string(domainerror.ErrCodeNonPositiveAmount)}, f.notifier.codes())
}

func TestViewState_IgnoresStaleGenerations(t *testing.T) {
	state := NewViewState()
	older := state.nextGeneration()
	newer := state.nextGeneration()

	newerViews := &entity.Views{}
	assert.True(t, state.commit(newer, &entity.Snapshot{}, newerViews))
	assert.False(t, state.commit(older, &entity.Snapshot{}, &entity.Views{}))

	_, current := state.Current()
	assert.Same(t, newerViews, current)
}

func TestGetDashboard(t *testing.T) {
	f := newFixture()
	f.store.seed("1000", entity.TransactionTypeIncome, "Salary", "2024-01-05")
	f.store.seed("50", entity.TransactionTypeExpense, "Food", "2024-02-02")
	uc := NewGetDashboardUseCase(f.state, f.refresh)

	t.Run("loads lazily and reuses the snapshot", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), GetDashboardInput{})
		require.NoError(t, err)
		assert.Equal(t, "950", out.Views.Summary.Balance.String())

		_, err = uc.Execute(context.Background(), GetDashboardInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, f.store.listCalls)
	})

	t.Run("forced refresh sees new data", func(t *testing.T) {
		f.store.seed("25", entity.TransactionTypeExpense, "Food", "2024-02-03")
		out, err := uc.Execute(context.Background(), GetDashboardInput{Refresh: true})
		require.NoError(t, err)
		assert.Equal(t, "925", out.Views.Summary.Balance.String())
		assert.Equal(t, 2, f.store.listCalls)
	})

	t.Run("period restricts every view", func(t *testing.T) {
		start := mustDate("2024-02-01")
		end := mustDate("2024-02-29")
		out, err := uc.Execute(context.Background(), GetDashboardInput{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		assert.True(t, out.Filtered)
		assert.True(t, out.Views.Summary.TotalIncome.IsZero())
		assert.Equal(t, "75", out.Views.Summary.TotalExpenses.String())
		require.Len(t, out.Views.Series, 1)
		assert.Equal(t, "Feb 2024", out.Views.Series[0].MonthLabel)
	})
}

func TestCreateTransaction(t *testing.T) {
	f := newFixture()
	uc := NewCreateTransactionUseCase(f.store, f.refresh, f.notifier)

	out, err := uc.Execute(context.Background(), CreateTransactionInput{Form: TransactionForm{
		Amount:      decimal.RequireFromString("12.50"),
		Type:        "expense",
		Category:    " Food ",
		Description: " lunch ",
		Date:        mustDate("2024-02-10"),
	}})
	require.NoError(t, err)
	assert.False(t, out.Stale)
	assert.Equal(t, "Food", out.Transaction.Category)
	assert.Equal(t, "lunch", out.Transaction.Description)
	assert.Equal(t, "12.5", out.Views.Summary.TotalExpenses.String())
	assert.Equal(t, "12.5", out.Views.ExpenseBreakdown["Food"].String())
}

func TestCreateTransaction_FormValidation(t *testing.T) {
	valid := TransactionForm{
		Amount:   decimal.NewFromInt(10),
		Type:     "income",
		Category: "Salary",
		Date:     mustDate("2024-01-01"),
	}

	tests := []struct {
		name     string
		mutate   func(*TransactionForm)
		expected domainerror.TransactionErrorCode
	}{
		{name: "zero amount", mutate: func(f *TransactionForm) { f.Amount = decimal.Zero }, expected: domainerror.ErrCodeInvalidTransactionAmount},
		{name: "negative amount", mutate: func(f *TransactionForm) { f.Amount = decimal.NewFromInt(-5) }, expected: domainerror.ErrCodeInvalidTransactionAmount},
		{name: "unknown type", mutate: func(f *TransactionForm) { f.Type = "transfer" }, expected: domainerror.ErrCodeInvalidTransactionType},
		{name: "missing date", mutate: func(f *TransactionForm) { f.Date = mustDate("0001-01-01") }, expected: domainerror.ErrCodeInvalidTransactionDate},
		{name: "blank category", mutate: func(f *TransactionForm) { f.Category = "  " }, expected: domainerror.ErrCodeCategoryRequired},
		{name: "category of the other type", mutate: func(f *TransactionForm) { f.Category = "Food" }, expected: domainerror.ErrCodeCategoryTypeMismatch},
		{name: "unknown category", mutate: func(f *TransactionForm) { f.Category = "Lottery" }, expected: domainerror.ErrCodeCategoryTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			uc := NewCreateTransactionUseCase(f.store, f.refresh, f.notifier)

			form := valid
			tt.mutate(&form)
			_, err := uc.Execute(context.Background(), CreateTransactionInput{Form: form})

			var txnErr *domainerror.TransactionError
			require.ErrorAs(t, err, &txnErr)
			assert.Equal(t, tt.expected, txnErr.Code)
			assert.ErrorIs(t, err, domainerror.ErrValidation)
			assert.Zero(t, f.store.createCalls, "invalid forms must not reach the store")
			assert.Empty(t, f.notifier.codes())
		})
	}
}

func TestCreateTransaction_CategoryAddedSinceLastRefresh(t *testing.T) {
	f := newFixture()
	uc := NewCreateTransactionUseCase(f.store, f.refresh, f.notifier)
	ctx := context.Background()

	_, err := f.refresh.Execute(ctx)
	require.NoError(t, err)

	f.store.mu.Lock()
	f.store.categories = append(f.store.categories, entity.Category{ID: 4, Name: "Books", Type: entity.TransactionTypeExpense})
	f.store.mu.Unlock()

	out, err := uc.Execute(ctx, CreateTransactionInput{Form: TransactionForm{
		Amount:   decimal.NewFromInt(20),
		Type:     "expense",
		Category: "Books",
		Date:     mustDate("2024-02-01"),
	}})
	require.NoError(t, err)
	assert.Equal(t, "Books", out.Transaction.Category)
	assert.Equal(t, "20", out.Views.ExpenseBreakdown["Books"].String())

	listCalls := f.store.listCalls
	_, err = uc.Execute(ctx, CreateTransactionInput{Form: TransactionForm{
		Amount:   decimal.NewFromInt(20),
		Type:     "expense",
		Category: "Lottery",
		Date:     mustDate("2024-02-01"),
	}})
	var txnErr *domainerror.TransactionError
	require.ErrorAs(t, err, &txnErr)
	assert.Equal(t, domainerror.ErrCodeCategoryTypeMismatch, txnErr.Code)
	assert.Equal(t, listCalls+1, f.store.listCalls, "an unknown category refreshes once")
}

func TestCreateTransaction_StoreRejection(t *testing.T) {
	f := newFixture()
	f.store.createErr = domainerror.NewValidationError(domainerror.ErrCodeStoreRejected, "amount too large", 422)
	uc := NewCreateTransactionUseCase(f.store, f.refresh, f.notifier)

	_, err := uc.Execute(context.Background(), CreateTransactionInput{Form: TransactionForm{
		Amount:   decimal.NewFromInt(10),
		Type:     "income",
		Category: "Salary",
		Date:     mustDate("2024-01-01"),
	}})
	assert.ErrorIs(t, err, domainerror.ErrValidation)
	assert.Equal(t, []string{string(domainerror.ErrCodeStoreRejected)}, f.notifier.codes())
}

func TestUpdateTransaction(t *testing.T) {
	f := newFixture()
	txn := f.store.seed("10", entity.TransactionTypeExpense, "Food", "2024-01-05")
	uc := NewUpdateTransactionUseCase(f.store, f.refresh, f.notifier)

	out, err := uc.Execute(context.Background(), UpdateTransactionInput{
		ID: txn.ID,
		Form: TransactionForm{
			Amount:   decimal.NewFromInt(30),
			Type:     "expense",
			Category: "Rent",
			Date:     mustDate("2024-01-05"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "30", out.Views.ExpenseBreakdown["Rent"].String())
	_, hasFood := out.Views.ExpenseBreakdown["Food"]
	assert.False(t, hasFood)

	_, err = uc.Execute(context.Background(), UpdateTransactionInput{ID: 999, Form: TransactionForm{
		Amount:   decimal.NewFromInt(1),
		Type:     "expense",
		Category: "Rent",
		Date:     mustDate("2024-01-05"),
	}})
	assert.ErrorIs(t, err, domainerror.ErrNotFound)

	_, err = uc.Execute(context.Background(), UpdateTransactionInput{ID: 0})
	assert.ErrorIs(t, err, domainerror.ErrValidation)
}

func TestDeleteTransaction(t *testing.T) {
	f := newFixture()
	keep := f.store.seed("100", entity.TransactionTypeIncome, "Salary", "2024-01-05")
	drop := f.store.seed("40", entity.TransactionTypeExpense, "Food", "2024-01-06")
	uc := NewDeleteTransactionUseCase(f.store, f.state, f.refresh, f.notifier)

	var balanceDuringDelete string
	f.store.onDelete = func(int64) {
		_, views := f.state.Current()
		balanceDuringDelete = views.Summary.Balance.String()
	}

	out, err := uc.Execute(context.Background(), DeleteTransactionInput{ID: drop.ID})
	require.NoError(t, err)
	assert.Equal(t, "100", balanceDuringDelete, "views must drop the transaction before the store confirms")
	assert.Equal(t, "100", out.Views.Summary.Balance.String())

	_, err = uc.Execute(context.Background(), DeleteTransactionInput{ID: drop.ID})
	assert.ErrorIs(t, err, domainerror.ErrNotFound)

	snapshot, _ := f.state.Current()
	require.Len(t, snapshot.Transactions, 1)
	assert.Equal(t, keep.ID, snapshot.Transactions[0].ID)
}

func TestDeleteTransaction_RollsBackOnFailure(t *testing.T) {
	f := newFixture()
	f.store.seed("100", entity.TransactionTypeIncome, "Salary", "2024-01-05")
	drop := f.store.seed("40", entity.TransactionTypeExpense, "Food", "2024-01-06")
	uc := NewDeleteTransactionUseCase(f.store, f.state, f.refresh, f.notifier)

	_, err := f.refresh.Execute(context.Background())
	require.NoError(t, err)

	t.Run("re-fetches after a refused delete", func(t *testing.T) {
		f.store.setDeleteErr(domainerror.NewTransportError(domainerror.ErrCodeStoreUnexpectedStatus, "store failed", 500, nil))

		_, err := uc.Execute(context.Background(), DeleteTransactionInput{ID: drop.ID})
		assert.ErrorIs(t, err, domainerror.ErrTransport)

		_, views := f.state.Current()
		assert.Equal(t, "60", views.Summary.Balance.String())
	})

	t.Run("restores the previous state when the re-fetch fails too", func(t *testing.T) {
		transport := domainerror.NewTransportError(domainerror.ErrCodeStoreUnreachable, "store unreachable", 0, nil)
		f.store.setDeleteErr(transport)
		f.store.onDelete = func(int64) { f.store.setListErr(transport) }

		_, err := uc.Execute(context.Background(), DeleteTransactionInput{ID: drop.ID})
		assert.ErrorIs(t, err, domainerror.ErrTransport)

		snapshot, views := f.state.Current()
		assert.Len(t, snapshot.Transactions, 2)
		assert.Equal(t, "60", views.Summary.Balance.String())
	})
}

func TestListAndGetTransactions(t *testing.T) {
	f := newFixture()
	food := f.store.seed("10", entity.TransactionTypeExpense, "Food", "2024-01-05")
	f.store.seed("20", entity.TransactionTypeExpense, "Rent", "2024-01-06")

	list := NewListTransactionsUseCase(f.store, f.notifier)
	transactions, err := list.Execute(context.Background(), entity.TransactionFilter{Category: "Food"})
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, food.ID, transactions[0].ID)

	get := NewGetTransactionUseCase(f.store)
	txn, err := get.Execute(context.Background(), food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", txn.Category)

	_, err = get.Execute(context.Background(), 404)
	assert.ErrorIs(t, err, domainerror.ErrNotFound)
}

func TestCategories(t *testing.T) {
	f := newFixture()
	create := NewCreateCategoryUseCase(f.store, f.refresh, f.notifier)
	list := NewListCategoriesUseCase(f.store, f.notifier)

	category, err := create.Execute(context.Background(), CreateCategoryInput{Name: " Bonus ", Type: "income"})
	require.NoError(t, err)
	assert.Equal(t, "Bonus", category.Name)

	income := entity.TransactionTypeIncome
	categories, err := list.Execute(context.Background(), &income)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	snapshot, _ := f.state.Current()
	_, known := entity.FindCategory(snapshot.Categories, "Bonus", entity.TransactionTypeIncome)
	assert.True(t, known, "new categories must be usable by the next form")

	_, err = create.Execute(context.Background(), CreateCategoryInput{Name: "Bonus", Type: "income"})
	assert.ErrorIs(t, err, domainerror.ErrValidation)
	assert.Contains(t, f.notifier.codes(), string(domainerror.ErrCodeStoreConflict))

	_, err = create.Execute(context.Background(), CreateCategoryInput{Name: "", Type: "income"})
	var txnErr *domainerror.TransactionError
	require.ErrorAs(t, err, &txnErr)
	assert.Equal(t, domainerror.ErrCodeInvalidCategoryName, txnErr.Code)
}
