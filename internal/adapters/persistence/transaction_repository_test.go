package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bakerysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
	"github.com/andrescamacho/bakerysim-go/test/helpers"
)

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func seedTransactions(t *testing.T, repo *persistence.GormTransactionRepository, sessionID string) []*ledger.Transaction {
	t.Helper()
	steps := []struct {
		round  int
		txType ledger.TransactionType
		amount int
	}{
		{1, ledger.TransactionTypeRentPayment, -26000},
		{1, ledger.TransactionTypeStockPurchase, -12600},
		{1, ledger.TransactionTypeSalesRevenue, 9000},
		{2, ledger.TransactionTypeRentPayment, -35000},
		{2, ledger.TransactionTypeEventEffect, 1000},
	}

	balance := 300000
	var out []*ledger.Transaction
	for i, s := range steps {
		tx, err := ledger.NewTransaction(ledger.TransactionParams{
			SessionID:         sessionID,
			Round:             s.round,
			Timestamp:         base.Add(time.Duration(i) * time.Minute),
			Type:              s.txType,
			Amount:            s.amount,
			BalanceBefore:     balance,
			BalanceAfter:      balance + s.amount,
			Description:       s.txType.String(),
			Metadata:          map[string]interface{}{"step": i},
			RelatedEntityType: "region",
			RelatedEntityID:   "住宅區",
		})
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), tx))
		balance = tx.BalanceAfter()
		out = append(out, tx)
	}
	return out
}

func TestTransactionRepository_CreateAndFind(t *testing.T) {
	// Arrange
	repo := persistence.NewGormTransactionRepository(helpers.NewTestDB(t))
	seeded := seedTransactions(t, repo, "s1")

	// Act
	found, err := repo.FindByID(context.Background(), seeded[2].ID(), "s1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9000, found.Amount())
	assert.Equal(t, ledger.CategorySalesRevenue, found.Category())
	assert.Equal(t, 261400, found.BalanceBefore())
	assert.Equal(t, "住宅區", found.RelatedEntityID())
	assert.EqualValues(t, 2, found.Metadata()["step"])
	assert.True(t, base.Add(2*time.Minute).Equal(found.Timestamp()))
}

func TestTransactionRepository_FindByID_OtherSession(t *testing.T) {
	repo := persistence.NewGormTransactionRepository(helpers.NewTestDB(t))
	seeded := seedTransactions(t, repo, "s1")

	_, err := repo.FindByID(context.Background(), seeded[0].ID(), "s2")

	var notFound *ledger.ErrTransactionNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestTransactionRepository_FindBySession(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewGormTransactionRepository(helpers.NewTestDB(t))
	seedTransactions(t, repo, "s1")
	seedTransactions(t, repo, "s2")

	all, err := repo.FindBySession(ctx, "s1", ledger.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, ledger.TransactionTypeEventEffect, all[0].TransactionType(), "newest first by default")

	round := 1
	firstRound, err := repo.FindBySession(ctx, "s1", ledger.QueryOptions{Round: &round, OrderBy: "timestamp ASC"})
	require.NoError(t, err)
	require.Len(t, firstRound, 3)
	assert.Equal(t, ledger.TransactionTypeRentPayment, firstRound[0].TransactionType())

	category := ledger.CategoryRent
	rent, err := repo.FindBySession(ctx, "s1", ledger.QueryOptions{Category: &category})
	require.NoError(t, err)
	assert.Len(t, rent, 2)

	page, err := repo.FindBySession(ctx, "s1", ledger.QueryOptions{Limit: 2, Offset: 1, OrderBy: "timestamp ASC"})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ledger.TransactionTypeStockPurchase, page[0].TransactionType())

	end := base.Add(time.Minute)
	early, err := repo.FindBySession(ctx, "s1", ledger.QueryOptions{EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, early, 2)
}

func TestTransactionRepository_UnsupportedOrder(t *testing.T) {
	repo := persistence.NewGormTransactionRepository(helpers.NewTestDB(t))

	_, err := repo.FindBySession(context.Background(), "s1", ledger.QueryOptions{OrderBy: "amount; DROP TABLE transactions"})
	assert.ErrorContains(t, err, "unsupported order")
}

func TestTransactionRepository_CountAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewGormTransactionRepository(helpers.NewTestDB(t))
	seedTransactions(t, repo, "s1")
	seedTransactions(t, repo, "s2")

	txType := ledger.TransactionTypeRentPayment
	count, err := repo.CountBySession(ctx, "s1", ledger.QueryOptions{TransactionType: &txType})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.DeleteBySession(ctx, "s1"))

	count, err = repo.CountBySession(ctx, "s1", ledger.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = repo.CountBySession(ctx, "s2", ledger.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
