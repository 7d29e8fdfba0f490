package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cresly-pos/models"
)

func TestOnlyOneRegisterMayBeOpen(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.registers.Open(OpenRegisterRequest{OpeningCash: money("50.00")})
	require.NoError(t, err)
	require.Equal(t, models.RegisterStateOpen, first.State)

	_, err = env.registers.Open(OpenRegisterRequest{OpeningCash: money("99.00")})
	require.ErrorIs(t, err, ErrRegisterAlreadyOpen)

	// The rejected attempt must leave no row behind.
	var count int64
	require.NoError(t, env.db.Model(&models.CashRegister{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCompletionCreditsPaymentSubledgerOnce(t *testing.T) {
	env := newTestEnv(t)
	fx := seedMenu(t, env.db)

	_, err := env.registers.Open(OpenRegisterRequest{OpeningCash: money("50.00")})
	require.NoError(t, err)

	cash, err := env.orders.SubmitCart(SubmitCartRequest{
		Type:          models.OrderTypeDineIn,
		PaymentMethod: models.PaymentCash,
		Lines:         []CartLine{soupLine(fx, 1, "10.00")},
	})
	require.NoError(t, err)

	transfer, err := env.orders.SubmitCart(SubmitCartRequest{
		Type:          models.OrderTypeToGo,
		PaymentMethod: models.PaymentTransfer,
		Lines:         []CartLine{soupLine(fx, 1, "15.00")},
	})
	require.NoError(t, err)

	count, err := env.orders.CompleteOrders([]uint{cash.ID, transfer.ID})
	require.NoError(t, err)
	require.Equal(t, 2, count)

	register, err := env.registers.Current()
	require.NoError(t, err)
	require.Equal(t, "10.00", register.Cash.TotalSales.StringFixed(2))
	require.Equal(t, "15.00", register.Transfer.TotalSales.StringFixed(2))
	require.Equal(t, "25.00", register.TotalSales().StringFixed(2))

	// Completing an already completed order is a no-op: no double credit.
	count, err = env.orders.CompleteOrders([]uint{cash.ID})
	require.NoError(t, err)
	require.Equal(t, 0, count)

	register, err = env.registers.Current()
	require.NoError(t, err)
	require.Equal(t, "10.00", register.Cash.TotalSales.StringFixed(2))
}

func TestCompletionWithoutOpenRegisterStillCompletes(t *testing.T) {
	env := newTestEnv(t)
	fx := seedMenu(t, env.db)

	order, err := env.orders.SubmitCart(SubmitCartRequest{
		Type:  models.OrderTypeDineIn,
		Lines: []CartLine{soupLine(fx, 1, "10.00")},
	})
	require.NoError(t, err)

	count, err := env.orders.CompleteOrders([]uint{order.ID})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	completed, err := env.orders.GetOrder(order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStateCompleted, completed.State)

	// The sale went unrecorded; opening a register later starts from zero.
	register, err := env.registers.Open(OpenRegisterRequest{})
	require.NoError(t, err)
	require.True(t, register.Cash.TotalSales.IsZero())
}

func TestCloseProducesSummaryAndAllowsReopen(t *testing.T) {
	env := newTestEnv(t)
	fx := seedMenu(t, env.db)

	_, err := env.registers.Open(OpenRegisterRequest{OpeningCash: money("100.00"), Notes: "turno manana"})
	require.NoError(t, err)

	order, err := env.orders.SubmitCart(SubmitCartRequest{
		Type:          models.OrderTypeDineIn,
		PaymentMethod: models.PaymentCash,
		Lines:         []CartLine{soupLine(fx, 2, "10.00")},
	})
	require.NoError(t, err)
	_, err = env.orders.CompleteOrders([]uint{order.ID})
	require.NoError(t, err)

	_, err = env.registers.AddExpense(AddExpenseRequest{
		Description: "gas",
		Amount:      money("35.00"),
		Category:    models.ExpenseSupplies,
	})
	require.NoError(t, err)

	closed, summary, err := env.registers.Close(CloseRegisterRequest{
		ClosingCash: money("85.00"),
		Note:        "cuadre ok",
	})
	require.NoError(t, err)
	require.Equal(t, models.RegisterStateClosed, closed.State)
	require.NotNil(t, closed.ClosedAt)
	require.Equal(t, "20.00", summary.TotalCash.StringFixed(2))
	require.Equal(t, "0.00", summary.TotalTransfer.StringFixed(2))
	require.Equal(t, "20.00", summary.TotalSales.StringFixed(2))
	require.Equal(t, "35.00", summary.TotalExpenses.StringFixed(2))

	_, err = env.registers.Current()
	require.ErrorIs(t, err, ErrNoOpenRegister)

	// A new shift opens a fresh register with clean subledgers.
	reopened, err := env.registers.Open(OpenRegisterRequest{OpeningCash: money("60.00")})
	require.NoError(t, err)
	require.NotEqual(t, closed.ID, reopened.ID)
	require.True(t, reopened.Cash.TotalSales.IsZero())
}

func TestCloseWithoutOpenRegister(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.registers.Close(CloseRegisterRequest{ClosingCash: money("10.00")})
	require.ErrorIs(t, err, ErrNoOpenRegister)
}

func TestExpensesRequireOpenRegister(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.registers.AddExpense(AddExpenseRequest{Description: "gas", Amount: money("5.00")})
	require.ErrorIs(t, err, ErrNoOpenRegister)

	_, err = env.registers.Open(OpenRegisterRequest{})
	require.NoError(t, err)

	expense, err := env.registers.AddExpense(AddExpenseRequest{
		Description: "taxi",
		Amount:      money("12.50"),
		Category:    "limousine",
	})
	require.NoError(t, err)
	require.Equal(t, models.ExpenseOther, expense.Category, "unknown categories fall back to other")

	register, err := env.registers.Current()
	require.NoError(t, err)
	require.Len(t, register.Expenses, 1)
}
