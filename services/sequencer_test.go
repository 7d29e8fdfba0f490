package services

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"cresly-pos/models"
)

func TestConcurrentCreationsGetDistinctSequentialNumbers(t *testing.T) {
	env := newTestEnv(t)
	fx := seedMenu(t, env.db)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.orders.SubmitCart(SubmitCartRequest{
				Type:  models.OrderTypeToGo,
				Lines: []CartLine{soupLine(fx, 1, "7.00")},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var numbers []int
	require.NoError(t, env.db.Model(&models.Order{}).
		Where("business_date = ?", today()).
		Pluck("daily_sequence_number", &numbers).Error)

	sort.Ints(numbers)
	require.Len(t, numbers, n)
	for i, number := range numbers {
		require.Equal(t, i+1, number, "numbers must be exactly 1..N with no gaps or duplicates")
	}
}

func TestSequenceNumbersNotReissuedAfterDelete(t *testing.T) {
	env := newTestEnv(t)
	fx := seedMenu(t, env.db)

	first, err := env.orders.SubmitCart(SubmitCartRequest{
		Type:  models.OrderTypeDineIn,
		Lines: []CartLine{soupLine(fx, 1, "7.00")},
	})
	require.NoError(t, err)
	require.Equal(t, 1, first.DailySequenceNumber)

	second, err := env.orders.SubmitCart(SubmitCartRequest{
		Type:  models.OrderTypeDineIn,
		Lines: []CartLine{soupLine(fx, 1, "7.00")},
	})
	require.NoError(t, err)
	require.Equal(t, 2, second.DailySequenceNumber)

	require.NoError(t, env.orders.DeleteOrder(second.ID))

	third, err := env.orders.SubmitCart(SubmitCartRequest{
		Type:  models.OrderTypeDineIn,
		Lines: []CartLine{soupLine(fx, 1, "7.00")},
	})
	require.NoError(t, err)
	require.Equal(t, 3, third.DailySequenceNumber)
}

func TestSequenceIsScopedToBusinessDate(t *testing.T) {
	env := newTestEnv(t)
	fx := seedMenu(t, env.db)

	// A previous day already reached number 57; today still starts at 1.
	yesterday := models.Order{
		Type:                models.OrderTypeDineIn,
		State:               models.OrderStateCompleted,
		BusinessDate:        "2020-01-01",
		DailySequenceNumber: 57,
	}
	require.NoError(t, env.db.Create(&yesterday).Error)

	snap, err := env.orders.SubmitCart(SubmitCartRequest{
		Type:  models.OrderTypeDineIn,
		Lines: []CartLine{soupLine(fx, 1, "7.00")},
	})
	require.NoError(t, err)
	require.Equal(t, 1, snap.DailySequenceNumber)
	require.Equal(t, "001", snap.Number)
}
