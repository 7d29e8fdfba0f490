package services

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cresly-pos/config"
	"cresly-pos/models"
)

var testDBCounter atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and spares sqlite
	// from concurrent-writer busy errors; serialization correctness still
	// comes from the service-level locks.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []map[string]interface{}
	jobs   [][]string
}

func (f *fakeBroadcaster) BroadcastOrders(message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := message.(map[string]interface{}); ok {
		f.events = append(f.events, m)
	}
}

func (f *fakeBroadcaster) DispatchPrintJob(content []string, printers []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, content)
}

func (f *fakeBroadcaster) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var types []string
	for _, e := range f.events {
		if t, ok := e["type"].(string); ok {
			types = append(types, t)
		}
	}
	return types
}

func (f *fakeBroadcaster) jobCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

type testEnv struct {
	db        *gorm.DB
	orders    *OrderService
	inventory *InventoryService
	registers *RegisterService
	events    *fakeBroadcaster
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	events := &fakeBroadcaster{}
	inventory := NewInventoryService(db, log)
	registers := NewRegisterService(db, log)
	orders := NewOrderService(db, inventory, registers, events, log)

	return &testEnv{db: db, orders: orders, inventory: inventory, registers: registers, events: events}
}

// menuFixture is today's menu with known ceilings: two soups (5 and 20
// portions), two seconds (10 and 15), one juice, two extras.
type menuFixture struct {
	day     models.MenuDay
	soup    models.MenuDaySlot
	soup2   models.MenuDaySlot
	second  models.MenuDaySlot
	second2 models.MenuDaySlot
	juice   models.MenuDaySlot
	extra   models.MenuDaySlot
	extra2  models.MenuDaySlot
}

func seedMenu(t *testing.T, db *gorm.DB) menuFixture {
	t.Helper()

	var fx menuFixture
	fx.day = models.MenuDay{Date: today()}
	require.NoError(t, db.Create(&fx.day).Error)

	makeSlot := func(name, category string, quantity int) models.MenuDaySlot {
		dish := models.Dish{Name: name, Kind: category}
		require.NoError(t, db.Create(&dish).Error)
		slot := models.MenuDaySlot{
			MenuDayID:          fx.day.ID,
			DishID:             dish.ID,
			Category:           category,
			ConfiguredQuantity: quantity,
			RemainingQuantity:  quantity,
		}
		require.NoError(t, db.Create(&slot).Error)
		slot.Dish = &dish
		return slot
	}

	fx.soup = makeSlot("Sopa de pollo", models.DishKindSoup, 5)
	fx.soup2 = makeSlot("Caldo de gallina", models.DishKindSoup, 20)
	fx.second = makeSlot("Arroz con pollo", models.DishKindSecond, 10)
	fx.second2 = makeSlot("Lomo saltado", models.DishKindSecond, 15)
	fx.juice = makeSlot("Chicha morada", models.DishKindJuice, 0)
	fx.extra = makeSlot("Huevo frito", models.DishKindExtra, 0)
	fx.extra2 = makeSlot("Porcion de arroz", models.DishKindExtra, 0)
	return fx
}

func remaining(t *testing.T, db *gorm.DB, slotID uint) int {
	t.Helper()
	var slot models.MenuDaySlot
	require.NoError(t, db.First(&slot, slotID).Error)
	return slot.RemainingQuantity
}

func uintp(v uint) *uint    { return &v }
func strp(s string) *string { return &s }

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func comboLine(fx menuFixture, qty int, price string) CartLine {
	return CartLine{
		Kind:         models.LineKindCombo,
		SoupSlotID:   uintp(fx.soup.ID),
		SecondSlotID: uintp(fx.second.ID),
		JuiceSlotID:  uintp(fx.juice.ID),
		Quantity:     qty,
		UnitPrice:    money(price),
	}
}

func soupLine(fx menuFixture, qty int, price string) CartLine {
	return CartLine{
		Kind:        models.LineKindSoupOnly,
		SoupSlotID:  uintp(fx.soup.ID),
		JuiceSlotID: uintp(fx.juice.ID),
		Quantity:    qty,
		UnitPrice:   money(price),
	}
}
