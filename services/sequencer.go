package services

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"cresly-pos/models"
)

// DailySequencer assigns per-day order numbers. Reading max+1 and inserting
// in separate steps hands the same number to concurrent writers, so the whole
// read-and-create critical section runs inside one transaction under a
// process-wide mutex. Soft-deleted orders still count toward the max: a
// number is never reissued within a day.
type DailySequencer struct {
	mu sync.Mutex
}

func NewDailySequencer() *DailySequencer {
	return &DailySequencer{}
}

// CreateWithNumber runs fn inside a transaction with the next sequence number
// for the given business date. fn must persist the order carrying that number
// before returning.
func (s *DailySequencer) CreateWithNumber(db *gorm.DB, date string, fn func(tx *gorm.DB, seq int) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return db.Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Unscoped().Model(&models.Order{}).
			Where("business_date = ?", date).
			Select("COALESCE(MAX(daily_sequence_number), 0)").
			Scan(&last).Error
		if err != nil {
			return err
		}
		return fn(tx, last+1)
	})
}

// BusinessDate is the calendar day orders are keyed on.
func BusinessDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func today() string {
	return BusinessDate(time.Now())
}
