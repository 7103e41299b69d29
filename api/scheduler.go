/*
scheduler.go - Automated month-close scheduler

PURPOSE:
  Periodically finds employee-months whose rating has not been closed yet
  (the month has fully elapsed) and closes them, applying the punctuality
  bonus and persisting the final rating.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - A month is due once the previous calendar month has ended
  - Skips months that are already closed (close is idempotent)
  - Close failures are logged and retried on the next tick

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewCloseScheduler(store, handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: CloseRating endpoint (manual close)
  - rating/rating.go: Engine.Close
*/
package api

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/store/sqlite"
)

// CloseScheduler closes elapsed rating months in the background.
type CloseScheduler struct {
	Store         *sqlite.Store
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewCloseScheduler creates a new scheduler.
func NewCloseScheduler(store *sqlite.Store, handler *Handler) *CloseScheduler {
	return &CloseScheduler{
		Store:         store,
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (cs *CloseScheduler) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	cs.ticker = time.NewTicker(cs.CheckInterval)
	cs.wg.Add(1)

	go cs.run()

	log.Printf("[Scheduler] Started with check interval: %v", cs.CheckInterval)
}

// Stop stops the scheduler.
func (cs *CloseScheduler) Stop() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.ticker != nil {
		cs.ticker.Stop()
		close(cs.stop)
		cs.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (cs *CloseScheduler) run() {
	defer cs.wg.Done()

	// Run immediately on start
	cs.checkAndClose()

	for {
		select {
		case <-cs.ticker.C:
			cs.checkAndClose()
		case <-cs.stop:
			return
		}
	}
}

func (cs *CloseScheduler) checkAndClose() {
	ctx := context.Background()
	today := cs.Handler.Engine.Clock.Today()

	employees, err := cs.Store.ListEmployees(ctx)
	if err != nil {
		log.Printf("[Scheduler] Error listing employees: %v", err)
		return
	}

	closedCount := 0
	skippedCount := 0

	for _, emp := range employees {
		for _, month := range dueMonths(emp.JoiningDate, today) {
			_, err := cs.Handler.Rating.Close(ctx, emp.ID, month)
			if errors.Is(err, engine.ErrRatingClosed) {
				skippedCount++
				continue
			}
			if err != nil {
				log.Printf("[Scheduler] Error closing %s %s: %v", emp.ID, month, err)
				continue
			}
			closedCount++
		}
	}

	if closedCount > 0 {
		log.Printf("[Scheduler] Completed: %d closed, %d already closed", closedCount, skippedCount)
	}
}

// dueMonths lists the months that should be closed as of today: every month
// from the later of joining and January of the current year up to, and
// excluding, the current month. The fold reseeds each January, so earlier
// years never need reopening.
func dueMonths(joining engine.Date, today engine.Date) []engine.MonthKey {
	current := engine.MonthOf(today)
	start := engine.MonthKey{Year: current.Year, Month: time.January}
	if j := engine.MonthOf(joining); j.Year == current.Year && int(j.Month) > 1 {
		start = j
	}

	var months []engine.MonthKey
	for m := start; m != current && m.Year == current.Year; m = m.Next() {
		months = append(months, m)
	}
	return months
}

// RunNow triggers an immediate check (for testing/admin).
func (cs *CloseScheduler) RunNow() {
	cs.checkAndClose()
}

// NextRunTime returns when the next scheduled check will occur.
func (cs *CloseScheduler) NextRunTime() time.Time {
	return time.Now().Add(cs.CheckInterval)
}
