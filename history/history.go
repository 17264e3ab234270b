package history

import (
	"fmt"
	"time"

	"github.com/AlexAkulov/reportfox"

	"github.com/sasha-s/go-deadlock"
	db "upper.io/db.v3"
	"upper.io/db.v3/lib/sqlbuilder"
	"upper.io/db.v3/ql"
)

// Store keeps per-run aggregate counts in an embedded ql database so the
// Overview variant can show deltas against the previous run.
type Store struct {
	Location string

	sync deadlock.Mutex
	db   sqlbuilder.Database
}

type runRecord struct {
	Variant   string    `db:"variant"`
	RunID     string    `db:"run_id"`
	Critical  int       `db:"critical"`
	High      int       `db:"high"`
	Medium    int       `db:"medium"`
	Low       int       `db:"low"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Store) Start() error {
	settings := ql.ConnectionURL{Database: s.Location}
	var err error
	if s.db, err = ql.Open(settings); err != nil {
		return fmt.Errorf("can't open history with: %v", err)
	}
	return s.setup()
}

func (s *Store) Stop() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) setup() error {
	table := `CREATE TABLE IF NOT EXISTS runs (
	variant string,
	run_id string,
	critical int64,
	high int64,
	medium int64,
	low int64,
	created_at time
	)`
	tx, err := s.db.NewTx(nil)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(table); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveRun appends the aggregate counts of one rendered report.
func (s *Store) SaveRun(variant string, context reportfox.RunContext, counts reportfox.VulnerabilityCounts) error {
	s.sync.Lock()
	defer s.sync.Unlock()
	_, err := s.db.Collection("runs").Insert(runRecord{
		Variant:   variant,
		RunID:     context.RunID,
		Critical:  counts.Critical,
		High:      counts.High,
		Medium:    counts.Medium,
		Low:       counts.Low,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("can't save run with: %v", err)
	}
	return nil
}

// TrendFor compares counts against the most recent stored run of the same
// variant. Returns nil with no error when there is no history yet.
func (s *Store) TrendFor(variant string, counts reportfox.VulnerabilityCounts) (*reportfox.Trend, error) {
	s.sync.Lock()
	defer s.sync.Unlock()
	var prev runRecord
	res := s.db.Collection("runs").Find(db.Cond{"variant": variant}).OrderBy("-created_at")
	if err := res.One(&prev); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, fmt.Errorf("can't load history with: %v", err)
	}
	return &reportfox.Trend{
		Critical: counts.Critical - prev.Critical,
		High:     counts.High - prev.High,
		Medium:   counts.Medium - prev.Medium,
		Low:      counts.Low - prev.Low,
	}, nil
}
