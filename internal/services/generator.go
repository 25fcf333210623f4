package services

import (
	"log"
	"time"

	"bincycle-backend/internal/models"
	"bincycle-backend/internal/schedule"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"
	"github.com/teambition/rrule-go"
)

// JobGenerator materializes this week's put_out and bring_in jobs from the
// property schedules. It runs nightly so a property added mid-week still gets
// its jobs before the collection day, and it is idempotent within a week.
type JobGenerator struct {
	db   *sqlx.DB
	cal  schedule.Calendar
	cron *cron.Cron
}

func NewJobGenerator(db *sqlx.DB, cal schedule.Calendar) *JobGenerator {
	return &JobGenerator{
		db:   db,
		cal:  cal,
		cron: cron.New(),
	}
}

// Start runs one generation pass immediately, then every night at 02:00.
func (g *JobGenerator) Start() error {
	if err := g.GenerateForWeek(time.Now()); err != nil {
		log.Printf("❌ Initial job generation failed: %v", err)
	}

	_, err := g.cron.AddFunc("0 2 * * *", func() {
		if err := g.GenerateForWeek(time.Now()); err != nil {
			log.Printf("❌ Nightly job generation failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	g.cron.Start()
	log.Println("⏰ Job generator scheduled (nightly at 02:00)")
	return nil
}

// Stop halts the nightly schedule.
func (g *JobGenerator) Stop() {
	g.cron.Stop()
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// putOutWeekday picks the day crews put bins out: the property's own put-out
// day when staff entered a usable weekday name, otherwise the collection day.
func putOutWeekday(raw string, collectionDay time.Weekday) time.Weekday {
	if wd, ok := schedule.ParseWeekday(raw); ok {
		return wd
	}
	return collectionDay
}

// GenerateForWeek creates the missing jobs for the week containing now: a
// put_out job on the property's put-out day and a bring_in job the day after
// collection. Properties with no active bin color this week are left alone,
// so a fortnightly-only property simply has no jobs on its off week.
func (g *JobGenerator) GenerateForWeek(now time.Time) error {
	var properties []models.Property
	err := g.db.Select(&properties, `
		SELECT id, account_id, client_name, company, address,
		       red_freq, red_flip, red_bins,
		       yellow_freq, yellow_flip, yellow_bins,
		       green_freq, green_flip, green_bins,
		       put_bins_out, collection_day, notes,
		       created_at, updated_at
		FROM properties
		WHERE collection_day != ''
	`)
	if err != nil {
		return err
	}

	// The Monday anchor marks the week for idempotency checks
	weekAnchor, _ := schedule.ScheduledAnchor("monday", now)
	weekStart := weekAnchor.Add(-9 * time.Hour)

	created := 0
	for _, p := range properties {
		wd, ok := schedule.ParseWeekday(p.CollectionDay)
		if !ok {
			log.Printf("⚠️ Property %s has unparseable collection day %q, skipping", p.ID, p.CollectionDay)
			continue
		}

		week := g.cal.ComputeActiveColors(p.BinSettings(), now)
		if len(week.ActiveColors) == 0 {
			continue
		}

		n, err := g.ensureJob(p.ID, putOutWeekday(p.PutBinsOut, wd), models.JobTypePutOut, weekStart)
		if err != nil {
			return err
		}
		created += n

		// Bring-in happens the day after collection
		bringInRule, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rruleWeekdays[wd]},
			Dtstart:   weekStart,
		})
		if err != nil {
			return err
		}
		collection := bringInRule.After(weekStart, true)
		bringInDay := collection.Add(24 * time.Hour).Weekday()

		n, err = g.ensureJob(p.ID, bringInDay, models.JobTypeBringIn, weekStart)
		if err != nil {
			return err
		}
		created += n
	}

	if created > 0 {
		log.Printf("🗓️  Generated %d jobs for week of %s", created, weekStart.Format("2006-01-02"))
	}
	return nil
}

// ensureJob inserts a job unless this week already has one of the same type
// for the property. Returns 1 when a job was created.
func (g *JobGenerator) ensureJob(propertyID string, day time.Weekday, jobType string, weekStart time.Time) (int, error) {
	var count int
	err := g.db.Get(&count, `
		SELECT COUNT(*) FROM jobs
		WHERE property_id = $1 AND job_type = $2 AND created_at >= $3
	`, propertyID, jobType, weekStart.Unix())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now().Unix()
	_, err = g.db.Exec(`
		INSERT INTO jobs (id, property_id, day_of_week, job_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, uuid.New().String(), propertyID, day.String(), jobType, now)
	if err != nil {
		return 0, err
	}
	return 1, nil
}
