package schedule

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"mlvisiotrack/internal/model"
)

// Repository persists weekly class slots in the schedules collection.
// Deletion is soft: inactive schedules stay in the collection but are
// excluded from every listing.
type Repository struct {
	db *firestore.Client
}

// NewRepository creates a repo.
func NewRepository(db *firestore.Client) *Repository {
	return &Repository{db: db}
}

// ListActive returns all active schedules.
func (r *Repository) ListActive(ctx context.Context) ([]model.Schedule, error) {
	q := r.db.Collection("schedules").Where("isActive", "==", true)
	return r.collect(ctx, q)
}

// ListByDay returns active schedules for one weekday ("Monday"..."Sunday").
func (r *Repository) ListByDay(ctx context.Context, day string) ([]model.Schedule, error) {
	q := r.db.Collection("schedules").
		Where("dayOfWeek", "==", day).
		Where("isActive", "==", true)
	return r.collect(ctx, q)
}

// ListWeek returns active schedules, optionally narrowed by department and
// year.
func (r *Repository) ListWeek(ctx context.Context, department, year string) ([]model.Schedule, error) {
	q := r.db.Collection("schedules").Where("isActive", "==", true)
	if department != "" {
		q = q.Where("department", "==", department)
	}
	if year != "" {
		q = q.Where("year", "==", year)
	}
	return r.collect(ctx, q)
}

// Create writes a schedule under the subject_day_HHMM composite id and
// returns that id. Creating the same slot twice overwrites in place.
func (r *Repository) Create(ctx context.Context, s model.Schedule) (string, error) {
	if s.Year == "" {
		s.Year = "2nd Year"
	}
	s.IsActive = true
	s.CreatedAt = time.Now()

	id := s.SubjectCode + "_" + s.DayOfWeek + "_" + strings.ReplaceAll(s.StartTime, ":", "")
	_, err := r.db.Collection("schedules").Doc(id).Set(ctx, s)
	return id, err
}

// Update merges the given fields into a schedule document.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	_, err := r.db.Collection("schedules").Doc(id).Set(ctx, fields, firestore.MergeAll)
	return err
}

// SoftDelete deactivates a schedule.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.Collection("schedules").Doc(id).Set(ctx, map[string]any{
		"isActive": false,
	}, firestore.MergeAll)
	return err
}

func (r *Repository) collect(ctx context.Context, q firestore.Query) ([]model.Schedule, error) {
	var schedules []model.Schedule
	iter := q.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var s model.Schedule
		if err := doc.DataTo(&s); err != nil {
			return nil, err
		}
		s.ID = doc.Ref.ID
		schedules = append(schedules, s)
	}
	return schedules, nil
}
