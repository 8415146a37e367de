package attendance

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"mlvisiotrack/internal/model"
)

// ErrMissingFields is returned when a mark request lacks its identity
// fields.
var ErrMissingFields = errors.New("registration number and subject code are required")

// docIDSanitizer strips characters that are not legal in a Firestore
// document id from the registration-number portion of the composite key.
var docIDSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

// MarkInput is a mark-attendance request after JSON binding.
type MarkInput struct {
	RegistrationNumber string `json:"registrationNumber"`
	SubjectCode        string `json:"subjectCode"`
	Status             string `json:"status"`
	Location           string `json:"location"`
	Date               string `json:"date"`
	ArrivalTime        string `json:"arrivalTime"`
	Remarks            string `json:"remarks"`
}

// Repository persists attendance records in the attendance collection.
type Repository struct {
	db *firestore.Client
}

// NewRepository creates a repo.
func NewRepository(db *firestore.Client) *Repository {
	return &Repository{db: db}
}

// ListByDate returns the records of one calendar date.
func (r *Repository) ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	q := r.db.Collection("attendance").Where("date", "==", date)
	return r.collect(ctx, q)
}

// ListByStudent returns a student's records, optionally bounded by an
// inclusive date range, newest first. The range filter and ordering run in
// memory over the student's records so no composite index is required.
func (r *Repository) ListByStudent(ctx context.Context, registrationNumber, startDate, endDate string) ([]model.AttendanceRecord, error) {
	q := r.db.Collection("attendance").Where("registrationNumber", "==", registrationNumber)
	records, err := r.collect(ctx, q)
	if err != nil {
		return nil, err
	}

	filtered := records[:0]
	for _, rec := range records {
		if startDate != "" && rec.Date < startDate {
			continue
		}
		if endDate != "" && rec.Date > endDate {
			continue
		}
		filtered = append(filtered, rec)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Date > filtered[j].Date })
	return filtered, nil
}

// ListAllDesc returns every record of a student ordered by date descending,
// the shape the streak walk expects.
func (r *Repository) ListAllDesc(ctx context.Context, registrationNumber string) ([]model.AttendanceRecord, error) {
	q := r.db.Collection("attendance").
		Where("registrationNumber", "==", registrationNumber).
		OrderBy("date", firestore.Desc)
	return r.collect(ctx, q)
}

// ListRange returns records for the report view: optionally scoped to one
// student and bounded by an inclusive date range, newest first.
func (r *Repository) ListRange(ctx context.Context, registrationNumber, startDate, endDate string) ([]model.AttendanceRecord, error) {
	q := r.db.Collection("attendance").Query
	if registrationNumber != "" {
		q = q.Where("registrationNumber", "==", registrationNumber)
	}
	if startDate != "" {
		q = q.Where("date", ">=", startDate)
	}
	if endDate != "" {
		q = q.Where("date", "<=", endDate)
	}
	return r.collect(ctx, q.OrderBy("date", firestore.Desc))
}

// Recent returns the latest records by arrival timestamp.
func (r *Repository) Recent(ctx context.Context, limit int) ([]model.AttendanceRecord, error) {
	q := r.db.Collection("attendance").
		OrderBy("timestamp", firestore.Desc).
		Limit(limit)
	return r.collect(ctx, q)
}

// Mark writes an attendance record keyed by the sanitized composite id, so
// re-marking the same (student, date, subject) overwrites instead of
// duplicating. The stored record is returned.
func (r *Repository) Mark(ctx context.Context, in MarkInput) (model.AttendanceRecord, error) {
	rec, err := buildRecord(in, time.Now())
	if err != nil {
		return model.AttendanceRecord{}, err
	}
	if _, err := r.db.Collection("attendance").Doc(rec.ID).Set(ctx, rec); err != nil {
		return model.AttendanceRecord{}, err
	}
	return rec, nil
}

// buildRecord applies defaults and computes the composite document id.
func buildRecord(in MarkInput, now time.Time) (model.AttendanceRecord, error) {
	if in.RegistrationNumber == "" || in.SubjectCode == "" {
		return model.AttendanceRecord{}, ErrMissingFields
	}
	if in.Status == "" {
		in.Status = model.StatusPresent
	}
	if in.Location == "" {
		in.Location = "Unknown"
	}
	if in.Date == "" {
		in.Date = now.Format("2006-01-02")
	}

	return model.AttendanceRecord{
		ID:                 DocID(in.RegistrationNumber, in.Date, in.SubjectCode),
		RegistrationNumber: in.RegistrationNumber,
		VertexLabel:        in.RegistrationNumber,
		SubjectCode:        in.SubjectCode,
		Status:             in.Status,
		Location:           in.Location,
		Date:               in.Date,
		Timestamp:          now,
		Confidence:         0.95,
		StudentReview:      "confirmed",
		ArrivalTime:        in.ArrivalTime,
		Remarks:            in.Remarks,
		CreatedAt:          now,
	}, nil
}

// DocID builds the deterministic composite id for one (student, date,
// subject) triple.
func DocID(registrationNumber, date, subjectCode string) string {
	return docIDSanitizer.ReplaceAllString(registrationNumber, "_") + "_" + date + "_" + subjectCode
}

func (r *Repository) collect(ctx context.Context, q firestore.Query) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
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
		var rec model.AttendanceRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, err
		}
		rec.ID = doc.Ref.ID
		records = append(records, rec)
	}
	return records, nil
}
