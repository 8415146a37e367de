package lecturer

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"mlvisiotrack/internal/model"
)

// Repository reads the lecturers collection. Lecturer documents are
// immutable reference data keyed by lecturer id.
type Repository struct {
	db *firestore.Client
}

// NewRepository creates a repo.
func NewRepository(db *firestore.Client) *Repository {
	return &Repository{db: db}
}

// List returns all lecturers.
func (r *Repository) List(ctx context.Context) ([]model.Lecturer, error) {
	var lecturers []model.Lecturer
	iter := r.db.Collection("lecturers").Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var l model.Lecturer
		if err := doc.DataTo(&l); err != nil {
			return nil, err
		}
		l.ID = doc.Ref.ID
		lecturers = append(lecturers, l)
	}
	return lecturers, nil
}

// Map returns lecturers keyed by document id, so schedule and subject
// listings can enrich lecturer names in a single read instead of one lookup
// per record.
func (r *Repository) Map(ctx context.Context) (map[string]model.Lecturer, error) {
	lecturers, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]model.Lecturer, len(lecturers))
	for _, l := range lecturers {
		m[l.ID] = l
	}
	return m, nil
}

// FindIDByName resolves a lecturer's display name to their lecturerId field.
// Returns "" when no lecturer matches.
func (r *Repository) FindIDByName(ctx context.Context, name string) (string, error) {
	iter := r.db.Collection("lecturers").Where("name", "==", name).Limit(1).Documents(ctx)
	defer iter.Stop()
	doc, err := iter.Next()
	if err == iterator.Done {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var l model.Lecturer
	if err := doc.DataTo(&l); err != nil {
		return "", err
	}
	return l.LecturerID, nil
}
