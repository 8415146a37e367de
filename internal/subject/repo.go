package subject

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"mlvisiotrack/internal/model"
)

// source yields the subjects of one department. Subjects exist in two
// shapes: nested under courses/{dept}/semesters/{sem}/subjects, and in a
// flat subjects collection. The repository reads the hierarchy first and
// falls back to the flat collection when the hierarchy is empty.
type source interface {
	subjects(ctx context.Context, department string) ([]model.Subject, error)
}

// Repository reads subjects from the hierarchical store with a flat
// fallback.
type Repository struct {
	primary  source
	fallback source
}

// NewRepository creates a repo over both subject stores.
func NewRepository(db *firestore.Client) *Repository {
	return &Repository{
		primary:  hierarchicalSource{db: db},
		fallback: flatSource{db: db},
	}
}

// List returns the subjects of one department, or of every known department
// when department is empty.
func (r *Repository) List(ctx context.Context, department string) ([]model.Subject, error) {
	departments := model.Departments
	if department != "" {
		departments = []string{department}
	}

	var all []model.Subject
	for _, dept := range departments {
		subjects, err := r.primary.subjects(ctx, dept)
		if err != nil {
			log.Printf("subjects: hierarchical read failed for %s: %v", dept, err)
		}
		if len(subjects) == 0 {
			if subjects, err = r.fallback.subjects(ctx, dept); err != nil {
				return nil, err
			}
		}
		all = append(all, subjects...)
	}
	return all, nil
}

// CountAll counts subjects across every department in the hierarchy.
func (r *Repository) CountAll(ctx context.Context) (int, error) {
	total := 0
	for _, dept := range model.Departments {
		subjects, err := r.primary.subjects(ctx, dept)
		if err != nil {
			log.Printf("subjects: count failed for %s: %v", dept, err)
			continue
		}
		total += len(subjects)
	}
	return total, nil
}

type hierarchicalSource struct {
	db *firestore.Client
}

func (s hierarchicalSource) subjects(ctx context.Context, department string) ([]model.Subject, error) {
	semesters := s.db.Collection("courses").Doc(department).Collection("semesters").Documents(ctx)
	defer semesters.Stop()

	var subjects []model.Subject
	for {
		semDoc, err := semesters.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		iter := semDoc.Ref.Collection("subjects").Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, err
			}
			var sub model.Subject
			if err := doc.DataTo(&sub); err != nil {
				iter.Stop()
				return nil, err
			}
			sub.ID = doc.Ref.ID
			sub.Department = department
			subjects = append(subjects, sub)
		}
		iter.Stop()
	}
	return subjects, nil
}

type flatSource struct {
	db *firestore.Client
}

func (s flatSource) subjects(ctx context.Context, department string) ([]model.Subject, error) {
	q := s.db.Collection("subjects").Query
	if department != "" {
		q = q.Where("department", "==", department)
	}

	var subjects []model.Subject
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
		var sub model.Subject
		if err := doc.DataTo(&sub); err != nil {
			return nil, err
		}
		sub.ID = doc.Ref.ID
		subjects = append(subjects, sub)
	}
	return subjects, nil
}
