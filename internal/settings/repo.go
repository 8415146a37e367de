package settings

import (
	"context"

	"cloud.google.com/go/firestore"

	"mlvisiotrack/internal/model"
	"mlvisiotrack/internal/store"
)

// defaultGoal is served when the singleton document has not been written.
var defaultGoal = model.AttendanceGoal{
	RequiredPercentage: 80,
	Description:        "Minimum attendance required for exam eligibility",
}

// Repository reads the settings collection.
type Repository struct {
	db *firestore.Client
}

// NewRepository creates a repo.
func NewRepository(db *firestore.Client) *Repository {
	return &Repository{db: db}
}

// AttendanceGoal returns the settings/attendanceGoal singleton, falling back
// to the default goal when it is unset.
func (r *Repository) AttendanceGoal(ctx context.Context) (model.AttendanceGoal, error) {
	doc, err := r.db.Collection("settings").Doc("attendanceGoal").Get(ctx)
	if err != nil {
		if store.IsNotFound(err) {
			return defaultGoal, nil
		}
		return model.AttendanceGoal{}, err
	}
	var goal model.AttendanceGoal
	if err := doc.DataTo(&goal); err != nil {
		return model.AttendanceGoal{}, err
	}
	return goal, nil
}
