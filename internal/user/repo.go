package user

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"mlvisiotrack/internal/auth"
	"mlvisiotrack/internal/model"
	"mlvisiotrack/internal/store"
)

// ErrDuplicateEmail is returned when creating a user whose email is taken.
var ErrDuplicateEmail = errors.New("user with this email already exists")

// Filter narrows a user listing by equality on indexed fields.
type Filter struct {
	Department string
	Role       string
}

// Repository persists users in the users collection.
type Repository struct {
	db *firestore.Client
}

// NewRepository creates a repo.
func NewRepository(db *firestore.Client) *Repository {
	return &Repository{db: db}
}

// List returns users matching the filter.
func (r *Repository) List(ctx context.Context, f Filter) ([]model.User, error) {
	q := r.db.Collection("users").Query
	if f.Department != "" {
		q = q.Where("department", "==", f.Department)
	}
	if f.Role != "" {
		q = q.Where("role", "==", f.Role)
	}

	var users []model.User
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
		var u model.User
		if err := doc.DataTo(&u); err != nil {
			return nil, err
		}
		u.ID = doc.Ref.ID
		users = append(users, u)
	}
	return users, nil
}

// ListActiveStudents returns all students that have not been soft-deleted.
func (r *Repository) ListActiveStudents(ctx context.Context) ([]model.User, error) {
	q := r.db.Collection("users").
		Where("role", "==", "student").
		Where("isActive", "==", true)

	var users []model.User
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
		var u model.User
		if err := doc.DataTo(&u); err != nil {
			return nil, err
		}
		u.ID = doc.Ref.ID
		users = append(users, u)
	}
	return users, nil
}

// GetByEmail returns the first user with the given email, or nil.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.db.Collection("users").Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := doc.DataTo(&u); err != nil {
		return nil, err
	}
	u.ID = doc.Ref.ID
	return &u, nil
}

// Profile fetches the raw document for a user addressed by doc id, falling
// back to an email lookup when no document has that id. Returns nil when the
// user does not exist.
func (r *Repository) Profile(ctx context.Context, idOrEmail string) (map[string]any, error) {
	doc, err := r.db.Collection("users").Doc(idOrEmail).Get(ctx)
	if err != nil && !store.IsNotFound(err) {
		return nil, err
	}
	if err != nil || !doc.Exists() {
		iter := r.db.Collection("users").Where("email", "==", idOrEmail).Limit(1).Documents(ctx)
		defer iter.Stop()
		d, nerr := iter.Next()
		if nerr == iterator.Done {
			return nil, nil
		}
		if nerr != nil {
			return nil, nerr
		}
		doc = d
	}

	profile := doc.Data()
	profile["id"] = doc.Ref.ID
	// The frontend expects these keys even when the document predates them.
	for _, key := range []string{"birthDate", "profilePicture", "year", "type", "adminLevel"} {
		if _, ok := profile[key]; !ok {
			profile[key] = nil
		}
	}
	return profile, nil
}

// Create stores a new user from the given fields, hashing the password and
// applying defaults. Returns ErrDuplicateEmail when the email is taken.
func (r *Repository) Create(ctx context.Context, fields map[string]any) (map[string]any, error) {
	email, _ := fields["email"].(string)
	existing, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	if pw, ok := fields["password"].(string); ok {
		hashed, herr := auth.HashPassword(pw)
		if herr != nil {
			return nil, herr
		}
		fields["password"] = hashed
	}
	setDefault(fields, "department", "HNDIT")
	setDefault(fields, "role", "student")
	setDefault(fields, "isActive", true)
	fields["createdAt"] = time.Now()

	if _, _, err := r.db.Collection("users").Add(ctx, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Update merges the given fields into an existing user document, re-hashing
// the password when one is supplied.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) (map[string]any, error) {
	if pw, ok := fields["password"].(string); ok {
		hashed, err := auth.HashPassword(pw)
		if err != nil {
			return nil, err
		}
		fields["password"] = hashed
	}
	fields["updatedAt"] = time.Now()

	_, err := r.db.Collection("users").Doc(id).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// SoftDelete flips the active flag and records the deletion time.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.Collection("users").Doc(id).Set(ctx, map[string]any{
		"isActive":  false,
		"deletedAt": time.Now(),
	}, firestore.MergeAll)
	return err
}

// MapByRegistrationNumber loads every user carrying a registration number
// into a lookup map, replacing per-record queries during report enrichment.
func (r *Repository) MapByRegistrationNumber(ctx context.Context) (map[string]model.User, error) {
	users, err := r.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	m := make(map[string]model.User, len(users))
	for _, u := range users {
		if u.RegistrationNumber != "" {
			m[u.RegistrationNumber] = u
		}
	}
	return m, nil
}

func setDefault(m map[string]any, key string, val any) {
	if v, ok := m[key]; !ok || v == nil || v == "" {
		m[key] = val
	}
}
