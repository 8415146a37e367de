package store

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// DB wraps the Firestore client. It is constructed once at startup and
// injected into the repositories; there is no package-level singleton.
type DB struct {
	Client *firestore.Client
}

// NewDB initializes Firebase and opens a Firestore client. Credentials come
// from the given file path when it exists, from the FIREBASE_CONFIG env var
// (inline service-account JSON) otherwise, and fall back to application
// default credentials.
func NewDB(ctx context.Context, projectID, credentialsPath string) (*DB, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		if _, err := os.Stat(credentialsPath); err == nil {
			opts = append(opts, option.WithCredentialsFile(credentialsPath))
		} else if cfg := os.Getenv("FIREBASE_CONFIG"); cfg != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg)))
		} else {
			log.Println("firestore: no explicit credentials found, trying default")
		}
	}

	var fbCfg *firebase.Config
	if projectID != "" {
		fbCfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: init app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore: init client: %w", err)
	}
	return &DB{Client: client}, nil
}

// Healthy verifies the client can reach the backend with a cheap read.
func (d *DB) Healthy(ctx context.Context) bool {
	if d == nil || d.Client == nil {
		return false
	}
	_, err := d.Client.Collection("settings").Doc("attendanceGoal").Get(ctx)
	// A missing document still proves connectivity.
	return err == nil || IsNotFound(err)
}

// Close closes the underlying client.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}
