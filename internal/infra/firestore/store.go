package firestore

import (
	"context"
	"encoding/json"
	"fmt"

	gfirestore "cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// Store implements entity.DocumentStore on Cloud Firestore.
type Store struct {
	client *gfirestore.Client
}

// NewStore connects with a service-account key. projectID may be empty, in
// which case the key's project_id is used.
func NewStore(ctx context.Context, serviceAccountJSON, projectID string) (*Store, error) {
	if serviceAccountJSON == "" {
		return nil, &entity.ConfigError{Setting: "FIREBASE_SERVICE_ACCOUNT"}
	}

	if projectID == "" {
		var key struct {
			ProjectID string `json:"project_id"`
		}
		if err := json.Unmarshal([]byte(serviceAccountJSON), &key); err != nil {
			return nil, &entity.ConfigError{Setting: "FIREBASE_SERVICE_ACCOUNT", Reason: "is not valid JSON"}
		}
		projectID = key.ProjectID
	}
	if projectID == "" {
		return nil, &entity.ConfigError{Setting: "FIRESTORE_PROJECT_ID"}
	}

	client, err := gfirestore.NewClient(ctx, projectID, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func NewStoreFromClient(client *gfirestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Set(ctx context.Context, collection, key string, fields map[string]any) error {
	doc := s.client.Collection(collection).Doc(key)
	if doc == nil {
		// Doc returns nil for IDs containing a slash.
		return &entity.StoreError{Store: "firestore", Op: "set " + collection, Err: fmt.Errorf("invalid document id %q", key)}
	}
	if _, err := doc.Set(ctx, fields); err != nil {
		return &entity.StoreError{Store: "firestore", Op: "set " + collection + "/" + key, Err: err}
	}
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", &entity.StoreError{Store: "firestore", Op: "add " + collection, Err: err}
	}
	return ref.ID, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
