package infra

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore uses the credentials file when given, otherwise the
// ambient application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (f *FirestoreStore) Get(ctx context.Context, collection, id string, dest any) error {
	doc, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return ErrDocumentNotFound
	}
	if err != nil {
		return err
	}
	return doc.DataTo(dest)
}

func (f *FirestoreStore) Set(ctx context.Context, collection, id string, doc any) error {
	_, err := f.client.Collection(collection).Doc(id).Set(ctx, doc)
	return err
}

func (f *FirestoreStore) List(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	q := f.client.Collection(collection).Query
	for _, flt := range filters {
		q = q.Where(flt.Field, "==", flt.Value)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []Snapshot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, firestoreSnapshot{doc})
	}
	return out, nil
}

func (f *FirestoreStore) Close() error { return f.client.Close() }

type firestoreSnapshot struct {
	doc *firestore.DocumentSnapshot
}

func (s firestoreSnapshot) ID() string         { return s.doc.Ref.ID }
func (s firestoreSnapshot) DataTo(v any) error { return s.doc.DataTo(v) }
