package journal

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"
	"google.golang.org/api/iterator"
)

// DatastoreStore implements Store and tracks boards in a Google Cloud
// Platform Datastore.
type DatastoreStore struct {
	ds   *datastore.Client
	kind string
}

// OpenDatastore connects to the Datastore of project.
func OpenDatastore(ctx context.Context, project string) (*DatastoreStore, error) {
	ds, err := datastore.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("connecting to datastore: %w", err)
	}
	return NewDatastoreStore(ds), nil
}

// NewDatastoreStore construct a new *DatastoreStore.
func NewDatastoreStore(ds *datastore.Client) *DatastoreStore {
	return &DatastoreStore{
		ds:   ds,
		kind: "ReactionRoleBoard",
	}
}

func (s *DatastoreStore) Put(ctx context.Context, e Entry) error {
	_, err := s.ds.Put(ctx, s.key(e), &e)
	return err
}

func (s *DatastoreStore) List(ctx context.Context, guildID string, limit int) ([]Entry, error) {
	q := datastore.NewQuery(s.kind).
		FilterField("GuildID", "=", guildID).
		Order("-CreatedAt")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var entries []Entry
	it := s.ds.Run(ctx, q)
	for {
		var e Entry
		_, err := it.Next(&e)
		if err == iterator.Done {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
}

func (s *DatastoreStore) Close() error {
	return s.ds.Close()
}

func (s *DatastoreStore) key(e Entry) *datastore.Key {
	return datastore.NameKey(s.kind, e.ChannelID+"/"+e.MessageID, nil)
}
