package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/readhero/ent"
	"github.com/abhisek/readhero/ent/staterecord"
)

// stateRepo implements StateRepo using the ent client.
type stateRepo struct {
	client *ent.Client
}

func (r *stateRepo) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	rec, err := r.client.StateRecord.Query().
		Where(staterecord.KeyEQ(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query state %q: %w", key, err)
	}
	return json.RawMessage(rec.Value), true, nil
}

func (r *stateRepo) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal state %q: %w", key, err)
	}

	n, err := r.client.StateRecord.Update().
		Where(staterecord.KeyEQ(key)).
		SetValue(b).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update state %q: %w", key, err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.client.StateRecord.Create().
		SetKey(key).
		SetValue(b).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("create state %q: %w", key, err)
	}
	return nil
}

func (r *stateRepo) Remove(ctx context.Context, key string) error {
	_, err := r.client.StateRecord.Delete().
		Where(staterecord.KeyEQ(key)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("remove state %q: %w", key, err)
	}
	return nil
}
