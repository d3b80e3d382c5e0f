package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	draftdomain "github.com/metersharelabs/metershare/internal/draft/domain"
)

const draftKey = "metershare:draft"

type repo struct {
	client *redis.Client
}

func Provide(client *redis.Client) draftdomain.Repository {
	return &repo{client: client}
}

func (r *repo) Get(ctx context.Context) (*draftdomain.Draft, error) {
	raw, err := r.client.Get(ctx, draftKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var draft draftdomain.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *repo) Put(ctx context.Context, draft draftdomain.Draft) (draftdomain.PutResult, error) {
	stored, err := r.Get(ctx)
	if err != nil {
		return draftdomain.PutResult{}, err
	}

	// Last-write-wins by caller-supplied timestamp. A stale write loses
	// and the caller gets the surviving draft back.
	if stored != nil && stored.UpdatedAt.After(draft.UpdatedAt) {
		return draftdomain.PutResult{Stored: false, Current: *stored}, nil
	}

	if err := r.set(ctx, draft); err != nil {
		return draftdomain.PutResult{}, err
	}
	return draftdomain.PutResult{Stored: true, Current: draft}, nil
}

func (r *repo) Force(ctx context.Context, draft draftdomain.Draft) error {
	return r.set(ctx, draft)
}

func (r *repo) set(ctx context.Context, draft draftdomain.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, draftKey, raw, 0).Err()
}
