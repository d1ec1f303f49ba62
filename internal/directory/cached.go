package directory

import (
	"context"

	"github.com/iliyamo/user-admin-portal/internal/cache"
	"github.com/iliyamo/user-admin-portal/internal/model"
)

const (
	usersCacheKey      = "users"
	userCacheKeyPrefix = "user:"
)

// Cached memoizes directory reads. Every mutation invalidates both
// the aggregate list entry and the per-id entry before repopulating
// with the fresh value, so a read after a write can never see the
// pre-write state through the cache.
type Cached struct {
	next  Directory
	cache cache.Cache
}

func NewCached(next Directory, c cache.Cache) *Cached {
	return &Cached{next: next, cache: c}
}

func (d *Cached) List(ctx context.Context, token string) ([]model.UserProfile, error) {
	if v, ok := d.cache.Get(usersCacheKey); ok {
		if users, ok := v.([]model.UserProfile); ok {
			return users, nil
		}
	}
	users, err := d.next.List(ctx, token)
	if err != nil {
		return nil, err
	}
	d.cache.Set(usersCacheKey, users)
	return users, nil
}

func (d *Cached) GetByID(ctx context.Context, token, id string) (model.UserProfile, error) {
	key := userCacheKeyPrefix + id
	if v, ok := d.cache.Get(key); ok {
		if u, ok := v.(model.UserProfile); ok {
			return u, nil
		}
	}
	u, err := d.next.GetByID(ctx, token, id)
	if err != nil {
		return model.UserProfile{}, err
	}
	d.cache.Set(key, u)
	return u, nil
}

func (d *Cached) Update(ctx context.Context, token, id string, in UpdateRecord) (model.UserProfile, error) {
	u, err := d.next.Update(ctx, token, id, in)
	if err != nil {
		return model.UserProfile{}, err
	}
	d.invalidate(id)
	d.cache.Set(userCacheKeyPrefix+id, u)
	return u, nil
}

func (d *Cached) Create(ctx context.Context, token, id string, in model.UserProfile) (model.UserProfile, error) {
	u, err := d.next.Create(ctx, token, id, in)
	if err != nil {
		return model.UserProfile{}, err
	}
	d.invalidate(id)
	d.cache.Set(userCacheKeyPrefix+id, u)
	return u, nil
}

func (d *Cached) Delete(ctx context.Context, token, id string) error {
	if err := d.next.Delete(ctx, token, id); err != nil {
		return err
	}
	d.invalidate(id)
	return nil
}

func (d *Cached) invalidate(id string) {
	d.cache.Delete(usersCacheKey)
	d.cache.Delete(userCacheKeyPrefix + id)
}
