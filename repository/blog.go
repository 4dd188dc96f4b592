package repository

import (
	"context"
	"sync"

	"career-guide/errors"
	"career-guide/models"
	"career-guide/storage"
)

const blogCollection = "blog_posts"

// BlogPosts is read-only through the API. Posts carry integer ids, so they
// bypass the generic Collection.
type BlogPosts struct {
	adapter storage.Adapter
	mu      *sync.Mutex
}

func NewBlogPosts(store *Store) *BlogPosts {
	return &BlogPosts{adapter: store.adapter, mu: store.lock(blogCollection)}
}

func (r *BlogPosts) List(ctx context.Context) []models.BlogPost {
	return storage.Read[models.BlogPost](ctx, r.adapter, blogCollection)
}

func (r *BlogPosts) FindByID(ctx context.Context, id int) (models.BlogPost, bool) {
	for _, p := range r.List(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return models.BlogPost{}, false
}

func (r *BlogPosts) Seed(ctx context.Context, posts []models.BlogPost) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, err := storage.Decode[models.BlogPost](ctx, r.adapter, blogCollection)
	if err != nil && !errors.IsKind(err, errors.NotFound) {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if err := storage.Write(ctx, r.adapter, blogCollection, posts); err != nil {
		return false, err
	}
	return true, nil
}
