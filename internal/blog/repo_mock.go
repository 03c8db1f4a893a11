package blog

import (
	"context"
	"sort"
	"sync"
	"time"
)

var _ blogRepo = (*repoMock)(nil)

type repoMock struct {
	Posts  map[int]*Post
	nextID int
	mutex  sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Posts:  make(map[int]*Post),
		nextID: 1,
	}
}

func (r *repoMock) PostsCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.Posts)
}

func (r *repoMock) AddPost(_ context.Context, post *Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if post.Content == "" || post.Title == "" {
		return ErrPostTitleOrContentEmpty
	}

	post.ID = r.nextID
	r.nextID++
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	r.Posts[post.ID] = post
	return nil
}

func (r *repoMock) UpdatePost(_ context.Context, post *Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored, ok := r.Posts[post.ID]
	if !ok {
		return ErrPostNotFound
	}

	post.CreatedAt = stored.CreatedAt
	post.UpdatedAt = time.Now()
	r.Posts[post.ID] = post
	return nil
}

func (r *repoMock) DeletePost(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.Posts[id]; !ok {
		return ErrPostNotFound
	}

	delete(r.Posts, id)
	return nil
}

func (r *repoMock) GetPost(_ context.Context, id int) (*Post, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	post, ok := r.Posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (r *repoMock) All(_ context.Context) ([]*Post, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var posts []*Post
	for id := range r.Posts {
		posts = append(posts, r.Posts[id])
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *repoMock) AllPublished(ctx context.Context) ([]*Post, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	var published []*Post
	for _, post := range all {
		if post.Published {
			published = append(published, post)
		}
	}
	return published, nil
}
