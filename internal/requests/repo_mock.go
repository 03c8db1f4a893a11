package requests

import (
	"context"
	"sort"
	"sync"
	"time"
)

var _ requestsRepo = (*repoMock)(nil)

type repoMock struct {
	Requests map[int]*BookRequest
	nextID   int
	mutex    sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Requests: make(map[int]*BookRequest),
		nextID:   1,
	}
}

func (r *repoMock) RequestsCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.Requests)
}

func (r *repoMock) Add(_ context.Context, request *BookRequest) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if request.Name == "" || request.Email == "" || request.Message == "" {
		return ErrRequestFieldsMissing
	}

	request.ID = r.nextID
	r.nextID++
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	if request.Status == "" {
		request.Status = StatusPending
	}

	r.Requests[request.ID] = request
	return nil
}

func (r *repoMock) All(_ context.Context) ([]*BookRequest, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var all []*BookRequest
	for id := range r.Requests {
		all = append(all, r.Requests[id])
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*BookRequest, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	request, ok := r.Requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

func (r *repoMock) UpdateStatus(_ context.Context, id int, status string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	request, ok := r.Requests[id]
	if !ok {
		return ErrRequestNotFound
	}

	request.Status = status
	return nil
}
