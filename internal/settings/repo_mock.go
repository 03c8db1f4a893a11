package settings

import (
	"context"
	"sync"
)

var _ settingsRepo = (*repoMock)(nil)

type repoMock struct {
	Values map[string]string
	mutex  sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Values: make(map[string]string),
	}
}

func (r *repoMock) Get(_ context.Context, key string) (string, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	value, ok := r.Values[key]
	if !ok {
		return "", ErrSettingNotFound
	}
	return value, nil
}

func (r *repoMock) Set(_ context.Context, key, value string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.Values[key] = value
	return nil
}
