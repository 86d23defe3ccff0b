package service

import (
	"context"
	"errors"

	"github.com/n4clon1/academic-site/internal/repository"
)

// withSession 取会话并在持有会话锁期间执行 fn
//
// 同一会话上的加载、分配、导出因此串行执行。
func withSession(ctx context.Context, repo *repository.Repository, sessionID string, fn func(s *repository.Session) error) error {
	s, err := repo.Session.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	s.Lock()
	defer s.Unlock()
	return fn(s)
}

// requireLoaded 会话尚未加载文件时返回 ErrNoFileLoaded
func requireLoaded(s *repository.Session) error {
	if !s.Loaded() {
		return ErrNoFileLoaded
	}
	return nil
}
