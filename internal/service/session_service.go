package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/n4clon1/academic-site/internal/dto"
	"github.com/n4clon1/academic-site/internal/repository"
	"github.com/n4clon1/academic-site/pkg/jwt"
	"github.com/n4clon1/academic-site/pkg/redis"
)

// SessionService 会话业务接口
//
// 会话即一份独立的工作区：已加载文件、样式快照、教师与分配都挂在会话上。
// 客户端持有签发的令牌访问其余接口。
type SessionService interface {
	Create(ctx context.Context) (*dto.SessionResponse, error)
	// Close 删除会话并吊销令牌（remaining 为令牌剩余有效期）
	Close(ctx context.Context, sessionID, jti string, remaining time.Duration) error
	// StartSweeper 周期性回收过期会话，ctx 取消时退出
	StartSweeper(ctx context.Context, interval time.Duration)
}

type sessionService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client // 可为 nil
	logger *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) SessionService {
	return &sessionService{
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *sessionService) Create(ctx context.Context) (*dto.SessionResponse, error) {
	// 1. 创建会话
	sess, err := s.repo.Session.Create(ctx)
	if err != nil {
		return nil, err
	}

	// 2. 签发令牌
	token, claims, err := s.jwtMgr.GenerateSessionToken(sess.ID)
	if err != nil {
		_ = s.repo.Session.Delete(ctx, sess.ID)
		s.logger.Error("签发会话令牌失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建会话", zap.String("session_id", sess.ID))

	expiresAt := claims.ExpiresAt.Time
	return &dto.SessionResponse{
		SessionID: sess.ID,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		ExpiresIn: int(expiresAt.Sub(claims.IssuedAt.Time).Seconds()),
	}, nil
}

func (s *sessionService) Close(ctx context.Context, sessionID, jti string, remaining time.Duration) error {
	if err := s.repo.Session.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	// Redis 不可用时只删除会话，令牌随会话一起失效
	if s.rdb != nil && jti != "" {
		if err := s.rdb.RevokeToken(ctx, jti, remaining); err != nil {
			s.logger.Warn("吊销令牌失败", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	s.logger.Info("关闭会话", zap.String("session_id", sessionID))
	return nil
}

func (s *sessionService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.repo.Session.Sweep(ctx); n > 0 {
					s.logger.Info("回收过期会话", zap.Int("count", n), zap.Int("remaining", s.repo.Session.Count()))
				}
			}
		}
	}()
}
