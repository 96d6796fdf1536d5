package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Validator tuning. The check is advisory: the unique index on batch_code
// remains the authority at insert time, so a stale cached answer costs at
// most one rejected insert.
const (
	batchCodeMinLength = 2
	batchCodeCacheTTL  = 30 * time.Second
)

// BatchCodeCheck result of an existence lookup
type BatchCodeCheck struct {
	Code   string `json:"code"`
	Exists bool   `json:"exists"`
	Count  int64  `json:"count"`
}

// BatchCodeService answers "does this batch code already exist" ahead of
// batch creation, with a short-TTL cache over the exact-match count.
type BatchCodeService struct {
	batchRepo *repository.BatchRepository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewBatchCodeService(br *repository.BatchRepository, rdb *redis.Client, logger *zap.Logger) *BatchCodeService {
	return &BatchCodeService{batchRepo: br, rdb: rdb, logger: logger}
}

// Check resolves whether the code exists. Codes shorter than the minimum
// length are never queried and always report absent.
func (s *BatchCodeService) Check(ctx context.Context, code string) (*BatchCodeCheck, error) {
	code = strings.TrimSpace(code)
	if len(code) < batchCodeMinLength {
		return &BatchCodeCheck{Code: code}, nil
	}

	cacheKey := "batchcode:" + code
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached BatchCodeCheck
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	count, err := s.batchRepo.CountByCode(code)
	if err != nil {
		return nil, fmt.Errorf("batch code lookup failed: %w", err)
	}
	result := &BatchCodeCheck{Code: code, Exists: count > 0, Count: count}

	if s.rdb != nil {
		raw, _ := json.Marshal(result)
		if err := s.rdb.Set(ctx, cacheKey, raw, batchCodeCacheTTL).Err(); err != nil {
			s.logger.Debug("batch code cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

// CheckDebounced waits for the supplied interval before querying, so callers
// validating keystroke-by-keystroke can cancel superseded checks through ctx.
func (s *BatchCodeService) CheckDebounced(ctx context.Context, code string, wait time.Duration) (*BatchCodeCheck, error) {
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return s.Check(ctx, code)
}
