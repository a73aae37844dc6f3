// internal/candidates/cached.go
package candidates

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/common/metrics"
	"intel-search-workers/internal/ranking"
)

// CachedSource fronts another source with a Redis cache. Cache failures never
// fail a fetch; they fall through to the wrapped source.
type CachedSource struct {
	next   Source
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(next Source, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"source": next.Name(), "component": "candidate-cache"}),
	}
}

func (s *CachedSource) Name() string { return s.next.Name() }

func (s *CachedSource) Fetch(ctx context.Context, req Request) ([]ranking.Candidate, error) {
	key := CacheKey(s.next.Name(), req)

	val, err := s.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var cached []ranking.Candidate
		if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
			metrics.CandidateCacheRequests.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CandidateCacheRequests.WithLabelValues("miss").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CandidateCacheRequests.WithLabelValues("miss").Inc()
	default:
		metrics.CandidateCacheRequests.WithLabelValues("error").Inc()
		s.logger.Warn("candidate cache read failed", map[string]interface{}{"error": err.Error()})
	}

	out, err := s.next.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("candidate cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return out, nil
}

// CacheKey identifies a fetch independent of query case and spacing.
func CacheKey(source string, req Request) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(req.Query), " "))
	sum := sha1.Sum([]byte(normalized))
	return fmt.Sprintf("candidates:%s:%s:%d", source, hex.EncodeToString(sum[:]), req.Limit)
}
