// Package redis реализует хранилище отметок "нравится" поверх Redis.
//
// Отметки фильма и пользователя хранятся в двух множествах, число отметок
// дублируется в сортированном множестве популярности. Каждое изменение
// выполняется одним Lua-скриптом и атомарно на стороне сервера.
package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// Префиксы и имена ключей.
const (
	FilmLikesPrefix = "likes:film:"
	UserLikesPrefix = "likes:user:"
	PopularityKey   = "likes:popularity"
)

var addLikeScript = redis.NewScript(`
if redis.call('SADD', KEYS[1], ARGV[2]) == 1 then
  redis.call('SADD', KEYS[2], ARGV[1])
  redis.call('ZINCRBY', KEYS[3], 1, ARGV[1])
  return 1
end
return 0
`)

var removeLikeScript = redis.NewScript(`
if redis.call('SREM', KEYS[1], ARGV[2]) == 1 then
  redis.call('SREM', KEYS[2], ARGV[1])
  local score = tonumber(redis.call('ZINCRBY', KEYS[3], -1, ARGV[1]))
  if score <= 0 then
    redis.call('ZREM', KEYS[3], ARGV[1])
  end
  return 1
end
return 0
`)

var removeFilmLikesScript = redis.NewScript(`
local users = redis.call('SMEMBERS', KEYS[1])
for _, user in ipairs(users) do
  redis.call('SREM', ARGV[2] .. user, ARGV[1])
end
redis.call('DEL', KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[1])
return #users
`)

var removeUserLikesScript = redis.NewScript(`
local films = redis.call('SMEMBERS', KEYS[1])
for _, film in ipairs(films) do
  if redis.call('SREM', ARGV[2] .. film, ARGV[1]) == 1 then
    local score = tonumber(redis.call('ZINCRBY', KEYS[2], -1, film))
    if score <= 0 then
      redis.call('ZREM', KEYS[2], film)
    end
  end
end
redis.call('DEL', KEYS[1])
return #films
`)

// LikeRepository реализует repositories.LikeRepository поверх Redis.
type LikeRepository struct {
	client redis.UniversalClient
}

// NewLikeRepository создает хранилище отметок.
func NewLikeRepository(client redis.UniversalClient) repositories.LikeRepository {
	return &LikeRepository{client: client}
}

func filmKey(filmID int64) string {
	return FilmLikesPrefix + strconv.FormatInt(filmID, 10)
}

func userKey(userID int64) string {
	return UserLikesPrefix + strconv.FormatInt(userID, 10)
}

// Add ставит отметку. Повторная отметка не меняет счетчик.
func (r *LikeRepository) Add(ctx context.Context, filmID, userID int64) error {
	keys := []string{filmKey(filmID), userKey(userID), PopularityKey}
	if err := addLikeScript.Run(ctx, r.client, keys, filmID, userID).Err(); err != nil {
		logger.Log(ctx).Error(ctx, "error adding like",
			zap.String("repository", "redis.like"), zap.String("method", "Add"), zap.Error(err))
		return fmt.Errorf("error adding like: %w", err)
	}
	return nil
}

// Remove снимает отметку, если она есть.
func (r *LikeRepository) Remove(ctx context.Context, filmID, userID int64) error {
	keys := []string{filmKey(filmID), userKey(userID), PopularityKey}
	if err := removeLikeScript.Run(ctx, r.client, keys, filmID, userID).Err(); err != nil {
		logger.Log(ctx).Error(ctx, "error removing like",
			zap.String("repository", "redis.like"), zap.String("method", "Remove"), zap.Error(err))
		return fmt.Errorf("error removing like: %w", err)
	}
	return nil
}

// RemoveAllByFilm снимает все отметки фильма.
func (r *LikeRepository) RemoveAllByFilm(ctx context.Context, filmID int64) error {
	keys := []string{filmKey(filmID), PopularityKey}
	removed, err := removeFilmLikesScript.Run(ctx, r.client, keys, filmID, UserLikesPrefix).Int()
	if err != nil {
		return fmt.Errorf("error removing film likes: %w", err)
	}
	logger.Log(ctx).Debug(ctx, "film likes removed",
		zap.String("method", "redis.LikeRepository.RemoveAllByFilm"), zap.Int64("filmID", filmID), zap.Int("count", removed))
	return nil
}

// RemoveAllByUser снимает все отметки пользователя.
func (r *LikeRepository) RemoveAllByUser(ctx context.Context, userID int64) error {
	keys := []string{userKey(userID), PopularityKey}
	removed, err := removeUserLikesScript.Run(ctx, r.client, keys, userID, FilmLikesPrefix).Int()
	if err != nil {
		return fmt.Errorf("error removing user likes: %w", err)
	}
	logger.Log(ctx).Debug(ctx, "user likes removed",
		zap.String("method", "redis.LikeRepository.RemoveAllByUser"), zap.Int64("userID", userID), zap.Int("count", removed))
	return nil
}

// CountByFilm возвращает число отметок фильма.
func (r *LikeRepository) CountByFilm(ctx context.Context, filmID int64) (int, error) {
	n, err := r.client.SCard(ctx, filmKey(filmID)).Result()
	if err != nil {
		return 0, fmt.Errorf("error counting likes: %w", err)
	}
	return int(n), nil
}

// Counts читает сортированное множество популярности целиком.
func (r *LikeRepository) Counts(ctx context.Context) (map[int64]int, error) {
	entries, err := r.client.ZRangeWithScores(ctx, PopularityKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading popularity: %w", err)
	}

	counts := make(map[int64]int, len(entries))
	for _, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected popularity member %v", z.Member)
		}
		filmID, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("error parsing popularity member %q: %w", member, err)
		}
		if z.Score > 0 {
			counts[filmID] = int(z.Score)
		}
	}
	return counts, nil
}
