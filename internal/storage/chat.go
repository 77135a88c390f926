package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"reportbox/backend/internal/models"
)

// recentCacheTTL bounds how long the recent-turn cache lives without traffic.
const recentCacheTTL = 24 * time.Hour

// recentCacheSize is how many turns the cache keeps per user. The assistant
// prompt only ever sees the last five.
const recentCacheSize = 5

// turnSource reads persisted turns; turnCache mirrors the most recent ones.
// The seams keep the fallback logic testable without live stores.
type turnSource interface {
	lastTurns(ctx context.Context, userID string, n int) ([]models.ChatTurn, error)
}

type turnCache interface {
	read(ctx context.Context, userID string, n int) ([]models.ChatTurn, error)
	append(ctx context.Context, turn *models.ChatTurn) error
	replace(ctx context.Context, userID string, turns []models.ChatTurn) error
}

// ChatService stores chat turns in PostgreSQL and mirrors the most recent
// ones in Redis so building assistant context does not hit the database.
type ChatService struct {
	DB    *gorm.DB
	Redis *redis.Client

	source turnSource
	cache  turnCache
}

// NewChatService wires the chat store.
func NewChatService(db *gorm.DB, rdb *redis.Client) *ChatService {
	return &ChatService{
		DB:     db,
		Redis:  rdb,
		source: &gormTurnSource{db: db},
		cache:  &redisTurnCache{rdb: rdb},
	}
}

// CreateChatUser persists a fresh chat user; the BeforeCreate hook fills the UUID.
func (s *ChatService) CreateChatUser(ctx context.Context) (*models.ChatUser, error) {
	user := &models.ChatUser{}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		log.Printf("ERROR: Failed to create chat user: %v", err)
		return nil, err
	}
	return user, nil
}

// SaveTurn appends the turn in PostgreSQL and pushes it onto the Redis cache.
func (s *ChatService) SaveTurn(ctx context.Context, turn *models.ChatTurn) error {
	if err := s.DB.WithContext(ctx).Create(turn).Error; err != nil {
		log.Printf("ERROR: Failed to save chat turn for user %s: %v", turn.UserID, err)
		return err
	}

	// Cache failures are not fatal; the next RecentTurns call falls back to
	// PostgreSQL and rewarms.
	if err := s.cache.append(ctx, turn); err != nil {
		log.Printf("WARNING: Failed to cache chat turn for user %s: %v", turn.UserID, err)
	}
	return nil
}

// History returns all turns for a user, oldest first.
func (s *ChatService) History(ctx context.Context, userID string) ([]models.ChatTurn, error) {
	turns := []models.ChatTurn{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&turns).Error
	if err != nil {
		log.Printf("ERROR: Failed to get chat history for user %s: %v", userID, err)
		return nil, err
	}
	return turns, nil
}

// RecentTurns returns up to n latest turns, oldest first. The cache is
// trusted only when it holds the full window; a shorter read may just be a
// partially rewarmed key, so PostgreSQL stays the source of truth for it.
func (s *ChatService) RecentTurns(ctx context.Context, userID string, n int) ([]models.ChatTurn, error) {
	if cached, err := s.cache.read(ctx, userID, n); err == nil && len(cached) >= n {
		return cached, nil
	}

	turns, err := s.source.lastTurns(ctx, userID, n)
	if err != nil {
		return nil, err
	}

	if err := s.cache.replace(ctx, userID, turns); err != nil {
		log.Printf("WARNING: Failed to rewarm chat cache for user %s: %v", userID, err)
	}
	return turns, nil
}

// gormTurnSource reads persisted turns from PostgreSQL.
type gormTurnSource struct {
	db *gorm.DB
}

// lastTurns fetches up to n latest turns and returns them oldest first.
func (g *gormTurnSource) lastTurns(ctx context.Context, userID string, n int) ([]models.ChatTurn, error) {
	turns := []models.ChatTurn{}
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(n).
		Find(&turns).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// redisTurnCache keeps the last few turns per user in a Redis list.
type redisTurnCache struct {
	rdb *redis.Client
}

func recentKey(userID string) string { return "chat:recent:" + userID }

func (r *redisTurnCache) read(ctx context.Context, userID string, n int) ([]models.ChatTurn, error) {
	raw, err := r.rdb.LRange(ctx, recentKey(userID), int64(-n), -1).Result()
	if err != nil {
		return nil, err
	}

	turns := make([]models.ChatTurn, 0, len(raw))
	for _, item := range raw {
		var turn models.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			// A corrupt entry invalidates the whole cache read.
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *redisTurnCache) append(ctx context.Context, turn *models.ChatTurn) error {
	payload, err := json.Marshal(turn)
	if err != nil {
		return err
	}

	key := recentKey(turn.UserID)
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, -recentCacheSize, -1)
	pipe.Expire(ctx, key, recentCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache turn: %w", err)
	}
	return nil
}

// replace swaps the whole key so a rewarm can never duplicate entries that
// survived in the old list.
func (r *redisTurnCache) replace(ctx context.Context, userID string, turns []models.ChatTurn) error {
	key := recentKey(userID)

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, key)
	for i := range turns {
		payload, err := json.Marshal(&turns[i])
		if err != nil {
			return err
		}
		pipe.RPush(ctx, key, payload)
	}
	pipe.LTrim(ctx, key, -recentCacheSize, -1)
	pipe.Expire(ctx, key, recentCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rewarm cache: %w", err)
	}
	return nil
}
