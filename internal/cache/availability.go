package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/agendaflow/salon-scheduler/internal/config"
	"github.com/agendaflow/salon-scheduler/internal/schedule"
)

// AvailabilityCache guarda o resultado do cálculo de disponibilidade por
// (unidade, profissional, data, granularidade) com TTL curto. O TTL baixo
// existe porque agendamentos mudam entre leituras; as mutações ainda
// invalidam explicitamente o dia.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(cfg *config.Config) *AvailabilityCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	return &AvailabilityCache{
		rdb: rdb,
		ttl: 60 * time.Second,
	}
}

func key(locationID, agentID uint, date string, slotMinutes int) string {
	return fmt.Sprintf("avail:%d:%d:%s:%d", locationID, agentID, date, slotMinutes)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	locationID, agentID uint,
	date string,
	slotMinutes int,
) (*schedule.DayAvailability, bool) {

	raw, err := c.rdb.Get(ctx, key(locationID, agentID, date, slotMinutes)).Bytes()
	if err != nil {
		return nil, false
	}

	var av schedule.DayAvailability
	if err := json.Unmarshal(raw, &av); err != nil {
		return nil, false
	}
	return &av, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	locationID, agentID uint,
	date string,
	slotMinutes int,
	av schedule.DayAvailability,
) {

	raw, err := json.Marshal(av)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key(locationID, agentID, date, slotMinutes), raw, c.ttl).Err(); err != nil {
		log.Println("availability cache set:", err)
	}
}

// InvalidateDay remove todas as granularidades cacheadas do dia.
func (c *AvailabilityCache) InvalidateDay(
	ctx context.Context,
	locationID, agentID uint,
	date string,
) {

	pattern := fmt.Sprintf("avail:%d:%d:%s:*", locationID, agentID, date)
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Println("availability cache invalidate:", err)
	}
}
