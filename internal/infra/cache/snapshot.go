package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/opal-salon/salon-scheduler/internal/models"
)

// DaySnapshot stores the last successfully fetched appointment list per
// (employee, date). It is the fallback view for the pre-save conflict
// recheck when the fresh fetch exhausts its retries: stale data beats
// blocking the user.
type DaySnapshot interface {
	Put(ctx context.Context, employeeID, date string, appointments []models.Appointment)
	Get(ctx context.Context, employeeID, date string) ([]models.Appointment, bool)
}

const snapshotTTL = 24 * time.Hour

type RedisSnapshot struct {
	client *redis.Client
}

func NewRedisSnapshot(addr string) *RedisSnapshot {
	return &RedisSnapshot{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func snapshotKey(employeeID, date string) string {
	return fmt.Sprintf("day_snapshot:%s:%s", date, employeeID)
}

func (s *RedisSnapshot) Put(ctx context.Context, employeeID, date string, appointments []models.Appointment) {
	data, err := json.Marshal(appointments)
	if err != nil {
		return
	}
	// Best effort; snapshot misses only degrade the fallback.
	s.client.Set(ctx, snapshotKey(employeeID, date), data, snapshotTTL)
}

func (s *RedisSnapshot) Get(ctx context.Context, employeeID, date string) ([]models.Appointment, bool) {
	data, err := s.client.Get(ctx, snapshotKey(employeeID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var aps []models.Appointment
	if err := json.Unmarshal(data, &aps); err != nil {
		return nil, false
	}
	return aps, true
}

// MemorySnapshot is the in-process fallback used when Redis is not
// configured, and in tests.
type MemorySnapshot struct {
	mu      sync.RWMutex
	entries map[string][]models.Appointment
}

func NewMemorySnapshot() *MemorySnapshot {
	return &MemorySnapshot{entries: make(map[string][]models.Appointment)}
}

func (s *MemorySnapshot) Put(_ context.Context, employeeID, date string, appointments []models.Appointment) {
	cp := make([]models.Appointment, len(appointments))
	copy(cp, appointments)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[snapshotKey(employeeID, date)] = cp
}

func (s *MemorySnapshot) Get(_ context.Context, employeeID, date string) ([]models.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	aps, ok := s.entries[snapshotKey(employeeID, date)]
	return aps, ok
}
