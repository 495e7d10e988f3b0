package health

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"
)

// probeKey is written and removed on every storage check. It lives beside
// the cart keys, so a store that rejects it would reject them too.
const probeKey = "health_probe"

// Store is the slice of session storage the checker exercises. Any of the
// session package's storage implementations satisfies it.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
}

// StorageChecker verifies the session store holding the pre-cart and the
// count cache accepts writes, returns them intact, and deletes them.
type StorageChecker struct {
	name  string
	store Store
}

// NewStorageChecker creates a checker for store. The name tells stores
// apart in reports when several are registered; empty means "storage".
func NewStorageChecker(name string, store Store) *StorageChecker {
	if name == "" {
		name = "storage"
	}
	return &StorageChecker{name: name, store: store}
}

// Name identifies the checker in reports.
func (s *StorageChecker) Name() string {
	return s.name
}

// Check writes a probe value, reads it back, and deletes it.
func (s *StorageChecker) Check(ctx context.Context) Result {
	if s.store == nil {
		return Unhealthy("no store configured", ErrCheckFailed)
	}

	probe := []byte(strconv.FormatInt(time.Now().UnixNano(), 10))

	if err := s.store.Set(probeKey, probe); err != nil {
		return Unhealthy("store rejected write", err)
	}

	got, ok := s.store.Get(probeKey)
	if !ok {
		return Unhealthy("store lost the probe value", ErrCheckFailed)
	}
	if !bytes.Equal(got, probe) {
		return Unhealthy("store returned a different value", ErrCheckFailed).
			WithDetails(map[string]any{"wrote": string(probe), "read": string(got)})
	}

	if err := s.store.Delete(probeKey); err != nil {
		return Degraded(fmt.Sprintf("probe cleanup failed: %v", err))
	}

	return Healthy("session store read/write ok")
}

// Info describes the store's probe behavior without grading it.
func (s *StorageChecker) Info(ctx context.Context) (map[string]any, error) {
	result := s.Check(ctx)
	info := map[string]any{
		"probe_key": probeKey,
		"status":    result.Status.String(),
		"message":   result.Message,
	}
	if result.Error != nil {
		return info, result.Error
	}
	return info, nil
}

var (
	_ Checker     = (*StorageChecker)(nil)
	_ InfoChecker = (*StorageChecker)(nil)
)
