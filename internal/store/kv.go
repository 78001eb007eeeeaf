package store

import (
	"context"
	"errors"
	"unicode/utf16"
)

// ErrQuotaExceeded is returned by Set when the write would push the store
// past its configured quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KV is a string key/value store. It is the only persistence surface the
// rest of the application sees.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear deletes every key.
	Clear(ctx context.Context) error

	// Entries returns a copy of every key/value pair.
	Entries(ctx context.Context) (map[string]string, error)
}

// Options configures a KV implementation.
type Options struct {
	// Quota is the maximum footprint in bytes, as measured by Footprint.
	// Zero means unlimited.
	Quota int64
}

// Footprint estimates the storage cost of entries the way a browser
// accounts for local storage: UTF-16 code units of every key and value,
// two bytes each.
func Footprint(entries map[string]string) int64 {
	var units int64
	for k, v := range entries {
		units += int64(utf16Len(k) + utf16Len(v))
	}
	return units * 2
}

// ProjectedFootprint returns the footprint entries would have after
// setting key to value.
func ProjectedFootprint(entries map[string]string, key, value string) int64 {
	total := Footprint(entries)
	if old, ok := entries[key]; ok {
		total -= int64(utf16Len(key)+utf16Len(old)) * 2
	}
	return total + int64(utf16Len(key)+utf16Len(value))*2
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		l := utf16.RuneLen(r)
		if l < 0 {
			l = 1
		}
		n += l
	}
	return n
}
