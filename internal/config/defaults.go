package config

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// DefaultEntries returns the settings that can be changed at runtime, with
// their default values.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		{
			Key:         "pagination.format",
			Value:       d.Pagination.Format,
			Description: `Page stamp format: "Page X of Y", "Page X" or "X"`,
		},
		{
			Key:         "pagination.position",
			Value:       d.Pagination.Position,
			Description: "Page stamp position: top-right, bottom-center or top-center",
		},
		{
			Key:         "pagination.font_size",
			Value:       d.Pagination.FontSize,
			Description: "Page stamp font size in points",
		},
		{
			Key:         "late_insert.mode",
			Value:       d.LateInsert.Mode,
			Description: "Numbering for late inserts: repaginate or sub_number",
		},
		{
			Key:         "toc.title",
			Value:       d.TOC.Title,
			Description: "Heading of the first table of contents page",
		},
		{
			Key:         "toc.max_reflows",
			Value:       d.TOC.MaxReflows,
			Description: "How often the table of contents is re-laid out when it renders longer than planned",
		},
		{
			Key:         "output.bookmarks",
			Value:       d.Output.Bookmarks,
			Description: "Add a bookmark outline to compiled bundles",
		},
		{
			Key:         "output.cleanup_attempts",
			Value:       d.Output.CleanupAttempts,
			Description: "Attempts at removing a compile's working directory",
		},
	}
}

// GetDefault returns the default value for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// ResetToDefault removes the stored override for key, so the config file (or
// the built-in default) applies again.
// Returns ErrNoDefault if no default exists for the key.
func ResetToDefault(ctx context.Context, store Store, key string) error {
	if GetDefault(key) == nil {
		return fmt.Errorf("%w for key %q", ErrNoDefault, key)
	}
	return store.Delete(ctx, key)
}

// EffectiveEntries lists every setting with its value in cfg. Descriptions
// come from the defaults; UpdatedAt is copied from stored overrides.
func EffectiveEntries(cfg *Config, stored map[string]Entry) map[string]Entry {
	result := make(map[string]Entry, len(getters))
	for _, def := range DefaultEntries() {
		get, ok := getters[def.Key]
		if !ok {
			continue
		}
		entry := Entry{
			Key:         def.Key,
			Value:       get(cfg),
			Description: def.Description,
		}
		if s, ok := stored[def.Key]; ok {
			entry.UpdatedAt = s.UpdatedAt
			if s.Description != "" {
				entry.Description = s.Description
			}
		}
		result[def.Key] = entry
	}
	return result
}
