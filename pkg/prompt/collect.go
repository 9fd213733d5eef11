package prompt

import (
	"context"
	"fmt"
)

// CollectOption customises Collect.
type CollectOption func(*collectConfig)

type collectConfig struct {
	defaults map[string]string
	all      bool
}

// WithDefaults pre-fills prompts, typically with the values stored on the
// template.
func WithDefaults(defaults map[string]string) CollectOption {
	return func(c *collectConfig) {
		c.defaults = defaults
	}
}

// WithPromptAll asks for every key, offering known values as defaults,
// instead of only the missing ones.
func WithPromptAll() CollectOption {
	return func(c *collectConfig) {
		c.all = true
	}
}

// Collect asks for every key in keys that known does not already hold and
// returns known merged with the answers. Keys are asked in the given order;
// known is not modified.
func Collect(ctx context.Context, driver Driver, keys []string, known map[string]string, options ...CollectOption) (map[string]string, error) {
	cfg := collectConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	out := make(map[string]string, len(known)+len(keys))
	for k, v := range known {
		out[k] = v
	}

	for _, key := range keys {
		current, has := out[key]
		if has && !cfg.all {
			continue
		}
		def := cfg.defaults[key]
		if has {
			def = current
		}
		answer, err := driver.Input(ctx, InputConfig{
			Message: key,
			Default: def,
			Help:    fmt.Sprintf("Value substituted for the %q placeholder.", key),
		})
		if err != nil {
			return nil, err
		}
		out[key] = answer
	}
	return out, nil
}

// CollectBatch repeats Collect until the user declines another value set.
// It always returns at least one set.
func CollectBatch(ctx context.Context, driver Driver, keys []string, options ...CollectOption) ([]map[string]string, error) {
	var sets []map[string]string
	for {
		if len(sets) > 0 {
			if err := driver.Info(ctx, fmt.Sprintf("value set %d", len(sets)+1)); err != nil {
				return nil, err
			}
		}
		set, err := Collect(ctx, driver, keys, nil, options...)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)

		more, err := driver.Confirm(ctx, ConfirmConfig{Message: "Add another value set?"})
		if err != nil {
			return nil, err
		}
		if !more {
			return sets, nil
		}
	}
}

// ChooseFormat asks which export format to produce. current preselects an
// option when it is one of formats.
func ChooseFormat(ctx context.Context, driver Driver, formats []string, current string) (string, error) {
	if len(formats) == 0 {
		return "", fmt.Errorf("prompt: no formats to choose from")
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message:      "Export format",
		Options:      formats,
		DefaultIndex: indexOf(formats, current),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(formats) {
		return "", fmt.Errorf("prompt: invalid selection %d", idx)
	}
	return formats[idx], nil
}
