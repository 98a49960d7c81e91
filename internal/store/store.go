package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Well-known record keys shared with the web client.
const (
	KeyUser        = "vyapyaar_user"
	KeyProductData = "product_data"
)

var ErrNotFound = errors.New("record not found")

// Store is a session-scoped key-value store of flat string records.
type Store interface {
	Put(ctx context.Context, sessionID, key string, record map[string]string) error
	Get(ctx context.Context, sessionID, key string) (map[string]string, error)
	Delete(ctx context.Context, sessionID, key string) error
}

// Save flattens v (a struct with json tags) and stores it under key.
func Save(ctx context.Context, s Store, sessionID, key string, v any) error {
	var fields map[string]any
	if err := decode(v, &fields); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	record := make(map[string]string, len(fields))
	for name, value := range fields {
		record[name] = fmt.Sprint(value)
	}
	return s.Put(ctx, sessionID, key, record)
}

// Load reads the record under key into out.
func Load(ctx context.Context, s Store, sessionID, key string, out any) error {
	record, err := s.Get(ctx, sessionID, key)
	if err != nil {
		return err
	}
	if err := decode(record, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func decode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
