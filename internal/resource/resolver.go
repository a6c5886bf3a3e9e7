// Package resource locates and loads the JSON documents backing the
// API: variable dictionaries and category structures, stored per data
// source. Resolution is tiered, trying the local filesystem first,
// then a configured object store, then a caller-supplied fallback.
// A typed error taxonomy lets handlers tell absence from breakage.
package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Tier identifies which storage tier satisfied a resolution.
type Tier int

const (
	// TierLocal means the document came from the local filesystem.
	TierLocal Tier = iota
	// TierRemote means the document came from the object store.
	TierRemote
	// TierFallback means a fallback producer supplied the document.
	TierFallback
)

// String returns the tier's name.
func (t Tier) String() string {
	switch t {
	case TierLocal:
		return "local"
	case TierRemote:
		return "remote"
	case TierFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Location is a resolved document: the tier that produced it and its
// raw JSON bytes. Locations live for one request; nothing is cached
// across requests.
type Location struct {
	Tier Tier
	Data []byte
}

// Fallback produces a document when neither storage tier has one.
type Fallback func() ([]byte, error)

// Resolver performs tiered document resolution. Tiers are attempted
// in order, each exactly once, with no retries and no writes. A nil
// store disables the remote tier.
type Resolver struct {
	paths  Paths
	store  ObjectStore
	logger *zap.Logger
}

// NewResolver creates a resolver over the given layout and optional
// object store.
func NewResolver(paths Paths, store ObjectStore, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{paths: paths, store: store, logger: logger}
}

// Resolve locates the document at localPath, falling back to remoteKey
// on the object store and finally to the fallback producer.
//
// A missing local file or remote key is absence and moves resolution
// to the next tier. A present-but-unparsable document stops resolution
// with a MalformedDataError; a remote fault other than a missing key
// stops it with a StorageAccessError. When every tier comes up empty
// and no fallback was supplied, the result is a NotFoundError.
func (r *Resolver) Resolve(ctx context.Context, localPath, remoteKey string, fallback Fallback) (Location, error) {
	if localPath != "" {
		data, found, err := readLocalJSON(localPath)
		if err != nil {
			return Location{}, err
		}
		if found {
			r.logger.Debug("resource resolved",
				zap.String("tier", TierLocal.String()),
				zap.String("path", localPath))
			return Location{Tier: TierLocal, Data: data}, nil
		}
	}

	if r.store != nil && remoteKey != "" {
		data, err := r.store.Get(ctx, remoteKey)
		switch {
		case err == nil:
			if parseErr := validateJSON(data); parseErr != nil {
				return Location{}, &MalformedDataError{Path: remoteKey, Err: parseErr}
			}
			r.logger.Debug("resource resolved",
				zap.String("tier", TierRemote.String()),
				zap.String("key", remoteKey))
			return Location{Tier: TierRemote, Data: data}, nil
		case errors.Is(err, ErrKeyNotFound):
			// Absence, not a fault; keep going.
		default:
			return Location{}, &StorageAccessError{Key: remoteKey, Err: err}
		}
	}

	if fallback != nil {
		data, err := fallback()
		if err != nil {
			return Location{}, fmt.Errorf("fallback producer failed: %w", err)
		}
		r.logger.Debug("resource resolved",
			zap.String("tier", TierFallback.String()),
			zap.String("path", localPath))
		return Location{Tier: TierFallback, Data: data}, nil
	}

	return Location{}, &NotFoundError{Path: localPath}
}

// Dictionary resolves the variable dictionary for a data source. There
// is no fallback: a source without a dictionary is not found.
func (r *Resolver) Dictionary(ctx context.Context, source string) (Location, error) {
	if !ValidSourceName(source) {
		return Location{}, &InvalidSourceError{Name: source}
	}
	localPath, remoteKey := r.paths.Dictionary(source)
	return r.Resolve(ctx, localPath, remoteKey, nil)
}

// Categories resolves the category document for a data source, using
// fallback when neither storage tier has one.
func (r *Resolver) Categories(ctx context.Context, source string, fallback Fallback) (Location, error) {
	if !ValidSourceName(source) {
		return Location{}, &InvalidSourceError{Name: source}
	}
	localPath, remoteKey := r.paths.Categories(source)
	return r.Resolve(ctx, localPath, remoteKey, fallback)
}

// readLocalJSON reads and validates a local document. found is false
// when no file exists at path; a file that exists but does not parse
// is a MalformedDataError, never absence.
func readLocalJSON(path string) (data []byte, found bool, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	if parseErr := validateJSON(data); parseErr != nil {
		return nil, false, &MalformedDataError{Path: path, Err: parseErr}
	}
	return data, true, nil
}

// validateJSON returns the parse error for invalid documents. Valid
// documents are scanned, not decoded.
func validateJSON(data []byte) error {
	if json.Valid(data) {
		return nil
	}
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	return fmt.Errorf("invalid JSON")
}
