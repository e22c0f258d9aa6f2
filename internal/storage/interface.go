package storage

import "errors"

// Provider is a key-value store of JSON documents keyed by collection name.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns (nil, false, nil) when key is absent.
	Get(key string) ([]byte, bool, error)
	// Set overwrites the document stored under key.
	Set(key string, doc []byte) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

var (
	ErrNotLoaded = errors.New("storage not loaded")
	ErrNotFound  = errors.New("not found")
	ErrCorrupt   = errors.New("corrupt document")
)
