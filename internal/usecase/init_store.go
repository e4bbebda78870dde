package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/hourlog/internal/domain"
)

// InitStoreInput contains the input parameters for InitStore.
type InitStoreInput struct {
	DataDir string // Path to the hourlog data directory
}

// InitStoreOutput contains the output from InitStore.
type InitStoreOutput struct {
	DataDir     string // Path to the data directory
	Initialized int    // Number of stores initialized
}

// InitStore prepares the data directory and the persistent stores.
type InitStore struct {
	stores []domain.StoreInitializer
}

// NewInitStore creates a new InitStore use case. Nil initializers are skipped.
func NewInitStore(stores ...domain.StoreInitializer) *InitStore {
	var list []domain.StoreInitializer
	for _, s := range stores {
		if s != nil {
			list = append(list, s)
		}
	}
	return &InitStore{stores: list}
}

// Execute creates the data and logs directories and initializes every store.
// Initializing an existing store leaves its contents untouched.
func (uc *InitStore) Execute(_ context.Context, in InitStoreInput) (*InitStoreOutput, error) {
	if in.DataDir != "" {
		if err := os.MkdirAll(filepath.Join(in.DataDir, "logs"), 0o750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	for _, s := range uc.stores {
		if err := s.Initialize(); err != nil {
			return nil, fmt.Errorf("initialize store: %w", err)
		}
	}

	return &InitStoreOutput{DataDir: in.DataDir, Initialized: len(uc.stores)}, nil
}
