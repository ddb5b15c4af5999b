package interfaces

// StorageManager provides access to the storage backends
type StorageManager interface {
	// FavoriteStorage returns the favorites document store
	FavoriteStorage() FavoriteStorage

	// Close closes all storage connections
	Close() error
}
