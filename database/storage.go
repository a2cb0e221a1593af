package database

import "gorm.io/gorm"

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// GetDB returns the GORM handle, or nil for stores that are not backed by SQL
	GetDB() *gorm.DB

	TxManager() TxManager
}
