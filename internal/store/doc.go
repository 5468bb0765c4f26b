// Package store defines the persistence interfaces and error taxonomy the
// services depend on. Implementations live under internal/platform.
package store
