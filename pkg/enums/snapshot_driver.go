package enums

import (
	"fmt"
	"strings"
)

// SnapshotDriver selects where the local provider persists its collections.
type SnapshotDriver string

const (
	SnapshotDriverMemory   SnapshotDriver = "memory"
	SnapshotDriverFile     SnapshotDriver = "file"
	SnapshotDriverRedis    SnapshotDriver = "redis"
	SnapshotDriverSQLite   SnapshotDriver = "sqlite"
	SnapshotDriverPostgres SnapshotDriver = "postgres"
)

var validSnapshotDrivers = []SnapshotDriver{
	SnapshotDriverMemory,
	SnapshotDriverFile,
	SnapshotDriverRedis,
	SnapshotDriverSQLite,
	SnapshotDriverPostgres,
}

// String implements fmt.Stringer.
func (d SnapshotDriver) String() string {
	return string(d)
}

// IsValid reports whether the value is a known SnapshotDriver.
func (d SnapshotDriver) IsValid() bool {
	for _, candidate := range validSnapshotDrivers {
		if candidate == d {
			return true
		}
	}
	return false
}

// IsSQL reports whether the driver is backed by gorm.
func (d SnapshotDriver) IsSQL() bool {
	return d == SnapshotDriverSQLite || d == SnapshotDriverPostgres
}

// ParseSnapshotDriver converts raw input into a SnapshotDriver.
func ParseSnapshotDriver(value string) (SnapshotDriver, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validSnapshotDrivers {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid snapshot driver %q", value)
}
