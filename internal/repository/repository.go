package repository

import (
	"fmt"

	"github.com/yourusername/leaguebook/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Run        RunRepository
	Projection ProjectionRepository
	Roster     RosterRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Run:        NewPostgresRunRepository(db),
		Projection: NewPostgresProjectionRepository(db),
		Roster:     NewPostgresRosterRepository(db),
	}, nil
}
