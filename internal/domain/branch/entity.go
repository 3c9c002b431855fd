package branch

import (
	"time"

	"github.com/google/uuid"
)

type Branch struct {
	id        uuid.UUID
	name      string
	location  string
	createdAt time.Time
}

func ReconstructBranch(id uuid.UUID, name, location string, createdAt time.Time) *Branch {
	return &Branch{
		id:        id,
		name:      name,
		location:  location,
		createdAt: createdAt,
	}
}

func (b *Branch) ID() uuid.UUID        { return b.id }
func (b *Branch) Name() string         { return b.name }
func (b *Branch) Location() string     { return b.location }
func (b *Branch) CreatedAt() time.Time { return b.createdAt }
