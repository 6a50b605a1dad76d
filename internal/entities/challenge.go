package entities

import (
	"time"

	"github.com/google/uuid"
)

// Photo is a reference image with its free-text description.
type Photo struct {
	Url         string
	Description string
}

type Challenge struct {
	Id          uuid.UUID
	UserId      int64
	ImageUrl    string
	Description string // expected answer, also shown as the hint
	IssuedAt    time.Time
}
