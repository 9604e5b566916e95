package category

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Input struct {
	Name        string
	Description string
}
