package domain

import "time"

type Person struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Cost struct {
	ID          string
	Amount      float64
	Category    string
	Description string
	CreatedAt   time.Time
}
