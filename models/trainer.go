package models

import "github.com/uptrace/bun"

// Trainer is an instructor who owns batches.
type Trainer struct {
	bun.BaseModel `bun:"table:trainers,alias:t"`

	ID        int    `bun:"id,pk,autoincrement" json:"id"`
	FirstName string `bun:"first_name,notnull" json:"firstName"`
	LastName  string `bun:"last_name,notnull" json:"lastName"`
	Birthdate Date   `bun:"birthdate,type:date" json:"birthdate"`
}

// TrainerPatch is a partial update. Nil fields are left unchanged.
type TrainerPatch struct {
	ID        int     `json:"id"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Birthdate *Date   `json:"birthdate,omitempty"`
}

// Apply copies the set fields of p onto t.
func (p TrainerPatch) Apply(t *Trainer) {
	if p.FirstName != nil {
		t.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		t.LastName = *p.LastName
	}
	if p.Birthdate != nil {
		t.Birthdate = *p.Birthdate
	}
}
