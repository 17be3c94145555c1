package models

import "github.com/uptrace/bun"

// Batch is a training cohort run by one trainer around one skill.
type Batch struct {
	bun.BaseModel `bun:"table:batches,alias:b"`

	ID        int    `bun:"id,pk,autoincrement" json:"id"`
	TrainerID *int   `bun:"trainer_id" json:"trainerId,omitempty"`
	SkillID   *int   `bun:"skill_id" json:"-"`
	Name      string `bun:"name,notnull" json:"name"`
	StartDate Date   `bun:"start_date,type:date" json:"startDate"`
	EndDate   Date   `bun:"end_date,type:date" json:"endDate"`

	Skill *Skill `bun:"-" json:"skill,omitempty"`
}

// Project is worked on by the associates of a batch.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID          int     `bun:"id,pk,autoincrement" json:"id"`
	BatchID     int     `bun:"batch_id,notnull" json:"batchId"`
	Name        string  `bun:"name,notnull" json:"name"`
	Description *string `bun:"description" json:"description,omitempty"`
}

// Associate is a trainee enrolled in a batch.
type Associate struct {
	bun.BaseModel `bun:"table:associates,alias:a"`

	ID        int    `bun:"id,pk,autoincrement" json:"id"`
	BatchID   int    `bun:"batch_id,notnull" json:"batchId"`
	FirstName string `bun:"first_name,notnull" json:"firstName"`
	LastName  string `bun:"last_name,notnull" json:"lastName"`
	Email     string `bun:"email,notnull,unique" json:"email"`
}

// Team groups associates working on a project.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:tm"`

	ID        int    `bun:"id,pk,autoincrement" json:"id"`
	ProjectID int    `bun:"project_id,notnull" json:"projectId"`
	Name      string `bun:"name,notnull" json:"name"`
}
