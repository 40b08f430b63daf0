// Package auditrepo persists committed workflow transitions with GORM so the
// history of any order, delivery, person or reservation can be queried.
package auditrepo

import (
	"time"

	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"
)

// TransitionDTO represents one committed transition row. The composite index
// serves history lookups of one entity.
type TransitionDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Kind      string    `gorm:"size:32;not null;index:idx_transitions_entity,priority:1"`
	EntityID  string    `gorm:"size:64;not null;index:idx_transitions_entity,priority:2"`
	FromState string    `gorm:"size:32;not null"`
	ToState   string    `gorm:"size:32;not null"`
	Source    string    `gorm:"size:16"`
	At        time.Time `gorm:"column:occurred_at;not null;index"`
}

// TableName specifies the database table name for transitions.
func (TransitionDTO) TableName() string {
	return "workflow_transitions"
}

func fromDomain(record ports.TransitionRecord) TransitionDTO {
	return TransitionDTO{
		Kind:      string(record.Kind),
		EntityID:  record.EntityID,
		FromState: string(record.From),
		ToState:   string(record.To),
		Source:    record.Source,
		At:        record.At.UTC(),
	}
}

func toDomain(dto TransitionDTO) ports.TransitionRecord {
	return ports.TransitionRecord{
		Kind:     workflow.Kind(dto.Kind),
		EntityID: dto.EntityID,
		From:     workflow.State(dto.FromState),
		To:       workflow.State(dto.ToState),
		Source:   dto.Source,
		At:       dto.At.UTC(),
	}
}
