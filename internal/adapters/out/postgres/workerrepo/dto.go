// Package workerrepo persists the worker roster: who may log in with which
// code, their role, and the stages they are allowed to record.
package workerrepo

import (
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO represents the database structure for persisting workers.
// The login code carries a unique index. Allowed stages are stored as a
// JSONB array of stage names, so roster edits never need a schema change.
type WorkerDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code          string    `gorm:"uniqueIndex"`
	FirstName     string
	LastName      string
	Role          string
	AllowedStages []string `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for worker entities.
func (WorkerDTO) TableName() string {
	return "workers"
}

// fromDomain converts a worker domain entity to its database representation.
func fromDomain(aggregate *worker.Worker) WorkerDTO {
	stages := aggregate.AllowedStages()
	stageNames := make([]string, 0, len(stages))
	for _, s := range stages {
		stageNames = append(stageNames, s.String())
	}

	return WorkerDTO{
		ID:            aggregate.ID().Bytes(),
		Code:          aggregate.Code(),
		FirstName:     aggregate.FirstName(),
		LastName:      aggregate.LastName(),
		Role:          aggregate.Role().String(),
		AllowedStages: stageNames,
	}
}

// toDomain converts a database DTO to a worker domain entity.
func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := worker.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	stages := make([]order.Stage, 0, len(dto.AllowedStages))
	for _, name := range dto.AllowedStages {
		stage, stageErr := order.StageFromString(name)
		if stageErr != nil {
			return nil, stageErr
		}
		stages = append(stages, stage)
	}

	return worker.RestoreWorker(id, dto.Code, dto.FirstName, dto.LastName, role, stages)
}
