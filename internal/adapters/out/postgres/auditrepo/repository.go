package auditrepo

import (
	"context"
	"errors"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.TransitionLog = (*GormTransitionLog)(nil)

// GormTransitionLog implements ports.TransitionLog using GORM.
type GormTransitionLog struct {
	db *gorm.DB
}

// NewGormTransitionLog creates a transition log on db.
func NewGormTransitionLog(db *gorm.DB) *GormTransitionLog {
	return &GormTransitionLog{db: db}
}

// Migrate creates or updates the transitions table.
func (r *GormTransitionLog) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&TransitionDTO{})
}

// Observe appends record to the log.
func (r *GormTransitionLog) Observe(ctx context.Context, record ports.TransitionRecord) error {
	if err := validate(record); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ObserveAll appends records in a single transaction: either all rows are
// written or none.
func (r *GormTransitionLog) ObserveAll(ctx context.Context, records []ports.TransitionRecord) error {
	dtos := make([]TransitionDTO, 0, len(records))
	for _, record := range records {
		if err := validate(record); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(record))
	}
	if len(dtos) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dtos).Error
	})
}

// History returns the transitions of one entity, oldest first.
func (r *GormTransitionLog) History(
	ctx context.Context,
	kind workflow.Kind,
	entityID string,
) ([]ports.TransitionRecord, error) {
	if err := errors.Join(
		kernel.ValidateID("kind", string(kind)),
		kernel.ValidateID("entityId", entityID),
	); err != nil {
		return nil, err
	}

	var dtos []TransitionDTO
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND entity_id = ?", string(kind), entityID).
		Order("occurred_at ASC, id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]ports.TransitionRecord, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, toDomain(dto))
	}
	return records, nil
}

// Count returns the number of logged transitions of kind, or of every kind
// when kind is empty.
func (r *GormTransitionLog) Count(ctx context.Context, kind workflow.Kind) (int64, error) {
	query := r.db.WithContext(ctx).Model(&TransitionDTO{})
	if kind != "" {
		query = query.Where("kind = ?", string(kind))
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func validate(record ports.TransitionRecord) error {
	var at error
	if record.At.IsZero() {
		at = errs.NewValueIsRequiredError("at")
	}
	return errors.Join(
		kernel.ValidateID("kind", string(record.Kind)),
		kernel.ValidateID("entityId", record.EntityID),
		kernel.ValidateID("to", string(record.To)),
		at,
	)
}
