// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The external reference carries a unique index so feed synchronization can
// match orders idempotently.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalRef          *int64    `gorm:"uniqueIndex"`
	Source               string
	ExpectedShipmentDate *time.Time
	CustomerName         string
	Company              string
	Status               string    `gorm:"index"`
	Lines                []LineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents one order position. The composite unique index keeps a
// product to at most one line per order; the line row is the target of the
// FOR UPDATE lock taken by the locking reads.
type LineDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_lines_order_product"`
	ProductID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_lines_order_product"`
	RequiredQuantity int
	Actions          []ActionDTO `gorm:"foreignKey:LineID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for line entities.
func (LineDTO) TableName() string {
	return "lines"
}

// ActionDTO represents one recorded stage-completion action with its
// snapshot cost.
type ActionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineID    uuid.UUID `gorm:"type:uuid;index"`
	Stage     string
	Quantity  int
	Cost      float64
	ActorID   uuid.UUID `gorm:"type:uuid;index"`
	Timestamp time.Time
}

// TableName specifies the database table name for action entities.
func (ActionDTO) TableName() string {
	return "actions"
}

// fromDomain converts an order domain aggregate to its database representation,
// including all lines and their actions.
func fromDomain(aggregate *order.Order) OrderDTO {
	lines := aggregate.Lines()
	lineDTOs := make([]LineDTO, 0, len(lines))
	for _, l := range lines {
		lineDTOs = append(lineDTOs, lineFromDomain(l))
	}

	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		ExternalRef:          aggregate.ExternalRef(),
		Source:               aggregate.Source(),
		ExpectedShipmentDate: aggregate.ExpectedShipmentDate(),
		CustomerName:         aggregate.CustomerName(),
		Company:              aggregate.Company(),
		Status:               aggregate.Status().String(),
		Lines:                lineDTOs,
	}
}

func lineFromDomain(l *order.Line) LineDTO {
	actions := l.Actions()
	actionDTOs := make([]ActionDTO, 0, len(actions))
	for _, a := range actions {
		actionDTOs = append(actionDTOs, ActionDTO{
			ID:        a.ID().Bytes(),
			LineID:    a.LineID().Bytes(),
			Stage:     a.Stage().String(),
			Quantity:  a.Quantity(),
			Cost:      a.Cost(),
			ActorID:   a.ActorID().Bytes(),
			Timestamp: a.Timestamp(),
		})
	}

	return LineDTO{
		ID:               l.ID().Bytes(),
		OrderID:          l.OrderID().Bytes(),
		ProductID:        l.ProductID().Bytes(),
		RequiredQuantity: l.RequiredQuantity(),
		Actions:          actionDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines and actions using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		l, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, l)
	}

	return order.RestoreOrder(
		id, dto.ExternalRef, dto.Source, dto.ExpectedShipmentDate,
		dto.CustomerName, dto.Company, status, lines)
}

func lineToDomain(dto LineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	actions := make([]*order.Action, 0, len(dto.Actions))
	for _, actionDTO := range dto.Actions {
		a, actionErr := actionToDomain(actionDTO)
		if actionErr != nil {
			return nil, actionErr
		}
		actions = append(actions, a)
	}

	return order.RestoreLine(id, orderID, productID, dto.RequiredQuantity, actions)
}

func actionToDomain(dto ActionDTO) (*order.Action, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	lineID, err := kernel.UUIDFromBytes(dto.LineID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	stage, err := order.StageFromString(dto.Stage)
	if err != nil {
		return nil, err
	}

	return order.RestoreAction(id, lineID, stage, dto.Quantity, dto.Cost, actorID, dto.Timestamp)
}
