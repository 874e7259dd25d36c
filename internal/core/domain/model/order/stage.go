package order

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Stage represents one of the fixed production steps a line must pass
// through. The set is closed and conceptually ordered, but the ledger does
// not enforce sequence: stages may be recorded in any order, only quantity
// quotas are enforced.
type Stage int

const (
	// UnknownStage represents an invalid or undefined stage.
	UnknownStage Stage = iota

	// StageCutting is cutting the fabric to (extended) size.
	StageCutting

	// StageSewing is finishing the edges.
	StageSewing

	// StageIroning is pressing the finished piece.
	StageIroning

	// StagePacking is the final packing for shipment.
	StagePacking
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		UnknownStage: "unknown",
		StageCutting: "cutting",
		StageSewing:  "sewing",
		StageIroning: "ironing",
		StagePacking: "packing",
	}
}

func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // UnknownStage is intentionally excluded as it's invalid
	return map[Stage]string{
		StageCutting: "cutting",
		StageSewing:  "sewing",
		StageIroning: "ironing",
		StagePacking: "packing",
	}
}

// Stages returns the fixed production stage set in conceptual order.
// Line completion requires every stage in this set to be fully recorded.
func Stages() []Stage {
	return []Stage{StageCutting, StageSewing, StageIroning, StagePacking}
}

// StageFromString parses a stage from its wire representation.
func StageFromString(s string) (Stage, error) {
	for stage, str := range getValidStageStrings() {
		if str == s {
			return stage, nil
		}
	}
	return UnknownStage, errs.NewValueIsInvalidErrorWithCause("stage is invalid",
		fmt.Errorf("%q is not a valid stage", s))
}

// Validate checks if the Stage value is one of the valid production stages.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the wire name of the stage.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}
