package game

import "errors"

// Sentinel errors returned (wrapped) by the Try* operations.
// The boolean forms log err.Error() to the event log instead.
var (
	ErrUnknownBuilding    = errors.New("unknown building type")
	ErrUnknownTechnology  = errors.New("unknown technology")
	ErrUnknownUnit        = errors.New("unknown unit type")
	ErrUnknownTerrain     = errors.New("unknown terrain type")
	ErrCannotAfford       = errors.New("not enough resources")
	ErrRequirementsNotMet = errors.New("requirements not met")
	ErrAlreadyResearched  = errors.New("already researched")
	ErrMissingPrereqs     = errors.New("missing prerequisites")
	ErrNotEnoughScience   = errors.New("not enough science points")
	ErrNoBarracks         = errors.New("need to build a barracks first")
	ErrInvalidTrade       = errors.New("no such trade offer")
	ErrGameWon            = errors.New("the game is already won")
)
