package loader

import (
	"fmt"
	"strconv"

	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

// StepFailure records a step the engine rejected
type StepFailure struct {
	Step Step
	Err  error
}

// Result is the outcome of running a plan
type Result struct {
	Applied  int
	Failures []StepFailure
	Reports  []models.TurnReport
}

// Run applies every step of a plan to g. Rejected actions are collected and
// the plan continues; with strict set the first rejection is returned instead.
// Running stops early once the game is won.
func Run(g *game.Game, plan *Plan, strict bool) (Result, error) {
	var res Result

	for _, step := range plan.Steps {
		for range step.Count {
			if g.Won() {
				return res, nil
			}

			err := apply(g, step, &res)
			if err == nil {
				res.Applied++
				continue
			}
			if strict {
				return res, fmt.Errorf("line %d (%s): %w", step.Line, step, err)
			}
			res.Failures = append(res.Failures, StepFailure{Step: step, Err: err})
		}
	}
	return res, nil
}

func apply(g *game.Game, step Step, res *Result) error {
	switch step.Command {
	case CmdBuild:
		return g.TryBuild(models.BuildingType(step.Target))
	case CmdResearch:
		return g.TryStartResearch(models.TechID(step.Target))
	case CmdTrain:
		return g.TryTrainUnit(models.UnitType(step.Target))
	case CmdTerrain:
		return g.TryChangeTerrain(models.TerrainID(step.Target))
	case CmdTrades:
		g.GenerateTradeOptions()
		return nil
	case CmdTrade:
		idx, err := strconv.Atoi(step.Target)
		if err != nil {
			return err
		}
		return g.TryTrade(idx)
	case CmdEnd:
		res.Reports = append(res.Reports, g.EndTurn())
		return nil
	}
	return fmt.Errorf("unknown command %q", step.Command)
}
