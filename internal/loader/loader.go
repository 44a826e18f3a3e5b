// Package loader reads plan scripts: ordered player actions that drive a game.
//
// The text format is one command per line, '#' starts a comment:
//
//	build farm
//	research agriculture
//	train warrior
//	trades
//	trade 0
//	terrain river
//	end 3
//
// Plans may also be written as a JSON array of {"action", "target", "count"} objects.
package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/napolitain/microciv/internal/models"
)

// Command is a plan action
type Command string

const (
	CmdBuild    Command = "build"
	CmdResearch Command = "research"
	CmdTrain    Command = "train"
	CmdTrade    Command = "trade"
	CmdTrades   Command = "trades"
	CmdTerrain  Command = "terrain"
	CmdEnd      Command = "end"
)

// Precompiled regex for better performance
var lineRegex = regexp.MustCompile(`^([A-Za-z]+)(?:\s+(\S+))?(?:\s+(\d+))?$`)

// Step is one parsed plan line
type Step struct {
	Line    int
	Command Command
	Target  string // Building, technology, unit or terrain id; trade index
	Count   int    // Repetitions, at least 1
}

// String renders the step in script syntax
func (s Step) String() string {
	var b strings.Builder
	b.WriteString(string(s.Command))
	if s.Target != "" {
		b.WriteString(" " + s.Target)
	}
	if s.Count > 1 {
		b.WriteString(" " + strconv.Itoa(s.Count))
	}
	return b.String()
}

// Plan is an ordered list of steps
type Plan struct {
	Name  string
	Steps []Step
}

// Turns returns how many turns the plan ends
func (p *Plan) Turns() int {
	n := 0
	for _, s := range p.Steps {
		if s.Command == CmdEnd {
			n += s.Count
		}
	}
	return n
}

// stepJSON represents the JSON structure for a plan step
type stepJSON struct {
	Action string `json:"action"`
	Target string `json:"target"`
	Count  int    `json:"count"`
}

// LoadPlan loads a plan from a .json or text script file
func LoadPlan(path string) (*Plan, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan: %w", err)
	}
	defer file.Close()

	var plan *Plan
	if strings.EqualFold(filepath.Ext(path), ".json") {
		plan, err = ParsePlanJSON(file)
	} else {
		plan, err = ParsePlan(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	plan.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return plan, nil
}

// ParsePlan parses the line-oriented script format
func ParsePlan(r io.Reader) (*Plan, error) {
	plan := &Plan{}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}

		m := lineRegex.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("line %d: cannot parse %q", lineNum, line)
		}

		step, err := newStep(lineNum, strings.ToLower(m[1]), m[2], m[3])
		if err != nil {
			return nil, err
		}
		plan.Steps = append(plan.Steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return plan, nil
}

// ParsePlanJSON parses a JSON array of steps
func ParsePlanJSON(r io.Reader) (*Plan, error) {
	var raw []stepJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}

	plan := &Plan{Steps: make([]Step, 0, len(raw))}
	for i, rs := range raw {
		count := ""
		if rs.Count > 0 {
			count = strconv.Itoa(rs.Count)
		}
		step, err := newStep(i+1, strings.ToLower(rs.Action), rs.Target, count)
		if err != nil {
			return nil, err
		}
		plan.Steps = append(plan.Steps, step)
	}
	return plan, nil
}

// newStep validates one command with its operand and optional count
func newStep(lineNum int, cmd, target, count string) (Step, error) {
	step := Step{Line: lineNum, Command: Command(cmd), Target: target, Count: 1}

	// "end 3" puts the count where the target usually goes
	if step.Command == CmdEnd && count == "" && target != "" {
		target, count = "", target
		step.Target = ""
	}
	if count != "" {
		n, err := strconv.Atoi(count)
		if err != nil || n < 1 {
			return step, fmt.Errorf("line %d: invalid count %q", lineNum, count)
		}
		step.Count = n
	}

	switch step.Command {
	case CmdBuild:
		if models.GetBuildingDefinition(models.BuildingType(target)) == nil {
			return step, fmt.Errorf("line %d: unknown building %q", lineNum, target)
		}
	case CmdResearch:
		if models.GetTechnology(models.TechID(target)) == nil {
			return step, fmt.Errorf("line %d: unknown technology %q", lineNum, target)
		}
	case CmdTrain:
		if models.GetUnitDefinition(models.UnitType(target)) == nil {
			return step, fmt.Errorf("line %d: unknown unit %q", lineNum, target)
		}
	case CmdTerrain:
		if models.GetTerrain(models.TerrainID(target)) == nil {
			return step, fmt.Errorf("line %d: unknown terrain %q", lineNum, target)
		}
	case CmdTrade:
		if idx, err := strconv.Atoi(target); err != nil || idx < 0 {
			return step, fmt.Errorf("line %d: invalid trade index %q", lineNum, target)
		}
	case CmdTrades, CmdEnd:
		if target != "" {
			return step, fmt.Errorf("line %d: %s takes no target", lineNum, cmd)
		}
	default:
		return step, fmt.Errorf("line %d: unknown command %q", lineNum, cmd)
	}
	return step, nil
}
