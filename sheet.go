package spreadsheet

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Engine evaluates whole grids. it owns no grid state; callers pass
// the grid into each Evaluate call and results are written back into
// the formula cells in place.
type Engine struct {
	log   *logrus.Logger
	funcs *Functions
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine's logger. the default logger discards
// everything.
func WithLogger(log *logrus.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithFunctions sets the engine's built-in function table
func WithFunctions(funcs *Functions) Option {
	return func(e *Engine) {
		e.funcs = funcs
	}
}

// NewEngine creates an evaluation engine
func NewEngine(opts ...Option) *Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)

	e := &Engine{
		log:   log,
		funcs: NewFunctions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs one full evaluation pass: extract the dependency map,
// order it, then evaluate every formula cell in dependency order,
// writing value and error back into the grid. a cycle anywhere marks
// every formula cell in the grid as cyclic. errors stay scoped to
// their cell; the pass itself always completes.
func (e *Engine) Evaluate(g *Grid) {
	deps := ExtractDependencies(g)
	order, ok := TopologicalOrder(deps)
	if !ok {
		e.log.WithField("cells", len(deps)).Debug("cyclic dependency detected")
		e.markCyclic(g)
		return
	}

	ctx := &evalContext{grid: g, funcs: e.funcs}
	evaluated := 0
	for _, id := range order {
		row, col, idOK := ParseCellID(id)
		if !idOK || !g.InBounds(row, col) {
			continue
		}
		cell, err := g.Get(row, col)
		if err != nil || cell.Kind != CellFormula {
			continue
		}

		value, err := evalFormulaText(ctx, cell.Formula)
		if err != nil {
			cell.Value = 0
			cell.Err = err.Error()
			e.log.WithFields(logrus.Fields{
				"cell":  id,
				"error": err.Error(),
			}).Debug("formula evaluation failed")
		} else {
			cell.Value = value
			cell.Err = ""
		}
		g.Set(row, col, cell)
		evaluated++
	}

	e.log.WithField("formulas", evaluated).Debug("evaluation pass complete")
}

// markCyclic marks every formula cell in the grid with the cyclic
// dependency error and a zero value
func (e *Engine) markCyclic(g *Grid) {
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell, err := g.Get(row, col)
			if err != nil || cell.Kind != CellFormula {
				continue
			}
			cell.Value = 0
			cell.Err = errorMessages[ErrCycle]
			g.Set(row, col, cell)
		}
	}
}
