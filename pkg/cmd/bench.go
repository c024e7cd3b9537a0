// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/consensys/go-exprdag/pkg/eval"
	"github.com/consensys/go-exprdag/pkg/expr"
	"github.com/consensys/go-exprdag/pkg/util"
	"github.com/consensys/go-exprdag/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrDisagreement signals that two reuse mappings produced different results
// for the same root.
var ErrDisagreement = errors.New("eager and lazy evaluation disagree")

var benchCmd = &cobra.Command{
	Use:   "bench [flags]",
	Short: "Build and evaluate a random expression DAG.",
	Long: `Build a random expression DAG, then evaluate a selection of its roots
	under both the eager and lazy reuse mappings, checking they agree.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg BenchConfig
		//
		cfg.vars = GetUint(cmd, "vars")
		cfg.nodes = GetUint(cmd, "nodes")
		cfg.roots = GetUint(cmd, "roots")
		cfg.seed = GetUint64(cmd, "seed")
		cfg.span = int64(GetInt(cmd, "range"))
		cfg.ops = parseOperators(GetString(cmd, "ops"))
		cfg.ansiEscapes = termio.IsTerminal(os.Stdout)
		//
		stats := util.NewPerfStats()
		report, err := runBench(cfg)
		//
		stats.Log("Benchmark")
		//
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		//
		if err = report.Print(os.Stdout, cfg.ansiEscapes); err != nil {
			log.Error(err)
			os.Exit(1)
		}
	},
}

// BenchConfig captures the parameters of a single benchmark run.
type BenchConfig struct {
	// Number of distinct unbound values.
	vars uint
	// Number of (attempted) subexpression constructions.
	nodes uint
	// Number of roots to evaluate.
	roots uint
	// Seed for the random source, such that runs are reproducible.
	seed uint64
	// Bindings and constants are drawn from -span..span.
	span int64
	// Operators to draw from.
	ops []expr.Operator
	// Whether or not to colour the report.
	ansiEscapes bool
}

// BenchRun summarises the evaluation of all roots under a single mapping.
type BenchRun struct {
	Name       string
	Operations uint
	Slots      uint
	Hits       uint
	Results    []expr.Scalar
}

// BenchReport summarises a complete benchmark run.
type BenchReport struct {
	Leaves    uint
	Internals uint
	Roots     []expr.Expr
	Runs      []BenchRun
}

func runBench(cfg BenchConfig) (BenchReport, error) {
	var report BenchReport
	//
	if cfg.vars == 0 {
		return report, errors.New("at least one unbound value required")
	} else if cfg.span < 0 {
		return report, fmt.Errorf("invalid range %d", cfg.span)
	} else if len(cfg.ops) == 0 {
		cfg.ops = expr.Operators
	}
	//
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))
	builder, roots := buildRandomDag(rng, cfg)
	values := util.GenerateRandomInts(rng, cfg.vars, -cfg.span, cfg.span)
	bindings := func(id expr.BindingId) expr.Scalar { return values[id] }
	//
	report.Leaves = builder.Dag().NumLeaves()
	report.Internals = builder.Dag().NumInternals()
	report.Roots = roots
	// Compile every root once, then share across both mappings.
	evaluators := make([]*eval.Evaluator, len(roots))
	//
	for i, root := range roots {
		ev, err := eval.NewEvaluator(root)
		if err != nil {
			return report, err
		}
		//
		evaluators[i] = ev
	}
	//
	leaves, internals := builder.Reuses()
	mappings := []*eval.ReuseMapping{eval.NewEagerMapping(), eval.NewLazyMapping(leaves, internals)}
	//
	for i, name := range []string{"eager", "lazy"} {
		run, err := evaluateAll(name, evaluators, eval.NewState(mappings[i]), bindings)
		if err != nil {
			return report, err
		}
		//
		report.Runs = append(report.Runs, run)
	}
	// Sanity check
	for i, root := range roots {
		if report.Runs[0].Results[i] != report.Runs[1].Results[i] {
			return report, fmt.Errorf("%w: %s gives %d (eager) vs %d (lazy)", ErrDisagreement, root.String(),
				report.Runs[0].Results[i], report.Runs[1].Results[i])
		}
	}
	//
	return report, nil
}

// Construct a random DAG by repeatedly combining randomly chosen operands from
// a growing pool, which is seeded with every unbound value plus an equal number
// of constants.  The last few subexpressions constructed are the roots.
func buildRandomDag(rng *rand.Rand, cfg BenchConfig) (*expr.Builder, []expr.Expr) {
	var (
		builder = expr.NewBuilder()
		pool    []expr.Operand
		roots   []expr.Expr
	)
	//
	for i := range cfg.vars {
		pool = append(pool, builder.Binding(expr.BindingId(i)).Operand())
	}
	//
	for _, c := range util.GenerateRandomInts(rng, cfg.vars, -cfg.span, cfg.span) {
		pool = append(pool, expr.Const(c))
	}
	//
	for range cfg.nodes {
		op := cfg.ops[rng.IntN(len(cfg.ops))]
		lhs := pool[rng.IntN(len(pool))]
		rhs := pool[rng.IntN(len(pool))]
		pool = append(pool, builder.CreateSExpr(op, lhs, rhs))
	}
	// Select roots from most recent backwards
	for i := len(pool) - 1; i >= 0 && uint(len(roots)) < cfg.roots; i-- {
		if root := builder.CreateExpr(pool[i]); root.HasValue() {
			roots = append(roots, root.Unwrap())
		}
	}
	//
	log.Debugf("random dag has %d leaf node(s) and %d internal node(s)", builder.Dag().NumLeaves(),
		builder.Dag().NumInternals())
	//
	return builder, roots
}

// Parse a string of operator symbols, exiting on an unknown symbol.
func parseOperators(symbols string) []expr.Operator {
	var ops []expr.Operator
	//
	for _, c := range symbols {
		op, err := expr.ParseOperator(c)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		ops = append(ops, op)
	}
	//
	return ops
}

func evaluateAll(name string, evaluators []*eval.Evaluator, state *eval.State, fn eval.BindingFn) (BenchRun, error) {
	run := BenchRun{Name: name, Slots: state.Mapping().Size()}
	//
	for _, ev := range evaluators {
		val, err := ev.Evaluate(state, fn)
		if err != nil {
			return run, err
		}
		//
		run.Operations += uint(len(ev.Operations()))
		run.Results = append(run.Results, val)
	}
	//
	run.Hits = state.Hits()
	//
	return run, nil
}

// Print this report as a table.
func (p *BenchReport) Print(w io.Writer, ansiEscapes bool) error {
	tab := termio.NewTablePrinter(5, uint(len(p.Runs))+1)
	tab.SetRow(0, "mapping", "roots", "ops", "slots", "hits")
	//
	for i, run := range p.Runs {
		row := uint(i) + 1
		tab.SetRow(row, run.Name, fmt.Sprintf("%d", len(run.Results)), fmt.Sprintf("%d", run.Operations),
			fmt.Sprintf("%d", run.Slots), fmt.Sprintf("%d", run.Hits))
		//
		if run.Hits > 0 {
			tab.SetEscape(4, row, termio.NewAnsiEscape().FgColour(termio.TERM_GREEN))
		}
	}
	//
	for col := range uint(5) {
		tab.SetEscape(col, 0, termio.BoldAnsiEscape())
	}
	//
	tab.AnsiEscapes(ansiEscapes)
	//
	if _, err := fmt.Fprintf(w, "dag: %d leaf node(s), %d internal node(s)\n", p.Leaves, p.Internals); err != nil {
		return err
	}
	//
	if err := tab.Print(w); err != nil {
		return err
	}
	//
	if len(p.Runs) == 0 {
		return nil
	}
	//
	for i, root := range p.Roots {
		if _, err := fmt.Fprintf(w, "%s = %d\n", root.String(), p.Runs[0].Results[i]); err != nil {
			return err
		}
	}
	//
	return nil
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().Uint("vars", 4, "number of unbound values")
	benchCmd.Flags().Uint("nodes", 64, "number of subexpressions to construct")
	benchCmd.Flags().Uint("roots", 4, "number of roots to evaluate")
	benchCmd.Flags().Uint64("seed", 1, "seed for the random source")
	benchCmd.Flags().Int("range", 16, "draw bindings and constants from -range..range")
	benchCmd.Flags().String("ops", "+-*/%", "operators to draw from")
}
