// Package simplex implements a two-phase tableau simplex LP solver
// supporting both primal and dual formulations, with Dantzig entering-
// column selection and Bland's rule tie-breaks for finite termination.
package simplex

import "github.com/bruneli/scalaopt-sub001/vecmat"

// Op is a constraint relational operator.
type Op int

const (
	EQ Op = iota
	LE
	GE
)

// Constraint is one row of a linear program: Coeffs.x Op Rhs.
type Constraint struct {
	Coeffs vecmat.Vec
	Op     Op
	Rhs    float64
}

// Equ, Le, Ge build a Constraint with the named operator; they are the
// builder surface for problem construction.
func Equ(coeffs vecmat.Vec, rhs float64) Constraint { return Constraint{Coeffs: coeffs, Op: EQ, Rhs: rhs} }
func Le(coeffs vecmat.Vec, rhs float64) Constraint  { return Constraint{Coeffs: coeffs, Op: LE, Rhs: rhs} }
func Ge(coeffs vecmat.Vec, rhs float64) Constraint  { return Constraint{Coeffs: coeffs, Op: GE, Rhs: rhs} }

// VarKind constrains a structural variable for the branch-and-bound
// hook; Continuous variables are unconstrained beyond x >= 0.
type VarKind int

const (
	Continuous VarKind = iota
	Binary
	Discrete
)

// Problem is a linear program: minimize (or maximize) Objective.x
// subject to Constraints, x >= 0.
type Problem struct {
	Minimize    bool
	Objective   vecmat.Vec
	Constraints []Constraint
	Kinds       []VarKind // nil means every variable is Continuous
	negSplit    bool      // set by WithNegativeVariables
}

// Min returns a Problem minimizing obj.x.
func Min(obj vecmat.Vec) *Problem {
	return &Problem{Minimize: true, Objective: obj}
}

// Max returns a Problem maximizing obj.x.
func Max(obj vecmat.Vec) *Problem {
	return &Problem{Minimize: false, Objective: obj}
}

// SubjectTo appends constraints and returns the receiver, so problems
// can be built fluently: simplex.Max(c).SubjectTo(simplex.Le(a, b), ...).
func (p *Problem) SubjectTo(cs ...Constraint) *Problem {
	p.Constraints = append(p.Constraints, cs...)
	return p
}

// WithKinds attaches per-variable kinds for the branch-and-bound hook
// and returns the receiver.
func (p *Problem) WithKinds(kinds []VarKind) *Problem {
	p.Kinds = kinds
	return p
}

// WithNegativeVariables marks every decision variable as free (rather than
// the tableau's implicit x >= 0) and returns the receiver. Free variables
// are handled by the standard variable-splitting trick x = x+ - x-:
// Solve/SolveWith double the column count internally and recombine the
// two halves before returning Result.X.
func (p *Problem) WithNegativeVariables() *Problem {
	p.negSplit = true
	return p
}

// Status reports how a Solve run ended.
type Status int

const (
	NotStarted Status = iota
	Optimal
	Infeasible
	Unbounded
	MaxIterationsReached
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	case MaxIterationsReached:
		return "MaxIterationsReached"
	default:
		return "NotStarted"
	}
}

// Result is the outcome of a simplex solve.
type Result struct {
	X         vecmat.Vec
	Objective float64
	Status    Status
}
