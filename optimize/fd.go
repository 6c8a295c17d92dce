package optimize

import "github.com/bruneli/scalaopt-sub001/vecmat"

// ForwardDifferenceGradient approximates the gradient of f at x with the
// forward-difference formula (f(x + eps*e_i) - f(x)) / eps, one
// objective evaluation per dimension plus the shared f(x).
func ForwardDifferenceGradient(f Objective, x vecmat.Vec, eps float64) vecmat.Vec {
	fx := f(x)
	n := x.Dim()
	grad := vecmat.Zeros(n)
	for i := 0; i < n; i++ {
		xi := x.With(i, x.At(i)+eps)
		grad[i] = (f(xi) - fx) / eps
	}
	return grad
}

// gradientOf returns grad if non-nil, otherwise a finite-difference
// approximation of f's gradient with step eps.
func gradientOf(f Objective, grad GradientFunc, eps float64) GradientFunc {
	if grad != nil {
		return grad
	}
	return func(x vecmat.Vec) vecmat.Vec {
		return ForwardDifferenceGradient(f, x, eps)
	}
}
