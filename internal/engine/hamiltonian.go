// Package engine integrates the 7-node open-quantum-system transport model
// and reduces each trajectory to scalar biomarkers.
//
// The model is deliberately real-valued: the coherent term is the discretized
// matrix commutator with the sign convention absorbing the imaginary unit.
// Swapping in a complex-valued Lindblad solver would change every numeric
// output, so the real formulation is load-bearing, not a shortcut.
package engine

// matrix is a dense square real matrix in row-major order. Each simulation
// run owns its matrices exclusively; nothing here is shared across runs.
type matrix struct {
	n    int
	data []float64
}

func newMatrix(n int) *matrix {
	return &matrix{n: n, data: make([]float64, n*n)}
}

func (m *matrix) at(i, j int) float64 {
	return m.data[i*m.n+j]
}

func (m *matrix) set(i, j int, v float64) {
	m.data[i*m.n+j] = v
}

func (m *matrix) add(i, j int, v float64) {
	m.data[i*m.n+j] += v
}

// trace returns the sum of diagonal entries.
func (m *matrix) trace() float64 {
	var t float64
	for i := 0; i < m.n; i++ {
		t += m.data[i*m.n+i]
	}
	return t
}

// buildHamiltonian assembles the tridiagonal chain Hamiltonian: site
// energies on the diagonal, nearest-neighbor couplings symmetric on the
// first off-diagonals, zero elsewhere. The chain topology is fixed.
func buildHamiltonian(energies, couplings []float64) *matrix {
	n := len(energies)
	h := newMatrix(n)
	for i, e := range energies {
		h.set(i, i, e)
	}
	for i, j := range couplings {
		h.set(i, i+1, j)
		h.set(i+1, i, j)
	}
	return h
}

// commutator writes H*rho - rho*H into out. out must not alias h or rho.
func commutator(h, rho, out *matrix) {
	n := h.n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += h.at(i, k)*rho.at(k, j) - rho.at(i, k)*h.at(k, j)
			}
			out.set(i, j, sum)
		}
	}
}
