// Package fraig implements a Functionally Reduced And-Inverter Graph
// manager: a shared DAG of two-input AND nodes with inverter-annotated
// edges in which functionally equivalent nodes are eliminated as they
// are constructed.
//
// Construction combines three mechanisms. Structural hashing keeps the
// DAG in canonical strash-reduced form, bit-parallel random simulation
// groups nodes into cheap equivalence candidates, and a SAT solver
// proves or refutes each candidate, feeding counter-example patterns
// back into the simulator. A proven equivalence merges the newer node
// into the class of the older one; handles naming a merged node keep
// working and resolve to the surviving representative transparently.
package fraig
