// Package variable defines the stable program-variable identity shared by
// every numerical abstract domain in this module.
//
// A Variable is minted once by a Factory and compared by identity (pointer
// equality) for the rest of the analysis; it is never destroyed, mirroring
// a compiler's symbol table. The Factory's counter is the one genuinely
// shared mutable resource in a concurrent embedding of these domains (see
// the package-level Factory doc), so it is guarded with sync/atomic the
// same way core.Graph guards its edge-ID counter.
package variable
