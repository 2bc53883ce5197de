// Package runner executes a complete key generation run for n parties
// inside one process.
//
// Each phase runs every party on its own goroutine and waits for all of them
// before the next phase starts. Every message is sealed into a wire envelope
// and decoded again by each receiver, so a run exercises the same encoding a
// networked deployment would use. Faults can be injected to watch the
// culprit reporting of the dkg package.
package runner
