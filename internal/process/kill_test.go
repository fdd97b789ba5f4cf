package process

// Notes:
// - Only PIDs that cannot name a live process group are exercised here.
//   Real termination is covered by the browser integration tests in the
//   root package.

import "testing"

func TestKillProcessGroup_IgnoresUnsafePIDs(t *testing.T) {
	t.Parallel()

	// Zero and negative PIDs would signal the test's own process group.
	for _, pid := range []int{0, -1} {
		KillProcessGroup(pid)
	}
}

func TestKillProcessGroup_NonexistentPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}
