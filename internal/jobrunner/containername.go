package jobrunner

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// ContainerName derives a stable container name for one Run's docker phase
// from (workloadID, runNumber, recipeName, configName). Keeping it
// deterministic means a `wdb docker_shell` invoked after a crash finds the
// same container name JobRunner assigned on the previous attempt, rather than
// leaking a fresh one each time. Repurposes the teacher's blake3-based
// content-addressed hashing (internal/attractor/engine/cxdb_sink.go), which
// hashes artifact bytes for a CAS, for hashing a small identity tuple
// instead.
func ContainerName(workloadID string, runNumber int, recipeName, configName string) string {
	h := blake3.New()
	fmt.Fprintf(h, "%s\x00%d\x00%s\x00%s", workloadID, runNumber, recipeName, configName)
	sum := h.Sum(nil)
	return "wdb-" + hex.EncodeToString(sum[:8])
}
