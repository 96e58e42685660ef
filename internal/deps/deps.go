// Package deps verifies that the external tools arbor drives — the git
// binary and the interactive selector — are installed. The check runs
// before any other component; a missing tool aborts the invocation.
package deps

import (
	"fmt"
	"os/exec"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// Check resolves each tool via PATH lookup. The first missing tool
// produces a KindMissingDependency error naming it; no other side
// effects occur.
func Check(tools ...string) error {
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			return model.WrapCLIError(model.KindMissingDependency,
				fmt.Sprintf("required tool %q not found in PATH", tool), err)
		}
	}
	return nil
}
