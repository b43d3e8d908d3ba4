package consolelog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForModuleAndPhaseAttachFields(t *testing.T) {
	var buf bytes.Buffer
	log := New()
	log.Logger.Out = &buf

	entry := ForPhase(ForModule(log, "main"), "rewriting module")
	entry.Info("rewrote module")

	out := buf.String()
	require.Contains(t, out, "module=main")
	require.Contains(t, out, `phase="rewriting module"`)
	require.Contains(t, out, "rewrote module")
}
