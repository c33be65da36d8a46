package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterRoutesStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	w := NewTo(&out, &errOut)

	w.Info("linking %d items", 3)
	w.Success("done")
	w.Warning("helper %s missing", "paru")
	w.Error("boom")

	assert.Contains(t, out.String(), "linking 3 items")
	assert.Contains(t, out.String(), "done")
	assert.NotContains(t, out.String(), "boom")

	assert.Contains(t, errOut.String(), "paru")
	assert.Contains(t, errOut.String(), "boom")
}

func TestTitleAndMuted(t *testing.T) {
	var out, errOut bytes.Buffer
	w := NewTo(&out, &errOut)

	w.Title("Packages")
	w.Muted("nothing to do")

	assert.Contains(t, out.String(), "Packages")
	assert.Contains(t, out.String(), "nothing to do")
	assert.Empty(t, errOut.String())
}
