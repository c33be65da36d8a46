package confirm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoAlwaysApproves(t *testing.T) {
	c := Auto{}
	assert.True(t, c.Confirm("destroy everything?", false))
	assert.True(t, c.Confirm("keep going?", true))
}

func TestScriptedReplaysAnswers(t *testing.T) {
	c := &Scripted{Answers: []bool{true, false}}

	assert.True(t, c.Confirm("first?", false))
	assert.False(t, c.Confirm("second?", true))
	assert.Equal(t, []string{"first?", "second?"}, c.Prompts)
}

func TestScriptedFallsBackToDefault(t *testing.T) {
	c := &Scripted{}
	assert.True(t, c.Confirm("anything?", true))
	assert.False(t, c.Confirm("anything?", false))
}

func TestConsoleNonInteractiveUsesDefault(t *testing.T) {
	// Under go test stdin is not a terminal, so Console must resolve to
	// the default without blocking.
	c := NewConsole()
	assert.True(t, c.Confirm("overwrite?", true))
	assert.False(t, c.Confirm("overwrite?", false))
}
