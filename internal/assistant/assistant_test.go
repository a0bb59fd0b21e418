package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAskMatchesFirstRule(t *testing.T) {
	a := New(nil, nil)

	reply := a.Ask("Where can I find the latest NOTICE?")
	assert.True(t, reply.Matched)
	assert.Contains(t, reply.Answer, "Notices")
}

func TestAskRequiresAllKeywords(t *testing.T) {
	a := New([]Rule{{Keywords: []string{"class", "time"}, Reply: "schedule"}}, nil)

	assert.False(t, a.Ask("which class am I in").Matched)
	assert.True(t, a.Ask("what time does class start").Matched)
}

func TestAskFallsBack(t *testing.T) {
	a := New(nil, nil)

	reply := a.Ask("what is the meaning of life")
	assert.False(t, reply.Matched)
	assert.NotEmpty(t, reply.Answer)

	empty := a.Ask("   ")
	assert.False(t, empty.Matched)
	assert.Equal(t, reply.Answer, empty.Answer)
}
