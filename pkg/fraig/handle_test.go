package fraig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleConstants(t *testing.T) {
	assert.True(t, Zero.IsConst())
	assert.True(t, One.IsConst())
	assert.True(t, Zero.IsZero())
	assert.True(t, One.IsOne())
	assert.Equal(t, One, Zero.Not())
	assert.Equal(t, Zero, One.Not())
}

func TestHandleInversion(t *testing.T) {
	h := makeHandle(7, false)
	assert.False(t, h.Inv())
	assert.True(t, h.Not().Inv())
	assert.Equal(t, h, h.Not().Not())
	assert.NotEqual(t, h, h.Not())
	assert.Equal(t, uint32(7), h.Not().id())
}

func TestHandleString(t *testing.T) {
	type tc struct {
		Name   string
		Handle Handle
		Want   string
	}

	for _, tt := range []tc{
		{Name: "zero", Handle: Zero, Want: "0"},
		{Name: "one", Handle: One, Want: "1"},
		{Name: "plain", Handle: makeHandle(3, false), Want: "n3"},
		{Name: "inverted", Handle: makeHandle(3, true), Want: "~n3"},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, tt.Handle.String())
		})
	}
}

func TestBool3String(t *testing.T) {
	assert.Equal(t, "true", True3.String())
	assert.Equal(t, "false", False3.String())
	assert.Equal(t, "unknown", Unknown.String())
}
