package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInspect_RejectsEmpty(t *testing.T) {
	_, err := NewInspector(0).Inspect(nil)
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestInspect_RejectsGarbage(t *testing.T) {
	_, err := NewInspector(0).Inspect([]byte("this is not a pdf document"))
	assert.Error(t, err)
}
