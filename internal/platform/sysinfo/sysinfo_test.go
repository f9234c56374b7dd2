package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectAlwaysFillsFields(t *testing.T) {
	info := Collect()
	require.NotNil(t, info)
	assert.NotEmpty(t, info.Platform)
	assert.NotEmpty(t, info.CPU)
	assert.NotEmpty(t, info.Memory)
}

func TestDefaultWorkersBounds(t *testing.T) {
	w := DefaultWorkers()
	assert.GreaterOrEqual(t, w, 1)
	assert.LessOrEqual(t, w, maxDefaultWorkers)
}
