package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Setenv("VRP_TEST_STRING", "  value ")
	t.Setenv("VRP_TEST_BLANK", "   ")

	assert.Equal(t, "value", Get("VRP_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", Get("VRP_TEST_BLANK", "fallback"))
	assert.Equal(t, "fallback", Get("VRP_TEST_UNSET_KEY", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("VRP_TEST_INT", "7")
	t.Setenv("VRP_TEST_BAD_INT", "seven")

	assert.Equal(t, 7, GetInt("VRP_TEST_INT", 1))
	assert.Equal(t, 1, GetInt("VRP_TEST_BAD_INT", 1))
	assert.Equal(t, 3, GetInt("VRP_TEST_UNSET_INT", 3))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("VRP_TEST_DUR", "750ms")
	t.Setenv("VRP_TEST_BAD_DUR", "soon")

	assert.Equal(t, 750*time.Millisecond, GetDuration("VRP_TEST_DUR", time.Second))
	assert.Equal(t, time.Second, GetDuration("VRP_TEST_BAD_DUR", time.Second))
}
