package env_test

import (
	"testing"
	"time"

	"github.com/kanekanefy/qwerty-learner/internal/env"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	t.Setenv("TEST_STRING", "hello")
	assert.Equal(t, "hello", env.String("TEST_STRING", "default"))
	assert.Equal(t, "default", env.String("NON_EXISTENT_STRING", "default"))
}

func TestInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, int(42), env.Int("TEST_INT", 100))
	assert.Equal(t, int(100), env.Int("NON_EXISTENT_INT", 100))
}

func TestInt_Invalid(t *testing.T) {
	t.Setenv("TEST_INT_INVALID", "not-a-number")
	assert.Equal(t, 7, env.Int("TEST_INT_INVALID", 7))
}

func TestInt64(t *testing.T) {
	t.Setenv("TEST_INT64", "4200")
	assert.Equal(t, int64(4200), env.Int64("TEST_INT64", 1000))
	assert.Equal(t, int64(1000), env.Int64("NON_EXISTENT_INT64", 1000))
}

func TestBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_1", "1")
	t.Setenv("TEST_BOOL_OFF", "false")
	t.Setenv("TEST_BOOL_JUNK", "maybe")
	assert.Equal(t, true, env.Bool("TEST_BOOL", false))
	assert.Equal(t, true, env.Bool("TEST_BOOL_1", false))
	assert.Equal(t, false, env.Bool("TEST_BOOL_OFF", true))
	assert.Equal(t, true, env.Bool("TEST_BOOL_JUNK", true))
	assert.Equal(t, false, env.Bool("NON_EXISTENT_BOOL", false))
}

func TestDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "45s")
	t.Setenv("TEST_DURATION_INVALID", "soon")
	assert.Equal(t, 45*time.Second, env.Duration("TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, env.Duration("TEST_DURATION_INVALID", time.Minute))
	assert.Equal(t, time.Minute, env.Duration("NON_EXISTENT_DURATION", time.Minute))
}
