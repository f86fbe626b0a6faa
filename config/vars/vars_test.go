package vars

import (
	"testing"

	"github.com/livingaura/aura/config/value"

	"github.com/stretchr/testify/require"
)

func TestVars(t *testing.T) {
	v1 := Variables{}

	s := ""

	v1.Register(value.NewString(&s, "foobar"), "string", "", nil, "a string", false, false)

	require.Equal(t, "foobar", s)
	x, _ := v1.Get("string")
	require.Equal(t, "foobar", x)

	v1.Set("string", "foobaz")

	require.Equal(t, "foobaz", s)
	x, _ = v1.Get("string")
	require.Equal(t, "foobaz", x)

	v1.SetDefault("string")

	require.Equal(t, "foobar", s)

	_, err := v1.Get("unknown")
	require.Error(t, err)

	err = v1.Set("unknown", "value")
	require.Error(t, err)
}

func TestMerge(t *testing.T) {
	t.Setenv("AURA_TEST_LOAD", "42.5")
	t.Setenv("PORT", "9000")

	vs := Variables{}

	load := 0.0
	address := ""
	name := ""

	vs.Register(value.NewFloat(&load, 50), "aura.base_load", "AURA_TEST_LOAD", nil, "base load", false, false)
	vs.Register(value.NewAddress(&address, ":8080"), "address", "AURA_TEST_ADDRESS", []string{"PORT"}, "listen address", true, false)
	vs.Register(value.NewString(&name, "aura"), "name", "AURA_TEST_NAME", nil, "name", false, false)

	vs.Merge()

	require.Equal(t, 42.5, load)
	require.Equal(t, ":9000", address)
	require.Equal(t, "aura", name)

	require.True(t, vs.IsMerged("aura.base_load"))
	require.True(t, vs.IsMerged("address"))
	require.False(t, vs.IsMerged("name"))
	require.Equal(t, []string{"aura.base_load", "address"}, vs.Overrides())

	require.False(t, vs.HasErrors())
}

func TestMergeError(t *testing.T) {
	t.Setenv("AURA_TEST_FLUCTUATION", "a lot")

	vs := Variables{}

	fluctuation := 0.0
	vs.Register(value.NewFloat(&fluctuation, 10), "aura.fluctuation", "AURA_TEST_FLUCTUATION", nil, "fluctuation", false, false)

	vs.Merge()

	require.Equal(t, 10.0, fluctuation)
	require.False(t, vs.IsMerged("aura.fluctuation"))
	require.True(t, vs.HasErrors())
}

func TestValidate(t *testing.T) {
	vs := Variables{}

	level := ""
	secret := ""

	vs.Register(value.NewEnum(&level, "verbose", []string{"info", "debug"}), "log.level", "", nil, "log level", false, false)
	vs.Register(value.NewString(&secret, ""), "secret", "", nil, "a secret", true, true)

	vs.Validate()

	require.True(t, vs.HasErrors())

	messages := map[string]string{}
	vs.Messages(func(level string, v Variable, message string) {
		require.Equal(t, "error", level)
		messages[v.Name] = message
	})

	require.Equal(t, 2, len(messages))
	require.Equal(t, "a value is required", messages["secret"])

	vs.ResetLogs()

	require.False(t, vs.HasErrors())
}

func TestDisguise(t *testing.T) {
	vs := Variables{}

	secret := ""
	vs.Register(value.NewString(&secret, "hunter2"), "secret", "AURA_SECRET", nil, "a secret", false, true)

	list := vs.List()

	require.Equal(t, 1, len(list))
	require.Equal(t, "***", list[0].Value)
	require.Equal(t, "AURA_SECRET", list[0].EnvName)

	vs.Log("warn", "secret", "check %s", "this")
	vs.Log("warn", "unknown", "dropped")

	n := 0
	vs.Messages(func(level string, v Variable, message string) {
		n++
		require.Equal(t, "warn", level)
		require.Equal(t, "***", v.Value)
		require.Equal(t, "check this", message)
	})

	require.Equal(t, 1, n)
}
