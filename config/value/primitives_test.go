package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringValue(t *testing.T) {
	var x string

	val := NewString(&x, "foobar")

	require.Equal(t, "foobar", val.String())
	require.Equal(t, nil, val.Validate())
	require.Equal(t, false, val.IsEmpty())

	x = "foobaz"

	require.Equal(t, "foobaz", val.String())

	val.Set("fooboz")

	require.Equal(t, "fooboz", x)

	val.Set("")

	require.Equal(t, true, val.IsEmpty())
}

func TestStringListValue(t *testing.T) {
	var x []string

	val := NewStringList(&x, []string{"api", "http"}, ",")

	require.Equal(t, "api,http", val.String())
	require.Equal(t, nil, val.Validate())
	require.Equal(t, false, val.IsEmpty())

	val.Set(" aura , ,connect ")

	require.Equal(t, []string{"aura", "connect"}, x)

	val.Set("")

	require.Equal(t, []string{}, x)
	require.Equal(t, "(empty)", val.String())
	require.Equal(t, true, val.IsEmpty())
}

func TestEnumValue(t *testing.T) {
	var x string

	val := NewEnum(&x, "info", []string{"debug", "info", "warn"})

	require.Equal(t, "info", val.String())
	require.Equal(t, nil, val.Validate())

	val.Set(" WARN ")

	require.Equal(t, "warn", x)
	require.Equal(t, nil, val.Validate())

	val.Set("verbose")

	require.Error(t, val.Validate())

	val.Set("")

	require.Equal(t, true, val.IsEmpty())
	require.Error(t, val.Validate())
}

func TestEnumListValue(t *testing.T) {
	var x []string

	val := NewEnumList(&x, []string{"gzip"}, []string{"gzip", "br", "zstd"}, ",")

	require.Equal(t, "gzip", val.String())
	require.Equal(t, nil, val.Validate())

	val.Set("zstd, GZIP,zstd")

	require.Equal(t, []string{"zstd", "gzip"}, x)
	require.Equal(t, nil, val.Validate())

	val.Set("gzip,deflate")

	require.Error(t, val.Validate())

	val.Set("")

	require.Equal(t, true, val.IsEmpty())
	require.Equal(t, nil, val.Validate())
}

func TestBoolValue(t *testing.T) {
	var x bool

	val := NewBool(&x, false)

	require.Equal(t, "false", val.String())
	require.Equal(t, true, val.IsEmpty())

	require.NoError(t, val.Set("true"))
	require.Equal(t, true, x)

	require.Error(t, val.Set("maybe"))
	require.Equal(t, true, x)
}

func TestIntValue(t *testing.T) {
	var x int

	val := NewInt(&x, 11)

	require.Equal(t, "11", val.String())
	require.Equal(t, false, val.IsEmpty())

	require.NoError(t, val.Set("42"))
	require.Equal(t, 42, x)

	require.Error(t, val.Set("4.2"))
	require.Equal(t, 42, x)
}

func TestInt64Value(t *testing.T) {
	var x int64

	val := NewInt64(&x, 0)

	require.Equal(t, "0", val.String())
	require.Equal(t, true, val.IsEmpty())

	require.NoError(t, val.Set("-9007199254740993"))
	require.Equal(t, int64(-9007199254740993), x)
}

func TestFloatValue(t *testing.T) {
	var x float64

	val := NewFloat(&x, 50)

	require.Equal(t, "50", val.String())
	require.Equal(t, false, val.IsEmpty())

	require.NoError(t, val.Set("12.5"))
	require.Equal(t, 12.5, x)
	require.Equal(t, "12.5", val.String())

	require.Error(t, val.Set("much"))
	require.Equal(t, 12.5, x)
}
