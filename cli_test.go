// FILE: cli_test.go
package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Run("SpaceAndEqualsForms", func(t *testing.T) {
		v, err := parseArgs([]string{"--server-port", "9090", "--database.url=postgres://x?a=b"}, nil)
		require.NoError(t, err)

		fields := v.Fields()
		assert.True(t, fields["server.port"].Equal(String("9090")))
		assert.True(t, fields["database.url"].Equal(String("postgres://x?a=b")))
	})

	t.Run("BareFlagsAreTrue", func(t *testing.T) {
		v, err := parseArgs([]string{"--verbose", "--debug", "--level", "3"}, nil)
		require.NoError(t, err)

		fields := v.Fields()
		assert.True(t, fields["verbose"].Equal(Bool(true)))
		assert.True(t, fields["debug"].Equal(Bool(true)))
		assert.True(t, fields["level"].Equal(String("3")))
	})

	t.Run("EmptyValueAfterEquals", func(t *testing.T) {
		v, err := parseArgs([]string{"--name="}, nil)
		require.NoError(t, err)
		assert.True(t, v.Fields()["name"].Equal(String("")))
	})

	t.Run("NegativeNumberValue", func(t *testing.T) {
		v, err := parseArgs([]string{"--offset", "-5"}, nil)
		require.NoError(t, err)
		assert.True(t, v.Fields()["offset"].Equal(String("-5")))
	})

	t.Run("LastOccurrenceWins", func(t *testing.T) {
		v, err := parseArgs([]string{"--port", "1", "--port=2"}, nil)
		require.NoError(t, err)
		assert.True(t, v.Fields()["port"].Equal(String("2")))
	})

	t.Run("SeparatorStopsParsing", func(t *testing.T) {
		v, err := parseArgs([]string{"--a", "1", "--", "positional", "--b", "2"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, v.Len())
	})

	t.Run("RequiredValueMissing", func(t *testing.T) {
		for _, args := range [][]string{
			{"--flag"},
			{"--flag", "--other", "x"},
		} {
			_, err := parseArgs(args, map[string]bool{"flag": true})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedArgument))

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, ParseMalformedArgument, pe.Kind)
			assert.Equal(t, "--flag", pe.Token)
		}
	})

	t.Run("MalformedTokens", func(t *testing.T) {
		cases := map[string][]string{
			"positional":    {"value"},
			"single dash":   {"-v"},
			"triple dash":   {"---x"},
			"empty key":     {"--=x"},
			"empty segment": {"--a..b", "1"},
			"trailing dot":  {"--a.", "1"},
			"bad rune":      {"--a b", "1"},
		}
		for name, args := range cases {
			_, err := parseArgs(args, nil)
			assert.ErrorIs(t, err, ErrMalformedArgument, name)
		}
	})

	t.Run("NoArgs", func(t *testing.T) {
		v, err := parseArgs(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, KindMap, v.Kind())
		assert.Equal(t, 0, v.Len())
	})
}

func TestNormalizeFlagKey(t *testing.T) {
	assert.Equal(t, "database.url", NormalizeFlagKey("--database-url"))
	assert.Equal(t, "database.url", NormalizeFlagKey("database.url"))
	assert.Equal(t, "log_level", NormalizeFlagKey("--log_level"))
	assert.Equal(t, "", NormalizeFlagKey("--"))
}
