package base

import (
	"flag"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(env map[string]string) (*Command, *cli.MockUi) {
	ui := cli.NewMockUi()
	return &Command{
		Log: hclog.NewNullLogger(),
		UI:  ui,
		Fs:  afero.NewMemMapFs(),
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}, ui
}

func TestFlagSet_StringSlice(t *testing.T) {
	var buckets []string
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	f.StringSliceVar(&buckets, "buckets", "bucket list")

	require.NoError(t, f.Parse([]string{"-buckets=/a, /b", "-buckets", "/c,", "rest"}))
	assert.Equal(t, []string{"/a", "/b", "/c"}, buckets)
	assert.Equal(t, []string{"rest"}, f.Args())
}

func TestFlagSet_Help(t *testing.T) {
	c, _ := newTestCommand(nil)
	help := c.NewFlagSet("x").Help()

	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-config")
	assert.Contains(t, help, "-format")

	empty := NewFlagSet(flag.NewFlagSet("empty", flag.ContinueOnError))
	assert.Equal(t, "", empty.Help())
}

func TestOutput(t *testing.T) {
	c, ui := newTestCommand(map[string]string{"IKOS_BASE_URL": "https://ikos.example.com/"})

	f := c.NewFlagSet("x")
	require.NoError(t, f.Parse([]string{"-format=yaml"}))
	_, err := c.Config()
	require.NoError(t, err)

	require.NoError(t, c.Output(map[string]any{"code": 200}))
	assert.Equal(t, "code: 200\n", ui.OutputWriter.String())
}

func TestOutput_DefaultsToJSON(t *testing.T) {
	c, ui := newTestCommand(nil)

	require.NoError(t, c.Output(map[string]any{"code": 200}))
	assert.Equal(t, "{\n  \"code\": 200\n}\n", ui.OutputWriter.String())
}

func TestConfig_InvalidFormat(t *testing.T) {
	c, _ := newTestCommand(nil)

	f := c.NewFlagSet("x")
	require.NoError(t, f.Parse([]string{"-format=xml"}))
	_, err := c.Config()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be")
}

func TestParseJSONObject(t *testing.T) {
	v, err := ParseJSONObject("data", `{"_id":"g1"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"_id": "g1"}, v)

	v, err = ParseJSONObject("data", "")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = ParseJSONObject("data", `[1]`)
	assert.ErrorContains(t, err, "-data must be a JSON object")
}

func TestConfig_UsernameOverride(t *testing.T) {
	c, _ := newTestCommand(map[string]string{"IKOS_PASSWORD": "secret"})
	c.UsernameOverride = "ada"

	cfg, err := c.Config()
	require.NoError(t, err)
	assert.Equal(t, "ada", cfg.Username)
	assert.True(t, cfg.HasCredentials())
}
