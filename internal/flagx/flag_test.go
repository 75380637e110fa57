package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "webshop.json", "-a", ":8000"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "webshop.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=staging.json", "-a", ":8000"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=staging.json"},
		},
		{
			name:         "both short and long present, preserve order",
			args:         []string{"--config=base.json", "-c", "override.json", "-x", "1"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=base.json", "-c", "override.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "value that looks like a flag but with equals form",
			args:         []string{"--config=--weird.json"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=--weird.json"},
		},
		{
			name:         "multiple allowed flags kept",
			args:         []string{"-a", ":8000", "-c", "webshop.json", "--other", "x"},
			allowedFlags: []string{"-c", "-a"},
			want:         []string{"-a", ":8000", "-c", "webshop.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "path with directories remains single arg",
			args:         []string{"-c", "/etc/webshop/config.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "/etc/webshop/config.json"},
		},
		{
			name:         "do not treat next dash-starting token as value",
			args:         []string{"-c", "--config=staging.json"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "--config=staging.json"},
		},
		{
			name:         "repeated allowed flag is preserved in order",
			args:         []string{"-c", "base.json", "-c", "local.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "base.json", "-c", "local.json"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func Test_jsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"webshop", "-c", "/etc/webshop/short.json"}
		assert.Equal(t, "/etc/webshop/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"webshop", "-config", "/etc/webshop/long.json"}
		assert.Equal(t, "/etc/webshop/long.json", JsonConfigFlags())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"webshop", "-x", "1", "-y", "2"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"webshop", "-c", "/etc/webshop/1.json", "-config", "/etc/webshop/2.json"}
		assert.Equal(t, "/etc/webshop/2.json", JsonConfigFlags())
	})
}
