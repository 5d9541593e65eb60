package flagx

import (
	"os"
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
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "combined flag=value form",
			args:         []string{"--config=conf.json", "-a=localhost"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=conf.json"},
		},
		{
			name:         "multiple allowed flags",
			args:         []string{"-a", "http://portal:8000", "-t", "30", "-x"},
			allowedFlags: []string{"-a", "-t"},
			want:         []string{"-a", "http://portal:8000", "-t", "30"},
		},
		{
			name:         "flag without value followed by another flag",
			args:         []string{"-v", "-c", "conf.json"},
			allowedFlags: []string{"-v"},
			want:         []string{"-v"},
		},
		{
			name:         "nothing allowed",
			args:         []string{"-a", "localhost"},
			allowedFlags: nil,
			want:         []string{},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short flag", []string{"portal", "-c", "conf.json"}, "conf.json"},
		{"long flag", []string{"portal", "-config", "x.json"}, "x.json"},
		{"combined form", []string{"portal", "-config=y.json"}, "y.json"},
		{"absent", []string{"portal", "-a", "localhost"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, JsonConfigFlags())
		})
	}
}
