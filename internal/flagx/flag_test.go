package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "portal.json", "-u", "https://example.com"},
			allowed: []string{"-c"},
			want:    []string{"-c", "portal.json"},
		},
		{
			name:    "joined value",
			args:    []string{"--config=portal.json", "-u=https://example.com"},
			allowed: []string{"--config"},
			want:    []string{"--config=portal.json"},
		},
		{
			name:    "flag without value before another flag",
			args:    []string{"-v", "-c", "portal.json"},
			allowed: []string{"-v"},
			want:    []string{"-v"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-c", "portal.json"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}
