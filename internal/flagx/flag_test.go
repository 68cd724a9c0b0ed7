package flagx

import (
	"os"
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
			name:    "keeps allowed flag with separate value",
			args:    []string{"-a", ":8080", "-d", "dsn"},
			allowed: []string{"-a"},
			want:    []string{"-a", ":8080"},
		},
		{
			name:    "keeps allowed flag with equals value",
			args:    []string{"-a=:8080", "-d=dsn"},
			allowed: []string{"-a"},
			want:    []string{"-a=:8080"},
		},
		{
			name:    "boolean flag followed by another flag",
			args:    []string{"-x", "-a", ":8080"},
			allowed: []string{"-x"},
			want:    []string{"-x"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", ":8080"},
			allowed: []string{"-z"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"app", "-a", ":9090", "-c", "/tmp/config.json"}
	require.Equal(t, "/tmp/config.json", JsonConfigFlags())

	os.Args = []string{"app", "-config=/etc/app.json"}
	require.Equal(t, "/etc/app.json", JsonConfigFlags())

	os.Args = []string{"app", "-a", ":9090"}
	require.Equal(t, "", JsonConfigFlags())
}
