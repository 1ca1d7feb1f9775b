package bytesize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "512", want: 512},
		{input: "512B", want: 512},
		{input: "100KB", want: 100 * KiB},
		{input: "100kib", want: 100 * KiB},
		{input: "64MB", want: 64 * MiB},
		{input: " 64 MiB ", want: 64 * MiB},
		{input: "1.5GB", want: GiB + GiB/2},
		{input: "2TiB", want: 2 * TiB},
		{input: "", wantErr: true},
		{input: "MB", wantErr: true},
		{input: "-1MB", wantErr: true},
		{input: "ten MB", wantErr: true},
		{input: "9999999TB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0 B", Format(0))
	assert.Equal(t, "4 B", Format(4))
	assert.Equal(t, "1 KiB", Format(KiB))
	assert.Equal(t, "1.5 MiB", Format(MiB+MiB/2))
	assert.Equal(t, "64 MiB", Format(64*MiB))
}
