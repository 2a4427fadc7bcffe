package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDetails(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want StepDetails
	}{
		{
			name: "nil map decodes to zero value",
			raw:  nil,
			want: StepDetails{},
		},
		{
			name: "json numbers arrive as float64",
			raw: map[string]any{
				"current_page": float64(3),
				"total_pages":  float64(12),
				"items_found":  float64(47),
				"request_url":  "https://topcv.vn/viec-lam?page=3",
			},
			want: StepDetails{
				CurrentPage: 3,
				TotalPages:  12,
				ItemsFound:  47,
				RequestURL:  "https://topcv.vn/viec-lam?page=3",
			},
		},
		{
			name: "unknown keys are ignored",
			raw: map[string]any{
				"duplicates":    float64(5),
				"worker_thread": "crawler-2",
			},
			want: StepDetails{Duplicates: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeDetails(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
