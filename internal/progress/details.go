package progress

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// StepDetails is the diagnostics payload some steps attach. The backend sends
// it as a free-form object; the keys below are the ones the crawler actually
// emits, anything else stays in the raw map.
type StepDetails struct {
	CurrentPage    int    `mapstructure:"current_page"`
	TotalPages     int    `mapstructure:"total_pages"`
	ItemsFound     int    `mapstructure:"items_found"`
	ItemsProcessed int    `mapstructure:"items_processed"`
	Duplicates     int    `mapstructure:"duplicates"`
	RequestURL     string `mapstructure:"request_url"`
}

// DecodeDetails extracts the known diagnostics from a step's Details map.
// JSON numbers arrive as float64, so decoding is weakly typed. A nil or empty
// map decodes to the zero value without error.
func DecodeDetails(raw map[string]any) (StepDetails, error) {
	var details StepDetails
	if len(raw) == 0 {
		return details, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &details,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return details, fmt.Errorf("build details decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return details, fmt.Errorf("decode step details: %w", err)
	}
	return details, nil
}
