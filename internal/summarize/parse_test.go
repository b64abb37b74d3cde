package summarize

import (
	"testing"
)

func TestParseBatchSummary(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantError bool
		wantTopic string
	}{
		{
			name:      "plain json",
			raw:       `{"topic":"el parche","key_points":["a","b"],"participants":["x"],"status":"abierto"}`,
			wantTopic: "el parche",
		},
		{
			name:      "fenced json",
			raw:       "```json\n{\"topic\":\"el parche\",\"key_points\":[],\"participants\":[],\"status\":\"\"}\n```",
			wantTopic: "el parche",
		},
		{
			name:      "fenced without language tag",
			raw:       "```\n{\"topic\":\"t\",\"key_points\":[],\"participants\":[],\"status\":\"\"}\n```",
			wantTopic: "t",
		},
		{
			name:      "invalid json rejected",
			raw:       `{"topic": "el parche", "key_points": [`,
			wantError: true,
		},
		{
			name:      "prose instead of json rejected",
			raw:       "Aquí tienes el resumen del hilo:",
			wantError: true,
		},
		{
			name:      "missing topic rejected",
			raw:       `{"key_points":["a"],"participants":["x"],"status":"abierto"}`,
			wantError: true,
		},
		{
			name:      "wrong shape rejected whole",
			raw:       `{"topic": 42}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBatchSummary(tt.raw)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParseBatchSummary() error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError && got.Topic != tt.wantTopic {
				t.Errorf("Topic = %q, want %q", got.Topic, tt.wantTopic)
			}
		})
	}
}
