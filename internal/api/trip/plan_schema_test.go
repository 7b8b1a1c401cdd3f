package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlanDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "wrapped plan",
			doc:  `{"travel_plan": {"hotels": [], "daily_plan": []}}`,
		},
		{
			name: "bare plan without wrapper",
			doc:  `{"hotels": [], "daily_plan": [{"day": 1, "activities": []}]}`,
		},
		{
			name: "full plan with flight details",
			doc:  `{"travel_plan": {"location": "Rome", "flight_details": {"airline": "TAP"}, "hotels": [{"name": "A"}], "daily_plan": [{"day": 1, "activities": [{"name": "Forum"}]}]}}`,
		},
		{
			name:    "day entry missing its activities list",
			doc:     `{"travel_plan": {"hotels": [], "daily_plan": [{"day": 1}]}}`,
			wantErr: true,
		},
		{
			name:    "daily plan missing entirely",
			doc:     `{"travel_plan": {"hotels": []}}`,
			wantErr: true,
		},
		{
			name:    "hotels is not a list",
			doc:     `{"travel_plan": {"hotels": {}, "daily_plan": []}}`,
			wantErr: true,
		},
		{
			name:    "wrapper holds a non-object",
			doc:     `{"travel_plan": "oops"}`,
			wantErr: true,
		},
		{
			name:    "unrelated object",
			doc:     `{"a": 1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePlanDocument([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
