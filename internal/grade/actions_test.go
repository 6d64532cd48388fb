package grade

import (
	"reflect"
	"testing"

	"github.com/dtnitsch/worksheet-kit/models"
)

func TestParseAnswers(t *testing.T) {
	want := []models.Submission{
		{ItemID: 1, Text: "keeper"},
		{ItemID: 3, Blanks: []string{"stairs", "boats"}},
	}

	tests := []struct {
		name    string
		data    string
		isJSON  bool
		want    []models.Submission
		wantErr bool
	}{
		{
			name: "yaml wrapper",
			data: "answers:\n  - id: 1\n    text: keeper\n  - id: 3\n    blanks: [stairs, boats]\n",
			want: want,
		},
		{
			name: "yaml list",
			data: "- id: 1\n  text: keeper\n- id: 3\n  blanks: [stairs, boats]\n",
			want: want,
		},
		{
			name:   "json wrapper",
			data:   `{"answers":[{"id":1,"text":"keeper"},{"id":3,"blanks":["stairs","boats"]}]}`,
			isJSON: true,
			want:   want,
		},
		{
			name:   "json list",
			data:   `[{"id":1,"text":"keeper"},{"id":3,"blanks":["stairs","boats"]}]`,
			isJSON: true,
			want:   want,
		},
		{
			name:    "garbage",
			data:    `{"answers": 12`,
			isJSON:  true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnswers([]byte(tt.data), tt.isJSON)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAnswers() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseAnswers() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
