package detector

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english paragraph",
			text: "The children walked to the lighthouse every morning because they wanted to watch the ships arrive.",
			want: "en",
		},
		{
			name: "french paragraph",
			text: "Les enfants allaient au phare chaque matin parce qu'ils voulaient regarder arriver les bateaux.",
			want: "fr",
		},
		{
			name: "too short",
			text: "Hola",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}
