package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		want      Category
	}{
		{
			name:      "love keyword",
			reference: "I love you https://youtu.be/dQw4w9WgXcQ",
			want:      Romantic,
		},
		{
			name:      "sad keyword",
			reference: "a very sad song",
			want:      Sad,
		},
		{
			name:      "party keyword",
			reference: "party anthem",
			want:      Party,
		},
		{
			name:      "no keyword",
			reference: "instrumental piece",
			want:      Other,
		},
		{
			name:      "case insensitive",
			reference: "LOVE Story",
			want:      Romantic,
		},
		{
			name:      "love wins over sad",
			reference: "sad love song",
			want:      Romantic,
		},
		{
			name:      "sad wins over party",
			reference: "sad party",
			want:      Sad,
		},
		{
			name:      "keyword inside word",
			reference: "gloves off",
			want:      Romantic,
		},
		{
			name:      "empty reference",
			reference: "",
			want:      Other,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.reference); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.reference, got, tt.want)
			}
		})
	}
}

func TestAll(t *testing.T) {
	categories := All()
	if len(categories) != 4 {
		t.Fatalf("All() returned %d categories, want 4", len(categories))
	}
	want := []Category{Romantic, Sad, Party, Other}
	for i, c := range categories {
		if c != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, c, want[i])
		}
	}
}
