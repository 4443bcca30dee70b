package topics

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "comma separated",
			raw:  "go, cli, automation",
			want: []string{"go", "cli", "automation"},
		},
		{
			name: "newline separated",
			raw:  "go\ncli\nautomation",
			want: []string{"go", "cli", "automation"},
		},
		{
			name: "mixed separators with messy tokens",
			raw:  "Flutter, React Native\nmachine_learning , CLI tool!!",
			want: []string{"flutter", "react-native", "machine-learning", "cli-tool"},
		},
		{
			name: "spaces and underscores become hyphens",
			raw:  "machine learning, deep_learning",
			want: []string{"machine-learning", "deep-learning"},
		},
		{
			name: "strips disallowed punctuation",
			raw:  "#golang, c++, node.js",
			want: []string{"golang", "c", "nodejs"},
		},
		{
			name: "drops empty tokens",
			raw:  "go,,  ,cli",
			want: []string{"go", "cli"},
		},
		{
			name: "drops over-length tokens",
			raw:  strings.Repeat("a", 51) + "," + strings.Repeat("b", 50),
			want: []string{strings.Repeat("b", 50)},
		},
		{
			name: "caps the list at eight",
			raw:  "a, b, c, d, e, f, g, h, i, j",
			want: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
		{
			name: "only separators",
			raw:  ",\n,\n",
			want: nil,
		},
		{
			name: "numbered list collapses",
			raw:  "1. go\n2. cli",
			want: []string{"1-go", "2-cli"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"flutter, react-native, machine-learning",
		"go\ncli-tool\nautomation",
		"a-b-c",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(strings.Join(once, ", "))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("re-normalizing %v changed it to %v", once, twice)
		}
	}
}

func TestNormalizeOutputShape(t *testing.T) {
	// Whatever the model says, every surviving token is a valid topic.
	raw := "  Weird Token!!, UPPER_case\n🚀 emoji, tabs\tand spaces , -leading, trailing- "
	for _, topic := range Normalize(raw) {
		if topic == "" {
			t.Fatal("empty topic survived normalization")
		}
		if len(topic) > MaxTopicLen {
			t.Errorf("topic %q exceeds %d chars", topic, MaxTopicLen)
		}
		for _, r := range topic {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
				t.Errorf("topic %q contains disallowed rune %q", topic, r)
			}
		}
	}
}
