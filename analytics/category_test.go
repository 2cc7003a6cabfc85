package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAICategory(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"class_0", "pothole"},
		{"class_2", "garbage"},
		{"CLASS_4", "road_damage"},
		{" class_5 ", "other"},
		{"class_99", "class_99"},
		{"class_99999999999999999999", "class_99999999999999999999"},
		{"class_x", "class_x"},
		{"garbage", "garbage"},
		{"Broken Streetlight", "Broken Streetlight"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAICategory(tt.raw), "raw=%q", tt.raw)
	}
}
