package services

import (
	"testing"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func place(name string, types ...string) entities.PlaceSummary {
	return entities.PlaceSummary{ID: "p-" + name, Name: name, Types: types}
}

func TestRelevanceFilter_IsRelevant(t *testing.T) {
	filter := NewRelevanceFilter()

	tests := []struct {
		name     string
		place    entities.PlaceSummary
		expected bool
	}{
		{"animal hospital", place("東京動物病院"), true},
		{"hiragana animal hospital", place("どうぶつ病院たま"), true},
		{"night emergency vet", place("夜間救急どうぶつ病院"), true},
		{"vet clinic", place("ペットクリニック青山 動物病院"), true},
		{"vet type without animal keyword", place("グリーン メディカル", "veterinary_care"), true},
		{"vet center", place("アニマル医療センター"), true},

		{"human hospital", place("中央総合病院", "hospital"), false},
		{"human emergency", place("救急医療センター", "hospital"), false},
		{"human clinic", place("内科クリニック"), false},
		{"pet shop", place("ペットショップわんわん", "pet_store"), false},
		{"pet grooming", place("ペットトリミングサロン花"), false},
		{"pet hotel", place("ペットホテル東京"), false},
		{"pet supplies", place("ペット用品の店"), false},
		{"animal keyword but no facility word", place("動物とあそぶ広場"), false},
		{"unrelated place", place("コンビニエンスストア"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter.IsRelevant(tt.place))
		})
	}
}

func TestRelevanceFilter_FilterPreservesOrder(t *testing.T) {
	filter := NewRelevanceFilter()

	in := []entities.PlaceSummary{
		place("ひまわり動物病院"),
		place("ペットショップわんわん", "pet_store"),
		place("夜間救急どうぶつ病院"),
		place("中央総合病院", "hospital"),
	}

	out := filter.Filter(in)
	assert.Len(t, out, 2)
	assert.Equal(t, "ひまわり動物病院", out[0].Name)
	assert.Equal(t, "夜間救急どうぶつ病院", out[1].Name)
}

func TestRelevanceFilter_IsEmergency(t *testing.T) {
	filter := NewRelevanceFilter()

	assert.True(t, filter.IsEmergency(place("夜間救急どうぶつ病院")))
	assert.True(t, filter.IsEmergency(place("24時間どうぶつ病院")))
	assert.True(t, filter.IsEmergency(place("緊急動物医療センター")))
	assert.False(t, filter.IsEmergency(place("ひまわり動物病院")))
}
