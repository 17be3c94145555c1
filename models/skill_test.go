package models

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillFromRow(t *testing.T) {
	s := SkillFromRow(SkillRow{ID: 1, SkillLevel: "expert", Technology: "X"})

	assert.Equal(t, Skill{ID: 1, SkillLevel: "expert", Technology: "X"}, s)
}

func TestSkillJSONShape(t *testing.T) {
	b, err := json.Marshal(NewSkill(1, "expert", "X"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"skillLevel":"expert","technology":"X"}`, string(b))
}

func TestSkillFromRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]any
		want Skill
	}{
		{"go ints", map[string]any{"id": 1, "skill_level": "expert", "technology": "X"}, NewSkill(1, "expert", "X")},
		{"driver int64", map[string]any{"id": int64(7), "skill_level": "novice", "technology": "Go"}, NewSkill(7, "novice", "Go")},
		{"json number", map[string]any{"id": float64(3), "skill_level": "mid", "technology": "SQL"}, NewSkill(3, "mid", "SQL")},
		{"mysql bytes", map[string]any{"id": []byte("12"), "skill_level": []byte("expert"), "technology": []byte("Java")}, NewSkill(12, "expert", "Java")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SkillFromRecord(tt.rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkillFromRecordMissingField(t *testing.T) {
	tests := []struct {
		rec   map[string]any
		field string
	}{
		{map[string]any{"skill_level": "expert", "technology": "X"}, "id"},
		{map[string]any{"id": 1, "skillLevel": "expert", "technology": "X"}, "skill_level"},
		{map[string]any{"id": 1, "skill_level": "expert", "technology": nil}, "technology"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := SkillFromRecord(tt.rec)

			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.field, missing.Field)
		})
	}
}

func TestSkillFromRecordBadType(t *testing.T) {
	_, err := SkillFromRecord(map[string]any{"id": 1.5, "skill_level": "expert", "technology": "X"})
	require.Error(t, err)

	var missing *MissingFieldError
	assert.False(t, errors.As(err, &missing))

	_, err = SkillFromRecord(map[string]any{"id": 1, "skill_level": 3, "technology": "X"})
	assert.Error(t, err)
}

func TestSkillRowRoundTrip(t *testing.T) {
	s := NewSkill(9, "intermediate", "Rust")
	assert.Equal(t, s, SkillFromRow(s.Row()))
}

func TestSkillFromRecordIDOverflow(t *testing.T) {
	for _, id := range []any{uint64(1 << 63), uint(math.MaxUint), float64(1 << 63), 1e300} {
		_, err := SkillFromRecord(map[string]any{"id": id, "skill_level": "expert", "technology": "X"})
		assert.Error(t, err, "%v", id)
	}

	got, err := SkillFromRecord(map[string]any{"id": uint64(math.MaxInt), "skill_level": "expert", "technology": "X"})
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got.ID)
}
