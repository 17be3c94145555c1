package models

import (
	"fmt"
	"math"
	"strconv"

	"github.com/uptrace/bun"
)

// Skill is a technology at a given proficiency level.
type Skill struct {
	ID         int    `json:"id"`
	SkillLevel string `json:"skillLevel"`
	Technology string `json:"technology"`
}

// SkillRow is a skill as stored in the skills table.
type SkillRow struct {
	bun.BaseModel `bun:"table:skills,alias:s"`

	ID         int    `bun:"id,pk,autoincrement" json:"id"`
	SkillLevel string `bun:"skill_level,notnull" json:"skill_level"`
	Technology string `bun:"technology,notnull" json:"technology"`
}

func NewSkill(id int, skillLevel, technology string) Skill {
	return Skill{ID: id, SkillLevel: skillLevel, Technology: technology}
}

// SkillFromRow converts a stored row into a Skill.
func SkillFromRow(row SkillRow) Skill {
	return NewSkill(row.ID, row.SkillLevel, row.Technology)
}

// MissingFieldError reports a record without a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("skill record: missing field %q", e.Field)
}

// SkillFromRecord converts an untyped storage record keyed by column name
// (id, skill_level, technology) into a Skill. A missing or NULL column
// yields a *MissingFieldError.
func SkillFromRecord(rec map[string]any) (Skill, error) {
	rawID, err := field(rec, "id")
	if err != nil {
		return Skill{}, err
	}
	id, err := asInt(rawID)
	if err != nil {
		return Skill{}, fmt.Errorf("skill record: id: %w", err)
	}

	rawLevel, err := field(rec, "skill_level")
	if err != nil {
		return Skill{}, err
	}
	level, err := asString(rawLevel)
	if err != nil {
		return Skill{}, fmt.Errorf("skill record: skill_level: %w", err)
	}

	rawTech, err := field(rec, "technology")
	if err != nil {
		return Skill{}, err
	}
	tech, err := asString(rawTech)
	if err != nil {
		return Skill{}, fmt.Errorf("skill record: technology: %w", err)
	}

	return NewSkill(id, level, tech), nil
}

func field(rec map[string]any, name string) (any, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		return nil, &MissingFieldError{Field: name}
	}
	return v, nil
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", n)
		}
		return int(n), nil
	case uint:
		return fromUint64(uint64(n))
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return fromUint64(uint64(n))
	case uint64:
		return fromUint64(n)
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		if n < math.MinInt || n >= math.MaxInt {
			return 0, fmt.Errorf("%v overflows int", n)
		}
		return int(n), nil
	case []byte:
		return strconv.Atoi(string(n))
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func fromUint64(n uint64) (int, error) {
	if n > math.MaxInt {
		return 0, fmt.Errorf("%d overflows int", n)
	}
	return int(n), nil
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}

// Row converts s back into its stored shape.
func (s Skill) Row() SkillRow {
	return SkillRow{ID: s.ID, SkillLevel: s.SkillLevel, Technology: s.Technology}
}
