package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type FilterType string

const (
	FilterTypeSingle   FilterType = "single"
	FilterTypeMultiple FilterType = "multiple"
	FilterTypeRange    FilterType = "range"
)

type FilterDataType string

const (
	FilterDataString  FilterDataType = "string"
	FilterDataNumber  FilterDataType = "number"
	FilterDataBoolean FilterDataType = "boolean"
)

// LevelList is the set of category levels a filter is admissible at,
// stored as a comma-separated string (e.g. "1,2,3").
type LevelList []int

func (l LevelList) Contains(level int) bool {
	for _, v := range l {
		if v == level {
			return true
		}
	}
	return false
}

func (l LevelList) Value() (driver.Value, error) {
	parts := make([]string, 0, len(l))
	for _, v := range l {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ","), nil
}

func (l *LevelList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LevelList", src)
	}
	*l = nil
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid level %q in LevelList: %w", part, err)
		}
		*l = append(*l, n)
	}
	return nil
}

type Filter struct {
	ID             string         `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name           string         `gorm:"size:100;not null;uniqueIndex"`
	DisplayName    string         `gorm:"size:150;not null"`
	Description    string         `gorm:"type:text"`
	Type           FilterType     `gorm:"size:20;not null"`
	DataType       FilterDataType `gorm:"size:20;not null"`
	CategoryLevels LevelList      `gorm:"size:20;not null"`
	IsActive       bool           `gorm:"not null;default:true"`
	SortOrder      int            `gorm:"not null;default:0"`
	Options        []FilterOption `gorm:"foreignKey:FilterID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
