package stopdb

import (
	"encoding/json"
	"fmt"

	"transit-manager/core/transit"
	"transit-manager/core/utils"
)

// Attribute keys added to Stop.Extra on reads.
const (
	ExtraSaved   = "saved"
	ExtraUpdated = "updated"
)

// requiredColumns is checked when auto-migration is disabled.
var requiredColumns = []string{"id", "name", "lat", "lon", "other", "saved", "updated"}

// stopRow is the database model of a stop.
type stopRow struct {
	ID      int      `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name    string   `gorm:"column:name;size:512"`
	Lat     *float64 `gorm:"column:lat"`
	Lon     *float64 `gorm:"column:lon"`
	Other   *string  `gorm:"column:other;type:text"`
	Saved   int64    `gorm:"column:saved;not null;default:0"`
	Updated int64    `gorm:"column:updated;not null;default:0"`
}

func (stopRow) TableName() string {
	return "stops"
}

func toRow(stop *transit.Stop, now int64) (*stopRow, error) {
	row := &stopRow{
		ID:      stop.ID,
		Name:    stop.Name,
		Lat:     stop.Lat,
		Lon:     stop.Lon,
		Saved:   now,
		Updated: now,
	}
	extra := utils.ClearValues(utils.Without(stop.Extra, ExtraSaved, ExtraUpdated), utils.ClearOptions{RemoveNil: true})
	if len(extra) > 0 {
		data, err := json.Marshal(extra)
		if err != nil {
			return nil, fmt.Errorf("encode extra of stop %d: %w", stop.ID, err)
		}
		other := string(data)
		row.Other = &other
	}
	return row, nil
}

func (r *stopRow) toStop() (*transit.Stop, error) {
	extra := map[string]any{}
	if r.Other != nil && *r.Other != "" {
		if err := json.Unmarshal([]byte(*r.Other), &extra); err != nil {
			return nil, fmt.Errorf("decode extra of stop %d: %w", r.ID, err)
		}
	}
	extra[ExtraSaved] = r.Saved
	extra[ExtraUpdated] = r.Updated

	return &transit.Stop{
		ID:    r.ID,
		Name:  r.Name,
		Lat:   r.Lat,
		Lon:   r.Lon,
		Extra: extra,
	}, nil
}
