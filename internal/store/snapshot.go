package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strconv"

	"polydock/internal/geom"
	"polydock/internal/shape"
)

// Key is the storage key the application state lives under.
const Key = "data"

var ErrInvalid = errors.New("invalid snapshot")

// Snapshot is the whole persisted state: the contents of both zones and the
// canvas coordinates of the work zone's shapes.
type Snapshot struct {
	BufferZonePolygons []shape.Shape      `json:"bufferZonePolygons"`
	WorkZonePolygons   []shape.Shape      `json:"workZonePolygons"`
	PolygonsCoords     map[int]geom.Point `json:"polygonsCoords"`
}

func (s Snapshot) Empty() bool {
	return len(s.BufferZonePolygons) == 0 && len(s.WorkZonePolygons) == 0
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		BufferZonePolygons: shape.CloneAll(s.BufferZonePolygons),
		WorkZonePolygons:   shape.CloneAll(s.WorkZonePolygons),
		PolygonsCoords:     maps.Clone(s.PolygonsCoords),
	}
}

// Prune drops coordinates of shapes that are not in the work zone.
func (s *Snapshot) Prune() {
	for id := range s.PolygonsCoords {
		if shape.IndexOf(s.WorkZonePolygons, id) < 0 {
			delete(s.PolygonsCoords, id)
		}
	}
}

func (s Snapshot) Marshal() ([]byte, error) {
	if s.BufferZonePolygons == nil {
		s.BufferZonePolygons = []shape.Shape{}
	}
	if s.WorkZonePolygons == nil {
		s.WorkZonePolygons = []shape.Shape{}
	}
	if s.PolygonsCoords == nil {
		s.PolygonsCoords = map[int]geom.Point{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return b, nil
}

// Decode parses and validates a stored blob. Nothing is salvaged from a blob
// that fails validation.
func Decode(blob []byte) (Snapshot, error) {
	var raw any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !Validate(raw) {
		return Snapshot{}, ErrInvalid
	}
	var s Snapshot
	if err := json.Unmarshal(blob, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if s.PolygonsCoords == nil {
		s.PolygonsCoords = map[int]geom.Point{}
	}
	return s, nil
}

// Validate reports whether candidate, in the generic form produced by
// decoding JSON into an interface value, is a well-formed snapshot.
func Validate(candidate any) bool {
	obj, ok := candidate.(map[string]any)
	if !ok {
		return false
	}

	seen := make(map[float64]bool)
	for _, k := range []string{"bufferZonePolygons", "workZonePolygons"} {
		arr, ok := obj[k].([]any)
		if !ok {
			return false
		}
		for _, rec := range arr {
			if !shape.IsRecord(rec) {
				return false
			}
			id := rec.(map[string]any)["id"].(float64)
			if seen[id] {
				return false
			}
			seen[id] = true
		}
	}

	coords, ok := obj["polygonsCoords"].(map[string]any)
	if !ok {
		return false
	}
	for k, v := range coords {
		if _, err := strconv.Atoi(k); err != nil {
			return false
		}
		if !shape.IsPoint(v) {
			return false
		}
	}
	return true
}
