// Package dnd is the drag-and-drop protocol between zones: the payload that
// travels with a dragged shape, the single in-flight drag session, and the
// sequence edits a drop performs.
package dnd

import (
	"encoding/json"
	"errors"
	"fmt"

	"polydock/internal/geom"
	"polydock/internal/shape"
)

// Source names the zone a drag started in.
type Source string

const (
	BufferZone Source = "buffer-zone"
	WorkZone   Source = "work-zone"
)

var ErrMalformed = errors.New("malformed drag payload")

// Payload is what a drop target receives. Offset is the grab point relative
// to the centre of the shape's padded box, in shape units.
type Payload struct {
	Shape  shape.Shape `json:"data"`
	Origin Source      `json:"dataSource"`
	DropID *int        `json:"dropId,omitempty"`
	Offset geom.Point  `json:"dragstartOffset"`
}

// ItemDrop is produced when a dragged shape is released over another shape.
type ItemDrop struct {
	DraggedID   int
	DroppedOnID int
}

// Target aims the payload at the shape it is being dropped on.
func (p *Payload) Target(id int) {
	p.DropID = &id
}

// ItemDrop reports the drop-on-item pair once the payload has a target.
func (p Payload) ItemDrop() (ItemDrop, bool) {
	if p.DropID == nil {
		return ItemDrop{}, false
	}
	return ItemDrop{DraggedID: p.Shape.ID, DroppedOnID: *p.DropID}, true
}

func (p Payload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(b), nil
}

// Decode parses transfer data. Anything that does not look like a payload
// produced by Encode is rejected, since drops may come from elsewhere.
func Decode(data string) (Payload, error) {
	if data == "" {
		return Payload{}, ErrMalformed
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !shape.IsRecord(raw["data"]) {
		return Payload{}, fmt.Errorf("%w: bad shape", ErrMalformed)
	}
	if src, _ := raw["dataSource"].(string); Source(src) != BufferZone && Source(src) != WorkZone {
		return Payload{}, fmt.Errorf("%w: unknown source %q", ErrMalformed, src)
	}
	if off, ok := raw["dragstartOffset"]; ok && off != nil && !shape.IsPoint(off) {
		return Payload{}, fmt.Errorf("%w: bad offset", ErrMalformed)
	}

	var p Payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return p, nil
}
