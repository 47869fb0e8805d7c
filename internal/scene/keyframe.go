package scene

import (
	"fmt"
	"sort"
	"strings"
)

// Keyframe records one animated value at a frame.
type Keyframe struct {
	Frame int     `cbor:"frame"`
	Value float64 `cbor:"value"`
}

// SetKeyframe applies value to the object property at the given frame and
// records a keyframe on the property's track. Property paths take the
// "position.x" form; rotation values arrive in degrees. The document's
// current frame follows the keyframed frame.
func (d *Document) SetKeyframe(objectName, property string, value float64, frame int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	obj := d.findObject(objectName)
	if obj == nil {
		return fmt.Errorf("Object not found: %s", objectName)
	}

	if err := obj.setPropertyValue(property, value); err != nil {
		return err
	}

	d.currentFrame = frame
	obj.recordKeyframe(property, value, frame)
	return nil
}

// setPropertyValue writes one axis of a transform vector.
func (o *Object) setPropertyValue(property string, value float64) error {
	base, axis, ok := strings.Cut(property, ".")
	if !ok {
		return fmt.Errorf("Could not set property: %s", property)
	}

	index, ok := axisIndex(axis)
	if !ok {
		return fmt.Errorf("Unknown property: %s", property)
	}

	switch base {
	case "position":
		o.Position[index] = value
	case "rotation":
		o.Rotation[index] = degToRad(value)
	case "scale":
		o.Scale[index] = value
	default:
		return fmt.Errorf("Unknown property: %s", property)
	}
	return nil
}

// recordKeyframe keeps each track frame-sorted, replacing a key already
// present at the same frame.
func (o *Object) recordKeyframe(property string, value float64, frame int) {
	if o.Tracks == nil {
		o.Tracks = make(map[string][]Keyframe)
	}

	track := o.Tracks[property]
	for i, key := range track {
		if key.Frame == frame {
			track[i].Value = value
			o.Tracks[property] = track
			return
		}
	}

	track = append(track, Keyframe{Frame: frame, Value: value})
	sort.Slice(track, func(i, j int) bool { return track[i].Frame < track[j].Frame })
	o.Tracks[property] = track
}

func axisIndex(axis string) (int, bool) {
	switch axis {
	case "x":
		return 0, true
	case "y":
		return 1, true
	case "z":
		return 2, true
	default:
		return 0, false
	}
}
