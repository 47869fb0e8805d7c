package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// PrimitiveType identifies one of the supported parametric primitives.
type PrimitiveType string

const (
	PrimitiveCube     PrimitiveType = "cube"
	PrimitiveSphere   PrimitiveType = "sphere"
	PrimitiveCone     PrimitiveType = "cone"
	PrimitiveCylinder PrimitiveType = "cylinder"
	PrimitivePlane    PrimitiveType = "plane"
)

// ParsePrimitiveType matches a wire type value case-insensitively.
func ParsePrimitiveType(name string) (PrimitiveType, error) {
	switch PrimitiveType(strings.ToLower(name)) {
	case PrimitiveCube:
		return PrimitiveCube, nil
	case PrimitiveSphere:
		return PrimitiveSphere, nil
	case PrimitiveCone:
		return PrimitiveCone, nil
	case PrimitiveCylinder:
		return PrimitiveCylinder, nil
	case PrimitivePlane:
		return PrimitivePlane, nil
	default:
		return "", fmt.Errorf("Unknown primitive type: %s", name)
	}
}

// DisplayName returns the capitalized object-type label used on the wire.
func (t PrimitiveType) DisplayName() string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// nominalFaces is the face count attributed to one primitive at default
// tessellation, used for the scene polygon summary.
func (t PrimitiveType) nominalFaces() int {
	switch t {
	case PrimitiveCube:
		return 6
	case PrimitiveSphere:
		return 96
	case PrimitiveCone:
		return 48
	case PrimitiveCylinder:
		return 54
	case PrimitivePlane:
		return 1
	default:
		return 0
	}
}

// Object is one scene object. Fields are exported for snapshot encoding;
// mutation goes through Document methods, which hold the document lock.
type Object struct {
	ID       string                `cbor:"id"`
	Name     string                `cbor:"name"`
	Type     PrimitiveType         `cbor:"type"`
	Position Vec3                  `cbor:"position"`
	Rotation Vec3                  `cbor:"rotation"`
	Scale    Vec3                  `cbor:"scale"`
	Size     Vec3                  `cbor:"size"`
	Material string                `cbor:"material,omitempty"`
	Tracks   map[string][]Keyframe `cbor:"tracks,omitempty"`
}

func newObject(primitive PrimitiveType, name string, position, size Vec3) *Object {
	return &Object{
		ID:       uuid.NewString(),
		Name:     name,
		Type:     primitive,
		Position: position,
		Scale:    Vec3{1, 1, 1},
		Size:     size,
	}
}

func (o *Object) view() ObjectView {
	return ObjectView{
		ID:       o.ID,
		Name:     o.Name,
		Type:     o.Type.DisplayName(),
		Position: o.Position,
	}
}

// applyProperties interprets the modify_object property mapping. Rotation
// values arrive in degrees and are stored in radians.
func (o *Object) applyProperties(properties map[string]any) {
	for key, value := range properties {
		switch key {
		case "position":
			if v, ok := toVec3(value); ok {
				o.Position = v
			}
		case "rotation":
			if v, ok := toVec3(value); ok {
				o.Rotation = Vec3{degToRad(v[0]), degToRad(v[1]), degToRad(v[2])}
			}
		case "scale":
			if v, ok := toVec3(value); ok {
				o.Scale = v
			}
		case "name":
			if name, ok := value.(string); ok {
				o.Name = name
			}
		}
	}
}

func toVec3(value any) (Vec3, bool) {
	raw, ok := value.([]any)
	if !ok || len(raw) < 3 {
		return Vec3{}, false
	}
	var out Vec3
	for i := 0; i < 3; i++ {
		f, ok := raw[i].(float64)
		if !ok {
			return Vec3{}, false
		}
		out[i] = f
	}
	return out, true
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
