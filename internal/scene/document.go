// Package scene implements the in-memory host document the reference handler
// registry operates on: objects, materials, keyframe tracks, and snapshots.
package scene

import (
	"fmt"
	"sync"
)

// Vec3 is an x/y/z triple in scene units.
type Vec3 [3]float64

// SceneInfo is a point-in-time summary of the document.
type SceneInfo struct {
	Filename      string
	ObjectCount   int
	PolygonCount  int
	MaterialCount int
	CurrentFrame  int
	FPS           int
	FrameStart    int
	FrameEnd      int
}

// ObjectView is a copy of the wire-visible fields of one object.
type ObjectView struct {
	ID       string
	Name     string
	Type     string
	Position Vec3
}

// MaterialView is a copy of the wire-visible fields of one material.
type MaterialView struct {
	ID    string
	Name  string
	Color Vec3
}

// Document owns all scene state. Every method takes the document lock, so the
// same document may back multiple simultaneous connections.
type Document struct {
	mu sync.Mutex

	name         string
	fps          int
	frameStart   int
	frameEnd     int
	currentFrame int

	renderWidth  int
	renderHeight int

	objects   []*Object
	materials []*Material
}

// NewDocument returns an empty untitled document with default timing and
// render settings.
func NewDocument() *Document {
	return &Document{
		name:         "Untitled",
		fps:          30,
		frameStart:   0,
		frameEnd:     90,
		renderWidth:  800,
		renderHeight: 600,
	}
}

// Info summarizes the document.
func (d *Document) Info() SceneInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	polygons := 0
	for _, obj := range d.objects {
		polygons += obj.Type.nominalFaces()
	}

	return SceneInfo{
		Filename:      d.name,
		ObjectCount:   len(d.objects),
		PolygonCount:  polygons,
		MaterialCount: len(d.materials),
		CurrentFrame:  d.currentFrame,
		FPS:           d.fps,
		FrameStart:    d.frameStart,
		FrameEnd:      d.frameEnd,
	}
}

// AddPrimitive creates a primitive object and appends it to the document.
func (d *Document) AddPrimitive(typeName, name string, position, size Vec3) (ObjectView, error) {
	primitive, err := ParsePrimitiveType(typeName)
	if err != nil {
		return ObjectView{}, err
	}

	obj := newObject(primitive, name, position, size)

	d.mu.Lock()
	d.objects = append(d.objects, obj)
	d.mu.Unlock()

	return obj.view(), nil
}

// ListObjects returns wire-visible views of every object in insertion order.
func (d *Document) ListObjects() []ObjectView {
	d.mu.Lock()
	defer d.mu.Unlock()

	views := make([]ObjectView, 0, len(d.objects))
	for _, obj := range d.objects {
		views = append(views, obj.view())
	}
	return views
}

// Modify applies a property mapping to the named object and returns its final
// name. Properties without a scene meaning are ignored.
func (d *Document) Modify(objectName string, properties map[string]any) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	obj := d.findObject(objectName)
	if obj == nil {
		return "", fmt.Errorf("Object not found: %s", objectName)
	}

	obj.applyProperties(properties)
	return obj.Name, nil
}

func (d *Document) findObject(name string) *Object {
	for _, obj := range d.objects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

func (d *Document) findMaterial(name string) *Material {
	for _, mat := range d.materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}
