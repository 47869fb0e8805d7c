package scene

import (
	"fmt"

	"github.com/google/uuid"
)

// Material is one scene material with a base RGB color in the 0-1 range.
type Material struct {
	ID         string         `cbor:"id"`
	Name       string         `cbor:"name"`
	Color      Vec3           `cbor:"color"`
	Properties map[string]any `cbor:"properties,omitempty"`
}

// CreateMaterial creates a material and appends it to the document.
func (d *Document) CreateMaterial(name string, color Vec3, properties map[string]any) MaterialView {
	mat := &Material{
		ID:         uuid.NewString(),
		Name:       name,
		Color:      color,
		Properties: properties,
	}

	d.mu.Lock()
	d.materials = append(d.materials, mat)
	d.mu.Unlock()

	return MaterialView{ID: mat.ID, Name: mat.Name, Color: mat.Color}
}

// ApplyMaterial assigns the named material to the named object.
func (d *Document) ApplyMaterial(materialName, objectName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	mat := d.findMaterial(materialName)
	if mat == nil {
		return fmt.Errorf("Material not found: %s", materialName)
	}

	obj := d.findObject(objectName)
	if obj == nil {
		return fmt.Errorf("Object not found: %s", objectName)
	}

	obj.Material = mat.Name
	return nil
}
