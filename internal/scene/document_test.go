package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddPrimitiveAssignsIdentityAndDefaults(t *testing.T) {
	doc := NewDocument()

	view, err := doc.AddPrimitive("cube", "Box1", Vec3{0, 50, 0}, Vec3{100, 100, 100})
	require.NoError(t, err)
	require.Equal(t, "Box1", view.Name)
	require.Equal(t, "Cube", view.Type)
	require.Equal(t, Vec3{0, 50, 0}, view.Position)
	require.NotEmpty(t, view.ID)

	other, err := doc.AddPrimitive("Sphere", "Ball", Vec3{}, Vec3{50, 50, 50})
	require.NoError(t, err)
	require.NotEqual(t, view.ID, other.ID)
}

func TestAddPrimitiveUnknownType(t *testing.T) {
	doc := NewDocument()

	_, err := doc.AddPrimitive("torus", "Donut", Vec3{}, Vec3{100, 100, 100})
	require.Error(t, err)
	require.Equal(t, "Unknown primitive type: torus", err.Error())
	require.Empty(t, doc.ListObjects())
}

func TestListObjectsKeepsInsertionOrder(t *testing.T) {
	doc := NewDocument()

	for _, name := range []string{"A", "B", "C"} {
		_, err := doc.AddPrimitive("plane", name, Vec3{}, Vec3{100, 100, 100})
		require.NoError(t, err)
	}

	views := doc.ListObjects()
	require.Len(t, views, 3)
	require.Equal(t, "A", views[0].Name)
	require.Equal(t, "B", views[1].Name)
	require.Equal(t, "C", views[2].Name)
}

func TestModifyAppliesTransformAndRename(t *testing.T) {
	doc := NewDocument()
	_, err := doc.AddPrimitive("cube", "Box1", Vec3{}, Vec3{100, 100, 100})
	require.NoError(t, err)

	finalName, err := doc.Modify("Box1", map[string]any{
		"position": []any{10.0, 20.0, 30.0},
		"rotation": []any{90.0, 0.0, 0.0},
		"scale":    []any{2.0, 2.0, 2.0},
		"name":     "Crate",
		"glow":     true,
	})
	require.NoError(t, err)
	require.Equal(t, "Crate", finalName)

	views := doc.ListObjects()
	require.Equal(t, "Crate", views[0].Name)
	require.Equal(t, Vec3{10, 20, 30}, views[0].Position)
}

func TestModifyUnknownObject(t *testing.T) {
	doc := NewDocument()

	_, err := doc.Modify("Ghost", map[string]any{"name": "X"})
	require.Error(t, err)
	require.Equal(t, "Object not found: Ghost", err.Error())
}

func TestInfoCountsObjectsMaterialsAndPolygons(t *testing.T) {
	doc := NewDocument()

	info := doc.Info()
	require.Equal(t, "Untitled", info.Filename)
	require.Zero(t, info.ObjectCount)
	require.Equal(t, 30, info.FPS)
	require.Equal(t, 0, info.FrameStart)
	require.Equal(t, 90, info.FrameEnd)

	_, err := doc.AddPrimitive("cube", "Box1", Vec3{}, Vec3{100, 100, 100})
	require.NoError(t, err)
	_, err = doc.AddPrimitive("plane", "Floor", Vec3{}, Vec3{400, 400, 0})
	require.NoError(t, err)
	doc.CreateMaterial("Red", Vec3{1, 0, 0}, nil)

	info = doc.Info()
	require.Equal(t, 2, info.ObjectCount)
	require.Equal(t, 1, info.MaterialCount)
	require.Equal(t, 7, info.PolygonCount)
}

func TestApplyMaterial(t *testing.T) {
	doc := NewDocument()
	_, err := doc.AddPrimitive("cube", "Box1", Vec3{}, Vec3{100, 100, 100})
	require.NoError(t, err)
	doc.CreateMaterial("Red", Vec3{1, 0, 0}, nil)

	require.NoError(t, doc.ApplyMaterial("Red", "Box1"))

	err = doc.ApplyMaterial("Blue", "Box1")
	require.Error(t, err)
	require.Equal(t, "Material not found: Blue", err.Error())

	err = doc.ApplyMaterial("Red", "Ghost")
	require.Error(t, err)
	require.Equal(t, "Object not found: Ghost", err.Error())
}

func TestSetKeyframeWritesValueAndTrack(t *testing.T) {
	doc := NewDocument()
	_, err := doc.AddPrimitive("cube", "Box1", Vec3{}, Vec3{100, 100, 100})
	require.NoError(t, err)

	require.NoError(t, doc.SetKeyframe("Box1", "position.y", 150, 12))
	require.NoError(t, doc.SetKeyframe("Box1", "position.y", 0, 24))
	require.NoError(t, doc.SetKeyframe("Box1", "position.y", 80, 6))
	// A second key at an existing frame replaces it.
	require.NoError(t, doc.SetKeyframe("Box1", "position.y", 90, 6))

	views := doc.ListObjects()
	require.Equal(t, 90.0, views[0].Position[1])

	info := doc.Info()
	require.Equal(t, 6, info.CurrentFrame)

	doc.mu.Lock()
	track := doc.findObject("Box1").Tracks["position.y"]
	doc.mu.Unlock()
	require.Equal(t, []Keyframe{{Frame: 6, Value: 90}, {Frame: 12, Value: 150}, {Frame: 24, Value: 0}}, track)
}

func TestSetKeyframeRotationConvertsDegrees(t *testing.T) {
	doc := NewDocument()
	_, err := doc.AddPrimitive("cube", "Box1", Vec3{}, Vec3{100, 100, 100})
	require.NoError(t, err)

	require.NoError(t, doc.SetKeyframe("Box1", "rotation.z", 180, 0))

	doc.mu.Lock()
	obj := doc.findObject("Box1")
	doc.mu.Unlock()
	require.InDelta(t, math.Pi, obj.Rotation[2], 1e-9)
}

func TestSetKeyframeRejectsUnknownProperties(t *testing.T) {
	doc := NewDocument()
	_, err := doc.AddPrimitive("cube", "Box1", Vec3{}, Vec3{100, 100, 100})
	require.NoError(t, err)

	err = doc.SetKeyframe("Box1", "visibility", 1, 0)
	require.Error(t, err)
	require.Equal(t, "Could not set property: visibility", err.Error())

	err = doc.SetKeyframe("Box1", "position.w", 1, 0)
	require.Error(t, err)
	require.Equal(t, "Unknown property: position.w", err.Error())

	err = doc.SetKeyframe("Ghost", "position.x", 1, 0)
	require.Error(t, err)
	require.Equal(t, "Object not found: Ghost", err.Error())
}
