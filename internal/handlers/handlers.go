// Package handlers binds the wire operations of the bridge protocol onto a
// scene document.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c4dlink/c4dlink/internal/bridge"
	"github.com/c4dlink/c4dlink/internal/protocol"
	"github.com/c4dlink/c4dlink/internal/scene"
)

// defaultScenePath receives save_scene output when no path is given.
const defaultScenePath = "scene.c4d"

// Register binds every host operation to the registry. runner may be nil;
// execute_python then reports a structured error.
func Register(registry *bridge.Registry, doc *scene.Document, runner scene.ScriptRunner) error {
	bindings := map[bridge.Kind]bridge.HandlerFunc{
		bridge.KindGetSceneInfo:   getSceneInfo(doc),
		bridge.KindAddPrimitive:   addPrimitive(doc),
		bridge.KindModifyObject:   modifyObject(doc),
		bridge.KindListObjects:    listObjects(doc),
		bridge.KindCreateMaterial: createMaterial(doc),
		bridge.KindApplyMaterial:  applyMaterial(doc),
		bridge.KindRenderFrame:    renderFrame(doc),
		bridge.KindSetKeyframe:    setKeyframe(doc),
		bridge.KindSaveScene:      saveScene(doc),
		bridge.KindLoadScene:      loadScene(doc),
		bridge.KindExecutePython:  executeScript(runner),
	}

	for kind, handler := range bindings {
		schema, err := compileSchema(kind)
		if err != nil {
			return err
		}
		if err := registry.Register(kind, validated(kind, schema, handler)); err != nil {
			return err
		}
	}
	return nil
}

// validated wraps a handler with its parameter-schema check.
func validated(kind bridge.Kind, schema *gojsonschema.Schema, handler bridge.HandlerFunc) bridge.Handler {
	return bridge.HandlerFunc(func(ctx context.Context, cmd protocol.Command) (protocol.Response, error) {
		if err := validateCommand(kind, schema, cmd); err != nil {
			return nil, err
		}
		return handler(ctx, cmd)
	})
}

func getSceneInfo(doc *scene.Document) bridge.HandlerFunc {
	return func(context.Context, protocol.Command) (protocol.Response, error) {
		info := doc.Info()
		return protocol.Response{
			"scene_info": map[string]any{
				"filename":       info.Filename,
				"object_count":   info.ObjectCount,
				"polygon_count":  info.PolygonCount,
				"material_count": info.MaterialCount,
				"current_frame":  info.CurrentFrame,
				"fps":            info.FPS,
				"frame_start":    info.FrameStart,
				"frame_end":      info.FrameEnd,
			},
		}, nil
	}
}

func addPrimitive(doc *scene.Document) bridge.HandlerFunc {
	return func(_ context.Context, cmd protocol.Command) (protocol.Response, error) {
		typeName := cmd.String("type", "cube")
		name := cmd.String("name", cmd.String("object_name", ""))
		if name == "" {
			name = typeName
		}

		position := scene.Vec3{}
		if v, ok := cmd.Vector("position"); ok {
			position = scene.Vec3(v)
		}
		size := scene.Vec3{100, 100, 100}
		if v, ok := cmd.Vector("size"); ok {
			size = scene.Vec3(v)
		}

		view, err := doc.AddPrimitive(typeName, name, position, size)
		if err != nil {
			return nil, err
		}
		return protocol.Response{
			"object": map[string]any{
				"name":     view.Name,
				"id":       view.ID,
				"position": view.Position,
			},
		}, nil
	}
}

func modifyObject(doc *scene.Document) bridge.HandlerFunc {
	return func(_ context.Context, cmd protocol.Command) (protocol.Response, error) {
		objectName := cmd.String("object_name", "")
		properties, _ := cmd.Map("properties")

		finalName, err := doc.Modify(objectName, properties)
		if err != nil {
			return nil, err
		}
		return protocol.Response{"success": true, "object_name": finalName}, nil
	}
}

func listObjects(doc *scene.Document) bridge.HandlerFunc {
	return func(context.Context, protocol.Command) (protocol.Response, error) {
		views := doc.ListObjects()
		objects := make([]map[string]any, 0, len(views))
		for _, view := range views {
			objects = append(objects, map[string]any{
				"name": view.Name,
				"type": view.Type,
				"id":   view.ID,
			})
		}
		return protocol.Response{"objects": objects}, nil
	}
}

func createMaterial(doc *scene.Document) bridge.HandlerFunc {
	return func(_ context.Context, cmd protocol.Command) (protocol.Response, error) {
		name := cmd.String("name", cmd.String("material_name", "Material"))

		color := scene.Vec3{1, 1, 1}
		if v, ok := cmd.Vector("color"); ok {
			color = scene.Vec3(v)
		}
		properties, _ := cmd.Map("properties")

		view := doc.CreateMaterial(name, color, properties)
		return protocol.Response{
			"material": map[string]any{
				"id":    view.ID,
				"name":  view.Name,
				"color": view.Color,
			},
		}, nil
	}
}

func applyMaterial(doc *scene.Document) bridge.HandlerFunc {
	return func(_ context.Context, cmd protocol.Command) (protocol.Response, error) {
		materialName := cmd.String("material_name", "")
		objectName := cmd.String("object_name", "")

		if err := doc.ApplyMaterial(materialName, objectName); err != nil {
			return nil, err
		}
		return protocol.Response{
			"success":       true,
			"material_name": materialName,
			"object_name":   objectName,
		}, nil
	}
}

func renderFrame(doc *scene.Document) bridge.HandlerFunc {
	return func(_ context.Context, cmd protocol.Command) (protocol.Response, error) {
		info, err := doc.Render(
			cmd.String("output_path", ""),
			cmd.Int("width", 0),
			cmd.Int("height", 0),
		)
		if err != nil {
			return nil, err
		}
		return protocol.Response{
			"render_info": map[string]any{
				"path":        info.Path,
				"width":       info.Width,
				"height":      info.Height,
				"render_time": info.Seconds,
			},
		}, nil
	}
}

func setKeyframe(doc *scene.Document) bridge.HandlerFunc {
	return func(_ context.Context, cmd protocol.Command) (protocol.Response, error) {
		objectName := cmd.String("object_name", "")
		propertyName := cmd.String("property_name", "")
		value, _ := cmd["value"].(float64)
		frame := cmd.Int("frame", 0)

		if err := doc.SetKeyframe(objectName, propertyName, value, frame); err != nil {
			return nil, err
		}
		return protocol.Response{
			"success":       true,
			"object_name":   objectName,
			"property_name": propertyName,
			"value":         value,
			"frame":         frame,
		}, nil
	}
}

func saveScene(doc *scene.Document) bridge.HandlerFunc {
	return func(_ context.Context, cmd protocol.Command) (protocol.Response, error) {
		path := cmd.String("file_path", defaultScenePath)

		finalPath, err := doc.Save(path)
		if err != nil {
			return nil, fmt.Errorf("Failed to save scene to %s: %w", path, err)
		}
		return protocol.Response{
			"save_info": map[string]any{"path": finalPath, "success": true},
		}, nil
	}
}

func loadScene(doc *scene.Document) bridge.HandlerFunc {
	return func(_ context.Context, cmd protocol.Command) (protocol.Response, error) {
		path := cmd.String("file_path", "")

		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("File not found: %s", path)
		}
		if err := doc.Load(path); err != nil {
			return nil, fmt.Errorf("Failed to load scene from %s: %w", path, err)
		}
		return protocol.Response{"success": true, "file_path": path}, nil
	}
}

func executeScript(runner scene.ScriptRunner) bridge.HandlerFunc {
	return func(ctx context.Context, cmd protocol.Command) (protocol.Response, error) {
		if runner == nil {
			return nil, errors.New("script execution is not supported by this host")
		}

		output, err := runner.Run(ctx, cmd.String("script", ""))
		if err != nil {
			output = fmt.Sprintf("Error: %v", err)
		}
		return protocol.Response{"result": output}, nil
	}
}
