package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// snapshot is the CBOR-encoded on-disk form of a document.
type snapshot struct {
	Name         string      `cbor:"name"`
	FPS          int         `cbor:"fps"`
	FrameStart   int         `cbor:"frame_start"`
	FrameEnd     int         `cbor:"frame_end"`
	CurrentFrame int         `cbor:"current_frame"`
	Objects      []*Object   `cbor:"objects"`
	Materials    []*Material `cbor:"materials"`
}

// Save writes the document snapshot to path, appending the scene extension
// when missing, and returns the final path.
func (d *Document) Save(path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".c4d") {
		path += ".c4d"
	}

	d.mu.Lock()
	snap := snapshot{
		Name:         filepath.Base(path),
		FPS:          d.fps,
		FrameStart:   d.frameStart,
		FrameEnd:     d.frameEnd,
		CurrentFrame: d.currentFrame,
		Objects:      d.objects,
		Materials:    d.materials,
	}
	payload, err := cbor.Marshal(snap)
	if err == nil {
		d.name = snap.Name
	}
	d.mu.Unlock()

	if err != nil {
		return "", fmt.Errorf("encode scene: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write scene %s: %w", path, err)
	}
	return path, nil
}

// Load replaces the document contents with the snapshot stored at path.
func (d *Document) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene %s: %w", path, err)
	}

	var snap snapshot
	if err := cbor.Unmarshal(payload, &snap); err != nil {
		return fmt.Errorf("decode scene %s: %w", path, err)
	}

	d.mu.Lock()
	d.name = snap.Name
	d.fps = snap.FPS
	d.frameStart = snap.FrameStart
	d.frameEnd = snap.FrameEnd
	d.currentFrame = snap.CurrentFrame
	d.objects = snap.Objects
	d.materials = snap.Materials
	d.mu.Unlock()

	return nil
}
