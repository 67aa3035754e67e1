package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/streams3d/internal/scene"
)

// WriteJSON writes sc as indented JSON.
func WriteJSON(w io.Writer, sc *scene.Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sc)
}

// WriteFile writes sc to path as JSON, or to stdout when path is "-".
func WriteFile(path string, sc *scene.Scene) error {
	if path == "-" {
		return WriteJSON(os.Stdout, sc)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(file, sc); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
