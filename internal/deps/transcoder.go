package deps

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// imageMagick7 is the unified ImageMagick 7 entry point; "convert" is only a
// compatibility shim there and may be absent.
const imageMagick7 = "magick"

// CheckTranscoder reports the image transcoder. When the configured command is
// the ImageMagick 6 "convert" and it is missing, the detail names "magick" if
// that is installed instead.
func CheckTranscoder(command string) Status {
	status := CheckBinaries([]Requirement{{
		Name:        "ImageMagick",
		Command:     command,
		Description: "Converts screenshots to launcher bitmaps",
	}})[0]
	if status.Available {
		return status
	}
	if filepath.Base(strings.TrimSpace(command)) == "convert" {
		if _, err := exec.LookPath(imageMagick7); err == nil {
			status.Detail = fmt.Sprintf("%s; set artifacts.transcoder = %q", status.Detail, imageMagick7+" convert")
		}
	}
	return status
}
