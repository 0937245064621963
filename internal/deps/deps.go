// Package deps reports the availability of the external binaries gridcut
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"gridcut/internal/config"
)

// Requirement defines an external tool gridcut relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external tools for the configuration. ffmpeg and
// ffprobe carry every operation; rtmpdump and vlc only matter for coach
// tape and playback respectively.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "ffmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Downloads broadcast footage and cuts play clips",
		},
		{
			Name:        "ffprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Probes footage duration for broadcast offset correction",
		},
		{
			Name:        "rtmpdump",
			Command:     cfg.RTMPDumpBinary(),
			Description: "Downloads coach tape over RTMP",
			Optional:    true,
		},
		{
			Name:        "vlc",
			Command:     cfg.Playlist.VLCBinary,
			Description: "Plays sliced clips with the marquee overlay",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports
// availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if resolved, err := exec.LookPath(cmd); err == nil {
			status.Command = resolved
			status.Available = true
		} else {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		}
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of unavailable non-optional tools.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
