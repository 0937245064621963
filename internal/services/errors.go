package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks a non-zero exit or launch failure from one of
	// the external binaries (ffmpeg, ffprobe, rtmpdump, vlc).
	ErrExternalTool = errors.New("external tool failure")
	// ErrToolIncomplete marks an invocation that stopped early but left
	// usable output behind; the work is retry-worthy, not failed.
	ErrToolIncomplete = errors.New("external tool incomplete")
	// ErrOutputExists marks a refusal to overwrite footage that is
	// already present at the destination path.
	ErrOutputExists = errors.New("output already exists")
	// ErrConfiguration marks unusable configuration discovered at run time.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap tags err with one of the sentinel markers above while adding
// component and operation context for log lines and CLI output.
func Wrap(marker error, component, operation string, err error) error {
	detail := buildDetail(component, operation)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation string) string {
	parts := make([]string, 0, 2)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
