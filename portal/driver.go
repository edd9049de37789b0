/*
Package portal defines the boundary to the timesheet web portal.

PURPOSE:
  Logging in, navigating and clicking the right period button are not
  this module's business. The orchestrator hands a Driver the abstract
  filter keyword the resolver produced and gets back a path to the
  downloaded report; how that happens (headless browser, RPA runner, a
  human dropping a file in a directory) lives behind the interface.

  The same applies to unlocking: some portals export protected
  workbooks that need a pass through an external tool before they are
  readable. Unlocker models that step; the default is a no-op.
*/
package portal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Driver downloads the hours report for the given period filter keyword
// and returns the path of the downloaded artifact. The caller owns the
// file and removes it when done.
type Driver interface {
	Download(ctx context.Context, filterKeyword string) (string, error)
}

// Unlocker turns the raw downloaded artifact into a readable file,
// in place.
type Unlocker interface {
	Unlock(ctx context.Context, path string) error
}

// =============================================================================
// DEFAULT IMPLEMENTATIONS
// =============================================================================

// PassthroughUnlocker assumes the artifact is already readable.
type PassthroughUnlocker struct{}

func (PassthroughUnlocker) Unlock(context.Context, string) error { return nil }

// FileDriver serves reports from a drop directory: an external process
// (or a person) exports the portal report into Dir, and Download hands
// out a private copy of the newest spreadsheet found there. Used in
// tests and in deployments where the browser automation runs separately.
type FileDriver struct {
	Dir string
}

func (d *FileDriver) Download(_ context.Context, filterKeyword string) (string, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return "", fmt.Errorf("reading drop directory %s: %w", d.Dir, err)
	}

	var candidates []os.DirEntry
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".xlsx", ".xlsm", ".xls":
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no report found in drop directory %s for filter %q", d.Dir, filterKeyword)
	}

	sort.Slice(candidates, func(i, j int) bool {
		fi, errI := candidates[i].Info()
		fj, errJ := candidates[j].Info()
		if errI != nil || errJ != nil {
			return candidates[i].Name() < candidates[j].Name()
		}
		return fi.ModTime().After(fj.ModTime())
	})

	src := filepath.Join(d.Dir, candidates[0].Name())
	return copyToTemp(src)
}

// copyToTemp hands the caller a private copy so that the drop directory
// survives the orchestrator's cleanup.
func copyToTemp(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.CreateTemp("", "hours-report-*"+filepath.Ext(src))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}
