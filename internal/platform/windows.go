package platform

import (
	"fmt"
	"strings"

	"github.com/goplus/pylonconf/internal/directive"
	"github.com/goplus/pylonconf/internal/env"
	"github.com/qiniu/x/log"
)

var windowsMajors = []int{5, 6}

type windows struct {
	log *log.Logger
}

// Configure adds search paths only: the pylon headers select their import
// libraries themselves.
func (w *windows) Configure(cfg *env.Config, set *directive.Set) error {
	if err := checkMajor("windows", cfg.Major, windowsMajors); err != nil {
		return err
	}
	devDir := cfg.DevDir
	if devDir == "" {
		major := cfg.Major
		if major == 0 {
			major = modernMajor
		}
		devDir = fmt.Sprintf(`C:\Program Files\Basler\pylon %d\Development`, major)
	}
	w.log.Debugf("using %s", devDir)

	set.Include(winJoin(devDir, "include"))
	set.LibDir(winJoin(devDir, "lib", "x64"))
	return nil
}

// winJoin joins path elements with backslashes whatever the host OS.
func winJoin(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for i, e := range elem {
		if i > 0 {
			e = strings.TrimLeft(e, `\/`)
		}
		if i < len(elem)-1 {
			e = strings.TrimRight(e, `\/`)
		}
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, `\`)
}
