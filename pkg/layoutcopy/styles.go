package layoutcopy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StyleReport summarizes a style transfer
type StyleReport struct {
	// Attempted is how many named styles were offered to the host
	Attempted int
	// Moved is how many named styles the host copied
	Moved int
	// Nameless is how many styles were skipped because the host could not
	// determine a name for them
	Nameless int
	// UsedTemplateFallback is set when no named copy succeeded and the
	// whole style template was copied instead
	UsedTemplateFallback bool
	// PerStyle records the outcome of each named copy
	PerStyle *Report
}

// copyStyles ensures every named style of src exists in the working document
// saved at outputPath. Each style is copied by name; individual failures are
// recorded, not fatal. Only when not a single style moves does the
// whole-template fallback run.
func copyStyles(host Host, src, work Document, outputPath string, progress ProgressFunc, log *Logger) (*StyleReport, error) {
	names, err := src.StyleNames()
	if err != nil {
		return nil, NewHostError("list styles", err)
	}

	report := &StyleReport{PerStyle: NewReport()}
	for _, name := range names {
		if name == "" {
			report.Nameless++
			continue
		}
		report.Attempted++
		if err := host.CopyStyleByName(src.Path(), outputPath, name); err != nil {
			report.PerStyle.Failed(name, err)
			log.Debug("style %q did not copy: %v", name, err)
			continue
		}
		report.PerStyle.Applied(name)
		report.Moved++
	}

	progress(fmt.Sprintf("styles moved by name: %d", report.Moved))

	if report.Moved == 0 {
		progress("no styles moved by name; copying whole style template")
		if err := copyStylesViaTemplate(src, work, log); err != nil {
			return report, err
		}
		report.UsedTemplateFallback = true
		progress("styles copied via template")
	}

	return report, nil
}

// copyStylesViaTemplate snapshots the source document as a temporary style
// template and applies it to the working document wholesale. The snapshot is
// removed on every exit path.
func copyStylesViaTemplate(src, work Document, log *Logger) error {
	snapshot := filepath.Join(tempDir(), "style-source-"+uuid.NewString()+".dotx")
	defer func() {
		if err := os.Remove(snapshot); err != nil && !os.IsNotExist(err) {
			log.Warn("could not remove style snapshot %s: %v", snapshot, err)
		}
	}()

	if err := src.SaveAsTemplate(snapshot); err != nil {
		log.Debug("template save failed, retrying as plain document: %v", err)
		if err := src.SaveAs(snapshot); err != nil {
			return NewHostError("snapshot source styles", err)
		}
	}

	if err := work.CopyStylesFromTemplate(snapshot); err != nil {
		return NewHostError("copy styles from template", err)
	}

	return nil
}
