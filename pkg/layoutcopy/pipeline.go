package layoutcopy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ProgressFunc receives human-readable progress lines at each major step
type ProgressFunc func(msg string)

// Options configures a transfer run
type Options struct {
	// SourcePath is the template document whose layout and styles are copied
	SourcePath string
	// TargetPath is the report document receiving them
	TargetPath string
	// OutputPath is where the result is written. The target itself is
	// never modified.
	OutputPath string

	// Mapping selects the section mapping mode
	Mapping SectionMapping

	// ShowHostUI makes the host application visible while it works
	ShowHostUI bool

	// Host is the document host to drive. When nil, DefaultHost is used.
	// The run owns the host for its duration and releases it at the end.
	Host Host

	// Progress receives progress lines. Optional.
	Progress ProgressFunc

	// Logger overrides the package logger. Optional.
	Logger *Logger
}

// Result describes a completed transfer
type Result struct {
	// OutputPath is the finished document
	OutputPath string
	// BordersPatched says whether the structural border patch found a
	// fragment in the source and applied it. False is not a failure;
	// it means the source had no decorative page borders.
	BordersPatched bool
	// Styles and Layout carry the per-step summaries
	Styles *StyleReport
	Layout *LayoutReport
}

// Transfer copies the source document's styles and per-section layout onto a
// working copy of the target, then patches decorative page borders directly
// into the saved package. Steps run strictly in that order: the structural
// patch operates on the file the layout step produced.
func Transfer(opts Options) (*Result, error) {
	progress := opts.Progress
	if progress == nil {
		progress = func(string) {}
	}
	log := opts.Logger
	if log == nil {
		log = GetLogger()
	}

	sourcePath, err := filepath.Abs(opts.SourcePath)
	if err != nil {
		return nil, WithContext(err, "resolving source path", nil)
	}
	targetPath, err := filepath.Abs(opts.TargetPath)
	if err != nil {
		return nil, WithContext(err, "resolving target path", nil)
	}
	outputPath, err := filepath.Abs(opts.OutputPath)
	if err != nil {
		return nil, WithContext(err, "resolving output path", nil)
	}

	// Input validation happens before any host interaction
	if info, err := os.Stat(sourcePath); err != nil || info.IsDir() {
		return nil, NewNotFoundError("source", sourcePath)
	}
	if info, err := os.Stat(targetPath); err != nil || info.IsDir() {
		return nil, NewNotFoundError("target", targetPath)
	}

	progress("source: " + sourcePath)
	progress("target: " + targetPath)
	progress("output: " + outputPath)

	result := &Result{OutputPath: outputPath}
	result.Styles, result.Layout, err = runHostPhase(opts, sourcePath, targetPath, outputPath, progress, log)
	if err != nil {
		return nil, err
	}

	// The host is done and released; the patch works on the raw package.
	progress("patching decorative page borders")
	patched, err := PatchPageBorders(sourcePath, outputPath)
	if err != nil {
		return nil, err
	}
	result.BordersPatched = patched
	if patched {
		progress("decorative page borders patched")
	} else {
		progress("no page borders found in source; nothing to patch")
	}

	progress("saved: " + outputPath)
	return result, nil
}

// runHostPhase performs every step that needs the live document host. The
// host and its documents are always released before it returns, even on
// failure, so the structural patch never races a host still holding the
// output file.
func runHostPhase(opts Options, sourcePath, targetPath, outputPath string, progress ProgressFunc, log *Logger) (*StyleReport, *LayoutReport, error) {
	host := opts.Host
	if host == nil {
		var err error
		host, err = DefaultHost(opts.ShowHostUI)
		if err != nil {
			return nil, nil, NewHostError("acquire host", err)
		}
	}
	defer func() {
		// Cleanup must not mask the primary result
		if err := host.Release(); err != nil {
			log.Warn("host release failed: %v", err)
		}
	}()

	progress("opening documents")
	src, err := host.Open(sourcePath, true)
	if err != nil {
		return nil, nil, NewHostError("open source", err)
	}
	defer closeQuietly(src, log)

	tgt, err := host.Open(targetPath, false)
	if err != nil {
		return nil, nil, NewHostError("open target", err)
	}
	defer closeQuietly(tgt, log)

	// Save the target under the output path first so style copies have a
	// concrete on-disk destination, then reopen that copy as the working
	// document.
	progress("creating working copy")
	if err := tgt.SaveAs(outputPath); err != nil {
		return nil, nil, NewHostError("save working copy", err)
	}
	closeQuietly(tgt, log)

	work, err := host.Open(outputPath, false)
	if err != nil {
		return nil, nil, NewHostError("open working copy", err)
	}
	defer closeQuietly(work, log)

	progress("copying styles")
	styles, err := copyStyles(host, src, work, outputPath, progress, log)
	if err != nil {
		return nil, nil, err
	}

	progress("copying layout")
	layout, err := copyLayout(src, work, opts.Mapping, progress, log)
	if err != nil {
		return nil, nil, err
	}
	if n := layout.FailedCount(); n > 0 {
		log.Warn("layout copy finished with %d failed fields", n)
	}

	progress("saving before structural patch")
	if err := work.Save(); err != nil {
		log.Debug("direct save failed, saving to temp and copying over: %v", err)
		if err := saveViaTemp(work, outputPath); err != nil {
			return nil, nil, err
		}
	}

	return styles, layout, nil
}

// saveViaTemp is the fallback when the working document cannot save over its
// own path: save to a temp file, copy the bytes over the output.
func saveViaTemp(work Document, outputPath string) error {
	tmp := filepath.Join(tempDir(), "prepatch-"+uuid.NewString()+".docx")
	defer os.Remove(tmp)

	if err := work.SaveAs(tmp); err != nil {
		return NewHostError("save working document", err)
	}
	if err := copyFile(tmp, outputPath); err != nil {
		return WithContext(err, "copying pre-patch save over output", map[string]interface{}{"output": outputPath})
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy to %s: %w", dst, err)
	}
	return out.Close()
}

func closeQuietly(doc Document, log *Logger) {
	if err := doc.Close(); err != nil {
		log.Debug("document close failed: %v", err)
	}
}
