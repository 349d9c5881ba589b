package gnt

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// State is a step of the export state machine.
type State int

// The export states. Completed, Cancelled and Failed are terminal.
const (
	Idle State = iota
	Preparing
	OpeningFile
	StreamingRecords
	Finalizing
	Completed
	Cancelled
	Failed
)

var stateNames = [...]string{
	Idle:             "idle",
	Preparing:        "preparing",
	OpeningFile:      "opening file",
	StreamingRecords: "streaming records",
	Finalizing:       "finalizing",
	Completed:        "completed",
	Cancelled:        "cancelled",
	Failed:           "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether the run is over.
func (s State) Terminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}

// Decision is the operator answer to a failure during a run.
type Decision int

const (
	// Continue skips the failing file or image and goes on with the run.
	Continue Decision = iota
	// Abort stops the run. Everything written so far is kept and finalized.
	Abort
)

// Operator is consulted by the exporter whenever a run needs a decision.
type Operator interface {
	// ConfirmAppend is asked when the image folder already exists.
	ConfirmAppend(dir string) bool
	// OnFileError is asked when a source file cannot be opened or is corrupt.
	OnFileError(path string, err error) Decision
	// OnWriteError is asked when an image cannot be written.
	OnWriteError(path string, err error) Decision
}

// StaticOperator answers every question with the same preset decision.
type StaticOperator struct {
	Append      bool
	FileErrors  Decision
	WriteErrors Decision
}

// ConfirmAppend implements Operator.
func (o StaticOperator) ConfirmAppend(string) bool { return o.Append }

// OnFileError implements Operator.
func (o StaticOperator) OnFileError(string, error) Decision { return o.FileErrors }

// OnWriteError implements Operator.
func (o StaticOperator) OnWriteError(string, error) Decision { return o.WriteErrors }

// Progress is reported after every source file.
type Progress struct {
	File   string
	Index  int
	Total  int
	Images int
}

// Result summarizes a run.
type Result struct {
	RunID         string
	State         State
	Files         int
	Skipped       int
	// Images counts distinct image files, a path written twice counts once.
	Images        int
	WriteFailures int
	Labels        int
	Elapsed       time.Duration
	// Errors holds the failures reported while finalizing the run.
	Errors []error
}

// errAborted signals an operator requested stop from inside the record loop.
var errAborted = errors.New("run aborted by operator")

// Exporter converts a batch of GNT files into images plus label files.
// A single goroutine drives a run; Cancel may be called from any goroutine.
type Exporter struct {
	Operator   Operator
	Dirs       DirService
	Logger     *logrus.Entry
	OnProgress func(Progress)

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc

	labels LabelRegistry
	ledger Ledger
	naming *NamingPolicy
}

// NewExporter returns an exporter consulting op for its decisions.
func NewExporter(op Operator) *Exporter {
	return &Exporter{Operator: op}
}

// State returns the current state of the exporter.
func (e *Exporter) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

func (e *Exporter) setState(s State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = s
}

// Cancel asks the running export to stop. The run stops before the next record,
// then finalizes whatever has been written.
func (e *Exporter) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
	}
}

// Labels returns the label registry of the last run.
func (e *Exporter) Labels() *LabelRegistry { return &e.labels }

// Ledger returns the image ledger of the last run.
func (e *Exporter) Ledger() *Ledger { return &e.ledger }

// Start runs a full export. It returns an error only for invalid options and failed runs;
// a cancelled run is a normal outcome reported through Result.State.
func (e *Exporter) Start(ctx context.Context, cfg RunConfig) (Result, error) {
	res := Result{RunID: uuid.NewString(), State: Idle}
	if err := cfg.Validate(); err != nil {
		return res, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e.mu.Lock()
	if e.state != Idle && !e.state.Terminal() {
		e.mu.Unlock()
		return res, errors.New("an export is already running")
	}
	e.state = Preparing
	e.cancel = cancel
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
	}()

	start := time.Now()
	log := e.logger().WithField("run_id", res.RunID)
	log.WithField("files", len(cfg.Inputs)).Info("export started")

	finish := func(s State) {
		e.setState(s)
		res.State = s
		res.Labels = e.labels.Len()
		res.Elapsed = time.Since(start)
		log.WithFields(logrus.Fields{
			"state":  s.String(),
			"images": res.Images,
			"labels": res.Labels,
		}).Info("export finished")
	}

	e.labels.Reset()
	e.ledger.Reset()

	dirs := e.dirs()
	imageDir := cfg.ImageDir()
	exists, err := dirs.Exists(imageDir)
	if err != nil {
		finish(Failed)
		return res, writeError("stat image folder", imageDir, err)
	}
	if exists {
		if !e.operator().ConfirmAppend(imageDir) {
			log.WithField("path", imageDir).Info("append declined")
			finish(Cancelled)
			return res, nil
		}
	} else if err := dirs.Mkdir(imageDir); err != nil {
		finish(Failed)
		return res, writeError("create image folder", imageDir, err)
	}

	e.naming = NewNamingPolicy(dirs)

	cancelled := e.exportFiles(ctx, &res, cfg, imageDir, log)

	e.setState(Finalizing)
	res.Errors = e.finalize(cfg, log)

	if cancelled {
		finish(Cancelled)
	} else {
		finish(Completed)
	}
	return res, nil
}

// exportFiles runs the per-file loop. It reports whether the run was stopped early.
func (e *Exporter) exportFiles(ctx context.Context, res *Result, cfg RunConfig, imageDir string, log *logrus.Entry) bool {
	progress := func(i int, path string) {
		if e.OnProgress != nil {
			e.OnProgress(Progress{File: path, Index: i + 1, Total: len(cfg.Inputs), Images: res.Images})
		}
	}

	for i, path := range cfg.Inputs {
		if ctx.Err() != nil {
			log.Info("export cancelled")
			return true
		}
		flog := log.WithField("file", path)

		e.setState(OpeningFile)
		parser, closer, err := OpenFile(path)
		if err != nil {
			flog.WithError(err).Warn("cannot open source file")
			if e.operator().OnFileError(path, err) == Abort {
				return true
			}
			res.Skipped++
			progress(i, path)
			continue
		}

		e.setState(StreamingRecords)
		err = parser.Each(ctx, func(rec *Record) error {
			return e.exportRecord(res, cfg, i+1, imageDir, rec, flog)
		})
		closer.Close()

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, errAborted):
			flog.Info("export stopped")
			return true
		case err != nil:
			flog.WithError(err).Warn("source file decoding failed")
			if e.operator().OnFileError(path, err) == Abort {
				return true
			}
			res.Skipped++
		default:
			res.Files++
		}

		progress(i, path)
	}
	return false
}

// exportRecord reconstructs, names and persists one record, then registers its label.
func (e *Exporter) exportRecord(res *Result, cfg RunConfig, seq int, imageDir string, rec *Record, log *logrus.Entry) error {
	img, err := Reconstruct(rec, cfg.Size)
	if err != nil {
		return err
	}

	path, err := e.naming.ImageStem(cfg.Profile, rec.TagCode, seq, imageDir)
	if err == nil {
		path += cfg.Format.Ext()
		err = writeImage(path, img, cfg.Format)
	}
	if err != nil {
		res.WriteFailures++
		log.WithError(err).WithFields(logrus.Fields{"code": rec.TagCode, "path": path}).Warn("cannot write image")
		if e.operator().OnWriteError(path, err) == Abort {
			return errAborted
		}
		return nil
	}

	label := e.labels.LabelFor(rec.TagCode)
	if e.ledger.Add(path, label) {
		res.Images++
	}

	return nil
}

// finalize writes the mapping file then the listing file. Failures are collected, not fatal.
func (e *Exporter) finalize(cfg RunConfig, log *logrus.Entry) []error {
	if !cfg.Profile.WritesListing() {
		return nil
	}
	var errs []error

	mapping := filepath.Join(cfg.Destination, MappingFileName)
	if err := writeFile(mapping, e.labels.WriteTo); err != nil {
		log.WithError(err).Error("cannot write mapping file")
		errs = append(errs, err)
	}

	listing := filepath.Join(cfg.Destination, ListingFileName)
	if err := writeFile(listing, func(w io.Writer) (int64, error) {
		return e.ledger.WriteListing(w, cfg.Profile)
	}); err != nil {
		log.WithError(err).Error("cannot write listing file")
		errs = append(errs, err)
	}
	return errs
}

func (e *Exporter) operator() Operator {
	if e.Operator == nil {
		return StaticOperator{}
	}
	return e.Operator
}

func (e *Exporter) dirs() DirService {
	if e.Dirs == nil {
		return OSDirs{}
	}
	return e.Dirs
}

func (e *Exporter) logger() *logrus.Entry {
	if e.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.Logger = logrus.NewEntry(l)
	}
	return e.Logger
}

// writeImage encodes img into a new file at path. A partially written file is removed.
func writeImage(path string, img *image.Gray, f Format) error {
	return writeFile(path, func(w io.Writer) (int64, error) {
		return 0, Encode(w, img, f)
	})
}

func writeFile(path string, fn func(io.Writer) (int64, error)) (err error) {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return writeError("create", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = writeError("close", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if _, err := fn(out); err != nil {
		return writeError("write", path, err)
	}
	return nil
}
