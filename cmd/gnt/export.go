package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/esimov/gnt"
	"github.com/esimov/gnt/utils"
	"github.com/spf13/cobra"
)

type exportFlags struct {
	config  string
	out     string
	profile string
	format  string
	size    string
	append  bool
	onError string
}

func exportCommand() *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export [flags] <file.gnt|glob|url>...",
		Short: "Decode GNT files into images, labels and a code to label mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, f, args)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML file with the export options")
	fl.StringVarP(&f.out, "out", "o", "", "Destination folder")
	fl.StringVarP(&f.profile, "profile", "p", "", "Target application: caffe, cntk, tensorflow, digits")
	fl.StringVarP(&f.format, "format", "f", "", "Image format: png, jpeg, bmp, ppm")
	fl.StringVarP(&f.size, "size", "s", "", "Image size: small (32), medium (64), large (128) or a positive integer")
	fl.BoolVar(&f.append, "append", false, "Append into an existing image folder without asking")
	fl.StringVar(&f.onError, "on-error", "ask", "What to do with unreadable files: skip, abort, ask")

	return cmd
}

// options merges the config file, the defaults and the command line flags.
func (f exportFlags) options(cmd *cobra.Command, args []string) (gnt.RunConfig, error) {
	cfg := gnt.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = gnt.LoadConfig(f.config); err != nil {
			return cfg, err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("out") {
		cfg.Destination = f.out
	}
	if fl.Changed("profile") {
		p, err := gnt.ParseProfile(f.profile)
		if err != nil {
			return cfg, err
		}
		cfg.Profile = p
	}
	if fl.Changed("format") {
		format, err := gnt.ParseFormat(f.format)
		if err != nil {
			return cfg, err
		}
		cfg.Format = format
	}
	if fl.Changed("size") {
		size, err := gnt.ParseSize(f.size)
		if err != nil {
			return cfg, err
		}
		cfg.Size = size
	}
	if len(args) > 0 {
		cfg.Inputs = args
	}
	return cfg, nil
}

func runExport(cmd *cobra.Command, f exportFlags, args []string) error {
	cfg, err := f.options(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	inputs, cleanup, err := expandInputs(ctx, cfg.Inputs)
	defer cleanup()
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no GNT files to decode")
	}
	cfg.Inputs = inputs

	log, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	spinner := utils.NewSpinner(status("decoding files..."), 100*time.Millisecond, true)
	if !utils.IsTerminal(os.Stderr) {
		spinner = nil
	}

	op, err := newTermOperator(f.append, f.onError, spinner)
	if err != nil {
		return err
	}

	exp := gnt.NewExporter(op)
	exp.Logger = log
	exp.OnProgress = func(p gnt.Progress) {
		if spinner != nil {
			spinner.SetMessage(status(fmt.Sprintf("decoding files %s %s",
				utils.FormatProgress(p.Index, p.Total), filepath.Base(p.File))))
		}
	}

	if spinner != nil {
		spinner.Start()
	}
	res, err := exp.Start(ctx, cfg)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	printResult(cfg, res)

	if res.State == gnt.Cancelled {
		return fmt.Errorf("export %s", res.State)
	}
	return nil
}

func status(msg string) string {
	return fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ GNT", utils.StatusMessage),
		utils.DecorateText(msg, utils.DefaultMessage))
}

// printResult displays the relevant information about the export run.
func printResult(cfg gnt.RunConfig, res gnt.Result) {
	msgType := utils.SuccessMessage
	if res.State != gnt.Completed {
		msgType = utils.ErrorMessage
	}
	fmt.Fprintf(os.Stderr, "\nExport %s: %s images, %s labels from %d files (%d skipped)\n",
		utils.DecorateText(res.State.String(), msgType),
		utils.DecorateText(fmt.Sprint(res.Images), utils.SuccessMessage),
		utils.DecorateText(fmt.Sprint(res.Labels), utils.SuccessMessage),
		res.Files, res.Skipped,
	)
	if res.WriteFailures > 0 {
		fmt.Fprintln(os.Stderr, utils.DecorateText(fmt.Sprintf("%d images could not be written", res.WriteFailures), utils.ErrorMessage))
	}
	for _, err := range res.Errors {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	if res.State != gnt.Cancelled || res.Images > 0 {
		fmt.Fprintf(os.Stderr, "Images saved in: %s\n", utils.DecorateText(cfg.ImageDir(), utils.SuccessMessage))
	}
	fmt.Fprintf(os.Stderr, "Execution time: %s\n", utils.DecorateText(utils.FormatTime(res.Elapsed), utils.SuccessMessage))
}

// isPattern reports whether the input should be expanded as a glob.
func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func globInputs(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return matches, nil
}
