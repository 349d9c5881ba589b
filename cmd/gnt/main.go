package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/esimov/gnt/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"
)

const helpBanner = `
┌─┐┌┐┌┌┬┐
│ ┬│││ │
└─┘┘└┘ ┴

Handwritten character (GNT) decoder.
    Version: %s
`

// Version indicates the current build version.
var Version string

var (
	logFile  string
	logLevel string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gnt",
		Short:         "Decode GNT handwritten character files into training images",
		Long:          fmt.Sprintf(helpBanner, Version),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addLogFlags(root.PersistentFlags())

	root.AddCommand(exportCommand())
	root.AddCommand(previewCommand())
	root.AddCommand(inspectCommand())

	return root
}

func addLogFlags(fs *pflag.FlagSet) {
	fs.StringVar(&logFile, "log-file", "", "Write a JSON log to this file (rotated)")
	fs.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// newLogger returns the logger of the library calls. Without a log file nothing is logged.
func newLogger() (*logrus.Entry, io.Closer, error) {
	l := logrus.New()
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	l.SetLevel(lvl)

	if logFile == "" {
		l.SetOutput(io.Discard)
		return logrus.NewEntry(l), nopCloser{}, nil
	}
	sink := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	l.SetOutput(sink)
	l.SetFormatter(&logrus.JSONFormatter{})

	return logrus.NewEntry(l), sink, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
