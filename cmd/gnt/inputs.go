package main

import (
	"context"
	"os"

	"github.com/esimov/gnt/utils"
)

// expandInputs resolves the command line inputs to local file paths, keeping their order.
// Glob patterns are expanded and URLs are downloaded into temporary files,
// which are removed by the returned cleanup function.
func expandInputs(ctx context.Context, inputs []string) ([]string, func(), error) {
	var (
		paths []string
		temps []string
	)
	cleanup := func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}

	for _, in := range inputs {
		switch {
		case utils.IsValidUrl(in):
			name, err := utils.DownloadFile(ctx, in)
			if err != nil {
				return nil, cleanup, err
			}
			temps = append(temps, name)
			paths = append(paths, name)
		case isPattern(in):
			matches, err := globInputs(in)
			if err != nil {
				return nil, cleanup, err
			}
			paths = append(paths, matches...)
		default:
			paths = append(paths, in)
		}
	}
	return paths, cleanup, nil
}
