package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/esimov/gnt"
	"github.com/esimov/gnt/utils"
	"github.com/spf13/cobra"
)

func previewCommand() *cobra.Command {
	var (
		out  string
		opts = gnt.DefaultPreviewOptions()
	)
	cmd := &cobra.Command{
		Use:   "preview [flags] <file.gnt>",
		Short: "Render the first characters of a GNT file on a thumbnail grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				base := filepath.Base(args[0])
				out = base[:len(base)-len(filepath.Ext(base))] + "-preview.png"
			}
			format, err := gnt.ParseFormat(filepath.Ext(out))
			if err != nil {
				return err
			}

			img, err := gnt.RenderPreviewFile(args[0], opts)
			if img == nil {
				return err
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("unable to create the destination file: %w", err)
			}
			defer f.Close()

			if err := gnt.Encode(f, img, format); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "The preview has been saved as: %s\n", utils.DecorateText(out, utils.SuccessMessage))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&out, "out", "o", "", "Preview image file (png, jpeg, bmp or ppm)")
	fl.IntVar(&opts.Columns, "cols", opts.Columns, "Number of grid columns")
	fl.IntVar(&opts.Rows, "rows", opts.Rows, "Number of grid rows")
	fl.IntVar(&opts.Cell, "cell", opts.Cell, "Cell size in pixels")
	fl.IntVar(&opts.Thumb, "thumb", opts.Thumb, "Thumbnail size in pixels")
	fl.IntVar(&opts.Margin, "margin", opts.Margin, "Thumbnail margin inside its cell")

	return cmd
}
