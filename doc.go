/*
Package gnt decodes GNT handwritten character files into image datasets ready to be
consumed by Caffe, CNTK, TensorFlow or DIGITS.

A GNT file is a plain sequence of records, each holding a tag code and a grayscale bitmap.
Every record is padded to a white square, resampled to the requested size and saved as an
image, while the tag codes are assigned dense labels written to a mapping file next to a
listing of all the saved images.

The package provides a command line interface, supporting various flags for the different
export options. To check the supported commands type:

	$ gnt --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/gnt"
	)

	func main() {
		cfg := gnt.DefaultConfig()
		cfg.Inputs = []string{"1001-c.gnt", "1002-c.gnt"}
		cfg.Destination = "dataset"

		exp := gnt.NewExporter(gnt.StaticOperator{Append: true})
		res, err := exp.Start(context.Background(), cfg)
		if err != nil {
			fmt.Printf("Error decoding files: %s", err.Error())
			return
		}
		fmt.Printf("%d images, %d labels\n", res.Images, res.Labels)
	}
*/
package gnt
