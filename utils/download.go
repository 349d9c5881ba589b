package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
)

// DownloadFile downloads the resource at url into a temporary file and returns its name.
// The caller is responsible for removing the file.
func DownloadFile(ctx context.Context, uri string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", uri, err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to download file from URI %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unable to download file from URI %s, status %v", uri, res.Status)
	}

	name := path.Base(res.Request.URL.Path)
	if name == "/" || name == "." {
		name = "download"
	}
	tmpfile, err := os.CreateTemp("", "*-"+name)
	if err != nil {
		return "", fmt.Errorf("unable to create temporary file: %w", err)
	}
	defer tmpfile.Close()

	if _, err := io.Copy(tmpfile, res.Body); err != nil {
		os.Remove(tmpfile.Name())
		return "", fmt.Errorf("unable to copy the source URI into the destination file: %w", err)
	}
	return tmpfile.Name(), nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
