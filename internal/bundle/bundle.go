package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
)

const maxBundleSizeBytes = 100 * 1024 * 1024

// ArchiveName is the file name offered for a downloaded site archive.
const ArchiveName = "website.zip"

// entryTime is stamped on every zip entry so identical files give identical
// archives.
var entryTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// File is one archive member.
type File struct {
	Path    string
	Content []byte
}

// Bundle is the decoded content of an archive.
type Bundle struct {
	Files map[string][]byte
	Order []string
}

type ValidationError struct {
	MissingFiles   []string
	HashMismatches []string
	ExtraFiles     []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if len(e.MissingFiles) > 0 {
		parts = append(parts, fmt.Sprintf("missing files: %s", strings.Join(e.MissingFiles, ", ")))
	}
	if len(e.HashMismatches) > 0 {
		parts = append(parts, fmt.Sprintf("hash mismatches: %s", strings.Join(e.HashMismatches, ", ")))
	}
	if len(e.ExtraFiles) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected files: %s", strings.Join(e.ExtraFiles, ", ")))
	}
	if len(parts) == 0 {
		return "invalid bundle"
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) empty() bool {
	return len(e.MissingFiles) == 0 && len(e.HashMismatches) == 0 && len(e.ExtraFiles) == 0
}

// WriteZip writes files as a DEFLATE archive at maximum compression.
// Entries keep the given order; directories are implied by paths.
func WriteZip(w io.Writer, files []File) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	seen := make(map[string]struct{}, len(files))
	total := 0
	for _, f := range files {
		name, err := sanitizeEntryPath(f.Path)
		if err != nil {
			return fmt.Errorf("invalid archive path %q: %w", f.Path, err)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate archive entry %q", name)
		}
		seen[name] = struct{}{}
		total += len(f.Content)
		if total > maxBundleSizeBytes {
			return fmt.Errorf("archive exceeds %d bytes", maxBundleSizeBytes)
		}

		hdr := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: entryTime,
		}
		hdr.SetMode(0o644)
		entry, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("write zip header %s: %w", name, err)
		}
		if _, err := entry.Write(f.Content); err != nil {
			return fmt.Errorf("write zip content %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	return nil
}

// ZipBytes is WriteZip into memory.
func ZipBytes(files []File) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteZip(&buf, files); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadZip decodes an archive produced by WriteZip.
func ReadZip(r io.ReaderAt, size int64) (Bundle, error) {
	b := Bundle{Files: map[string][]byte{}}
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return b, fmt.Errorf("open zip: %w", err)
	}
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)

	total := int64(0)
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		name, err := sanitizeEntryPath(entry.Name)
		if err != nil {
			return b, fmt.Errorf("invalid zip path %q: %w", entry.Name, err)
		}
		if _, exists := b.Files[name]; exists {
			return b, fmt.Errorf("duplicate zip entry %q", name)
		}
		total += int64(entry.UncompressedSize64)
		if total > maxBundleSizeBytes {
			return b, fmt.Errorf("archive exceeds %d bytes", maxBundleSizeBytes)
		}
		rc, err := entry.Open()
		if err != nil {
			return b, fmt.Errorf("open zip entry %q: %w", name, err)
		}
		content, err := io.ReadAll(io.LimitReader(rc, maxBundleSizeBytes+1))
		rc.Close()
		if err != nil {
			return b, fmt.Errorf("read zip entry %q: %w", name, err)
		}
		b.Files[name] = content
		b.Order = append(b.Order, name)
	}
	return b, nil
}

func sanitizeEntryPath(name string) (string, error) {
	clean := path.Clean(strings.TrimSpace(strings.ReplaceAll(name, "\\", "/")))
	if err := validateBundlePath(clean); err != nil {
		return "", err
	}
	return clean, nil
}
