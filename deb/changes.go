package deb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Changes describes the identity of a built package for the .changes
// manifest. All fields are plain resolved strings; use ChangesFromMetadata to
// derive them from package metadata with schema defaults applied.
type Changes struct {
	Package      string
	Version      string
	Architecture string
	Maintainer   string
	Distribution string
	Urgency      string
	Section      string
	Priority     string

	// ShortDescription is the synopsis line of the package description.
	ShortDescription string

	// Timestamp is the build time in seconds since the epoch, rendered in the
	// Date field. The zero value keeps the output reproducible.
	Timestamp int64
}

// ChangesFromMetadata resolves a Changes identity from package metadata,
// applying the same schema defaults and validation as the control renderer.
func ChangesFromMetadata(m Metadata) (*Changes, error) {
	resolved := make(map[ControlField]string, len(ControlSchema))
	for _, d := range ControlSchema {
		v, err := d.resolve(m)
		if err != nil {
			return nil, err
		}
		resolved[d.Name] = v.Flatten()
	}
	return &Changes{
		Package:          resolved[FieldPackage],
		Version:          resolved[FieldVersion],
		Architecture:     resolved[FieldArchitecture],
		Maintainer:       resolved[FieldMaintainer],
		Distribution:     resolved[FieldDistribution],
		Urgency:          resolved[FieldUrgency],
		Section:          resolved[FieldSection],
		Priority:         resolved[FieldPriority],
		ShortDescription: strings.SplitN(resolved[FieldDescription], "\n", 2)[0],
	}, nil
}

// Render produces the .changes document for the built .deb at debPath. It
// digests the file once (md5, sha1 and sha256 in a single pass) and renders
// the control-style field sequence, with one checksum line per algorithm
// carrying the digest, byte size and basename of the package file.
func (c *Changes) Render(debPath string) (string, error) {
	checksums, err := DigestFile(debPath, []string{"md5", "sha1", "sha256"})
	if err != nil {
		return "", err
	}
	info, err := os.Stat(debPath)
	if err != nil {
		return "", fmt.Errorf("sizing %s: %w", debPath, err)
	}
	size := info.Size()
	base := filepath.Base(debPath)

	date := time.Unix(c.Timestamp, 0).UTC().Format("Mon Jan _2 15:04:05 2006")

	fields := []struct {
		name  ChangesField
		value string
	}{
		{ChgFormat, "1.8"},
		{ChgDate, date},
		{ChgSource, c.Package},
		{ChgBinary, c.Package},
		{ChgArchitecture, c.Architecture},
		{ChgVersion, c.Version},
		{ChgDistribution, c.Distribution},
		{ChgUrgency, c.Urgency},
		{ChgMaintainer, c.Maintainer},
		{ChgChangedBy, c.Maintainer},
		{ChgDescription, fmt.Sprintf("\n%s - %s", c.Package, c.ShortDescription)},
		{ChgChanges, fmt.Sprintf("\n%s (%s) %s; urgency=%s\nChanges are tracked in revision control.",
			c.Package, c.Version, c.Distribution, c.Urgency)},
		{ChgFiles, fmt.Sprintf("\n%s %d %s %s %s", checksums["md5"], size, c.Section, c.Priority, base)},
		{ChgChecksumsSha1, fmt.Sprintf("\n%s %d %s", checksums["sha1"], size, base)},
		{ChgChecksumsSha256, fmt.Sprintf("\n%s %d %s", checksums["sha256"], size, base)},
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(renderField(string(f.name), String(f.value), false))
	}
	return b.String(), nil
}

// WriteFile renders the .changes document for debPath and writes it as UTF-8
// text to outputPath.
func (c *Changes) WriteFile(outputPath, debPath string) error {
	doc, err := c.Render(debPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(doc), 0644); err != nil {
		return fmt.Errorf("writing changes file: %w", err)
	}
	return nil
}
