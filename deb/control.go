package deb

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"sort"
	"strings"
)

// Package is the full definition of a Debian binary package to build:
// control metadata, maintainer scripts, conffile paths, and any extra
// control-archive members. The data payload is a pre-built tarball supplied
// separately at assembly time.
type Package struct {
	Metadata  Metadata
	Scripts   Scripts
	Conffiles []string

	// ExtraControlFiles contains arbitrary additional control files
	// ("triggers", "templates", ...) to place in the control archive.
	// Reserved names handled explicitly ("control", "conffiles" and the
	// maintainer scripts) are ignored.
	ExtraControlFiles map[string]string
}

// Scripts holds the executable maintainer scripts, run by dpkg at defined
// points of the install/remove lifecycle. Empty scripts are omitted from the
// package.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-maintainerscripts.html
type Scripts struct {
	PreInst  string
	PostInst string
	PreRm    string
	PostRm   string
}

// controlEntry is one member of the control archive, written in a fixed
// order for reproducibility.
type controlEntry struct {
	name ControlFile
	body []byte
	mode int64
}

// ControlArchive builds the complete control.tar.gz member in memory: the
// rendered control file, any present maintainer scripts (mode 0755), the
// conffiles list, and the extra control files in sorted order. The archive
// must be fully materialized because its exact size is needed for the AR
// header before any of it can be written.
//
// The gzip and tar headers carry zero timestamps so that identical inputs
// always produce identical bytes.
func (p *Package) ControlArchive() ([]byte, error) {
	control, err := RenderControl(p.Metadata)
	if err != nil {
		return nil, err
	}

	entries := []controlEntry{
		{FileControl, []byte(control), 0644},
	}

	scripts := []struct {
		name ControlFile
		body string
	}{
		{FilePreinst, p.Scripts.PreInst},
		{FilePostinst, p.Scripts.PostInst},
		{FilePrerm, p.Scripts.PreRm},
		{FilePostrm, p.Scripts.PostRm},
	}
	for _, s := range scripts {
		if s.body != "" {
			entries = append(entries, controlEntry{s.name, []byte(s.body), 0755})
		}
	}

	if len(p.Conffiles) > 0 {
		content := strings.Join(p.Conffiles, "\n") + "\n"
		entries = append(entries, controlEntry{FileConffiles, []byte(content), 0644})
	}

	var extraNames []string
	for name := range p.ExtraControlFiles {
		extraNames = append(extraNames, name)
	}
	sort.Strings(extraNames)
	for _, name := range extraNames {
		switch ControlFile(name) {
		case FileControl, FileConffiles, FilePreinst, FilePostinst, FilePrerm, FilePostrm:
			continue
		}
		if body := p.ExtraControlFiles[name]; body != "" {
			entries = append(entries, controlEntry{ControlFile(name), []byte(body), 0644})
		}
	}

	buf := new(bytes.Buffer)
	gw := gzip.NewWriter(buf)
	tw := tar.NewWriter(gw)
	for _, e := range entries {
		header := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     string(e.name),
			Size:     int64(len(e.body)),
			Mode:     e.mode,
		}
		if err := tw.WriteHeader(header); err != nil {
			return nil, fmt.Errorf("writing %s header: %w", e.name, err)
		}
		if _, err := tw.Write(e.body); err != nil {
			return nil, fmt.Errorf("writing %s: %w", e.name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("closing control tar: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("closing control gzip: %w", err)
	}
	return buf.Bytes(), nil
}
