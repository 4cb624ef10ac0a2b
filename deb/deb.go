package deb

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// dataExtensions are the archive suffixes preserved on the data member.
// Anything else falls back to plain "tar".
var dataExtensions = map[string]bool{
	"tar.bz2":  true,
	"tar.gz":   true,
	"tar.xz":   true,
	"tar.lzma": true,
}

// DataMemberName returns the name of the data member for the given payload
// path, preserving the payload's compression suffix: "data.tar.gz" for a
// file named payload.tar.gz or payload.tgz, "data.tar" for anything whose
// suffix is not a recognized tar compression.
func DataMemberName(dataPath string) string {
	return "data." + dataExtension(filepath.Base(dataPath))
}

// dataExtension inspects the last one or two dot-separated components of the
// payload filename. "tgz" maps to "tar.gz" and the legacy "tar.bzip2"
// spelling maps to "tar.bz2"; unrecognized suffixes fall back to "tar".
func dataExtension(base string) string {
	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return "tar"
	}
	if parts[len(parts)-1] == "tgz" {
		return "tar.gz"
	}
	ext := strings.Join(parts[len(parts)-2:], ".")
	if ext == "tar.bzip2" {
		return "tar.bz2"
	}
	if !dataExtensions[ext] {
		return "tar"
	}
	return ext
}

// Assemble builds the .deb archive at outputPath from the package definition
// and the pre-built data tarball at dataPath.
//
// Metadata is validated (and the control archive fully built) before the
// output file is created, so a ValidationError never leaves a partial file on
// disk. The data file is opened and sized before the output is created for
// the same reason. The data member is streamed in bounded chunks, never
// buffered whole.
func (p *Package) Assemble(outputPath, dataPath string) error {
	control, err := p.ControlArchive()
	if err != nil {
		return err
	}

	data, err := os.Open(dataPath)
	if err != nil {
		return fmt.Errorf("opening data tarball: %w", err)
	}
	defer data.Close()
	info, err := data.Stat()
	if err != nil {
		return fmt.Errorf("sizing data tarball: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	if err := p.WriteDeb(out, control, DataMemberName(dataPath), data, info.Size()); err != nil {
		return err
	}
	return out.Close()
}

// WriteDeb writes the three-member AR archive to w: the debian-binary
// version marker, the control archive, and the data payload streamed from
// data. The member order and names are fixed by the .deb format.
//
// Reference: https://manpages.debian.org/unstable/dpkg-dev/deb.5.en.html#FORMAT
func (p *Package) WriteDeb(w io.Writer, control []byte, dataName string, data io.Reader, dataSize int64) error {
	aw := NewArWriter(w)
	if err := aw.WriteGlobalHeader(); err != nil {
		return fmt.Errorf("writing ar global header: %w", err)
	}

	version := "2.0\n"
	if err := aw.WriteEntry(ArHeader{Name: string(PkgDebianBinary), Size: int64(len(version))}, strings.NewReader(version)); err != nil {
		return fmt.Errorf("writing %s: %w", PkgDebianBinary, err)
	}
	if err := aw.WriteEntry(ArHeader{Name: string(PkgControlTarGz), Size: int64(len(control))}, bytes.NewReader(control)); err != nil {
		return fmt.Errorf("writing %s: %w", PkgControlTarGz, err)
	}
	if err := aw.WriteEntry(ArHeader{Name: dataName, Size: dataSize}, data); err != nil {
		return fmt.Errorf("writing %s: %w", dataName, err)
	}
	return nil
}
