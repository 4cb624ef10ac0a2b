package deb

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blakesmith/ar"
)

func TestDataMemberName(t *testing.T) {
	cases := map[string]string{
		"data.tar.gz":       "data.tar.gz",
		"payload.tgz":       "data.tar.gz",
		"payload.tar.bz2":   "data.tar.bz2",
		"payload.tar.bzip2": "data.tar.bz2",
		"payload.tar.xz":    "data.tar.xz",
		"payload.tar.lzma":  "data.tar.lzma",
		"payload.xyz":       "data.tar",
		"archive.tar":       "data.tar",
		"payload":           "data.tar",
		"payload.tar.xz.tmp": "data.tar",
	}
	for base, want := range cases {
		if got := DataMemberName(filepath.Join("some", "dir", base)); got != want {
			t.Errorf("DataMemberName(%q) = %q, want %q", base, got, want)
		}
	}
}

// writeDataTarball writes a payload file of the given size under dir.
func writeDataTarball(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	body := bytes.Repeat([]byte{'d'}, size)
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatalf("writing data tarball: %v", err)
	}
	return path
}

func TestAssemble(t *testing.T) {
	tmpDir := t.TempDir()
	dataPath := writeDataTarball(t, tmpDir, "data.tar.gz", 100)
	debPath := filepath.Join(tmpDir, "foo_1.0_all.deb")

	p := &Package{Metadata: testMetadata()}
	if err := p.Assemble(debPath, dataPath); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	raw, err := os.ReadFile(debPath)
	if err != nil {
		t.Fatalf("reading deb: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("!<arch>\n")) {
		t.Fatalf("missing ar magic: %q", raw[:8])
	}

	// Member names appear SysV style, "/"-terminated and space-padded to 16
	// bytes, at even offsets.
	arR := ar.NewReader(bytes.NewReader(raw))
	var names []string
	var contents [][]byte
	for {
		hdr, err := arR.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading ar: %v", err)
		}
		body, err := io.ReadAll(arR)
		if err != nil {
			t.Fatalf("reading member %s: %v", hdr.Name, err)
		}
		if hdr.Size != int64(len(body)) {
			t.Errorf("%s: declared size %d, read %d", hdr.Name, hdr.Size, len(body))
		}
		names = append(names, strings.TrimSuffix(hdr.Name, "/"))
		contents = append(contents, body)
	}

	want := []string{"debian-binary", "control.tar.gz", "data.tar.gz"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected members: %v, want %v", names, want)
	}
	if string(contents[0]) != "2.0\n" {
		t.Errorf("debian-binary content mismatch: %q", contents[0])
	}
	if len(contents[2]) != 100 {
		t.Errorf("data member size mismatch: %d", len(contents[2]))
	}

	// The control member round-trips to the original metadata.
	_, bodies, _ := readTarGz(t, contents[1])
	parsed := ParseControl(string(bodies["control"]))
	if got := parsed["package"].Flatten(); got != "foo" {
		t.Errorf("package: got %q", got)
	}
	if got := parsed["description"].Flatten(); !strings.HasPrefix(got, "short") {
		t.Errorf("description should start with the synopsis: %q", got)
	}
}

func TestAssembleMemberAlignment(t *testing.T) {
	tmpDir := t.TempDir()
	// Odd data size forces a trailing pad byte.
	dataPath := writeDataTarball(t, tmpDir, "data.tar.gz", 101)
	debPath := filepath.Join(tmpDir, "odd.deb")

	p := &Package{Metadata: testMetadata()}
	if err := p.Assemble(debPath, dataPath); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	raw, err := os.ReadFile(debPath)
	if err != nil {
		t.Fatalf("reading deb: %v", err)
	}
	if len(raw)%2 != 0 {
		t.Errorf("archive length %d is not even-aligned", len(raw))
	}

	// Walk headers manually: each member must start at an even offset.
	offset := 8
	for offset < len(raw) {
		if offset%2 != 0 {
			t.Fatalf("member header at odd offset %d", offset)
		}
		header := raw[offset : offset+60]
		if string(header[58:60]) != "\x60\x0a" {
			t.Fatalf("bad header terminator at offset %d", offset)
		}
		size := 0
		for _, c := range strings.TrimSpace(string(header[48:58])) {
			size = size*10 + int(c-'0')
		}
		offset += 60 + size
		if size%2 != 0 {
			offset++
		}
	}
	if offset != len(raw) {
		t.Errorf("member walk ended at %d, file is %d bytes", offset, len(raw))
	}
}

func TestAssembleExtensionPreserved(t *testing.T) {
	tmpDir := t.TempDir()
	dataPath := writeDataTarball(t, tmpDir, "payload.tgz", 10)
	debPath := filepath.Join(tmpDir, "tgz.deb")

	p := &Package{Metadata: testMetadata()}
	if err := p.Assemble(debPath, dataPath); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	f, err := os.Open(debPath)
	if err != nil {
		t.Fatalf("opening deb: %v", err)
	}
	defer f.Close()

	arR := ar.NewReader(f)
	var names []string
	for {
		hdr, err := arR.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading ar: %v", err)
		}
		names = append(names, strings.TrimSuffix(hdr.Name, "/"))
	}
	if len(names) != 3 || names[2] != "data.tar.gz" {
		t.Errorf("expected third member data.tar.gz, got %v", names)
	}
}

func TestAssembleValidationLeavesNoFile(t *testing.T) {
	tmpDir := t.TempDir()
	dataPath := writeDataTarball(t, tmpDir, "data.tar.gz", 10)
	debPath := filepath.Join(tmpDir, "invalid.deb")

	p := &Package{Metadata: make(Metadata)} // no mandatory fields
	err := p.Assemble(debPath, dataPath)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := os.Stat(debPath); !os.IsNotExist(err) {
		t.Errorf("output file must not exist after a validation failure")
	}
}

func TestAssembleMissingDataLeavesNoFile(t *testing.T) {
	tmpDir := t.TempDir()
	debPath := filepath.Join(tmpDir, "missing.deb")

	p := &Package{Metadata: testMetadata()}
	err := p.Assemble(debPath, filepath.Join(tmpDir, "no-such.tar.gz"))
	if err == nil {
		t.Fatal("expected error for missing data tarball")
	}
	if _, err := os.Stat(debPath); !os.IsNotExist(err) {
		t.Errorf("output file must not exist when the data tarball is missing")
	}
}

func TestIntegrationDpkgDeb(t *testing.T) {
	// Ensure dpkg-deb is available
	if _, err := exec.LookPath("dpkg-deb"); err != nil {
		t.Skip("dpkg-deb not found, skipping integration test")
	}

	tmpDir := t.TempDir()

	// Build a minimal but real gzip'd tar payload via the control archive
	// builder of an empty package, so dpkg-deb can unpack the data member.
	payload := &Package{Metadata: testMetadata()}
	archive, err := payload.ControlArchive()
	if err != nil {
		t.Fatalf("building payload: %v", err)
	}
	dataPath := filepath.Join(tmpDir, "data.tar.gz")
	if err := os.WriteFile(dataPath, archive, 0644); err != nil {
		t.Fatalf("writing payload: %v", err)
	}

	debPath := filepath.Join(tmpDir, "foo_1.0_all.deb")
	p := &Package{Metadata: testMetadata()}
	if err := p.Assemble(debPath, dataPath); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	out, err := exec.Command("dpkg-deb", "--info", debPath).CombinedOutput()
	if err != nil {
		t.Fatalf("dpkg-deb --info failed: %v\n%s", err, out)
	}
	info := string(out)
	if !strings.Contains(info, "Package: foo") {
		t.Errorf("missing Package field in info:\n%s", info)
	}
	if !strings.Contains(info, "Version: 1.0") {
		t.Errorf("missing Version field in info:\n%s", info)
	}
}
