// Package deb builds Debian binary packages (.deb) and their companion
// .changes manifests in pure Go.
//
// # Design Philosophy
//
// The package assembles archives directly from declarative metadata and a
// pre-built data tarball, without shelling out to 'dpkg-deb' or writing
// temporary files. Output is byte-reproducible: archive headers carry fixed
// zero timestamps and the control tarball is gzip-compressed with a zero
// modification time, so identical inputs always produce identical packages.
//
// # Features
//
//   - Schema-driven control file generation: a single ordered field table
//     (ControlSchema) defines field order, mandatory fields, defaults and
//     paragraph wrapping.
//   - Exact AR container layout: 60-byte fixed-width member headers, 2-byte
//     member alignment, SysV "/"-terminated names.
//   - Maintainer scripts, conffiles and arbitrary extra control files in the
//     control archive.
//   - Streaming assembly: the data payload and the checksum pass run in
//     bounded-size chunks; only the control archive is materialized, because
//     its size must be known before its header is written.
//   - .changes manifest generation with md5, sha1 and sha256 digests computed
//     in a single pass over the built package.
package deb
