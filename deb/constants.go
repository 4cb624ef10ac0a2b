package deb

// ControlField represents a standard field in a Debian control file.
type ControlField string

const (
	FieldPackage       ControlField = "Package"
	FieldVersion       ControlField = "Version"
	FieldSection       ControlField = "Section"
	FieldPriority      ControlField = "Priority"
	FieldArchitecture  ControlField = "Architecture"
	FieldDepends       ControlField = "Depends"
	FieldRecommends    ControlField = "Recommends"
	FieldSuggests      ControlField = "Suggests"
	FieldEnhances      ControlField = "Enhances"
	FieldConflicts     ControlField = "Conflicts"
	FieldPreDepends    ControlField = "Pre-Depends"
	FieldInstalledSize ControlField = "Installed-Size"
	FieldMaintainer    ControlField = "Maintainer"
	FieldDescription   ControlField = "Description"
	FieldHomepage      ControlField = "Homepage"
	FieldBuiltUsing    ControlField = "Built-Using"
	FieldDistribution  ControlField = "Distribution"
	FieldUrgency       ControlField = "Urgency"
)

// ChangesField represents a standard field in a Debian .changes file.
type ChangesField string

const (
	ChgFormat          ChangesField = "Format"
	ChgDate            ChangesField = "Date"
	ChgSource          ChangesField = "Source"
	ChgBinary          ChangesField = "Binary"
	ChgArchitecture    ChangesField = "Architecture"
	ChgVersion         ChangesField = "Version"
	ChgDistribution    ChangesField = "Distribution"
	ChgUrgency         ChangesField = "Urgency"
	ChgMaintainer      ChangesField = "Maintainer"
	ChgChangedBy       ChangesField = "Changed-By"
	ChgDescription     ChangesField = "Description"
	ChgChanges         ChangesField = "Changes"
	ChgFiles           ChangesField = "Files"
	ChgChecksumsSha1   ChangesField = "Checksums-Sha1"
	ChgChecksumsSha256 ChangesField = "Checksums-Sha256"
)

// ControlFile represents a standard file found in the control.tar.gz archive.
type ControlFile string

const (
	FileControl   ControlFile = "control"
	FileConffiles ControlFile = "conffiles"
	FilePreinst   ControlFile = "preinst"
	FilePostinst  ControlFile = "postinst"
	FilePrerm     ControlFile = "prerm"
	FilePostrm    ControlFile = "postrm"
)

// PackageFile represents a standard member of the .deb archive (ar format).
// The data member name is derived at assembly time from the payload's
// extension (see DataMemberName).
type PackageFile string

const (
	PkgDebianBinary PackageFile = "debian-binary"
	PkgControlTarGz PackageFile = "control.tar.gz"
)

// ControlSchema is the single ordered sequence of field descriptors that
// defines both the control-file field order and the accepted metadata keys.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html
var ControlSchema = []FieldDescriptor{
	{Name: FieldPackage, Mandatory: true},
	{Name: FieldVersion, Mandatory: true},
	{Name: FieldSection, Default: String("contrib/devel")},
	{Name: FieldPriority, Default: String("optional")},
	{Name: FieldArchitecture, Default: String("all")},
	{Name: FieldDepends, Default: List()},
	{Name: FieldRecommends, Default: List()},
	{Name: FieldSuggests, Default: List()},
	{Name: FieldEnhances, Default: List()},
	{Name: FieldConflicts, Default: List()},
	{Name: FieldPreDepends, Default: List()},
	{Name: FieldInstalledSize},
	{Name: FieldMaintainer, Mandatory: true},
	{Name: FieldDescription, Mandatory: true, Wrap: true},
	{Name: FieldHomepage},
	{Name: FieldBuiltUsing, Default: String("deb-builder")},
	{Name: FieldDistribution, Default: String("unstable")},
	{Name: FieldUrgency, Default: String("medium")},
}
