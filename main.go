package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/deb-builder/deb"
	"gopkg.in/yaml.v3"
)

// arrayFlags collects repeated flag values.
type arrayFlags []string

// String implements the flag.Value interface.
func (i *arrayFlags) String() string {
	return strings.Join(*i, ", ")
}

// Set implements the flag.Value interface.
func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		runBuild(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// printUsage prints the help message to stdout.
func printUsage() {
	fmt.Println("Usage: deb-builder <command> [flags]")
	fmt.Println("\nCommands:")
	fmt.Println("  build    Build a .deb package and its .changes manifest")
}

// runBuild executes the 'build' subcommand: it resolves the package
// definition from an optional YAML file plus command-line flags, assembles
// the .deb, and writes the .changes manifest.
func runBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)

	output := fs.String("output", "", "Path of the .deb file to write (mandatory)")
	changes := fs.String("changes", "", "Path of the .changes file to write (mandatory)")
	data := fs.String("data", "", "Path to the pre-built data tarball (mandatory)")
	confPath := fs.String("config", "", "Optional YAML package definition; flags override its values")

	preinst := fs.String("preinst", "", "The preinst script (prefix with @ to read from a file)")
	postinst := fs.String("postinst", "", "The postinst script (prefix with @ to read from a file)")
	prerm := fs.String("prerm", "", "The prerm script (prefix with @ to read from a file)")
	postrm := fs.String("postrm", "", "The postrm script (prefix with @ to read from a file)")

	var conffiles arrayFlags
	fs.Var(&conffiles, "conffile", "Configuration file path (repeatable, prefix with @ to read from a file)")

	// One flag per control field, generated from the same schema table that
	// drives rendering and validation.
	scalars := make(map[string]*string)
	lists := make(map[string]*arrayFlags)
	for _, d := range deb.ControlSchema {
		key := d.Key()
		usage := fmt.Sprintf("The value for the %s control field.", d.Name)
		if !d.Default.IsZero() {
			usage += fmt.Sprintf(" (default %q)", d.Default.Flatten())
		}
		if isListField(d) {
			var values arrayFlags
			lists[key] = &values
			fs.Var(&values, key, usage+" (repeatable)")
		} else {
			scalars[key] = fs.String(key, "", usage)
		}
	}

	fs.Parse(args)

	pkg := &deb.Package{Metadata: make(deb.Metadata)}

	if *confPath != "" {
		if err := decodeDefinition(*confPath, pkg, output, changes, data); err != nil {
			fmt.Printf("Fatal: Could not read or parse definition file %s: %v\n", *confPath, err)
			os.Exit(1)
		}
	}

	for key, value := range scalars {
		v, err := resolveFlagValue(*value, true)
		if err != nil {
			fmt.Printf("Fatal: Could not resolve -%s: %v\n", key, err)
			os.Exit(1)
		}
		if v != "" {
			pkg.Metadata[key] = deb.String(v)
		}
	}
	for key, values := range lists {
		if len(*values) == 0 {
			continue
		}
		items, err := resolveFlagValues(*values)
		if err != nil {
			fmt.Printf("Fatal: Could not resolve -%s: %v\n", key, err)
			os.Exit(1)
		}
		pkg.Metadata[key] = deb.List(items...)
	}

	scripts := []struct {
		name  string
		value string
		dst   *string
	}{
		{"preinst", *preinst, &pkg.Scripts.PreInst},
		{"postinst", *postinst, &pkg.Scripts.PostInst},
		{"prerm", *prerm, &pkg.Scripts.PreRm},
		{"postrm", *postrm, &pkg.Scripts.PostRm},
	}
	for _, s := range scripts {
		if s.value == "" {
			continue
		}
		v, err := resolveFlagValue(s.value, false)
		if err != nil {
			fmt.Printf("Fatal: Could not resolve -%s: %v\n", s.name, err)
			os.Exit(1)
		}
		*s.dst = v
	}

	if len(conffiles) > 0 {
		items, err := resolveFlagValues(conffiles)
		if err != nil {
			fmt.Printf("Fatal: Could not resolve -conffile: %v\n", err)
			os.Exit(1)
		}
		pkg.Conffiles = items
	}

	if *output == "" || *changes == "" || *data == "" {
		fmt.Println("Fatal: -output, -changes and -data are mandatory")
		os.Exit(1)
	}

	if err := pkg.Assemble(*output, *data); err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}

	id, err := deb.ChangesFromMetadata(pkg.Metadata)
	if err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}
	if err := id.WriteFile(*changes, *output); err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Built %s and %s\n", *output, *changes)
}

// isListField reports whether the descriptor's default marks it as a
// list-valued field.
func isListField(d deb.FieldDescriptor) bool {
	return d.Default.IsList()
}

// resolveFlagValue reads the value from a file when prefixed with '@', and
// optionally strips surrounding whitespace.
func resolveFlagValue(value string, strip bool) (string, error) {
	if strings.HasPrefix(value, "@") {
		data, err := os.ReadFile(value[1:])
		if err != nil {
			return "", err
		}
		value = string(data)
	}
	if strip {
		value = strings.TrimSpace(value)
	}
	return value, nil
}

// resolveFlagValues resolves each item of a repeated flag, without stripping.
func resolveFlagValues(values []string) ([]string, error) {
	res := make([]string, 0, len(values))
	for _, v := range values {
		r, err := resolveFlagValue(v, false)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

// decodeDefinition reads a YAML package definition and fills the package and
// output paths. Paths already set by flags are kept.
func decodeDefinition(path string, pkg *deb.Package, output, changes, data *string) error {
	// Internal DTO for YAML deserialization
	type yamlDefinition struct {
		Output  string `yaml:"output"`
		Changes string `yaml:"changes"`
		Data    string `yaml:"data"`

		Package       string   `yaml:"package"`
		Version       string   `yaml:"version"`
		Section       string   `yaml:"section"`
		Priority      string   `yaml:"priority"`
		Architecture  string   `yaml:"architecture"`
		Depends       []string `yaml:"depends"`
		Recommends    []string `yaml:"recommends"`
		Suggests      []string `yaml:"suggests"`
		Enhances      []string `yaml:"enhances"`
		Conflicts     []string `yaml:"conflicts"`
		PreDepends    []string `yaml:"pre_depends"`
		InstalledSize string   `yaml:"installed_size"`
		Maintainer    string   `yaml:"maintainer"`
		Description   string   `yaml:"description"`
		Homepage      string   `yaml:"homepage"`
		BuiltUsing    string   `yaml:"built_using"`
		Distribution  string   `yaml:"distribution"`
		Urgency       string   `yaml:"urgency"`

		Preinst   string   `yaml:"preinst"`
		Postinst  string   `yaml:"postinst"`
		Prerm     string   `yaml:"prerm"`
		Postrm    string   `yaml:"postrm"`
		Conffiles []string `yaml:"conffiles"`

		ExtraControlFiles map[string]string `yaml:"extra_control_files"`
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var dto yamlDefinition
	if err := yaml.Unmarshal(raw, &dto); err != nil {
		return err
	}

	// Map DTO to business object
	setScalar := func(field deb.ControlField, v string) {
		if v != "" {
			pkg.Metadata.Set(string(field), deb.String(v))
		}
	}
	setList := func(field deb.ControlField, v []string) {
		if len(v) > 0 {
			pkg.Metadata.Set(string(field), deb.List(v...))
		}
	}

	setScalar(deb.FieldPackage, dto.Package)
	setScalar(deb.FieldVersion, dto.Version)
	setScalar(deb.FieldSection, dto.Section)
	setScalar(deb.FieldPriority, dto.Priority)
	setScalar(deb.FieldArchitecture, dto.Architecture)
	setList(deb.FieldDepends, dto.Depends)
	setList(deb.FieldRecommends, dto.Recommends)
	setList(deb.FieldSuggests, dto.Suggests)
	setList(deb.FieldEnhances, dto.Enhances)
	setList(deb.FieldConflicts, dto.Conflicts)
	setList(deb.FieldPreDepends, dto.PreDepends)
	setScalar(deb.FieldInstalledSize, dto.InstalledSize)
	setScalar(deb.FieldMaintainer, dto.Maintainer)
	setScalar(deb.FieldDescription, dto.Description)
	setScalar(deb.FieldHomepage, dto.Homepage)
	setScalar(deb.FieldBuiltUsing, dto.BuiltUsing)
	setScalar(deb.FieldDistribution, dto.Distribution)
	setScalar(deb.FieldUrgency, dto.Urgency)

	pkg.Scripts.PreInst = dto.Preinst
	pkg.Scripts.PostInst = dto.Postinst
	pkg.Scripts.PreRm = dto.Prerm
	pkg.Scripts.PostRm = dto.Postrm
	pkg.Conffiles = dto.Conffiles
	pkg.ExtraControlFiles = dto.ExtraControlFiles

	if *output == "" {
		*output = dto.Output
	}
	if *changes == "" {
		*changes = dto.Changes
	}
	if *data == "" {
		*data = dto.Data
	}
	return nil
}
