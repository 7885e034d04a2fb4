// SPDX-License-Identifier: MPL-2.0

package buildgraph

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"girder/internal/dag"
	"girder/pkg/cueutil"
	"girder/pkg/pkgconfig"
	"girder/pkg/verspec"
)

//go:embed girder_schema.cue
var girderSchema string

// Build is a fully loaded manifest: the graph plus the descriptor exports
// declared in its pkgconfig blocks.
type Build struct {
	Graph       *Graph
	Descriptors []*pkgconfig.Descriptor
}

// Manifest document shapes, mirroring #Girderfile.
type (
	manifest struct {
		Project   projectDoc            `json:"project"`
		Packages  map[string]packageDoc `json:"packages,omitempty"`
		Headers   map[string]headerDoc  `json:"headers,omitempty"`
		Libraries []libraryDoc          `json:"libraries,omitempty"`
		Install   *installDoc           `json:"install,omitempty"`
		PkgConfig []exportDoc           `json:"pkgconfig,omitempty"`
	}

	projectDoc struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	}

	packageDoc struct {
		System  bool                `json:"system"`
		Version string              `json:"version,omitempty"`
		Fields  map[string][]string `json:"fields,omitempty"`
	}

	headerDoc struct {
		Subdir string `json:"subdir"`
	}

	libraryDoc struct {
		Name     string      `json:"name"`
		LinkName string      `json:"link_name,omitempty"`
		Parent   string      `json:"parent,omitempty"`
		Forward  *forwardDoc `json:"forward,omitempty"`
		Packages []pkgRefDoc `json:"packages,omitempty"`
	}

	forwardDoc struct {
		Libs    []string `json:"libs,omitempty"`
		Options []string `json:"options,omitempty"`
	}

	pkgRefDoc struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	}

	installDoc struct {
		Headers   []string `json:"headers,omitempty"`
		Libraries []string `json:"libraries,omitempty"`
	}

	exportDoc struct {
		Name     string `json:"name,omitempty"`
		DescName string `json:"desc_name,omitempty"`
		Desc     string `json:"desc,omitempty"`
		URL      string `json:"url,omitempty"`
		Version  string `json:"version,omitempty"`
		Lang     string `json:"lang"`
		AutoFill *bool  `json:"auto_fill,omitempty"`

		Includes    []string `json:"includes,omitempty"`
		Libs        []string `json:"libs,omitempty"`
		LibsPrivate []string `json:"libs_private,omitempty"`

		Requires        []pkgRefDoc `json:"requires,omitempty"`
		RequiresPrivate []pkgRefDoc `json:"requires_private,omitempty"`
		Conflicts       []pkgRefDoc `json:"conflicts,omitempty"`

		Options            []string `json:"options,omitempty"`
		LinkOptions        []string `json:"link_options,omitempty"`
		LinkOptionsPrivate []string `json:"link_options_private,omitempty"`
	}
)

// Load reads and parses a build manifest from the given path.
func Load(path string) (*Build, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build manifest at %s: %w", path, err)
	}
	return LoadBytes(data, path)
}

// LoadBytes parses build manifest content from bytes. The schema is
// validated first; dangling references surface as UnknownEntityError
// afterwards, and descriptor declaration errors come from NewDescriptor.
func LoadBytes(data []byte, path string) (*Build, error) {
	result, err := cueutil.ParseAndDecodeString[manifest](
		girderSchema,
		data,
		"#Girderfile",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}
	doc := result.Value

	g := &Graph{
		project: doc.Project.Name,
		version: doc.Project.Version,
		libs:    make(map[string]*Library, len(doc.Libraries)),
		headers: make(map[string]*HeaderDir, len(doc.Headers)),
		systems: make(map[string]*SystemPackage),
		pcPkgs:  make(map[string]*PkgConfig),
	}

	if err := loadCatalog(g, doc.Packages); err != nil {
		return nil, err
	}
	for name, h := range doc.Headers {
		g.headers[name] = &HeaderDir{name: name, subdir: h.Subdir}
	}
	if err := loadLibraries(g, doc.Libraries); err != nil {
		return nil, err
	}
	if err := loadInstall(g, doc.Install); err != nil {
		return nil, err
	}

	descs := make([]*pkgconfig.Descriptor, 0, len(doc.PkgConfig))
	for i, exp := range doc.PkgConfig {
		d, err := loadExport(g, i, exp)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}

	return &Build{Graph: g, Descriptors: descs}, nil
}

func loadCatalog(g *Graph, pkgs map[string]packageDoc) error {
	for name, p := range pkgs {
		if p.System {
			g.systems[name] = &SystemPackage{name: name, fields: p.Fields}
			continue
		}
		spec := verspec.Set{}
		if p.Version != "" {
			var err error
			if spec, err = verspec.ParseSet(p.Version); err != nil {
				return fmt.Errorf("package %q: %w", name, err)
			}
		}
		g.pcPkgs[name] = &PkgConfig{name: name, spec: spec}
	}
	return nil
}

func loadLibraries(g *Graph, docs []libraryDoc) error {
	// First pass creates every library so forward and parent references
	// may point at later declarations.
	for _, ld := range docs {
		if _, dup := g.libs[ld.Name]; dup {
			return fmt.Errorf("library %q is declared twice", ld.Name)
		}
		linkName := ld.LinkName
		if linkName == "" {
			linkName = ld.Name
		}
		l := &Library{name: ld.Name, linkName: linkName}
		g.libs[ld.Name] = l
		g.libOrder = append(g.libOrder, l)
	}

	for _, ld := range docs {
		l := g.libs[ld.Name]
		where := fmt.Sprintf("library %q", ld.Name)

		if ld.Parent != "" {
			p, ok := g.libs[ld.Parent]
			if !ok {
				return &UnknownEntityError{Kind: "library", Name: ld.Parent, Where: where}
			}
			l.parent = p
		}
		if ld.Forward != nil {
			for _, fname := range ld.Forward.Libs {
				f, ok := g.libs[fname]
				if !ok {
					return &UnknownEntityError{Kind: "library", Name: fname, Where: where}
				}
				l.fwdLibs = append(l.fwdLibs, f)
			}
			l.fwdOpts = append([]string(nil), ld.Forward.Options...)
		}

		refs, err := resolveRefs(g, where, ld.Packages)
		if err != nil {
			return err
		}
		l.pkgDeps = refs
	}

	// Parent chains and forward lists must stay acyclic: root() walks
	// parents, and a library must not forward itself, even transitively.
	dg := dag.New()
	for _, l := range g.libOrder {
		dg.AddNode(l.name)
		if l.parent != nil {
			dg.AddEdge(l.parent.name, l.name)
		}
		for _, f := range l.fwdLibs {
			dg.AddEdge(f.name, l.name)
		}
	}
	if _, err := dg.TopologicalSort(); err != nil {
		return fmt.Errorf("libraries: %w", err)
	}
	return nil
}

func loadInstall(g *Graph, doc *installDoc) error {
	if doc == nil {
		// No install block: everything is installed. Headers come from a
		// CUE map, so order them by name for determinism.
		names := make([]string, 0, len(g.headers))
		for name := range g.headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			g.installedHeaders = append(g.installedHeaders, g.headers[name])
		}
		g.installedLibs = append([]*Library(nil), g.libOrder...)
		return nil
	}

	for _, name := range doc.Headers {
		h, ok := g.headers[name]
		if !ok {
			return &UnknownEntityError{Kind: "header", Name: name, Where: "install"}
		}
		g.installedHeaders = append(g.installedHeaders, h)
	}
	for _, name := range doc.Libraries {
		l, ok := g.libs[name]
		if !ok {
			return &UnknownEntityError{Kind: "library", Name: name, Where: "install"}
		}
		g.installedLibs = append(g.installedLibs, l)
	}
	return nil
}

func loadExport(g *Graph, index int, exp exportDoc) (*pkgconfig.Descriptor, error) {
	where := fmt.Sprintf("pkgconfig export %d", index)
	if exp.Name != "" {
		where = fmt.Sprintf("pkgconfig export %q", exp.Name)
	}

	spec := pkgconfig.DescriptorSpec{
		Name:     exp.Name,
		DescName: exp.DescName,
		Desc:     exp.Desc,
		URL:      exp.URL,
		Version:  exp.Version,
		Lang:     exp.Lang,
		AutoFill: exp.AutoFill,

		Options:            exp.Options,
		LinkOptions:        exp.LinkOptions,
		LinkOptionsPrivate: exp.LinkOptionsPrivate,
	}

	// Nil slices stay nil so auto-fill can tell "unset" from "empty".
	if exp.Includes != nil {
		spec.Includes = make([]pkgconfig.HeaderDir, 0, len(exp.Includes))
		for _, name := range exp.Includes {
			h, ok := g.headers[name]
			if !ok {
				return nil, &UnknownEntityError{Kind: "header", Name: name, Where: where}
			}
			spec.Includes = append(spec.Includes, h)
		}
	}
	libs, err := resolveLibs(g, where, exp.Libs)
	if err != nil {
		return nil, err
	}
	spec.Libs = libs
	if spec.LibsPrivate, err = resolveLibs(g, where, exp.LibsPrivate); err != nil {
		return nil, err
	}

	if spec.Requires, err = resolveRefs(g, where, exp.Requires); err != nil {
		return nil, err
	}
	if spec.RequiresPrivate, err = resolveRefs(g, where, exp.RequiresPrivate); err != nil {
		return nil, err
	}
	if spec.Conflicts, err = resolveRefs(g, where, exp.Conflicts); err != nil {
		return nil, err
	}

	return pkgconfig.NewDescriptor(spec)
}

func resolveLibs(g *Graph, where string, names []string) ([]pkgconfig.Library, error) {
	if names == nil {
		return nil, nil
	}
	out := make([]pkgconfig.Library, 0, len(names))
	for _, name := range names {
		l, ok := g.libs[name]
		if !ok {
			return nil, &UnknownEntityError{Kind: "library", Name: name, Where: where}
		}
		out = append(out, l)
	}
	return out, nil
}

// resolveRefs turns manifest package references into PackageRef variants.
// A name that hits the catalog resolves to the catalog shape; anything
// else is a plain pkg-config requirement.
func resolveRefs(g *Graph, where string, docs []pkgRefDoc) ([]pkgconfig.PackageRef, error) {
	if docs == nil {
		return nil, nil
	}
	out := make([]pkgconfig.PackageRef, 0, len(docs))
	for _, rd := range docs {
		if sys, ok := g.systems[rd.Name]; ok {
			if rd.Version != "" {
				return nil, fmt.Errorf("%s: system package %q cannot take a version constraint", where, rd.Name)
			}
			out = append(out, pkgconfig.SystemRef(sys))
			continue
		}
		if pc, ok := g.pcPkgs[rd.Name]; ok {
			if rd.Version != "" {
				return nil, fmt.Errorf("%s: package %q is constrained in the catalog; drop the inline version", where, rd.Name)
			}
			out = append(out, pkgconfig.PkgConfigRef(pc))
			continue
		}
		if rd.Version == "" {
			out = append(out, pkgconfig.NameRef(rd.Name))
			continue
		}
		set, err := verspec.ParseSet(rd.Version)
		if err != nil {
			return nil, fmt.Errorf("%s: package %q: %w", where, rd.Name, err)
		}
		out = append(out, pkgconfig.VersionedRef(rd.Name, set))
	}
	return out, nil
}
