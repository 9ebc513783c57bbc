// Package resolve maps import declarations to concrete project files.
// Resolution is a pure function of the declaration, the importing file's
// location, and the immutable project file set, so identical inputs always
// produce identical results.
package resolve

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/depscope/depscope/pyimports"
)

const initFile = "__init__.py"

// Resolver resolves import declarations against a discovered project file set.
type Resolver struct {
	root       string
	moduleBase string
	files      map[string]bool
}

// NewResolver creates a Resolver for a canonical project root and file set.
// An invalid module base is rejected here, once per analysis, never per import.
func NewResolver(root, moduleBase string, files []string) (*Resolver, error) {
	moduleBase = strings.TrimSpace(moduleBase)
	if strings.ContainsAny(moduleBase, `/\`) {
		return nil, fmt.Errorf("invalid module base %q: must be a dotted package name", moduleBase)
	}
	moduleBase = strings.Trim(moduleBase, ".")

	fileSet := make(map[string]bool, len(files))
	for _, f := range files {
		fileSet[f] = true
	}

	return &Resolver{root: root, moduleBase: moduleBase, files: fileSet}, nil
}

// Resolve maps one declaration from the given importer to the project files
// it depends on. An empty result means the import is external or unresolved;
// such imports contribute no node and no edge.
func (r *Resolver) Resolve(decl pyimports.Declaration, importerPath string) []string {
	switch d := decl.(type) {
	case pyimports.Relative:
		return r.resolveRelative(d, importerPath)
	case pyimports.Absolute:
		return r.resolveAbsolute(d)
	default:
		return nil
	}
}

// resolveRelative walks up Level package directories from the importer
// (level 1 is the importer's own package) and descends the dotted path.
func (r *Resolver) resolveRelative(d pyimports.Relative, importerPath string) []string {
	baseDir := filepath.Dir(importerPath)
	for i := 1; i < d.Level; i++ {
		baseDir = filepath.Dir(baseDir)
	}

	return r.resolveUnder(baseDir, d.Module, d.Names)
}

// resolveAbsolute tries module_base-qualified candidates first, then
// project-root candidates, then the longest dotted prefix naming a project
// package. The order is fixed so builds are reproducible.
func (r *Resolver) resolveAbsolute(d pyimports.Absolute) []string {
	if r.moduleBase != "" {
		if d.Module == r.moduleBase {
			if resolved := r.resolveUnder(r.root, "", d.Names); len(resolved) > 0 {
				return resolved
			}
		}
		if rest, ok := strings.CutPrefix(d.Module, r.moduleBase+"."); ok {
			if resolved := r.resolveUnder(r.root, rest, d.Names); len(resolved) > 0 {
				return resolved
			}
		}
	}

	if resolved := r.resolveUnder(r.root, d.Module, d.Names); len(resolved) > 0 {
		return resolved
	}

	if r.moduleBase != "" {
		if rest, ok := strings.CutPrefix(d.Module, r.moduleBase+"."); ok {
			if resolved := r.prefixFallback(rest); len(resolved) > 0 {
				return resolved
			}
		}
	}
	return r.prefixFallback(d.Module)
}

// resolveUnder resolves a dotted module path below dir. Imported names are
// tried as submodules of the target first; a name that is not a submodule
// falls back to the target itself (the name is defined in it).
func (r *Resolver) resolveUnder(dir, dotted string, names []string) []string {
	target := dir
	if dotted != "" {
		target = filepath.Join(dir, filepath.Join(strings.Split(dotted, ".")...))
	}

	if len(names) == 0 {
		if resolved, ok := r.lookupModule(target); ok {
			return []string{resolved}
		}
		return nil
	}

	var resolved []string
	for _, name := range names {
		if sub, ok := r.lookupModule(filepath.Join(target, name)); ok {
			resolved = append(resolved, sub)
			continue
		}
		if base, ok := r.lookupModule(target); ok {
			resolved = append(resolved, base)
		}
	}
	return resolved
}

// lookupModule maps an extensionless module path to a project file. When both
// a package directory and a same-named module file exist, the package's
// __init__.py wins; this tie-break is deterministic and documented.
func (r *Resolver) lookupModule(target string) (string, bool) {
	pkg := filepath.Join(target, initFile)
	if r.files[pkg] {
		return pkg, true
	}
	module := target + ".py"
	if r.files[module] {
		return module, true
	}
	return "", false
}

// prefixFallback resolves an import of a submodule path whose full form is
// not a project file to the longest project package prefix, mirroring how
// `import a.b.c` binds packages a and a.b on the way down.
func (r *Resolver) prefixFallback(dotted string) []string {
	parts := strings.Split(dotted, ".")
	for i := len(parts) - 1; i >= 1; i-- {
		candidate := filepath.Join(r.root, filepath.Join(parts[:i]...), initFile)
		if r.files[candidate] {
			return []string{candidate}
		}
	}
	return nil
}

// ModuleName derives the dotted module name displayed for a project file,
// qualified by the module base when configured.
func ModuleName(root, moduleBase, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}

	rel = strings.TrimSuffix(rel, ".py")
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) > 0 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}

	name := strings.Join(parts, ".")
	moduleBase = strings.Trim(strings.TrimSpace(moduleBase), ".")
	switch {
	case name == "" && moduleBase != "":
		return moduleBase
	case name == "":
		return filepath.Base(root)
	case moduleBase != "":
		return moduleBase + "." + name
	default:
		return name
	}
}
