package constraint

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.amprs.dev/ari/adm"
	"go.amprs.dev/ari/ari"
	"go.amprs.dev/ari/ariutil"
)

func init() {
	Register("unique-adm-names", checkUniqueAdmNames)
	RegisterFile("same-file-name", checkSameFileName)
	RegisterFile("minimal-metadata", checkMinimalMetadata)
	RegisterFile("unique-object-names", checkUniqueObjectNames)
	RegisterFile("valid-type-name", checkValidTypeName)
	RegisterFile("valid-reference-ari", checkValidReferenceARI)
}

// checkUniqueAdmNames enforces three independent uniqueness constraints
// across the catalog's committed files: normalized name, normalized
// namespace, and enum. Each is a distinct axis a collision can occur on;
// a catalog that admits two ADMs sharing a namespace or an enum is just as
// broken as one sharing a name, even when the names themselves differ.
func checkUniqueAdmNames(cat *adm.Catalog) []Issue {
	byName := map[string]string{}
	byNamespace := map[string]string{}
	byEnum := map[uint64]string{}

	var issues []Issue
	for _, f := range cat.Files() {
		if prior, ok := byName[f.NormName()]; ok {
			issues = append(issues, Issue{
				Check: "unique-adm-names", Severity: SeverityError,
				Message: fmt.Sprintf("%q and %q share the same normalized name", prior, f.Name),
			})
		} else {
			byName[f.NormName()] = f.Name
		}

		ns := normalize(f.Namespace)
		if prior, ok := byNamespace[ns]; ok {
			issues = append(issues, Issue{
				Check: "unique-adm-names", Severity: SeverityError,
				Message: fmt.Sprintf("%q and %q share the same normalized namespace %q", prior, f.Name, ns),
			})
		} else {
			byNamespace[ns] = f.Name
		}

		if prior, ok := byEnum[f.Enum]; ok {
			issues = append(issues, Issue{
				Check: "unique-adm-names", Severity: SeverityError,
				Message: fmt.Sprintf("%q and %q share the same enum %d", prior, f.Name, f.Enum),
			})
		} else {
			byEnum[f.Enum] = f.Name
		}
	}

	return issues
}

// checkSameFileName reports an ADM whose declared name, normalized, does
// not match the basename (without extension) of the path it was loaded
// from. A [adm.File] with no recorded path (e.g. built directly rather
// than loaded via [adm.Catalog.LoadFile]/[adm.Catalog.LoadDir]) is not
// checkable and is skipped.
func checkSameFileName(cat *adm.Catalog, f *adm.File) []Issue {
	if f.AbsFilePath == "" {
		return nil
	}

	base := filepath.Base(f.AbsFilePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if normalize(base) != f.NormName() {
		return []Issue{{
			Check: "same-file-name", Severity: SeverityError, ADM: f.Name,
			Message: fmt.Sprintf("declared name %q does not match file name %q", f.Name, base),
		}}
	}

	return nil
}

func checkMinimalMetadata(cat *adm.Catalog, f *adm.File) []Issue {
	var issues []Issue
	if f.Name == "" {
		issues = append(issues, Issue{
			Check: "minimal-metadata", Severity: SeverityError, ADM: f.Name,
			Message: "missing name",
		})
	}
	if f.Namespace == "" {
		issues = append(issues, Issue{
			Check: "minimal-metadata", Severity: SeverityError, ADM: f.Name,
			Message: "missing namespace",
		})
	}
	// Enum is assigned positionally at commit time (zero is the legitimate
	// value for the first ADM admitted to a catalog), so a zero value is
	// not itself evidence of a missing enum; instead check the catalog's
	// own bookkeeping invariant, that f is reachable by the enum it was
	// given.
	if registered, ok := cat.ByEnum(f.Enum); !ok || registered != f {
		issues = append(issues, Issue{
			Check: "minimal-metadata", Severity: SeverityError, ADM: f.Name,
			Message: "missing enum",
		})
	}
	if f.Version == "" {
		issues = append(issues, Issue{
			Check: "minimal-metadata", Severity: SeverityError, ADM: f.Name,
			Message: "missing version",
		})
	}

	return issues
}

func checkUniqueObjectNames(cat *adm.Catalog, f *adm.File) []Issue {
	var issues []Issue

	check := func(section string, names []string) {
		seen := map[string]bool{}
		for _, name := range names {
			norm := normalize(name)
			if seen[norm] {
				issues = append(issues, Issue{
					Check: "unique-object-names", Severity: SeverityError, ADM: f.Name,
					Message: fmt.Sprintf("duplicate name %q in %s", name, section),
				})

				continue
			}
			seen[norm] = true
		}
	}

	check("const", namesOf(f.Consts, func(o adm.Const) string { return o.Name }))
	check("ctrl", namesOf(f.Ctrls, func(o adm.Ctrl) string { return o.Name }))
	check("edd", namesOf(f.Edds, func(o adm.Edd) string { return o.Name }))
	check("mac", namesOf(f.Macs, func(o adm.Mac) string { return o.Name }))
	check("oper", namesOf(f.Opers, func(o adm.Oper) string { return o.Name }))
	check("rptt", namesOf(f.Rptts, func(o adm.Rptt) string { return o.Name }))
	check("tblt", namesOf(f.Tblts, func(o adm.Tblt) string { return o.Name }))
	check("var", namesOf(f.Vars, func(o adm.Var) string { return o.Name }))

	return issues
}

func namesOf[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}

	return out
}

// isStructTypeName reports whether t is one of the closed set of known
// [ari.StructType] variants, rather than merely one of the narrower set
// usable as a literal value: a "type" string names any ADM data type
// (including object kinds like CTRL appearing as an operator operand
// type), not just the types a [ari.LiteralARI] can carry.
func isStructTypeName(t ari.StructType) bool {
	_, ok := ari.ParseStructType(t.String())

	return ok
}

func checkValidTypeName(cat *adm.Catalog, f *adm.File) []Issue {
	var issues []Issue

	checkType := func(section, name string, t ari.StructType) {
		if !isStructTypeName(t) {
			issues = append(issues, Issue{
				Check: "valid-type-name", Severity: SeverityError, ADM: f.Name,
				Message: fmt.Sprintf("%s %q has unknown type %s", section, name, t),
			})
		}
	}

	checkParmspec := func(section, name string, parms *ari.TNVC) {
		if parms == nil {
			return
		}
		for _, p := range parms.Parms {
			if p.Type != nil {
				checkType(section+" parmspec", name+"."+p.Name, *p.Type)
			}
		}
	}

	for _, o := range f.Consts {
		checkType("const", o.Name, o.Type)
	}
	for _, o := range f.Ctrls {
		checkParmspec("ctrl", o.Name, o.Parms)
	}
	for _, o := range f.Edds {
		checkType("edd", o.Name, o.Type)
		checkParmspec("edd", o.Name, o.Parms)
	}
	for _, o := range f.Macs {
		checkParmspec("mac", o.Name, o.Parms)
	}
	for _, o := range f.Opers {
		checkType("oper result-type", o.Name, o.ResultType)
		for _, p := range o.Parms {
			checkType("oper in-type", o.Name+"."+p.Name, p.Type)
		}
	}
	for _, o := range f.Rptts {
		checkParmspec("rptt", o.Name, o.Parms)
	}
	for _, o := range f.Vars {
		checkType("var", o.Name, o.Type)
		if o.Init != nil {
			checkType("var initializer", o.Name, o.Init.ResultType)
		}
	}

	return issues
}

// kindSection maps an object kind to the ADM JSON section name it is
// declared under, the same mapping [adm.Catalog.GetChild] expects.
var kindSection = map[ari.StructType]string{
	ari.CONST: "const", ari.CTRL: "ctrl", ari.EDD: "edd", ari.MAC: "mac",
	ari.OPER: "oper", ari.RPTT: "rptt", ari.TBLT: "tblt", ari.VAR: "var",
}

// checkValidReferenceARI confirms that every embedded reference within a
// macro action or report template definition resolves to an existing child
// object of the kind it names, under an existing ADM.
func checkValidReferenceARI(cat *adm.Catalog, f *adm.File) []Issue {
	var issues []Issue

	checkRefs := func(section, owner string, refs []adm.Ref) {
		for _, ref := range refs {
			childSection, ok := kindSection[ref.Kind]
			if !ok {
				issues = append(issues, Issue{
					Check: "valid-reference-ari", Severity: SeverityError, ADM: f.Name,
					Message: fmt.Sprintf("%s %q references unsupported object kind %s", section, owner, ref.Kind),
				})

				continue
			}

			if _, err := cat.GetChild(ref.Namespace, childSection, ref.Name); err != nil {
				issues = append(issues, Issue{
					Check: "valid-reference-ari", Severity: SeverityError, ADM: f.Name,
					Message: fmt.Sprintf("%s %q references unresolvable %s/%s.%s: %v",
						section, owner, ref.Namespace, childSection, ref.Name, err),
				})
			}
		}
	}

	for _, m := range f.Macs {
		checkRefs("mac", m.Name, m.Action)
	}
	for _, r := range f.Rptts {
		checkRefs("rptt", r.Name, r.Definition)
	}

	return issues
}

func normalize(s string) string { return ariutil.NormalizeIdent(s) }
