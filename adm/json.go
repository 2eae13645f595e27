package adm

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.amprs.dev/ari/ari"
	"go.amprs.dev/ari/aritext"
)

// sectionNames lists every recognized top-level ADM JSON section, in the
// fixed order their entries are assigned sequential nicknames.
var sectionNames = []string{"const", "ctrl", "edd", "mac", "oper", "rptt", "tblt", "var"}

// Decode parses a single ADM JSON document. Keys are matched
// case-insensitively, mirroring the reference decoder's tolerance of
// ADMs authored with inconsistent key casing.
func Decode(data []byte) (*File, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("adm: parse JSON: %w", err)
	}

	return decodeFile(foldKeys(raw))
}

// foldKeys case-folds every key of m (recursively is unnecessary; ADM
// JSON only relies on case-insensitivity at the top level and within
// each section entry, both handled by callers re-folding nested maps).
func foldKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}

	return out
}

func decodeFile(doc map[string]any) (*File, error) {
	name, _ := doc["name"].(string)
	namespace, _ := doc["namespace"].(string)
	if name == "" && namespace == "" {
		return nil, fmt.Errorf("%w: ADM document has neither name nor namespace", ErrMissingMetadata)
	}
	if namespace == "" {
		namespace = name
	}
	if name == "" {
		name = namespace
	}

	version, _ := doc["version"].(string)
	f := &File{Name: name, Namespace: namespace, Version: version}

	if uses, ok := doc["uses"].([]any); ok {
		for _, u := range uses {
			if s, ok := u.(string); ok {
				f.Uses = append(f.Uses, s)
			}
		}
	}

	if err := decodeSections(doc, f); err != nil {
		return nil, fmt.Errorf("adm: %s: %w", name, err)
	}

	return f, nil
}

func decodeSections(doc map[string]any, f *File) error {
	for _, section := range sectionNames {
		items, ok := doc[section].([]any)
		if !ok {
			continue
		}

		seen := map[string]bool{}
		for enum, raw := range items {
			entry, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("%s[%d]: expected object", section, enum)
			}
			entry = foldKeys(entry)

			obj, err := decodeObject(entry, uint64(enum))
			if err != nil {
				return fmt.Errorf("%s[%d]: %w", section, enum, err)
			}
			if seen[ariutilNormalize(obj.Name)] {
				return fmt.Errorf("%w: %s %q", ErrDuplicateName, section, obj.Name)
			}
			seen[ariutilNormalize(obj.Name)] = true

			if err := decodeSectionEntry(f, section, obj, entry); err != nil {
				return fmt.Errorf("%s %q: %w", section, obj.Name, err)
			}
		}
	}

	return nil
}

func ariutilNormalize(s string) string { return normalizeIdent(s) }

func decodeObject(entry map[string]any, enum uint64) (Object, error) {
	name, _ := entry["name"].(string)
	if name == "" {
		return Object{}, fmt.Errorf("%w: entry has no name", ErrMissingMetadata)
	}
	desc, _ := entry["description"].(string)

	return Object{Name: name, Enum: enum, Description: desc}, nil
}

func decodeSectionEntry(f *File, section string, obj Object, entry map[string]any) error {
	switch section {
	case "const":
		t, val, err := decodeTypedValue(entry)
		if err != nil {
			return err
		}
		f.Consts = append(f.Consts, Const{Object: obj, Type: t, Value: val})
	case "ctrl":
		parms, err := decodeParms(entry)
		if err != nil {
			return err
		}
		f.Ctrls = append(f.Ctrls, Ctrl{Object: obj, Parms: parms})
	case "edd":
		t, _ := entry["type"].(string)
		typ, _ := ari.ParseStructType(t)
		parms, err := decodeParms(entry)
		if err != nil {
			return err
		}
		f.Edds = append(f.Edds, Edd{Object: obj, Type: typ, Parms: parms})
	case "var":
		t, _ := entry["type"].(string)
		typ, _ := ari.ParseStructType(t)
		init, err := decodeInit(entry)
		if err != nil {
			return err
		}
		f.Vars = append(f.Vars, Var{Object: obj, Type: typ, Init: init})
	case "mac":
		parms, err := decodeParms(entry)
		if err != nil {
			return err
		}
		action, err := decodeRefList(entry, "action")
		if err != nil {
			return err
		}
		f.Macs = append(f.Macs, Mac{Object: obj, Parms: parms, Action: action})
	case "oper":
		parms, err := decodeOperParms(entry)
		if err != nil {
			return err
		}
		rt, _ := entry["result-type"].(string)
		typ, _ := ari.ParseStructType(rt)
		f.Opers = append(f.Opers, Oper{Object: obj, Parms: parms, ResultType: typ})
	case "rptt":
		parms, err := decodeParms(entry)
		if err != nil {
			return err
		}
		def, err := decodeRefList(entry, "definition")
		if err != nil {
			return err
		}
		f.Rptts = append(f.Rptts, Rptt{Object: obj, Parms: parms, Definition: def})
	case "tblt":
		cols, err := decodeColumns(entry)
		if err != nil {
			return err
		}
		f.Tblts = append(f.Tblts, Tblt{Object: obj, Columns: cols})
	}

	return nil
}

func decodeTypedValue(entry map[string]any) (ari.StructType, ari.ARI, error) {
	t, _ := entry["type"].(string)
	typ, ok := ari.ParseStructType(t)
	if !ok {
		return 0, nil, fmt.Errorf("%w: unknown type %q", ErrMissingMetadata, t)
	}

	valText, _ := entry["value"].(string)
	val, err := aritext.Decode(valText)
	if err != nil {
		return 0, nil, fmt.Errorf("value: %w", err)
	}

	return typ, val, nil
}

func decodeInit(entry map[string]any) (*ari.EXPR, error) {
	text, ok := entry["init"].(string)
	if !ok || text == "" {
		return nil, nil
	}
	val, err := aritext.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	lit, ok := val.(*ari.LiteralARI)
	if !ok || lit.StructType != ari.EXPR {
		return nil, fmt.Errorf("init: expected an EXPR literal")
	}

	return lit.Value.(*ari.EXPR), nil
}

func decodeParms(entry map[string]any) (*ari.TNVC, error) {
	items, ok := entry["parmspec"].([]any)
	if !ok {
		return nil, nil
	}

	tnvc := &ari.TNVC{}
	for _, raw := range items {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		m = foldKeys(m)
		name, _ := m["name"].(string)
		typeName, _ := m["type"].(string)
		typ, _ := ari.ParseStructType(typeName)

		var val ari.ARI
		if defaultText, ok := m["default"].(string); ok {
			v, err := aritext.Decode(defaultText)
			if err != nil {
				return nil, fmt.Errorf("parm %q default: %w", name, err)
			}
			val = v
		} else {
			val = &ari.LiteralARI{StructType: ari.UNK}
		}

		tnvc.Parms = append(tnvc.Parms, ari.Parm{Type: &typ, Name: name, Value: val})
	}

	return tnvc, nil
}

func decodeOperParms(entry map[string]any) ([]OperParm, error) {
	items, ok := entry["in-type"].([]any)
	if !ok {
		return nil, nil
	}

	var parms []OperParm
	for i, raw := range items {
		typeName, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("in-type[%d]: expected string", i)
		}
		typ, ok := ari.ParseStructType(typeName)
		if !ok {
			return nil, fmt.Errorf("in-type[%d]: unknown type %q", i, typeName)
		}
		parms = append(parms, OperParm{Name: fmt.Sprintf("operand%d", i), Type: typ})
	}

	return parms, nil
}

func decodeColumns(entry map[string]any) ([]TypeNameItem, error) {
	items, ok := entry["columns"].([]any)
	if !ok {
		return nil, nil
	}

	var cols []TypeNameItem
	for _, raw := range items {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		m = foldKeys(m)
		name, _ := m["name"].(string)
		typeName, _ := m["type"].(string)
		typ, _ := ari.ParseStructType(typeName)
		cols = append(cols, TypeNameItem{Name: name, Type: typ})
	}

	return cols, nil
}

// Encode renders f back to ADM JSON, at the given indent width (0 for
// compact single-line output). It is the inverse of [Decode]: every field
// [Decode] reads from a document has a corresponding writer here.
func Encode(f *File, indent int) ([]byte, error) {
	doc := map[string]any{"name": f.Name, "namespace": f.Namespace}
	if f.Version != "" {
		doc["version"] = f.Version
	}
	if len(f.Uses) > 0 {
		doc["uses"] = f.Uses
	}

	if err := encodeSections(f, doc); err != nil {
		return nil, fmt.Errorf("adm: %s: %w", f.Name, err)
	}

	if indent <= 0 {
		return json.Marshal(doc)
	}

	return json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
}

func encodeSections(f *File, doc map[string]any) error {
	if len(f.Consts) > 0 {
		items := make([]any, len(f.Consts))
		for i, c := range f.Consts {
			valText, err := aritext.EncodeString(c.Value)
			if err != nil {
				return fmt.Errorf("const %q value: %w", c.Name, err)
			}
			items[i] = mergeMap(encodeObject(c.Object), map[string]any{
				"type": c.Type.String(), "value": valText,
			})
		}
		doc["const"] = items
	}

	if len(f.Ctrls) > 0 {
		items := make([]any, len(f.Ctrls))
		for i, c := range f.Ctrls {
			m := encodeObject(c.Object)
			if c.Parms != nil {
				parmspec, err := encodeParms(c.Parms)
				if err != nil {
					return fmt.Errorf("ctrl %q: %w", c.Name, err)
				}
				m["parmspec"] = parmspec
			}
			items[i] = m
		}
		doc["ctrl"] = items
	}

	if len(f.Edds) > 0 {
		items := make([]any, len(f.Edds))
		for i, e := range f.Edds {
			m := mergeMap(encodeObject(e.Object), map[string]any{"type": e.Type.String()})
			if e.Parms != nil {
				parmspec, err := encodeParms(e.Parms)
				if err != nil {
					return fmt.Errorf("edd %q: %w", e.Name, err)
				}
				m["parmspec"] = parmspec
			}
			items[i] = m
		}
		doc["edd"] = items
	}

	if len(f.Vars) > 0 {
		items := make([]any, len(f.Vars))
		for i, v := range f.Vars {
			m := mergeMap(encodeObject(v.Object), map[string]any{"type": v.Type.String()})
			if v.Init != nil {
				text, err := aritext.EncodeString(&ari.LiteralARI{StructType: ari.EXPR, Value: v.Init})
				if err != nil {
					return fmt.Errorf("var %q init: %w", v.Name, err)
				}
				m["init"] = text
			}
			items[i] = m
		}
		doc["var"] = items
	}

	if len(f.Macs) > 0 {
		items := make([]any, len(f.Macs))
		for i, mac := range f.Macs {
			m := encodeObject(mac.Object)
			if mac.Parms != nil {
				parmspec, err := encodeParms(mac.Parms)
				if err != nil {
					return fmt.Errorf("mac %q: %w", mac.Name, err)
				}
				m["parmspec"] = parmspec
			}
			action, err := encodeRefList(mac.Action)
			if err != nil {
				return fmt.Errorf("mac %q action: %w", mac.Name, err)
			}
			m["action"] = action
			items[i] = m
		}
		doc["mac"] = items
	}

	if len(f.Opers) > 0 {
		items := make([]any, len(f.Opers))
		for i, o := range f.Opers {
			inType := make([]string, len(o.Parms))
			for j, p := range o.Parms {
				inType[j] = p.Type.String()
			}
			items[i] = mergeMap(encodeObject(o.Object), map[string]any{
				"in-type": inType, "result-type": o.ResultType.String(),
			})
		}
		doc["oper"] = items
	}

	if len(f.Rptts) > 0 {
		items := make([]any, len(f.Rptts))
		for i, r := range f.Rptts {
			m := encodeObject(r.Object)
			if r.Parms != nil {
				parmspec, err := encodeParms(r.Parms)
				if err != nil {
					return fmt.Errorf("rptt %q: %w", r.Name, err)
				}
				m["parmspec"] = parmspec
			}
			def, err := encodeRefList(r.Definition)
			if err != nil {
				return fmt.Errorf("rptt %q definition: %w", r.Name, err)
			}
			m["definition"] = def
			items[i] = m
		}
		doc["rptt"] = items
	}

	if len(f.Tblts) > 0 {
		items := make([]any, len(f.Tblts))
		for i, t := range f.Tblts {
			cols := make([]any, len(t.Columns))
			for j, c := range t.Columns {
				cols[j] = map[string]any{"name": c.Name, "type": c.Type.String()}
			}
			items[i] = mergeMap(encodeObject(t.Object), map[string]any{"columns": cols})
		}
		doc["tblt"] = items
	}

	return nil
}

func encodeObject(o Object) map[string]any {
	m := map[string]any{"name": o.Name}
	if o.Description != "" {
		m["description"] = o.Description
	}

	return m
}

func mergeMap(m map[string]any, extra map[string]any) map[string]any {
	for k, v := range extra {
		m[k] = v
	}

	return m
}

func encodeParms(t *ari.TNVC) ([]any, error) {
	items := make([]any, len(t.Parms))
	for i, p := range t.Parms {
		m := map[string]any{"name": p.Name}
		if p.Type != nil {
			m["type"] = p.Type.String()
		}
		if lit, ok := p.Value.(*ari.LiteralARI); !ok || lit.StructType != ari.UNK {
			text, err := aritext.EncodeString(p.Value)
			if err != nil {
				return nil, fmt.Errorf("parm %q default: %w", p.Name, err)
			}
			m["default"] = text
		}
		items[i] = m
	}

	return items, nil
}

func encodeRefList(refs []Ref) ([]string, error) {
	out := make([]string, len(refs))
	for i, r := range refs {
		text, err := encodeRef(r)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = text
	}

	return out, nil
}

func encodeRef(r Ref) (string, error) {
	ref := &ari.ReferenceARI{Identity: ari.Identity{Namespace: r.Namespace, Kind: r.Kind, Name: r.Name}}

	if r.Params != nil {
		tnvc := &ari.TNVC{}
		for _, p := range r.Params {
			val, err := aritext.Decode(p.Value)
			if err != nil {
				return "", fmt.Errorf("param %q: %w", p.Value, err)
			}
			tnvc.Parms = append(tnvc.Parms, ari.Parm{Value: val})
		}
		ref.Params = tnvc
	}

	return aritext.EncodeString(ref)
}

func decodeRefList(entry map[string]any, key string) ([]Ref, error) {
	items, ok := entry[key].([]any)
	if !ok {
		return nil, nil
	}

	var refs []Ref
	for i, raw := range items {
		text, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected ARI text string", key, i)
		}
		val, err := aritext.Decode(text)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		ref, ok := val.(*ari.ReferenceARI)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected a reference ARI", key, i)
		}

		r := Ref{Kind: ref.Identity.Kind, Name: fmt.Sprint(ref.Identity.Name)}
		if ns, ok := ref.Identity.Namespace.(string); ok {
			r.Namespace = ns
		}
		if ref.Params != nil {
			for _, p := range ref.Params.Parms {
				text, err := aritext.EncodeString(p.Value)
				if err != nil {
					return nil, fmt.Errorf("%s[%d] param: %w", key, i, err)
				}
				r.Params = append(r.Params, RefParam{Value: text})
			}
		}
		refs = append(refs, r)
	}

	return refs, nil
}
