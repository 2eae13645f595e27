package nickname

import (
	"fmt"
	"strings"

	"go.amprs.dev/ari/adm"
	"go.amprs.dev/ari/ari"
)

// AdmObjType is the compact object-kind enumeration used only for
// nickname packing. It is intentionally distinct from [ari.StructType]:
// the wire nickname packs a small, contiguous kind index rather than the
// sparser struct-type numbering.
type AdmObjType int

const (
	ObjConst AdmObjType = 0
	ObjCtrl  AdmObjType = 1
	ObjEdd   AdmObjType = 2
	ObjMac   AdmObjType = 3
	ObjOper  AdmObjType = 4
	ObjRptt  AdmObjType = 5
	ObjSbr   AdmObjType = 6
	ObjTblt  AdmObjType = 7
	ObjTbr   AdmObjType = 8
	ObjVar   AdmObjType = 9
	ObjMdat  AdmObjType = 10
)

const objTypeModulus = 20

var kindToObjType = map[ari.StructType]AdmObjType{
	ari.CONST: ObjConst,
	ari.CTRL:  ObjCtrl,
	ari.EDD:   ObjEdd,
	ari.MAC:   ObjMac,
	ari.OPER:  ObjOper,
	ari.RPTT:  ObjRptt,
	ari.SBR:   ObjSbr,
	ari.TBLT:  ObjTblt,
	ari.TBR:   ObjTbr,
	ari.VAR:   ObjVar,
	ari.MDAT:  ObjMdat,
}

var objTypeToSection = map[AdmObjType]string{
	ObjConst: "const", ObjCtrl: "ctrl", ObjEdd: "edd", ObjMac: "mac",
	ObjOper: "oper", ObjRptt: "rptt", ObjTblt: "tblt", ObjVar: "var",
}

// Mode selects which direction a [Converter] runs.
type Mode int

const (
	// ToNickname rewrites symbolic identities (string namespace/name)
	// into numeric nickname identities (ADM enum, packed object index).
	ToNickname Mode = iota
	// FromNickname rewrites numeric nickname identities back into
	// symbolic form.
	FromNickname
)

// Converter rewrites every [ari.ReferenceARI] reachable from a value
// between symbolic and nickname identity forms, resolving each reference
// against an [adm.Catalog].
type Converter struct {
	Catalog *adm.Catalog
	Mode    Mode
	// MustNickname requires every reference to resolve; when false, a
	// reference that cannot be resolved (e.g. referring to an ADM absent
	// from the catalog) is left unchanged instead of failing.
	MustNickname bool
}

// Convert rewrites value in place (for compound literals) and returns the
// possibly-replaced top-level value.
func (c *Converter) Convert(value ari.ARI) (ari.ARI, error) {
	switch v := value.(type) {
	case *ari.ReferenceARI:
		return c.convertReference(v)
	case *ari.LiteralARI:
		return c.convertLiteral(v)
	default:
		return value, nil
	}
}

func (c *Converter) convertLiteral(l *ari.LiteralARI) (ari.ARI, error) {
	switch l.StructType {
	case ari.AC:
		a := l.Value.(*ari.AC)
		if err := c.convertItems(a.Items); err != nil {
			return nil, err
		}
	case ari.TNVC:
		if err := c.convertTNVC(l.Value.(*ari.TNVC)); err != nil {
			return nil, err
		}
	case ari.EXPR:
		e := l.Value.(*ari.EXPR)
		if err := c.convertItems(e.Items.Items); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func (c *Converter) convertItems(items []ari.ARI) error {
	for i, item := range items {
		converted, err := c.Convert(item)
		if err != nil {
			return err
		}
		items[i] = converted
	}

	return nil
}

func (c *Converter) convertTNVC(t *ari.TNVC) error {
	for i, parm := range t.Parms {
		converted, err := c.Convert(parm.Value)
		if err != nil {
			return err
		}
		t.Parms[i].Value = converted
	}

	return nil
}

func (c *Converter) convertReference(r *ari.ReferenceARI) (ari.ARI, error) {
	objType, ok := kindToObjType[r.Identity.Kind]
	if !ok {
		return r, nil // not a resolvable managed-object kind (e.g. LIT)
	}

	var converted *ari.ReferenceARI
	var err error
	if c.Mode == ToNickname {
		converted, err = c.toNickname(r, objType)
	} else {
		converted, err = c.fromNickname(r, objType)
	}

	if err != nil {
		if c.MustNickname {
			return nil, err
		}

		return r, nil
	}

	if converted.Params != nil {
		if err := c.convertTNVC(converted.Params); err != nil {
			return nil, err
		}
	}

	return converted, nil
}

func (c *Converter) toNickname(r *ari.ReferenceARI, objType AdmObjType) (*ari.ReferenceARI, error) {
	nsName, ok := r.Identity.Namespace.(string)
	if !ok {
		return r, nil // already nickname form
	}
	objName, ok := r.Identity.Name.(string)
	if !ok {
		return nil, fmt.Errorf("%w: object name is not symbolic", ErrUnresolvable)
	}

	file, ok := c.Catalog.ByName(admName(nsName))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrADMNotFound, nsName)
	}

	section, ok := objTypeToSection[objType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported object kind for nicknaming", ErrUnresolvable)
	}

	index, err := c.Catalog.GetChild(admName(nsName), section, objName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	}

	out := *r
	out.Identity.Namespace = file.Enum*objTypeModulus + uint64(objType)
	out.Identity.Name = index

	return &out, nil
}

func (c *Converter) fromNickname(r *ari.ReferenceARI, objType AdmObjType) (*ari.ReferenceARI, error) {
	packedNS, ok := r.Identity.Namespace.(uint64)
	if !ok {
		return r, nil // already symbolic form
	}
	index, ok := r.Identity.Name.(uint64)
	if !ok {
		return nil, fmt.Errorf("%w: object name is not numeric", ErrUnresolvable)
	}

	admEnum := packedNS / objTypeModulus
	if AdmObjType(packedNS%objTypeModulus) != objType {
		return nil, fmt.Errorf("%w: packed namespace %d does not match object kind", ErrUnresolvable, packedNS)
	}

	file, ok := c.Catalog.ByEnum(admEnum)
	if !ok {
		return nil, fmt.Errorf("%w: enum %d", ErrADMNotFound, admEnum)
	}

	name, err := objectNameAt(file, objType, index)
	if err != nil {
		return nil, err
	}

	out := *r
	out.Identity.Namespace = registryPrefix + file.NormName()
	out.Identity.Name = name

	return &out, nil
}

// registryPrefix is the fixed IANA registry label FROM_NN prepends to every
// resolved namespace, regardless of whatever registry label (if any) the
// original symbolic form used going in.
const registryPrefix = "IANA:"

// admName strips a "prefix:adm_name" registry label (e.g. "IANA:amp_agent")
// down to the bare ADM name the catalog is keyed on. A namespace with no
// registry label passes through unchanged.
func admName(nsName string) string {
	if idx := strings.IndexByte(nsName, ':'); idx >= 0 {
		return nsName[idx+1:]
	}

	return nsName
}

func objectNameAt(f *adm.File, objType AdmObjType, index uint64) (string, error) {
	var names []string
	switch objType {
	case ObjConst:
		for _, o := range f.Consts {
			names = append(names, o.Name)
		}
	case ObjCtrl:
		for _, o := range f.Ctrls {
			names = append(names, o.Name)
		}
	case ObjEdd:
		for _, o := range f.Edds {
			names = append(names, o.Name)
		}
	case ObjMac:
		for _, o := range f.Macs {
			names = append(names, o.Name)
		}
	case ObjOper:
		for _, o := range f.Opers {
			names = append(names, o.Name)
		}
	case ObjRptt:
		for _, o := range f.Rptts {
			names = append(names, o.Name)
		}
	case ObjTblt:
		for _, o := range f.Tblts {
			names = append(names, o.Name)
		}
	case ObjVar:
		for _, o := range f.Vars {
			names = append(names, o.Name)
		}
	default:
		return "", fmt.Errorf("%w: unsupported object kind for nicknaming", ErrUnresolvable)
	}

	if index >= uint64(len(names)) {
		return "", fmt.Errorf("%w: index %d in section of size %d", ErrObjectNotFound, index, len(names))
	}

	return names[index], nil
}
