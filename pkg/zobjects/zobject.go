// Package zobjects maps between the generic dict wire shape of the
// Zimbra API and typed entity values (Account, Domain,
// DistributionList, Signature...).
//
// Known wire attributes are enumerated as struct fields; anything the
// server adds beyond them lands in an Extra side map so newer servers
// do not break decoding. Generic <a n="...">...</a> properties are kept
// in a Properties map, coalescing repeated names into a list.
package zobjects

import (
	"reflect"
	"sort"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

var (
	// ErrTypeMismatch is returned when comparing entities of
	// different types.
	ErrTypeMismatch = errors.New("cannot compare entities of different types")

	// ErrNoValidID is returned when comparing entities that lack a
	// UUID-shaped id.
	ErrNoValidID = errors.New(`both comparees should have a Zimbra UUID as "id" attribute`)

	// ErrNotEnoughInformation is returned when an operation needs
	// attributes the entity does not carry.
	ErrNotEnoughInformation = errors.New("not enough information on the entity")
)

// Properties holds the generic named attributes of an entity. A name
// repeated on the wire maps to a []interface{} value.
type Properties map[string]interface{}

// Entity is implemented by every Zimbra domain object.
type Entity interface {
	// TagName is the XML tag the entity serializes to.
	TagName() string

	selectorAttrs() []selectorAttr
	entityID() string
	base() *zobject
}

type selectorAttr struct {
	name  string
	value string
}

// zobject carries the parts shared by all entities: the property map,
// the unknown-attribute side map and the raw wire dict.
type zobject struct {
	props Properties
	extra map[string]interface{}
	full  soap.Params
}

func (z *zobject) base() *zobject { return z }

// Property returns a named property, or an error if the entity does
// not carry it.
func (z *zobject) Property(name string) (interface{}, error) {
	v, ok := z.props[name]
	if !ok {
		return nil, errors.Errorf("no such property %q", name)
	}
	return v, nil
}

// PropertyOr returns a named property, or def when absent.
func (z *zobject) PropertyOr(name string, def interface{}) interface{} {
	if v, ok := z.props[name]; ok {
		return v
	}
	return def
}

// PropertyAsList returns a property normalized to a list: empty when
// absent, one element when single-valued.
func (z *zobject) PropertyAsList(name string) []interface{} {
	v, ok := z.props[name]
	if !ok {
		return nil
	}
	return soap.AsList(v)
}

func (z *zobject) HasProperty(name string) bool {
	_, ok := z.props[name]
	return ok
}

// SetProperty sets a property, coercing wire literals to base types.
func (z *zobject) SetProperty(name string, value interface{}) {
	if z.props == nil {
		z.props = Properties{}
	}
	z.props[name] = soap.AutoType(value)
}

// Properties exposes the whole property map.
func (z *zobject) Properties() Properties { return z.props }

// Extra exposes the wire attributes that matched no known field.
func (z *zobject) Extra() map[string]interface{} { return z.extra }

// FullData is the raw dict the entity was parsed from, nil for
// caller-constructed entities.
func (z *zobject) FullData() soap.Params { return z.full }

// IsZimbraID tells whether s looks like a Zimbra UUID, e.g.
// d78fd9c9-f000-440b-bce6-ea938d40fa2d.
func IsZimbraID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Equal compares two entities by id. It only yields a verdict when both
// are of the same type and both expose a UUID-shaped id; anything else
// is an error, not a false.
func Equal(a, b Entity) (bool, error) {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false, ErrTypeMismatch
	}
	if !IsZimbraID(a.entityID()) || !IsZimbraID(b.entityID()) {
		return false, ErrNoValidID
	}
	return a.entityID() == b.entityID(), nil
}

// ToSelector serializes the entity to the {by, _content} shape that
// addresses it in a request, picking the first selector attribute that
// is set. Identity, Signature and Mailbox override this with their
// historical bare shapes.
func ToSelector(e Entity) (soap.Params, error) {
	for _, attr := range e.selectorAttrs() {
		if attr.value != "" {
			return soap.Params{"by": attr.name, "_content": attr.value}, nil
		}
	}
	return nil, selectorError(e)
}

func selectorError(e Entity) error {
	names := make([]string, 0, len(e.selectorAttrs()))
	for _, attr := range e.selectorAttrs() {
		names = append(names, attr.name)
	}
	return errors.Errorf("at least one of %v has to be set on the %s", names, e.TagName())
}

// decodeEntity populates a typed entity from a wire dict: the "a"
// property container is parsed into the Properties map (attrKey names
// the attribute holding the property name, "n" for most entities), the
// remaining keys are decoded into the known fields and whatever is left
// goes to the Extra side map.
func decodeEntity(d soap.Params, out Entity, attrKey string) error {
	if d == nil {
		return errors.New("expecting a dict, got nil")
	}
	z := out.base()
	z.full = d
	z.props = parseProperties(d["a"], attrKey)

	rest := make(map[string]interface{}, len(d))
	for k, v := range d {
		if k == "a" || k == "_content" {
			continue
		}
		rest[k] = v
	}

	md := &mapstructure.Metadata{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		Metadata:         md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(rest); err != nil {
		return errors.Wrapf(err, "cannot decode %s", out.TagName())
	}

	for _, k := range md.Unused {
		if z.extra == nil {
			z.extra = make(map[string]interface{})
		}
		z.extra[k] = rest[k]
	}
	return nil
}

func parseProperties(v interface{}, attrKey string) Properties {
	props := Properties{}
	for _, child := range soap.AsList(v) {
		tag, ok := child.(soap.Params)
		if !ok {
			continue
		}
		name, _ := tag[attrKey].(string)
		if name == "" {
			continue
		}
		value := soap.AutoType(tag["_content"])

		if prev, ok := props[name]; ok {
			if list, ok := prev.([]interface{}); ok {
				props[name] = append(list, value)
			} else {
				props[name] = []interface{}{prev, value}
			}
		} else {
			props[name] = value
		}
	}
	return props
}

// attrList converts a name→value map to the list of <a> property tags
// used by Create/Modify requests.
func attrList(attrs map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]interface{}, 0, len(attrs))
	for _, k := range keys {
		out = append(out, soap.Params{"n": k, "_content": soap.AutoUntype(attrs[k])})
	}
	return out
}

// AttrList is attrList for callers outside the package building raw
// requests.
func AttrList(attrs map[string]interface{}) []interface{} { return attrList(attrs) }
