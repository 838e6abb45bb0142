package vocabulary

import (
	"fmt"
	"regexp"
	"strings"
)

// Namespace binds a prefix to a namespace IRI.
type Namespace struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	URI    string `json:"uri" yaml:"uri"`
}

// String returns the namespace in SPARQL PREFIX declaration form.
func (n Namespace) String() string {
	return fmt.Sprintf("PREFIX %s: <%s>", n.Prefix, n.URI)
}

var (
	prefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)
	localPattern  = regexp.MustCompile(`^[A-Za-z0-9_]([A-Za-z0-9_.-]*[A-Za-z0-9_-])?$`)
)

// Validate reports whether the prefix and namespace IRI are usable.
func (n Namespace) Validate() error {
	if !prefixPattern.MatchString(n.Prefix) || strings.HasSuffix(n.Prefix, ".") {
		return fmt.Errorf("invalid namespace prefix %q", n.Prefix)
	}
	if n.URI == "" || strings.ContainsAny(n.URI, " <>\"{}|\\^`") {
		return fmt.Errorf("invalid namespace IRI %q for prefix %q", n.URI, n.Prefix)
	}
	return nil
}

// Namespaces is an immutable, ordered list of namespace bindings. The zero
// value (or nil) contracts nothing, so every IRI renders in full.
type Namespaces struct {
	list []Namespace
}

// NewNamespaces builds a namespace table. Later bindings for an already
// bound prefix replace the earlier one.
func NewNamespaces(namespaces ...Namespace) *Namespaces {
	ns := &Namespaces{}
	for _, n := range namespaces {
		ns.list = upsert(ns.list, n)
	}
	return ns
}

// DefaultNamespaces returns a fresh table holding the standard prefixes
// (xsd, rdf, rdfs, owl, geo, geof, uom, sf).
func DefaultNamespaces() *Namespaces {
	return NewNamespaces(
		Namespace{Prefix: "xsd", URI: XSDNamespace},
		Namespace{Prefix: "rdf", URI: RDFNamespace},
		Namespace{Prefix: "rdfs", URI: RDFSNamespace},
		Namespace{Prefix: "owl", URI: OWLNamespace},
		Namespace{Prefix: "geo", URI: GEONamespace},
		Namespace{Prefix: "geof", URI: GEOFNamespace},
		Namespace{Prefix: "uom", URI: UOMNamespace},
		Namespace{Prefix: "sf", URI: SFNamespace},
	)
}

// With returns a new table extended by the given bindings.
func (ns *Namespaces) With(namespaces ...Namespace) *Namespaces {
	out := &Namespaces{}
	if ns != nil {
		out.list = append(out.list, ns.list...)
	}
	for _, n := range namespaces {
		out.list = upsert(out.list, n)
	}
	return out
}

// List returns a copy of the bindings in declaration order.
func (ns *Namespaces) List() []Namespace {
	if ns == nil {
		return nil
	}
	out := make([]Namespace, len(ns.list))
	copy(out, ns.list)
	return out
}

// Len returns the number of bindings.
func (ns *Namespaces) Len() int {
	if ns == nil {
		return 0
	}
	return len(ns.list)
}

// Lookup returns the namespace IRI bound to prefix.
func (ns *Namespaces) Lookup(prefix string) (string, bool) {
	if ns == nil {
		return "", false
	}
	for _, n := range ns.list {
		if n.Prefix == prefix {
			return n.URI, true
		}
	}
	return "", false
}

// Contract turns an IRI into prefix:local form using the longest matching
// namespace. It returns false when no namespace matches or the remainder is
// not a valid local name.
func (ns *Namespaces) Contract(iri string) (string, bool) {
	if ns == nil {
		return "", false
	}
	best := -1
	for i, n := range ns.list {
		if !strings.HasPrefix(iri, n.URI) {
			continue
		}
		local := iri[len(n.URI):]
		if local == "" || !localPattern.MatchString(local) {
			continue
		}
		if best < 0 || len(n.URI) > len(ns.list[best].URI) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	n := ns.list[best]
	return n.Prefix + ":" + iri[len(n.URI):], true
}

// Expand turns a prefix:local name into a full IRI.
func (ns *Namespaces) Expand(qname string) (string, bool) {
	prefix, local, found := strings.Cut(qname, ":")
	if !found {
		return "", false
	}
	uri, ok := ns.Lookup(prefix)
	if !ok {
		return "", false
	}
	return uri + local, true
}

func upsert(list []Namespace, n Namespace) []Namespace {
	for i := range list {
		if list[i].Prefix == n.Prefix {
			list[i] = n
			return list
		}
	}
	return append(list, n)
}
