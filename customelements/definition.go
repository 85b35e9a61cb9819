package customelements

// State is an element's custom-element state (spec §4.7.3).
type State int

const (
	// Uncustomized is the state of a built-in element never eligible
	// for upgrade (no matching tag name will ever be defined for it).
	Uncustomized State = iota
	// Undefined is the state of an element whose tag name might later
	// gain a definition; it is tracked as an upgrade candidate.
	Undefined
	// Custom is the state after a successful upgrade.
	Custom
	// Failed is the state after the constructor callback errored.
	Failed
)

func (s State) String() string {
	switch s {
	case Uncustomized:
		return "uncustomized"
	case Undefined:
		return "undefined"
	case Custom:
		return "custom"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Callbacks holds the host-provided custom-element lifecycle hooks
// (spec §4.7's Definition.callbacks). Any of them may be nil.
type Callbacks struct {
	Constructor       func(el UpgradeTarget) error
	Connected         func(el UpgradeTarget)
	Disconnected      func(el UpgradeTarget)
	Adopted           func(el UpgradeTarget, oldDocument, newDocument any)
	AttributeChanged  func(el UpgradeTarget, name, namespace string, oldValue, newValue *string)
}

// Definition is a CustomElementDefinition (spec §4.7): identity is by
// (namespace, local name).
type Definition struct {
	TypeName         string
	LocalName        string
	Namespace        string
	Callbacks        Callbacks
	ObservedAttrs    map[string]bool
	DisableInternals bool
	DisableShadow    bool
}

// Observes reports whether name is in this definition's observed
// attribute set, used to decide whether to enqueue an
// attribute_changed reaction on a given write.
func (d *Definition) Observes(name string) bool {
	if d == nil {
		return false
	}
	return d.ObservedAttrs[name]
}

// key returns the (namespace, localName) identity used by Registry's
// definition map.
func key(namespace, localName string) string {
	return namespace + "\x00" + localName
}
