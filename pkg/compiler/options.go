package compiler

// Options control compilation and emission.
//
// ObjectID          - recognize the ObjectId identifier type by name.
// StrictRefs        - fail JSON-Schema emission on unresolvable references
//                     instead of degrading to a permissive schema.
// CollectionAliases - also emit a pluralized Array<T> alias per record.
// Registry          - shared registry for cross-type schema capability
//                     lookups; compiled types self-register when set.
type Options struct {
	ObjectID          bool `json:"object_id,omitempty" yaml:"object_id,omitempty" mapstructure:"object_id,omitempty"`
	StrictRefs        bool `json:"strict_refs,omitempty" yaml:"strict_refs,omitempty" mapstructure:"strict_refs,omitempty"`
	CollectionAliases bool `json:"collection_aliases,omitempty" yaml:"collection_aliases,omitempty" mapstructure:"collection_aliases,omitempty"`

	Registry *Registry `json:"-" yaml:"-" mapstructure:"-"`
}

// NewOptions returns the default option set.
func NewOptions() *Options {
	return &Options{
		ObjectID: true,
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithObjectID(enabled bool) Option { return func(o *Options) { o.ObjectID = enabled } }
func WithStrictRefs() Option           { return func(o *Options) { o.StrictRefs = true } }
func WithCollectionAliases() Option    { return func(o *Options) { o.CollectionAliases = true } }
func WithRegistry(r *Registry) Option  { return func(o *Options) { o.Registry = r } }
