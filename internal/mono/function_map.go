package mono

import (
	"fmt"
	"maps"
	"slices"

	"ember/internal/types"
)

// FunctionID identifies a function declaration for the lifetime of a compilation unit.
type FunctionID uint32

// FunctionInstance is one monomorphized translation of a function.
type FunctionInstance struct {
	Args    []types.Type `msgpack:"args" yaml:"args"`
	Returns types.Type   `msgpack:"returns" yaml:"returns"`
	// Body holds the translated target text of the instance body.
	Body string `msgpack:"body" yaml:"body"`
}

// InstantiationKey is a comparable key for instances.
//
// Note: Go maps cannot use slices as keys, so we store a stable ArgsKey string.
type InstantiationKey struct {
	Fn      FunctionID
	ArgsKey string
}

// FunctionMap tracks every declared function id and the instances produced for it.
// Instance sequences are append-only.
type FunctionMap struct {
	instances map[FunctionID][]FunctionInstance
	index     map[InstantiationKey]int
	nextID    FunctionID
}

// NewFunctionMap creates a new empty FunctionMap.
func NewFunctionMap() *FunctionMap {
	return &FunctionMap{
		instances: make(map[FunctionID][]FunctionInstance),
		index:     make(map[InstantiationKey]int),
	}
}

// AddDeclaration allocates a fresh function id with an empty instance sequence.
func (m *FunctionMap) AddDeclaration() FunctionID {
	id := m.nextID
	m.nextID++
	m.instances[id] = nil
	return id
}

// AddInstance appends an instance for id and returns its index within the id's sequence.
// Adding a second instance with the same argument types panics: callers must
// consult Lookup first.
func (m *FunctionMap) AddInstance(id FunctionID, inst FunctionInstance) int {
	key := InstantiationKey{Fn: id, ArgsKey: types.Key(inst.Args)}
	if _, dup := m.index[key]; dup {
		panic(fmt.Sprintf("mono: duplicate instance %s for function %d", types.Labels(inst.Args), id))
	}
	inst.Args = slices.Clone(inst.Args)
	idx := len(m.instances[id])
	m.instances[id] = append(m.instances[id], inst)
	m.index[key] = idx
	return idx
}

// Get returns the instance sequence of id, or false if id was never declared.
func (m *FunctionMap) Get(id FunctionID) ([]FunctionInstance, bool) {
	insts, ok := m.instances[id]
	return insts, ok
}

// Lookup finds the instance of id whose argument types equal args positionally.
func (m *FunctionMap) Lookup(id FunctionID, args []types.Type) (int, FunctionInstance, bool) {
	idx, ok := m.index[InstantiationKey{Fn: id, ArgsKey: types.Key(args)}]
	if !ok {
		return 0, FunctionInstance{}, false
	}
	return idx, m.instances[id][idx], true
}

// Clone returns an independent copy that shares no mutable state with m.
func (m *FunctionMap) Clone() *FunctionMap {
	out := &FunctionMap{
		instances: make(map[FunctionID][]FunctionInstance, len(m.instances)),
		index:     maps.Clone(m.index),
		nextID:    m.nextID,
	}
	for id, insts := range m.instances {
		out.instances[id] = slices.Clone(insts)
	}
	return out
}

// Len returns the number of declared function ids.
func (m *FunctionMap) Len() int { return len(m.instances) }

// InstanceCount returns the total number of instances across all ids.
func (m *FunctionMap) InstanceCount() int {
	n := 0
	for _, insts := range m.instances {
		n += len(insts)
	}
	return n
}

// IDs returns all declared ids in ascending order.
func (m *FunctionMap) IDs() []FunctionID {
	ids := slices.Collect(maps.Keys(m.instances))
	slices.Sort(ids)
	return ids
}

// NextID reports the id the next declaration will receive.
func (m *FunctionMap) NextID() FunctionID { return m.nextID }
