package rbxdom

import (
	"errors"
	"fmt"
)

// Instance represents a single Roblox instance inside a DOM's arena. The
// zero value is not valid; instances are created through DOM.Insert or
// DOM.New.
type Instance struct {
	ref        Ref
	class      string
	name       string
	properties map[string]Value
	children   []Ref
	parent     Ref

	dom *DOM
}

// Ref returns the instance's stable identity token.
func (inst *Instance) Ref() Ref { return inst.ref }

// ClassName returns the instance's class.
func (inst *Instance) ClassName() string { return inst.class }

// Name returns the instance's display name, as given by InstanceBuilder.Name
// or SetName, or the class name when none is set. It is stored apart from
// the "Name" property that Get and Set read and write.
func (inst *Instance) Name() string {
	if inst.name == "" {
		return inst.class
	}
	return inst.name
}

// SetName sets the instance's display name.
func (inst *Instance) SetName(name string) { inst.name = name }

// Get returns the value of a property, or nil if it is not set.
func (inst *Instance) Get(property string) Value {
	return inst.properties[property]
}

// Set sets the value of a property. Setting a nil value deletes the
// property.
func (inst *Instance) Set(property string, value Value) {
	if value == nil {
		delete(inst.properties, property)
		return
	}
	inst.properties[property] = value
}

// Properties returns a copy of the instance's property map.
func (inst *Instance) Properties() map[string]Value {
	out := make(map[string]Value, len(inst.properties))
	for k, v := range inst.properties {
		out[k] = v
	}
	return out
}

// Parent returns the Ref of the instance's parent, or NullRef if it is a
// root of its DOM.
func (inst *Instance) Parent() Ref { return inst.parent }

// Children returns the ordered list of the instance's direct children.
func (inst *Instance) Children() []Ref {
	out := make([]Ref, len(inst.children))
	copy(out, inst.children)
	return out
}

// InstanceBuilder describes an instance to be created, before it is
// assigned a Ref and inserted into a DOM.
type InstanceBuilder struct {
	ClassName  string
	Name       string
	Properties map[string]Value
}

////////////////////////////////////////////////////////////////

// DOM owns an arena of Instances reachable by Ref, plus exactly one root
// instance created at construction. It is not safe for concurrent
// mutation; concurrent reads are fine provided no mutation is outstanding.
type DOM struct {
	root      Ref
	instances map[Ref]*Instance
	metadata  map[string]string
}

// NewDOM constructs a DOM containing exactly one root instance, described
// by builder.
func NewDOM(builder InstanceBuilder) *DOM {
	dom := &DOM{instances: make(map[Ref]*Instance), metadata: make(map[string]string)}
	root := dom.newInstance(builder)
	root.parent = NullRef
	dom.root = root.ref
	return dom
}

// Metadata returns the file-level key/value pairs carried alongside the
// instance tree (a binary file's META chunk, or an XML file's top-level
// <Meta> elements) — things like ExplicitAutoJoints that describe the file
// itself rather than any one instance.
func (dom *DOM) Metadata() map[string]string {
	out := make(map[string]string, len(dom.metadata))
	for k, v := range dom.metadata {
		out[k] = v
	}
	return out
}

// SetMetadata sets a file-level metadata key/value pair.
func (dom *DOM) SetMetadata(key, value string) {
	if dom.metadata == nil {
		dom.metadata = make(map[string]string)
	}
	dom.metadata[key] = value
}

// Root returns the Ref of the DOM's single root instance.
func (dom *DOM) Root() Ref { return dom.root }

func (dom *DOM) allocRef() Ref {
	for {
		r := NewRef()
		if _, exists := dom.instances[r]; !exists {
			return r
		}
	}
}

func (dom *DOM) newInstance(builder InstanceBuilder) *Instance {
	props := make(map[string]Value, len(builder.Properties))
	for k, v := range builder.Properties {
		props[k] = v
	}
	inst := &Instance{
		ref:        dom.allocRef(),
		class:      builder.ClassName,
		name:       builder.Name,
		properties: props,
		dom:        dom,
	}
	dom.instances[inst.ref] = inst
	return inst
}

// Get returns the instance identified by ref, or nil if it is not present
// in this DOM. The returned *Instance is the DOM's own, not a read-only
// view: Set on it changes the DOM.
func (dom *DOM) Get(ref Ref) *Instance {
	return dom.instances[ref]
}

var (
	// ErrParentNotFound is returned by Insert when the given parent Ref
	// does not exist in the DOM.
	ErrParentNotFound = errors.New("rbxdom: parent not found")
	// ErrRefNotFound is returned when an operation is given a Ref not
	// present in the DOM.
	ErrRefNotFound = errors.New("rbxdom: ref not found")
	// ErrRootDestroy is returned by Destroy when asked to destroy the root.
	ErrRootDestroy = errors.New("rbxdom: cannot destroy the root instance")
	// ErrCycle is returned by Transfer when the move would make an
	// instance its own ancestor.
	ErrCycle = errors.New("rbxdom: cannot move an instance beneath its own descendant")
)

// Insert creates a new instance described by builder as a child of
// parentRef, preserving child order, and returns its freshly allocated Ref.
func (dom *DOM) Insert(parentRef Ref, builder InstanceBuilder) (Ref, error) {
	parent, ok := dom.instances[parentRef]
	if !ok {
		return NullRef, fmt.Errorf("%w: %s", ErrParentNotFound, parentRef)
	}
	inst := dom.newInstance(builder)
	inst.parent = parentRef
	parent.children = append(parent.children, inst.ref)
	return inst.ref, nil
}

// Destroy removes the instance identified by ref and all of its
// descendants, updating the parent's child list.
func (dom *DOM) Destroy(ref Ref) error {
	inst, ok := dom.instances[ref]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRefNotFound, ref)
	}
	if ref == dom.root {
		return ErrRootDestroy
	}
	if parent, ok := dom.instances[inst.parent]; ok {
		parent.children = removeRef(parent.children, ref)
	}
	dom.destroySubtree(inst)
	return nil
}

func (dom *DOM) destroySubtree(inst *Instance) {
	for _, childRef := range inst.children {
		if child, ok := dom.instances[childRef]; ok {
			dom.destroySubtree(child)
		}
	}
	delete(dom.instances, inst.ref)
}

// Transfer moves the subtree rooted at ref to become a child of newParent,
// possibly in a different DOM. Instance identity (Ref) is preserved; the
// source DOM loses the subtree entirely.
func (dom *DOM) Transfer(ref Ref, target *DOM, newParent Ref) error {
	inst, ok := dom.instances[ref]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRefNotFound, ref)
	}
	newParentInst, ok := target.instances[newParent]
	if !ok {
		return fmt.Errorf("%w: %s", ErrParentNotFound, newParent)
	}
	if target == dom {
		if newParent == ref || isDescendant(dom, newParent, ref) {
			return ErrCycle
		}
	}

	if oldParent, ok := dom.instances[inst.parent]; ok {
		oldParent.children = removeRef(oldParent.children, ref)
	}

	dom.moveSubtree(inst, target)

	inst.parent = newParent
	inst.dom = target
	newParentInst.children = append(newParentInst.children, ref)
	return nil
}

func (dom *DOM) moveSubtree(inst *Instance, target *DOM) {
	delete(dom.instances, inst.ref)
	target.instances[inst.ref] = inst
	for _, childRef := range inst.children {
		if child, ok := dom.instances[childRef]; ok {
			dom.moveSubtree(child, target)
		} else if child, ok := target.instances[childRef]; ok {
			child.dom = target
		}
	}
}

// isDescendant reports whether candidate is a descendant of ancestor within
// dom.
func isDescendant(dom *DOM, candidate, ancestor Ref) bool {
	inst, ok := dom.instances[candidate]
	if !ok {
		return false
	}
	for p := inst.parent; !p.IsNull(); {
		if p == ancestor {
			return true
		}
		next, ok := dom.instances[p]
		if !ok {
			break
		}
		p = next.parent
	}
	return false
}

func removeRef(list []Ref, ref Ref) []Ref {
	for i, r := range list {
		if r == ref {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Descendants returns a lazily-produced depth-first sequence of every Ref
// reachable from ref, ref itself included, as an iterator function taking a
// yield callback. Iteration stops early if yield returns false.
func (dom *DOM) Descendants(ref Ref) func(yield func(Ref) bool) {
	return func(yield func(Ref) bool) {
		dom.walk(ref, yield)
	}
}

func (dom *DOM) walk(ref Ref, yield func(Ref) bool) bool {
	if !yield(ref) {
		return false
	}
	inst, ok := dom.instances[ref]
	if !ok {
		return true
	}
	for _, child := range inst.children {
		if !dom.walk(child, yield) {
			return false
		}
	}
	return true
}

// DescendantsSlice eagerly collects the depth-first descendant sequence
// rooted at ref (ref included).
func (dom *DOM) DescendantsSlice(ref Ref) []Ref {
	var out []Ref
	dom.walk(ref, func(r Ref) bool {
		out = append(out, r)
		return true
	})
	return out
}
