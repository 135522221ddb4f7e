// Package xml implements the element-based XML container format used by
// .rbxmx and .rbxlx files: a <roblox version="4"> root of nested <Item>
// elements, one <Properties> block per item, and a trailing
// <SharedStrings> table. It is grounded on the teacher's xml/codec.go,
// xml/document.go, and xml/format.go, with the teacher's own hand-rolled
// tag-tree parser replaced by encoding/xml's streaming Decoder/Encoder —
// the idiomatic stdlib answer to the same "event stream" shape — and the
// rbxfile.Root/Instance model replaced by this module's Ref-addressed DOM.
package xml

// rootClassName names the synthetic container instance that owns every
// top-level <Item> in a decoded document, mirroring the binary codec's
// synthetic root (binary.rootClassFor) — an XML document has no single
// owning object on disk either, and this module's DOM always needs exactly
// one root.
const rootClassName = "Folder"

// fileVersion is the only <roblox version="…"> value this codec writes.
// Decode does not check the version attribute.
const fileVersion = "4"
