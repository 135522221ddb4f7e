// Package binary implements the chunked binary container format used by
// .rbxm and .rbxl files: header, META/SSTR/INST/PROP/PRNT/END chunks,
// LZ4-block or Zstd chunk compression, and the per-type column-major value
// encodings. It is grounded on the teacher's rbxl package (model.go,
// codec.go, decoder.go, encoder.go, arrays.go, values.go), generalized from
// rbxfile's pointer-tree Root/Instance model to this module's Ref-addressed
// DOM.
package binary

// Mode selects which of the two binary container kinds is being read or
// written. The container layout is identical; only the root instance's
// treatment differs (decoding puts the top-level instances under a
// synthetic DataModel root for a place and a synthetic Folder root for a
// model, and encoding a model accepts only one top-level instance).
type Mode uint8

const (
	// Model handles data as a Roblox model (RBXM) file.
	Model Mode = iota
	// Place handles data as a Roblox place (RBXL) file.
	Place
)

func (m Mode) String() string {
	if m == Place {
		return "Place"
	}
	return "Model"
}
