package block

import (
	"github.com/osksim/engine/model"
	"github.com/osksim/engine/oskerr"
)

// Constructor builds one Block instance from its declarative definition.
type Constructor func(def model.Block) (Block, error)

var registry = map[model.Variant]Constructor{}

// register is called from each variant file's init().
func register(v model.Variant, ctor Constructor) {
	registry[v] = ctor
}

// Variants lists every registered variant tag, sorted by nothing in
// particular — callers that need a stable order should sort it themselves.
// Exposed for package catalog.
func Variants() []model.Variant {
	out := make([]model.Variant, 0, len(registry))
	for v := range registry {
		out = append(out, v)
	}
	return out
}

// New constructs a Block for def.Variant. An unrecognized variant yields
// oskerr.UnknownBlockVariant; the caller (kernel.New) is responsible for
// substituting a pass-through per §7, since that substitution is a
// model-compilation policy, not a block concern.
func New(def model.Block) (Block, error) {
	ctor, ok := registry[def.Variant]
	if !ok {
		return nil, oskerr.New(oskerr.UnknownBlockVariant, []string{def.ID},
			"unknown block variant %q", def.Variant)
	}
	blk, err := ctor(def)
	if err != nil {
		return nil, err
	}
	return blk, nil
}
