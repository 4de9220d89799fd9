// Package model defines the block-diagram data model: ports, block
// instances, connections and the simulation configuration that the
// compiler consumes. Nothing here executes — it is the declarative input
// to package compiler.
package model

import "time"

// Signal is the value carried by a single port. The core treats every port
// as one scalar channel; vector/bus semantics are a non-goal.
type Signal = float64

// Method selects the fixed-step integration scheme used for the whole run.
type Method string

const (
	Euler  Method = "euler"
	RK2    Method = "rk2"
	RK4    Method = "rk4"
	Merson Method = "merson"
)

// Variant names one block flavor. The zero value is never valid.
type Variant string

// Port identifies one input or output channel of a block.
type Port struct {
	ID       string
	BlockID  string
	Name     string
	DataType string // informational, e.g. "double"
	Dims     string // informational, e.g. "scalar", "1x4"
}

// Block is one node of the model graph. Params holds numeric parameters;
// StrParams holds the enum/string-valued ones (criterion, method names,
// filter family, …) since §3 declares one flat string-keyed bag but real
// parameters are a mix of numbers and small enums.
type Block struct {
	ID        string
	Variant   Variant
	Name      string
	Params    map[string]float64
	StrParams map[string]string
	Inputs    []Port
	Outputs   []Port

	// Subsystem-only fields; populated iff Variant == VariantSubsystem.
	Children   []Block
	ChildConns []Connection
	Expanded   bool
}

// Connection is a directed edge: (SrcBlockID, SrcPortID) -> (DstBlockID, DstPortID).
type Connection struct {
	SrcBlockID string
	SrcPortID  string
	DstBlockID string
	DstPortID  string
}

// SimConfig configures the solver and the simulated time window.
type SimConfig struct {
	Solver    Method
	StartTime float64
	StopTime  float64
	StepSize  float64

	// Accepted for forward compatibility and ignored by this engine.
	MaxStep float64
	MinStep float64
	RelTol  float64
	AbsTol  float64
}

// Model is one complete simulation unit: the graph plus its run config.
type Model struct {
	ID          string
	Name        string
	Author      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Blocks      []Block
	Connections []Connection
	Config      SimConfig
}

// Param returns a numeric parameter, or def if it is not set.
func (b Block) Param(name string, def float64) float64 {
	if v, ok := b.Params[name]; ok {
		return v
	}
	return def
}

// StrParam returns a string parameter, or def if it is not set.
func (b Block) StrParam(name, def string) string {
	if v, ok := b.StrParams[name]; ok {
		return v
	}
	return def
}
