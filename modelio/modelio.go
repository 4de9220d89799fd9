// Package modelio loads and saves model.Model fixtures as YAML. This is a
// convenience for demos, fixtures, and tests only — it is explicitly not
// "the" persisted model format (that remains an external collaborator's
// concern, §6) and carries no migration or versioning support.
package modelio

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osksim/engine/model"
)

// yamlModel is the yaml-tagged shadow of model.Model, the same "struct with
// yaml tags plus a thin translation layer into domain types" shape the
// teacher uses for its own config fixtures. Block ports (model.Block's
// Inputs and Outputs) are not part of it: Save does not write them and
// Load leaves them empty.
type yamlModel struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	Author    string          `yaml:"author"`
	CreatedAt time.Time       `yaml:"createdAt,omitempty"`
	UpdatedAt time.Time       `yaml:"updatedAt,omitempty"`
	Blocks    []yamlBlock     `yaml:"blocks"`
	Conns     []yamlConn      `yaml:"connections"`
	Config    yamlSimConfig   `yaml:"config"`
}

type yamlBlock struct {
	ID        string             `yaml:"id"`
	Variant   string             `yaml:"variant"`
	Name      string             `yaml:"name,omitempty"`
	Params    map[string]float64 `yaml:"params,omitempty"`
	StrParams map[string]string  `yaml:"strParams,omitempty"`
	Children  []yamlBlock        `yaml:"children,omitempty"`
	ChildConns []yamlConn        `yaml:"childConnections,omitempty"`
}

type yamlConn struct {
	SrcBlockID string `yaml:"srcBlockId"`
	SrcPortID  string `yaml:"srcPortId"`
	DstBlockID string `yaml:"dstBlockId"`
	DstPortID  string `yaml:"dstPortId"`
}

type yamlSimConfig struct {
	Solver    string  `yaml:"solver"`
	StartTime float64 `yaml:"startTime"`
	StopTime  float64 `yaml:"stopTime"`
	StepSize  float64 `yaml:"stepSize"`
	MaxStep   float64 `yaml:"maxStep,omitempty"`
	MinStep   float64 `yaml:"minStep,omitempty"`
	RelTol    float64 `yaml:"relTol,omitempty"`
	AbsTol    float64 `yaml:"absTol,omitempty"`
}

// Load reads a YAML model fixture from path.
func Load(path string) (model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Model{}, fmt.Errorf("modelio: read %s: %w", path, err)
	}
	var ym yamlModel
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return model.Model{}, fmt.Errorf("modelio: parse %s: %w", path, err)
	}
	return fromYAML(ym), nil
}

// Save writes m as a YAML model fixture to path.
func Save(path string, m model.Model) error {
	data, err := yaml.Marshal(toYAML(m))
	if err != nil {
		return fmt.Errorf("modelio: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("modelio: write %s: %w", path, err)
	}
	return nil
}

func fromYAML(ym yamlModel) model.Model {
	return model.Model{
		ID:          ym.ID,
		Name:        ym.Name,
		Author:      ym.Author,
		CreatedAt:   ym.CreatedAt,
		UpdatedAt:   ym.UpdatedAt,
		Blocks:      blocksFromYAML(ym.Blocks),
		Connections: connsFromYAML(ym.Conns),
		Config:      configFromYAML(ym.Config),
	}
}

func blocksFromYAML(bs []yamlBlock) []model.Block {
	if bs == nil {
		return nil
	}
	out := make([]model.Block, len(bs))
	for i, b := range bs {
		out[i] = model.Block{
			ID:         b.ID,
			Variant:    model.Variant(b.Variant),
			Name:       b.Name,
			Params:     b.Params,
			StrParams:  b.StrParams,
			Children:   blocksFromYAML(b.Children),
			ChildConns: connsFromYAML(b.ChildConns),
			Expanded:   len(b.Children) > 0,
		}
	}
	return out
}

func connsFromYAML(cs []yamlConn) []model.Connection {
	if cs == nil {
		return nil
	}
	out := make([]model.Connection, len(cs))
	for i, c := range cs {
		out[i] = model.Connection{
			SrcBlockID: c.SrcBlockID,
			SrcPortID:  c.SrcPortID,
			DstBlockID: c.DstBlockID,
			DstPortID:  c.DstPortID,
		}
	}
	return out
}

func configFromYAML(c yamlSimConfig) model.SimConfig {
	return model.SimConfig{
		Solver:    model.Method(c.Solver),
		StartTime: c.StartTime,
		StopTime:  c.StopTime,
		StepSize:  c.StepSize,
		MaxStep:   c.MaxStep,
		MinStep:   c.MinStep,
		RelTol:    c.RelTol,
		AbsTol:    c.AbsTol,
	}
}

func toYAML(m model.Model) yamlModel {
	return yamlModel{
		ID: m.ID, Name: m.Name, Author: m.Author,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
		Blocks: blocksToYAML(m.Blocks),
		Conns:  connsToYAML(m.Connections),
		Config: yamlSimConfig{
			Solver: string(m.Config.Solver), StartTime: m.Config.StartTime,
			StopTime: m.Config.StopTime, StepSize: m.Config.StepSize,
			MaxStep: m.Config.MaxStep, MinStep: m.Config.MinStep,
			RelTol: m.Config.RelTol, AbsTol: m.Config.AbsTol,
		},
	}
}

func blocksToYAML(bs []model.Block) []yamlBlock {
	if bs == nil {
		return nil
	}
	out := make([]yamlBlock, len(bs))
	for i, b := range bs {
		out[i] = yamlBlock{
			ID: b.ID, Variant: string(b.Variant), Name: b.Name,
			Params: b.Params, StrParams: b.StrParams,
			Children: blocksToYAML(b.Children), ChildConns: connsToYAML(b.ChildConns),
		}
	}
	return out
}

func connsToYAML(cs []model.Connection) []yamlConn {
	if cs == nil {
		return nil
	}
	out := make([]yamlConn, len(cs))
	for i, c := range cs {
		out[i] = yamlConn{SrcBlockID: c.SrcBlockID, SrcPortID: c.SrcPortID, DstBlockID: c.DstBlockID, DstPortID: c.DstPortID}
	}
	return out
}
