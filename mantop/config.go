/*
 * config.go, part of goCSG.
 *
 * Copyright 2026 The goCSG Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package mantop

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	csg "github.com/rmera/gocsg"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is a manual topology: the information that a structure or
// trajectory file doesn't carry, and that is needed to complete a
// topology read from it.
type Config struct {
	//Box is either the 3 lengths of an orthorhombic box, or the 9 components
	//of the lattice vectors a, b and c, in that order.
	Box []float64 `yaml:"box" validate:"omitempty,len=3|len=9"`

	//NrExcl is the number of bonds within which bead pairs are excluded.
	NrExcl *int `yaml:"nrexcl" validate:"omitempty,min=0"`

	Molecules       Layout         `yaml:"molecules"`
	RenameMolecules []Rename       `yaml:"rename_molecules" validate:"dive"`
	RenameBeadTypes []TypeRename   `yaml:"rename_beadtypes" validate:"dive"`
	Masses          []MassOverride `yaml:"masses" validate:"dive"`
	Bonded          []BondedGroup  `yaml:"bonded" validate:"dive"`
}

// Layout tells how the beads are split in molecules. At most one of
// its fields can be set. If none is, the molecules of the topology are
// left as they are.
type Layout struct {
	ByResidue   bool       `yaml:"by_residue"`
	OneMolecule string     `yaml:"one_molecule"`
	Ranges      []MolRange `yaml:"ranges" validate:"dive"`
}

// MolRange creates NMols molecules named Name, of NBeads consecutive beads
// each, starting from the bead First (1-based).
type MolRange struct {
	Name   string `yaml:"name" validate:"required"`
	First  int    `yaml:"first" validate:"min=1"`
	NBeads int    `yaml:"nbeads" validate:"min=1"`
	NMols  int    `yaml:"nmols" validate:"min=1"`
}

// Rename gives the name Name to the molecules in Range, a range expression
// such as "1-10,12".
type Rename struct {
	Range string `yaml:"range" validate:"required"`
	Name  string `yaml:"name" validate:"required"`
}

// TypeRename renames the bead types matching Pattern, which may contain
// the wildcards * and ?.
type TypeRename struct {
	Pattern string `yaml:"pattern" validate:"required"`
	Name    string `yaml:"name" validate:"required"`
}

// MassOverride sets the mass of the beads whose type matches Pattern.
type MassOverride struct {
	Pattern string  `yaml:"pattern" validate:"required"`
	Mass    float64 `yaml:"mass" validate:"gt=0"`
}

// BondedGroup is a group of bonded terms, added to every molecule named
// Molecule. Each term is a list of beads of the molecule, separated by
// blanks, given by name or by 1-based index in the molecule.
type BondedGroup struct {
	Molecule string    `yaml:"molecule" validate:"required"`
	Group    string    `yaml:"group" validate:"required"`
	Kind     string    `yaml:"kind" validate:"required,oneof=bond angle dihedral generic"`
	Params   []float64 `yaml:"params"`
	Terms    []string  `yaml:"terms" validate:"required,min=1,dive,required"`
}

// Load reads a YAML manual topology from r, and validates it.
// Unknown keys are an error.
func Load(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	c := new(Config)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("mantop: can't decode configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads and validates the manual topology in the given file.
func LoadFile(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("mantop: %w", err)
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Validate checks the configuration without applying it.
func (C *Config) Validate() error {
	if err := validate.Struct(C); err != nil {
		return formatValidationError(err)
	}
	set := 0
	if C.Molecules.ByResidue {
		set++
	}
	if C.Molecules.OneMolecule != "" {
		set++
	}
	if len(C.Molecules.Ranges) > 0 {
		set++
	}
	if set > 1 {
		return fmt.Errorf("mantop: molecules: only one of by_residue, one_molecule and ranges can be given")
	}
	for _, r := range C.RenameMolecules {
		if _, err := csg.ParseRange(r.Range); err != nil {
			return fmt.Errorf("mantop: rename_molecules: %w", err)
		}
	}
	for _, b := range C.Bonded {
		kind, err := csg.ParseInteractionKind(b.Kind)
		if err != nil {
			return fmt.Errorf("mantop: bonded: %w", err)
		}
		n := kind.NBeads()
		for _, t := range b.Terms {
			f := len(strings.Fields(t))
			if (n > 0 && f != n) || f < 2 {
				return fmt.Errorf("mantop: bonded group %s: term %q has %d beads, wrong for a %s", b.Group, t, f, kind)
			}
		}
	}
	return nil
}

// formatValidationError reports the first failed field of a validation
// error.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("mantop: %w", err)
	}
	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("mantop: %s: field is required", e.Namespace())
	case "min", "gt":
		return fmt.Errorf("mantop: %s: must be greater than %s", e.Namespace(), minParam(e))
	case "oneof":
		return fmt.Errorf("mantop: %s: must be one of %s", e.Namespace(), e.Param())
	default:
		return fmt.Errorf("mantop: %s: validation failed (%s)", e.Namespace(), e.Tag())
	}
}

func minParam(e validator.FieldError) string {
	if e.Tag() == "min" {
		return "or equal to " + e.Param()
	}
	return e.Param()
}
