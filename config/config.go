/*
 * config.go, part of mdsim.
 *
 * Copyright 2021 The mdsim Authors
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

// Package config loads and validates the YAML configuration files of the
// mdsim tools. File paths in a configuration are relative to the directory
// of the configuration file.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ajsmith/mdsim"
	"github.com/ajsmith/mdsim/stride"
	"github.com/spf13/viper"
)

// GroupConfig describes a group of trajectories
type GroupConfig struct {
	Name         string   `mapstructure:"name"`
	Cols         []int    `mapstructure:"cols"`
	Trajectories []string `mapstructure:"trajectories"`
}

// ContactConfig ties a contact file to the trajectory in row Row
type ContactConfig struct {
	File string `mapstructure:"file"`
	Row  int    `mapstructure:"row"`
}

// StrideConfig is the configuration of a helix content analysis
type StrideConfig struct {
	Title       string          `mapstructure:"title"`
	OutputDir   string          `mapstructure:"output_dir"`
	OutputFile  string          `mapstructure:"output_file"`
	StrideFiles []string        `mapstructure:"stride_files"`
	Contacts    []ContactConfig `mapstructure:"contacts"`
	Groups      []GroupConfig   `mapstructure:"groups"`
	Threshold   float64         `mapstructure:"threshold"`
	Window      int             `mapstructure:"window"`
	Stride      int             `mapstructure:"stride"`
	Bins        int             `mapstructure:"bins"`
}

// StageConfig is one NAMD stage to plot
type StageConfig struct {
	Input    string `mapstructure:"input"`
	Output   string `mapstructure:"output"`
	Suptitle string `mapstructure:"suptitle"`
}

// PlotStatsConfig holds the NAMD stages to plot. Absent stages are nil.
type PlotStatsConfig struct {
	Min    *StageConfig `mapstructure:"min"`
	Heat   *StageConfig `mapstructure:"heat"`
	Equil  *StageConfig `mapstructure:"equil"`
	Quench *StageConfig `mapstructure:"quench"`
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MDSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return v, nil
}

// LoadStride reads a helix content analysis configuration. Values the file
// doesn't give are taken from d. The result is validated, and its paths
// made absolute.
func LoadStride(path string, d mdsim.Defaults) (*StrideConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("output_file", d.StrideOutput)
	v.SetDefault("threshold", d.Threshold)
	v.SetDefault("window", d.Window)
	v.SetDefault("stride", d.Stride)
	v.SetDefault("bins", d.Bins)
	var cfg StrideConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.resolve(filepath.Dir(path))
	return &cfg, nil
}

// Validate checks that every required key is there and every value makes sense.
// The error, a *mdsim.ConfigError, names the offending key.
func (c *StrideConfig) Validate() error {
	if len(c.StrideFiles) == 0 {
		return &mdsim.ConfigError{Key: "stride_files"}
	}
	for i, f := range c.StrideFiles {
		if f == "" {
			return &mdsim.ConfigError{Key: fmt.Sprintf("stride_files[%d]", i), Message: "empty path"}
		}
	}
	if len(c.Groups) == 0 {
		return &mdsim.ConfigError{Key: "groups"}
	}
	names := make(map[string]bool)
	for i, g := range c.Groups {
		if g.Name == "" {
			return &mdsim.ConfigError{Key: fmt.Sprintf("groups[%d].name", i)}
		}
		if names[g.Name] {
			return &mdsim.ConfigError{Key: fmt.Sprintf("groups[%d].name", i), Message: "duplicated group " + g.Name}
		}
		names[g.Name] = true
		if len(g.Cols) == 0 {
			return &mdsim.ConfigError{Key: fmt.Sprintf("groups[%d].cols", i)}
		}
		for _, col := range g.Cols {
			if col < 0 || col >= len(c.StrideFiles) {
				return &mdsim.ConfigError{Key: fmt.Sprintf("groups[%d].cols", i), Message: fmt.Sprintf("column %d out of range, there are %d stride files", col, len(c.StrideFiles))}
			}
		}
		if len(g.Trajectories) != 0 && len(g.Trajectories) != len(g.Cols) {
			return &mdsim.ConfigError{Key: fmt.Sprintf("groups[%d].trajectories", i), Message: fmt.Sprintf("%d labels for %d columns", len(g.Trajectories), len(g.Cols))}
		}
	}
	for i, ct := range c.Contacts {
		if ct.File == "" {
			return &mdsim.ConfigError{Key: fmt.Sprintf("contacts[%d].file", i)}
		}
		if ct.Row < 0 || ct.Row >= len(c.StrideFiles) {
			return &mdsim.ConfigError{Key: fmt.Sprintf("contacts[%d].row", i), Message: fmt.Sprintf("row %d out of range", ct.Row)}
		}
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return &mdsim.ConfigError{Key: "threshold", Message: "must be between 0 and 1"}
	}
	if c.Stride < 1 {
		return &mdsim.ConfigError{Key: "stride", Message: "must be at least 1"}
	}
	if c.Bins < 1 {
		return &mdsim.ConfigError{Key: "bins", Message: "must be at least 1"}
	}
	if c.OutputFile == "" {
		return &mdsim.ConfigError{Key: "output_file"}
	}
	return nil
}

func (c *StrideConfig) resolve(root string) {
	for i, f := range c.StrideFiles {
		c.StrideFiles[i] = Resolve(root, f)
	}
	for i := range c.Contacts {
		c.Contacts[i].File = Resolve(root, c.Contacts[i].File)
	}
	c.OutputDir = Resolve(root, c.OutputDir)
}

// Input returns the analysis input described by the configuration.
func (c *StrideConfig) Input() stride.Input {
	in := stride.Input{
		StrideFiles: c.StrideFiles,
		Threshold:   c.Threshold,
		Window:      c.Window,
		Bins:        c.Bins,
	}
	for _, g := range c.Groups {
		in.Groups = append(in.Groups, stride.Group{Name: g.Name, Cols: g.Cols, Trajectories: g.Trajectories})
	}
	for _, ct := range c.Contacts {
		in.Contacts = append(in.Contacts, stride.ContactFile{File: ct.File, Row: ct.Row})
	}
	return in
}

// LoadPlotStats reads the configuration of the NAMD plots. Stages without
// a suptitle get the default one from d.
func LoadPlotStats(path string, d mdsim.Defaults) (*PlotStatsConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	var cfg PlotStatsConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root := filepath.Dir(path)
	for name, s := range cfg.Stages() {
		s.Input = Resolve(root, s.Input)
		s.Output = Resolve(root, s.Output)
		if s.Suptitle == "" {
			s.Suptitle = d.Suptitle(name)
		}
	}
	return &cfg, nil
}

// Stages returns the configured stages by name (min, heat, equil, quench).
func (c *PlotStatsConfig) Stages() map[string]*StageConfig {
	ret := make(map[string]*StageConfig)
	for name, s := range map[string]*StageConfig{"min": c.Min, "heat": c.Heat, "equil": c.Equil, "quench": c.Quench} {
		if s != nil {
			ret[name] = s
		}
	}
	return ret
}

// Validate checks that every configured stage has an input and an output.
func (c *PlotStatsConfig) Validate() error {
	stages := c.Stages()
	if len(stages) == 0 {
		return &mdsim.ConfigError{Key: "min", Message: "no stage (min, heat, equil, quench) configured"}
	}
	for _, name := range []string{"min", "heat", "equil", "quench"} {
		s, ok := stages[name]
		if !ok {
			continue
		}
		if s.Input == "" {
			return &mdsim.ConfigError{Key: name + ".input"}
		}
		if s.Output == "" {
			return &mdsim.ConfigError{Key: name + ".output"}
		}
	}
	return nil
}

// Resolve returns path relative to root, unless path is absolute.
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	p, err := filepath.Abs(filepath.Join(root, path))
	if err != nil {
		return filepath.Join(root, path)
	}
	return p
}
