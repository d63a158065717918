/*
 * batch.go, part of mdsim.
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

//Package batch generates the batch configurations for production simulations split
//in several consecutive steps (batches), each one restarting from the previous one.
package batch

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/ajsmith/mdsim"
	"go.yaml.in/yaml/v3"
)

//TrajectoryPlan says what a trajectory simulates and with which configuration template.
type TrajectoryPlan struct {
	Experiment string `yaml:"experiment"`
	Template   string `yaml:"template"`
}

//Plan is the input of the generator.
type Plan struct {
	StudentID string                 `yaml:"student_id"`
	Steps     int                    `yaml:"steps"`
	Plan      map[int]TrajectoryPlan `yaml:"plan"`
}

//Batch is one step of a trajectory.
type Batch struct {
	Batch string `yaml:"batch"`
	//nil for the first batch of a trajectory.
	PreviousBatch *string `yaml:"previous_batch"`
	Seed          string  `yaml:"seed"`
}

//Trajectory is the configuration of all the batches of a trajectory.
type Trajectory struct {
	Batches        []Batch `yaml:"batches"`
	ConfigTemplate string  `yaml:"config_template"`
	Experiment     string  `yaml:"experiment"`
	Trajectory     string  `yaml:"trajectory"`
}

//Simulation is the full batch configuration.
type Simulation struct {
	Trajectories []Trajectory `yaml:"trajectories"`
}

//StepName returns the name of the step (batch) with the given id.
func StepName(step int) string {
	return fmt.Sprintf("%02d", step)
}

//TrajectoryName returns the name of the trajectory with the given id.
func TrajectoryName(traj int) string {
	return fmt.Sprintf("%02d", traj)
}

//Seed returns the random seed for a batch. It is unique for each student,
//trajectory and step.
func Seed(student string, traj, step int) string {
	return student + TrajectoryName(traj) + StepName(step)
}

//BatchConfig returns the configuration of the given step of a trajectory.
func BatchConfig(student string, traj, step int) Batch {
	b := Batch{Batch: StepName(step), Seed: Seed(student, traj, step)}
	if step > 0 {
		prev := StepName(step - 1)
		b.PreviousBatch = &prev
	}
	return b
}

//TrajectoryConfig returns the configuration of a trajectory split in steps batches.
func TrajectoryConfig(student string, traj int, experiment string, steps int, template string) Trajectory {
	t := Trajectory{
		Trajectory:     TrajectoryName(traj),
		Experiment:     experiment,
		ConfigTemplate: template,
		Batches:        make([]Batch, 0, steps),
	}
	for i := 0; i < steps; i++ {
		t.Batches = append(t.Batches, BatchConfig(student, traj, i))
	}
	return t
}

//ids returns the trajectory ids of the plan in ascending order.
func (p *Plan) ids() []int {
	ids := make([]int, 0, len(p.Plan))
	for id := range p.Plan {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

//SimulationConfig returns the configuration of every trajectory in the plan, in
//ascending trajectory id order.
func SimulationConfig(p *Plan) *Simulation {
	ids := p.ids()
	s := &Simulation{Trajectories: make([]Trajectory, 0, len(ids))}
	for _, id := range ids {
		tp := p.Plan[id]
		s.Trajectories = append(s.Trajectories, TrajectoryConfig(p.StudentID, id, tp.Experiment, p.Steps, tp.Template))
	}
	return s
}

//LoadPlan reads a plan from the YAML file name and checks it.
func LoadPlan(name string) (*Plan, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	p := new(Plan)
	if err := yaml.Unmarshal(b, p); err != nil {
		return nil, mdsim.NewParseError(name, 0, "%v", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

//Validate returns a *mdsim.ConfigError naming the first missing or bad key.
func (p *Plan) Validate() error {
	if p.StudentID == "" {
		return &mdsim.ConfigError{Key: "student_id"}
	}
	if p.Steps < 1 {
		return &mdsim.ConfigError{Key: "steps", Message: "must be at least 1"}
	}
	if len(p.Plan) == 0 {
		return &mdsim.ConfigError{Key: "plan"}
	}
	for _, id := range p.ids() {
		tp := p.Plan[id]
		if id < 0 {
			return &mdsim.ConfigError{Key: fmt.Sprintf("plan.%d", id), Message: "negative trajectory id"}
		}
		if tp.Experiment == "" {
			return &mdsim.ConfigError{Key: fmt.Sprintf("plan.%d.experiment", id)}
		}
		if tp.Template == "" {
			return &mdsim.ConfigError{Key: fmt.Sprintf("plan.%d.template", id)}
		}
	}
	return nil
}

//Marshal returns the YAML document for s, under the top-level key "simulation".
func Marshal(s *Simulation) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]*Simulation{"simulation": s}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//Save writes s as YAML to the file name.
func Save(name string, s *Simulation) error {
	b, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(name, b, 0o644)
}
