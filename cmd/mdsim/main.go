/*
 * main.go, part of mdsim.
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

// Package main provides the mdsim command line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ajsmith/mdsim"
	"github.com/ajsmith/mdsim/batch"
	"github.com/ajsmith/mdsim/config"
	"github.com/ajsmith/mdsim/internal/logger"
	"github.com/ajsmith/mdsim/mdplot"
	"github.com/ajsmith/mdsim/namd"
	"github.com/ajsmith/mdsim/pdbcheck"
	"github.com/ajsmith/mdsim/stride"
)

// errReported is returned by commands that already told the user what went wrong.
var errReported = errors.New("reported")

var (
	logLevel  string
	logFormat string

	strideConfig string
	plotConfig   string
	cellPadding  int
	batchPlan    string
	batchOut     string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			logger.Error("%v", err)
			if tr := mdsim.Trace(err); tr != "" {
				logger.Debug("trace: %s", tr)
			}
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	d := mdsim.NewDefaults()
	rootCmd := &cobra.Command{
		Use:           "mdsim",
		Short:         "Analysis and plotting tools for MD simulations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.InitWriter(cmd.ErrOrStderr(), logLevel, logFormat)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "plain", "log format (plain, text)")

	rootCmd.AddCommand(newStrideCmd(d))
	rootCmd.AddCommand(newPlotCmd(d))
	rootCmd.AddCommand(newCellSizeCmd(d))
	rootCmd.AddCommand(newCheckCoordsCmd())
	rootCmd.AddCommand(newBatchCmd())

	return rootCmd
}

func newStrideCmd(d mdsim.Defaults) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stride",
		Short: "Helix content analysis of STRIDE trajectories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStride(cmd.OutOrStdout(), strideConfig, d)
		},
	}
	cmd.Flags().StringVarP(&strideConfig, "config", "c", "", "configuration file (required)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func runStride(out io.Writer, path string, d mdsim.Defaults) error {
	cfg, err := config.LoadStride(path, d)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	rep, err := stride.Analyze(cfg.Input())
	if err != nil {
		return err
	}
	figs, err := mdplot.Helix(rep, mdplot.Options{Title: cfg.Title, Output: cfg.OutputFile, Stride: cfg.Stride})
	if err != nil {
		return fmt.Errorf("failed to plot: %w", err)
	}
	if err := mdplot.WriteAll(cfg.OutputDir, figs); err != nil {
		return fmt.Errorf("failed to write plots: %w", err)
	}
	printReport(out, rep)
	for _, f := range figs {
		fmt.Fprintln(out, "Generated plot:", f.Name)
	}
	return nil
}

func printReport(out io.Writer, rep *stride.Report) {
	fmt.Fprintf(out, "%-12s %8s %10s %8s %8s %8s %9s\n", "group", "steps", "fraction", "var", "t_h", "before", "after")
	for _, g := range rep.Groups {
		fmt.Fprintf(out, "%-12s %8d %10.4f %8.2f %8.1f %8.4f %9.4f\n",
			g.Name, g.Stats.Steps, g.Stats.Mean, g.Stats.Var, g.MeanTh, g.MeanBefore, g.MeanAfter)
	}
	for _, t := range rep.Trajectories {
		fmt.Fprintf(out, "%-24s t_h=%d\n", t.Label, t.Th)
	}
	if rep.Histograms == nil {
		return
	}
	for gi, g := range rep.Groups {
		for seg, name := range []string{stride.Native: "native", stride.Denatured: "denatured"} {
			fmt.Fprintf(out, "%s, %s helix fractions\n%s\n", g.Name, name, rep.Histograms.View(gi, seg))
		}
	}
}

func newPlotCmd(d mdsim.Defaults) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot the energy, temperature and cell size of NAMD runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlot(cmd.OutOrStdout(), plotConfig, d)
		},
	}
	cmd.Flags().StringVarP(&plotConfig, "config", "c", "", "configuration file (required)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func runPlot(out io.Writer, path string, d mdsim.Defaults) error {
	cfg, err := config.LoadPlotStats(path, d)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	stages := cfg.Stages()
	var figs []mdplot.Figure
	for _, st := range namd.Stages {
		sc, ok := stages[st.Name]
		if !ok {
			continue
		}
		logger.Info("plotting %s: %s -> %s", st.Name, sc.Input, sc.Output)
		s, err := namd.ReadLog(sc.Input, d.Energy, st.Panels...)
		if err != nil {
			return err
		}
		f, err := mdplot.Stage(st, s, sc.Suptitle, sc.Output)
		if err != nil {
			return err
		}
		figs = append(figs, f)
	}
	if err := mdplot.WriteAll("", figs); err != nil {
		return fmt.Errorf("failed to write plots: %w", err)
	}
	for _, f := range figs {
		fmt.Fprintln(out, "Generated plot:", f.Name)
	}
	return nil
}

func newCellSizeCmd(d mdsim.Defaults) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cell-size <pdb>",
		Short: "Size of a periodic cell that holds the solute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			half, err := pdbcheck.MaxCoord(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "L/2 = %g\n", half)
			fmt.Fprintf(cmd.OutOrStdout(), "Unit Cell Size = %d\n", pdbcheck.CellSize(half, cellPadding))
			return nil
		},
	}
	cmd.Flags().IntVar(&cellPadding, "padding", d.CellPadding, "space in Angstrom on each side of the solute")
	return cmd
}

func newCheckCoordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-coords <pdb> <max>",
		Short: "Check that every atom is within max Angstrom of the origin on each axis",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxDist, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid maximum distance %q: %w", args[1], err)
			}
			v, err := pdbcheck.CheckCoordinates(args[0], maxDist)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if v != nil {
				fmt.Fprintln(out, "ERROR:", v)
				return errReported
			}
			fmt.Fprintln(out, "All good!")
			return nil
		},
	}
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate the batch configuration of a simulation plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := batch.LoadPlan(batchPlan)
			if err != nil {
				return err
			}
			if err := batch.Save(batchOut, batch.SimulationConfig(p)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Generated batch configuration:", batchOut)
			return nil
		},
	}
	cmd.Flags().StringVar(&batchPlan, "plan", "", "simulation plan (required)")
	cmd.Flags().StringVar(&batchOut, "out", "", "output file (required)")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
