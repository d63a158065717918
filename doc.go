/*
 * doc.go, part of mdsim.
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

/*Package mdsim holds the pieces shared by the mdsim analysis tools: the error
types every package returns, the reader that transparently decompresses input
files, and the immutable set of defaults the commands pass around.

	**mdsim capabilities**

    Reads STRIDE secondary structure assignments and per-residue contact
	counts, one record per MD timestep (package stride).

    Smooths helix fraction time series, finds the helix denaturation time
	of each trajectory and compares groups of trajectories before and after it.

    Reads NAMD logs and plots energy, temperature and cell size time series
	(package namd, package mdplot).

    Validates the atom coordinates of PDB files and finds a safe periodic
	cell size (package pdbcheck).

    Generates batch configurations for multi-step production runs (package batch).

Input files can be plain text or compressed with zstd (.zst), gzip (.gz)
or lzw (.lzw).*/
package mdsim
