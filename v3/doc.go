/*
 * doc.go, part of pts.
 *
 * Copyright 2026 The pts developers
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

/*Package v3 implements the container for sets of 3D Cartesian
coordinates used across the pts library, a thin wrapper over the
gonum Dense matrix restricted to 3 columns, one row per point. It adds
the row-vector operations the rest of the library needs (cross
products, per-vector addition and subtraction, views, stacking and
centroids) while keeping the whole gonum/mat method set available
through embedding.*/
package v3
