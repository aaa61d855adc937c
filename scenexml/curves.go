package scenexml

// readDiffusionCurves reads the `curve` children of `set`.
// When c.swap is set, coordinates, color channels and sides are
// exchanged, for compatibility with the legacy curve files.
func (c *cursor) readDiffusionCurves(set *element) ([]DiffusionCurve, error) {
	numCurves := set.intAttr("nb_curves", 0)
	curves := make([]DiffusionCurve, 0, capacity(set, numCurves))
	el := set.firstChild("curve")
	for i := 0; i < numCurves; i++ {
		if el == nil {
			return nil, at(missingElement("curve", i), SectionCurves, -1)
		}
		curve, err := c.readDiffusionCurve(el)
		if err != nil {
			return nil, at(err, SectionCurves, i)
		}
		curves = append(curves, curve)
		el = el.nextSibling("curve")
	}
	c.warnExtra(el, "curve", numCurves)
	c.cfg.logger.Debug("diffusion curves read", "count", len(curves))
	return curves, nil
}

func (c *cursor) readDiffusionCurve(el *element) (DiffusionCurve, error) {
	controlPoints, err := c.readControlPoints(el, c.swap)
	if err != nil {
		return DiffusionCurve{}, err
	}
	left, boundaryLeft, err := c.readCurveSide(el, "nb_left_colors", "left_colors_set", "left_color")
	if err != nil {
		return DiffusionCurve{}, err
	}
	right, boundaryRight, err := c.readCurveSide(el, "nb_right_colors", "right_colors_set", "right_color")
	if err != nil {
		return DiffusionCurve{}, err
	}

	curve := DiffusionCurve{
		ControlPoints: controlPoints,
		ColorsLeft:    left,
		ColorsRight:   right,
		BoundaryLeft:  boundaryLeft,
		BoundaryRight: boundaryRight,
	}
	if c.swap {
		// transposing the axes mirrors the curve, so the sides are exchanged
		curve.ColorsLeft, curve.ColorsRight = curve.ColorsRight, curve.ColorsLeft
		curve.BoundaryLeft, curve.BoundaryRight = curve.BoundaryRight, curve.BoundaryLeft
	}
	return curve, nil
}

func (c *cursor) readControlPoints(el *element, swap bool) ([]Point, error) {
	numPoints := el.intAttr("nb_control_points", 0)
	set := el.firstChild("control_points_set")
	if set == nil {
		return nil, missingSection("control_points_set")
	}
	return c.readPoints(set, "control_point", numPoints, false, swap)
}

// readCurveSide reads the colors and the boundary condition of one side of a curve.
func (c *cursor) readCurveSide(el *element, countAttr, setTag, colorTag string) ([]ColorPoint, BoundaryCondition, error) {
	numColors := el.intAttr(countAttr, 0)
	set := el.firstChild(setTag)
	if set == nil {
		return nil, Dirichlet, missingSection(setTag)
	}
	boundary := readBoundary(set)
	colors, err := c.readColorPoints(set, colorTag, numColors, c.swap)
	if err != nil {
		return nil, Dirichlet, err
	}
	return colors, boundary, nil
}

func readBoundary(set *element) BoundaryCondition {
	v, ok := set.attr("boundary")
	if ok && v == "Neumann" {
		return Neumann
	}
	return Dirichlet
}

// readPoissonCurves reads the `poisson_curve` children of `set`.
// Poisson curves are never swapped.
func (c *cursor) readPoissonCurves(set *element) ([]PoissonCurve, error) {
	numCurves := set.intAttr("nb_curves", 0)
	curves := make([]PoissonCurve, 0, capacity(set, numCurves))
	el := set.firstChild("poisson_curve")
	for i := 0; i < numCurves; i++ {
		if el == nil {
			return nil, at(missingElement("poisson_curve", i), SectionPoissonCurves, -1)
		}
		curve, err := c.readPoissonCurve(el)
		if err != nil {
			return nil, at(err, SectionPoissonCurves, i)
		}
		curves = append(curves, curve)
		el = el.nextSibling("poisson_curve")
	}
	c.warnExtra(el, "poisson_curve", numCurves)
	c.cfg.logger.Debug("Poisson curves read", "count", len(curves))
	return curves, nil
}

func (c *cursor) readPoissonCurve(el *element) (PoissonCurve, error) {
	controlPoints, err := c.readControlPoints(el, false)
	if err != nil {
		return PoissonCurve{}, err
	}
	numWeights := el.intAttr("nb_weights", 0)
	set := el.firstChild("weights_set")
	if set == nil {
		return PoissonCurve{}, missingSection("weights_set")
	}
	weights, err := c.readColorPoints(set, "weight", numWeights, false)
	if err != nil {
		return PoissonCurve{}, err
	}
	return PoissonCurve{ControlPoints: controlPoints, Weights: weights}, nil
}
