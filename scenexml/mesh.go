package scenexml

// readGradientMeshes reads the `mesh` children of `set`.
func (c *cursor) readGradientMeshes(set *element) ([]GradientMesh, error) {
	numMeshes := set.intAttr("nb_meshes", 0)
	meshes := make([]GradientMesh, 0, capacity(set, numMeshes))
	el := set.firstChild("mesh")
	for i := 0; i < numMeshes; i++ {
		if el == nil {
			return nil, at(missingElement("mesh", i), SectionMeshes, -1)
		}
		mesh, err := c.readGradientMesh(el)
		if err != nil {
			return nil, at(err, SectionMeshes, i)
		}
		meshes = append(meshes, mesh)
		el = el.nextSibling("mesh")
	}
	c.warnExtra(el, "mesh", numMeshes)
	c.cfg.logger.Debug("gradient meshes read", "count", len(meshes))
	return meshes, nil
}

func (c *cursor) readGradientMesh(el *element) (GradientMesh, error) {
	mesh := GradientMesh{
		Rows: el.intAttr("nb_rows", 0),
		Cols: el.intAttr("nb_cols", 0),
	}
	// if the mesh is normalized, its positions are scaled by the image size
	isNormalized := el.boolAttr("normalized", false)
	numVertices := mesh.VertexCount()

	numPositions := el.intAttr("nb_positions", 0)
	if numPositions != numVertices {
		return GradientMesh{}, countMismatch("nb_positions", numVertices, numPositions)
	}
	positionSet := el.firstChild("position_set")
	if positionSet == nil {
		return GradientMesh{}, missingSection("position_set")
	}
	var err error
	mesh.Positions, err = c.readPoints(positionSet, "position", numPositions, isNormalized, false)
	if err != nil {
		return GradientMesh{}, err
	}

	numColors := el.intAttr("nb_colors", 0)
	if numColors != numVertices {
		return GradientMesh{}, countMismatch("nb_colors", numVertices, numColors)
	}
	colorSet := el.firstChild("color_set")
	if colorSet == nil {
		return GradientMesh{}, missingSection("color_set")
	}
	mesh.Colors, err = c.readColors(colorSet, "color", numColors, false)
	if err != nil {
		return GradientMesh{}, err
	}

	// tangents are optional, but always come in pairs
	if tangentSet := el.firstChild("pos_tangent_set"); tangentSet != nil {
		mesh.TangentsU, err = c.readPoints(tangentSet, "positionU", numPositions, isNormalized, false)
		if err != nil {
			return GradientMesh{}, err
		}
		mesh.TangentsV, err = c.readPoints(tangentSet, "positionV", numPositions, isNormalized, false)
		if err != nil {
			return GradientMesh{}, err
		}
	}
	return mesh, nil
}
