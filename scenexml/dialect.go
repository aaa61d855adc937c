package scenexml

// Dialect identifies the flavor of a scene document.
type Dialect uint8

const (
	// DialectAuto selects the dialect from the DOCTYPE line.
	DialectAuto Dialect = iota
	// DialectUnified is the scene format, with curves, Poisson curves
	// and meshes under a `scene` root.
	DialectUnified
	// DialectLegacy is the curve-only format, with transposed
	// coordinates and BGR colors.
	DialectLegacy
)

// DOCTYPE lines, compared verbatim with the first line of the document.
const (
	UnifiedDocType = "<!DOCTYPE SceneXML>"
	LegacyDocType  = "<!DOCTYPE CurveSetXML>"
)

func (d Dialect) String() string {
	switch d {
	case DialectAuto:
		return "auto"
	case DialectUnified:
		return "unified"
	case DialectLegacy:
		return "legacy"
	default:
		return "<invalid dialect>"
	}
}

// detectDialect returns DialectAuto for unknown lines.
func detectDialect(docType string) Dialect {
	switch docType {
	case UnifiedDocType:
		return DialectUnified
	case LegacyDocType:
		return DialectLegacy
	default:
		return DialectAuto
	}
}

// sceneReader fills a scene from the document tree.
type sceneReader interface {
	readScene(doc *element, c *cursor, sc *Scene) error
}

var sceneReaders = map[Dialect]sceneReader{
	DialectUnified: unifiedReader{},
	DialectLegacy:  legacyReader{},
}

// unifiedReader reads a `scene` root, whose sections are all optional.
type unifiedReader struct{}

func (unifiedReader) readScene(doc *element, c *cursor, sc *Scene) error {
	root := doc.firstChild("scene")
	if root == nil {
		return at(missingSection("scene"), SectionScene, -1)
	}
	readImageSize(root, c, sc)

	var err error
	if set := root.firstChild(SectionCurves); set != nil {
		if sc.DiffusionCurves, err = c.readDiffusionCurves(set); err != nil {
			return err
		}
	}
	if set := root.firstChild(SectionPoissonCurves); set != nil {
		if sc.PoissonCurves, err = c.readPoissonCurves(set); err != nil {
			return err
		}
	}
	if set := root.firstChild(SectionMeshes); set != nil {
		if sc.GradientMeshes, err = c.readGradientMeshes(set); err != nil {
			return err
		}
	}
	return nil
}

// legacyReader reads the root element as a curve set.
type legacyReader struct{}

func (legacyReader) readScene(doc *element, c *cursor, sc *Scene) error {
	root := doc.root()
	if root == nil {
		return at(missingSection("root element"), SectionScene, -1)
	}
	readImageSize(root, c, sc)

	c.swap = true
	var err error
	sc.DiffusionCurves, err = c.readDiffusionCurves(root)
	return err
}

func readImageSize(root *element, c *cursor, sc *Scene) {
	sc.Width = root.intAttr("image_width", 0)
	sc.Height = root.intAttr("image_height", 0)
	c.width, c.height = sc.Width, sc.Height
}
