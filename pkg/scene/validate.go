package scene

import (
	"fmt"

	"github.com/matzehuels/freehand/pkg/errors"
	"github.com/matzehuels/freehand/pkg/spline"
)

// Validate checks the canvas, the defaults and every shape.
func (sc *Scene) Validate() error {
	if err := errors.ValidateNonNegative("width", sc.Width); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("height", sc.Height); err != nil {
		return err
	}
	if sc.Background != "" {
		if err := errors.ValidateColor(sc.Background); err != nil {
			return err
		}
	}
	if err := sc.Defaults.validate("defaults"); err != nil {
		return err
	}
	if len(sc.Shapes) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "scene has no shapes")
	}
	for i, sh := range sc.Shapes {
		if err := sh.validate(); err != nil {
			return errors.New(errors.GetCode(err), "shape %d (%s): %s", i, sh.Kind, errors.UserMessage(err))
		}
	}
	return nil
}

func (o Overrides) validate(where string) error {
	if o.MaxOffset != nil {
		if err := errors.ValidateNonNegative(where+".max_offset", *o.MaxOffset); err != nil {
			return err
		}
	}
	if o.StrokeWidth != nil {
		if err := errors.ValidateNonNegative(where+".stroke_width", *o.StrokeWidth); err != nil {
			return err
		}
	}
	if o.Stroke != "" {
		if err := errors.ValidateColor(o.Stroke); err != nil {
			return err
		}
	}
	return nil
}

// minPoints is the fewest points each point-based kind accepts.
var minPoints = map[Kind]int{
	KindLine:     2,
	KindPolyline: 2,
	KindPolygon:  3,
	KindCurve:    spline.MinPoints,
}

func (sh Shape) validate() error {
	if err := sh.Style.validate("style"); err != nil {
		return err
	}

	if sh.Kind == KindRect {
		if len(sh.Rect) != 4 {
			return errors.New(errors.ErrCodeInvalidShape, "rect needs [x, y, width, height], got %d values", len(sh.Rect))
		}
		if len(sh.Points) > 0 {
			return errors.New(errors.ErrCodeInvalidShape, "rect takes rect, not points")
		}
		return errors.ValidateFinite("rect", sh.Rect...)
	}

	need, ok := minPoints[sh.Kind]
	if !ok {
		return errors.New(errors.ErrCodeInvalidShape, "unknown kind %q (want one of %v)", sh.Kind, Kinds)
	}
	if len(sh.Rect) > 0 {
		return errors.New(errors.ErrCodeInvalidShape, "%s takes points, not rect", sh.Kind)
	}
	switch {
	case sh.Kind == KindLine && len(sh.Points) != 2:
		return errors.New(errors.ErrCodeInvalidShape, "line needs exactly 2 points, got %d", len(sh.Points))
	case len(sh.Points) < need:
		return errors.New(errors.ErrCodeInvalidShape, "%s needs at least %d points, got %d", sh.Kind, need, len(sh.Points))
	}
	for i, p := range sh.Points {
		if err := errors.ValidateFinite(fmt.Sprintf("points[%d]", i), p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}
