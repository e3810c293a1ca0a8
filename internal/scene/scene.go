// Package scene assembles worlds from scene configurations.
package scene

import (
	"fmt"

	"github.com/san-kum/planar/internal/config"
	"github.com/san-kum/planar/internal/vec"
	"github.com/san-kum/planar/internal/world"
)

// Build constructs a World from a scene config. Rod lengths of zero are
// resolved to the anchor distance at build time, matching the editor
// behavior of creating a rod between two existing bodies.
func Build(cfg *config.Config) (*world.World, error) {
	w := world.New(vec.Vec2{X: cfg.GravityX, Y: cfg.GravityY})
	if cfg.Iterations > 0 {
		if err := w.SetIterations(cfg.Iterations); err != nil {
			return nil, err
		}
	}

	ids := make([]world.BodyID, len(cfg.Bodies))
	for i, bc := range cfg.Bodies {
		pos := vec.Vec2{X: bc.X, Y: bc.Y}
		var id world.BodyID
		var err error
		switch bc.Shape {
		case "circle":
			id, err = w.CreateCircle(pos, bc.Radius, bc.Mass, bc.Pinned, bc.Restitution, bc.Friction)
		case "box":
			id, err = w.CreateBox(pos, bc.HalfW, bc.HalfH, bc.Mass, bc.Pinned, bc.Restitution, bc.Friction)
		default:
			return nil, fmt.Errorf("%w: body %d has unknown shape %q", world.ErrInvalidParameter, i, bc.Shape)
		}
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if bc.VX != 0 || bc.VY != 0 {
			if err := w.SetVelocity(id, vec.Vec2{X: bc.VX, Y: bc.VY}); err != nil {
				return nil, err
			}
		}
		ids[i] = id
	}

	for i, rc := range cfg.Rods {
		if rc.A < 0 || rc.A >= len(ids) {
			return nil, fmt.Errorf("%w: rod %d references body %d", world.ErrInvalidParameter, i, rc.A)
		}
		anchorA := vec.Vec2{X: rc.AnchorAX, Y: rc.AnchorAY}

		if rc.B == -1 {
			point := vec.Vec2{X: rc.PX, Y: rc.PY}
			rest := rc.Length
			if rest == 0 {
				sa, err := w.Body(ids[rc.A])
				if err != nil {
					return nil, err
				}
				rest = vec.Dist(sa.Position.Add(anchorA.Rotate(sa.Rotation)), point)
			}
			if _, err := w.CreateRodToPoint(ids[rc.A], anchorA, point, rest); err != nil {
				return nil, fmt.Errorf("rod %d: %w", i, err)
			}
			continue
		}

		if rc.B < 0 || rc.B >= len(ids) {
			return nil, fmt.Errorf("%w: rod %d references body %d", world.ErrInvalidParameter, i, rc.B)
		}
		anchorB := vec.Vec2{X: rc.AnchorBX, Y: rc.AnchorBY}
		rest := rc.Length
		if rest == 0 {
			sa, err := w.Body(ids[rc.A])
			if err != nil {
				return nil, err
			}
			sb, err := w.Body(ids[rc.B])
			if err != nil {
				return nil, err
			}
			rest = vec.Dist(
				sa.Position.Add(anchorA.Rotate(sa.Rotation)),
				sb.Position.Add(anchorB.Rotate(sb.Rotation)),
			)
		}
		if _, err := w.CreateRod(ids[rc.A], anchorA, ids[rc.B], anchorB, rest); err != nil {
			return nil, fmt.Errorf("rod %d: %w", i, err)
		}
	}

	return w, nil
}

// FromPresetOrFile resolves a scene argument: a preset name first, then a
// yaml scene file path.
func FromPresetOrFile(arg string) (*config.Config, error) {
	if cfg := config.GetPreset(arg); cfg != nil {
		return cfg, nil
	}
	cfg, err := config.Load(arg)
	if err != nil {
		return nil, fmt.Errorf("scene %q is neither a preset nor a readable file: %w", arg, err)
	}
	return cfg, nil
}
