package world_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/planar/internal/vec"
	"github.com/san-kum/planar/internal/world"
)

var _ = Describe("World", func() {
	var w *world.World

	BeforeEach(func() {
		w = world.New(vec.Vec2{Y: -9.8})
	})

	Describe("creation", func() {
		It("assigns distinct ids in insertion order", func() {
			a, err := w.CreateCircle(vec.Vec2{}, 1, 1, false, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			b, err := w.CreateBox(vec.Vec2{X: 5}, 1, 1, 1, false, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(b).To(BeNumerically(">", a))

			states := w.Bodies()
			Expect(states).To(HaveLen(2))
			Expect(states[0].ID).To(Equal(a))
			Expect(states[0].Shape.Kind).To(Equal("circle"))
			Expect(states[1].Shape.Kind).To(Equal("box"))
		})

		It("rejects invalid parameters without mutating state", func() {
			_, err := w.CreateCircle(vec.Vec2{}, -1, 1, false, 0, 0)
			Expect(errors.Is(err, world.ErrInvalidParameter)).To(BeTrue())

			_, err = w.CreateCircle(vec.Vec2{}, 1, 0, false, 0, 0)
			Expect(errors.Is(err, world.ErrInvalidParameter)).To(BeTrue())

			_, err = w.CreateBox(vec.Vec2{}, 1, 0, 1, false, 0, 0)
			Expect(errors.Is(err, world.ErrInvalidParameter)).To(BeTrue())

			Expect(w.NumBodies()).To(BeZero())
		})

		It("rejects a negative rod rest length", func() {
			a, _ := w.CreateCircle(vec.Vec2{}, 1, 1, false, 0, 0)
			b, _ := w.CreateCircle(vec.Vec2{X: 5}, 1, 1, false, 0, 0)

			_, err := w.CreateRod(a, vec.Vec2{}, b, vec.Vec2{}, -1)
			Expect(errors.Is(err, world.ErrInvalidParameter)).To(BeTrue())
			Expect(w.NumRods()).To(BeZero())
		})
	})

	Describe("unknown ids", func() {
		It("reports NotFound for every operation", func() {
			Expect(errors.Is(w.Pin(42), world.ErrNotFound)).To(BeTrue())
			Expect(errors.Is(w.Unpin(42), world.ErrNotFound)).To(BeTrue())
			Expect(errors.Is(w.ApplyForce(42, vec.Vec2{X: 1}, vec.Vec2{}), world.ErrNotFound)).To(BeTrue())
			Expect(errors.Is(w.RemoveBody(42), world.ErrNotFound)).To(BeTrue())
			Expect(errors.Is(w.RemoveConstraint(42), world.ErrNotFound)).To(BeTrue())
			Expect(errors.Is(w.SetMass(42, 1), world.ErrNotFound)).To(BeTrue())

			_, err := w.Body(42)
			Expect(errors.Is(err, world.ErrNotFound)).To(BeTrue())

			_, err = w.CreateRod(42, vec.Vec2{}, 43, vec.Vec2{}, 1)
			Expect(errors.Is(err, world.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("stepping", func() {
		It("follows the semi-implicit Euler free-fall recurrence", func() {
			id, _ := w.CreateCircle(vec.Vec2{}, 1, 1, false, 0, 0)

			dt := 0.1
			for i := 0; i < 10; i++ {
				w.Step(dt)
			}

			s, err := w.Body(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Velocity.Y).To(BeNumerically("~", -9.8, 1e-6))

			// y_{k+1} = y_k + v_{k+1} dt with v_k = -9.8 k dt.
			wantY := 0.0
			for k := 1; k <= 10; k++ {
				wantY += -9.8 * float64(k) * dt * dt
			}
			Expect(s.Position.Y).To(BeNumerically("~", wantY, 1e-6))
		})

		It("ignores Step while paused", func() {
			id, _ := w.CreateCircle(vec.Vec2{}, 1, 1, false, 0, 0)

			w.SetRunning(false)
			for i := 0; i < 10; i++ {
				w.Step(0.1)
			}
			s, _ := w.Body(id)
			Expect(s.Position).To(Equal(vec.Vec2{}))
			Expect(s.Velocity).To(Equal(vec.Vec2{}))

			w.SetRunning(true)
			w.Step(0.1)
			s, _ = w.Body(id)
			Expect(s.Velocity.Y).To(BeNumerically("<", 0))
		})

		It("ignores non-positive dt", func() {
			id, _ := w.CreateCircle(vec.Vec2{}, 1, 1, false, 0, 0)
			w.Step(0)
			w.Step(-1)
			s, _ := w.Body(id)
			Expect(s.Position).To(Equal(vec.Vec2{}))
		})
	})

	Describe("pinned bodies", func() {
		It("never move, whatever forces are applied", func() {
			id, _ := w.CreateCircle(vec.Vec2{X: 2, Y: 3}, 1, 0, true, 0, 0)

			for i := 0; i < 50; i++ {
				Expect(w.ApplyForce(id, vec.Vec2{X: 1e6, Y: 1e6}, vec.Vec2{X: 7, Y: 7})).To(Succeed())
				w.Step(0.1)
			}

			s, _ := w.Body(id)
			Expect(s.Position).To(Equal(vec.Vec2{X: 2, Y: 3}))
			Expect(s.Rotation).To(BeZero())
			Expect(s.Velocity).To(Equal(vec.Vec2{}))
		})

		It("pin zeroes velocity, unpin restores dynamics", func() {
			id, _ := w.CreateCircle(vec.Vec2{}, 1, 2, false, 0, 0)
			Expect(w.SetVelocity(id, vec.Vec2{X: 5})).To(Succeed())

			Expect(w.Pin(id)).To(Succeed())
			s, _ := w.Body(id)
			Expect(s.Velocity).To(Equal(vec.Vec2{}))
			Expect(s.Pinned).To(BeTrue())

			Expect(w.Unpin(id)).To(Succeed())
			w.Step(0.1)
			s, _ = w.Body(id)
			Expect(s.Velocity.Y).To(BeNumerically("<", 0))
		})
	})

	Describe("rods", func() {
		It("holds the rest length once settled", func() {
			anchor, _ := w.CreateCircle(vec.Vec2{}, 0.5, 0, true, 0, 0)
			bob, _ := w.CreateCircle(vec.Vec2{X: 3, Y: -4}, 0.5, 1, false, 0, 0)
			_, err := w.CreateRod(anchor, vec.Vec2{}, bob, vec.Vec2{}, 5)
			Expect(err).NotTo(HaveOccurred())

			dt := 1.0 / 60
			for i := 0; i < 120; i++ {
				w.Step(dt)
			}
			for i := 0; i < 300; i++ {
				w.Step(dt)
				rods := w.Rods()
				Expect(rods).To(HaveLen(1))
				Expect(rods[0].Length).To(BeNumerically("~", 5, 1e-3))
				Expect(rods[0].Rest).To(Equal(5.0))
			}
		})

		It("exposes endpoints in snapshots", func() {
			a, _ := w.CreateCircle(vec.Vec2{}, 0.5, 0, true, 0, 0)
			b, _ := w.CreateCircle(vec.Vec2{X: 4}, 0.5, 1, false, 0, 0)
			_, _ = w.CreateRod(a, vec.Vec2{}, b, vec.Vec2{}, 4)

			rods := w.Rods()
			Expect(rods[0].A).To(Equal(vec.Vec2{}))
			Expect(rods[0].B).To(Equal(vec.Vec2{X: 4}))
			Expect(rods[0].BodyA).To(Equal(a))
			Expect(rods[0].BodyB).To(Equal(b))
		})

		It("supports anchoring to a fixed world point", func() {
			bob, _ := w.CreateCircle(vec.Vec2{X: 2}, 0.5, 1, false, 0, 0)
			_, err := w.CreateRodToPoint(bob, vec.Vec2{}, vec.Vec2{Y: 3}, 2)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 600; i++ {
				w.Step(1.0 / 60)
			}
			rods := w.Rods()
			Expect(rods[0].Length).To(BeNumerically("~", 2, 1e-2))
			Expect(rods[0].BodyB).To(Equal(world.BodyID(0)))
		})
	})

	Describe("removal", func() {
		It("cascades from a body to its rods and keeps stepping", func() {
			a, _ := w.CreateCircle(vec.Vec2{}, 0.5, 0, true, 0, 0)
			b, _ := w.CreateCircle(vec.Vec2{X: 2}, 0.5, 1, false, 0, 0)
			c, _ := w.CreateCircle(vec.Vec2{X: 4}, 0.5, 1, false, 0, 0)
			_, _ = w.CreateRod(a, vec.Vec2{}, b, vec.Vec2{}, 2)
			_, _ = w.CreateRod(b, vec.Vec2{}, c, vec.Vec2{}, 2)
			keep, _ := w.CreateRod(a, vec.Vec2{}, c, vec.Vec2{}, 4)

			Expect(w.RemoveBody(b)).To(Succeed())
			Expect(w.NumBodies()).To(Equal(2))

			rods := w.Rods()
			Expect(rods).To(HaveLen(1))
			Expect(rods[0].ID).To(Equal(keep))

			// Stepping after removal must not touch the removed body.
			Expect(func() {
				for i := 0; i < 60; i++ {
					w.Step(1.0 / 60)
				}
			}).NotTo(Panic())

			_, err := w.Body(b)
			Expect(errors.Is(err, world.ErrNotFound)).To(BeTrue())
		})

		It("removes a single constraint by id", func() {
			a, _ := w.CreateCircle(vec.Vec2{}, 0.5, 1, false, 0, 0)
			b, _ := w.CreateCircle(vec.Vec2{X: 2}, 0.5, 1, false, 0, 0)
			id, _ := w.CreateRod(a, vec.Vec2{}, b, vec.Vec2{}, 2)

			Expect(w.RemoveConstraint(id)).To(Succeed())
			Expect(w.NumRods()).To(BeZero())
			Expect(errors.Is(w.RemoveConstraint(id), world.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("property setters", func() {
		It("re-derives inverse mass and inertia", func() {
			id, _ := w.CreateCircle(vec.Vec2{}, 1, 1, false, 0.5, 0.5)

			Expect(w.SetMass(id, 4)).To(Succeed())
			s, _ := w.Body(id)
			Expect(s.Mass).To(Equal(4.0))
			Expect(s.Inertia()).To(BeNumerically("~", 2, 1e-12))

			Expect(errors.Is(w.SetMass(id, 0), world.ErrInvalidParameter)).To(BeTrue())
			Expect(errors.Is(w.SetRestitution(id, 1.5), world.ErrInvalidParameter)).To(BeTrue())
			Expect(errors.Is(w.SetFriction(id, -1), world.ErrInvalidParameter)).To(BeTrue())

			Expect(w.SetPosition(id, vec.Vec2{X: 9})).To(Succeed())
			s, _ = w.Body(id)
			Expect(s.Position.X).To(Equal(9.0))
		})
	})

	Describe("determinism", func() {
		build := func() *world.World {
			ww := world.New(vec.Vec2{Y: -9.8})
			anchor, _ := ww.CreateCircle(vec.Vec2{Y: 5}, 0.3, 0, true, 0.2, 0.4)
			bob, _ := ww.CreateCircle(vec.Vec2{X: 3, Y: 5}, 0.3, 1, false, 0.2, 0.4)
			_, _ = ww.CreateRod(anchor, vec.Vec2{}, bob, vec.Vec2{}, 3)
			_, _ = ww.CreateBox(vec.Vec2{Y: -1}, 10, 1, 1, true, 0.1, 0.8)
			_, _ = ww.CreateCircle(vec.Vec2{X: 0.5, Y: 3}, 0.5, 2, false, 0.6, 0.2)
			return ww
		}

		It("produces identical trajectories for identical inputs", func() {
			w1 := build()
			w2 := build()

			for i := 0; i < 600; i++ {
				w1.Step(1.0 / 60)
				w2.Step(1.0 / 60)
			}

			s1 := w1.Bodies()
			s2 := w2.Bodies()
			Expect(s1).To(HaveLen(len(s2)))
			for i := range s1 {
				Expect(s1[i].Position).To(Equal(s2[i].Position))
				Expect(s1[i].Rotation).To(Equal(s2[i].Rotation))
				Expect(s1[i].Velocity).To(Equal(s2[i].Velocity))
			}
		})
	})

	Describe("collisions in a full step", func() {
		It("separates overlapping circles and pushes them apart", func() {
			w.SetGravity(vec.Vec2{})
			a, _ := w.CreateCircle(vec.Vec2{}, 1, 1, false, 0, 0)
			b, _ := w.CreateCircle(vec.Vec2{X: 1.5}, 1, 1, false, 0, 0)

			for i := 0; i < 10; i++ {
				w.Step(1.0 / 60)
			}

			sa, _ := w.Body(a)
			sb, _ := w.Body(b)
			dist := vec.Dist(sa.Position, sb.Position)
			Expect(dist).To(BeNumerically(">=", 2-0.05))
			Expect(sa.Position.X).To(BeNumerically("<", 0))
			Expect(sb.Position.X).To(BeNumerically(">", 1.5))
			Expect(math.Abs(sa.Position.Y)).To(BeZero())
		})

		It("keeps a dropped ball above a pinned floor", func() {
			floor, _ := w.CreateBox(vec.Vec2{Y: -2}, 10, 1, 1, true, 0, 0.5)
			ball, _ := w.CreateCircle(vec.Vec2{Y: 3}, 0.5, 1, false, 0, 0.5)

			for i := 0; i < 600; i++ {
				w.Step(1.0 / 60)
			}

			sf, _ := w.Body(floor)
			sb, _ := w.Body(ball)
			Expect(sf.Position).To(Equal(vec.Vec2{Y: -2}))
			// Resting on the floor surface at y = -1 plus the radius,
			// within the solver's slop allowance.
			Expect(sb.Position.Y).To(BeNumerically("~", -0.5, 0.1))
		})
	})
})
