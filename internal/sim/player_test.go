package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stringsim/internal/strmode"
)

var _ = Describe("Player", func() {
	var (
		params strmode.Params
		grid   strmode.Grid
		pl     *Player
	)

	BeforeEach(func() {
		var err error
		params, err = strmode.NewParams(0.66, 1000, 0.01, 15, 0.01)
		Expect(err).NotTo(HaveOccurred())
		grid = strmode.NewGrid(params, 100)
		pl = NewPlayer(params, grid)
	})

	It("starts idle with a flat string", func() {
		Expect(pl.Status()).To(Equal(Idle))
		Expect(pl.Elapsed()).To(BeZero())
		for _, y := range pl.Frame(nil) {
			Expect(y).To(BeZero())
		}
	})

	It("refuses to play before a pluck", func() {
		Expect(pl.Play()).To(MatchError(ErrNotPlucked))
		Expect(pl.Status()).To(Equal(Idle))
	})

	It("ignores Advance while idle", func() {
		Expect(pl.Advance(0.1)).To(Equal(Idle))
		Expect(pl.Elapsed()).To(BeZero())
	})

	Context("after a pluck", func() {
		BeforeEach(func() {
			Expect(pl.PluckAt(0.2*params.Length(), 0.05)).To(Succeed())
		})

		It("runs from t=0 showing the plucked shape", func() {
			Expect(pl.Status()).To(Equal(Running))
			frame := pl.Frame(nil)
			shape := pl.Shape()
			Expect(frame).To(HaveLen(grid.Len()))
			for i := range frame {
				Expect(frame[i]).To(BeNumerically("~", shape[i], 0.005))
			}
			Expect(frame[0]).To(BeZero())
			Expect(frame[len(frame)-1]).To(BeZero())
		})

		It("advances the clock and decays", func() {
			e0 := pl.Energy()
			Expect(pl.Advance(0.01)).To(Equal(Running))
			Expect(pl.Elapsed()).To(BeNumerically("~", 0.01, 1e-12))
			Expect(pl.Energy()).To(BeNumerically("<", e0))
		})

		It("pauses without losing time and resumes", func() {
			pl.Advance(0.003)
			pl.Pause()
			Expect(pl.Status()).To(Equal(Idle))
			pl.Advance(1)
			Expect(pl.Elapsed()).To(BeNumerically("~", 0.003, 1e-12))
			Expect(pl.Play()).To(Succeed())
			Expect(pl.Status()).To(Equal(Running))
		})

		It("rewinds on reset", func() {
			pl.Advance(0.5)
			pl.Reset()
			Expect(pl.Status()).To(Equal(Idle))
			Expect(pl.Elapsed()).To(BeZero())
		})

		It("stops itself at the ceiling", func() {
			pl.SetCeiling(0.02)
			for i := 0; i < 10; i++ {
				pl.Advance(0.005)
			}
			Expect(pl.Status()).To(Equal(Idle))
			Expect(pl.Elapsed()).To(Equal(0.02))

			By("restarting from zero when played again")
			Expect(pl.Play()).To(Succeed())
			Expect(pl.Elapsed()).To(BeZero())
		})

		It("rewinds on a new pluck", func() {
			pl.Advance(0.1)
			Expect(pl.PluckAt(0.33, 0.01)).To(Succeed())
			Expect(pl.Elapsed()).To(BeZero())
			Expect(pl.Amplitudes().Mode(2)).To(BeNumerically("~", 0, 1e-9))
		})

		It("re-decomposes when the mode count changes", func() {
			fewer, err := params.WithModes(3)
			Expect(err).NotTo(HaveOccurred())
			Expect(pl.SetParams(fewer)).To(Succeed())
			Expect(pl.Amplitudes()).To(HaveLen(3))
			Expect(pl.Status()).To(Equal(Running))
		})

		It("senses zero pickup velocity at the instant of release", func() {
			Expect(pl.PickupVelocity(0.1)).To(BeZero())
			pl.Advance(1e-4)
			Expect(pl.PickupVelocity(0.1)).NotTo(BeZero())
		})
	})

	It("stays idle after a flat pluck", func() {
		Expect(pl.Pluck(make(strmode.Shape, grid.Len()))).To(Succeed())
		Expect(pl.Status()).To(Equal(Idle))
		Expect(pl.Play()).To(MatchError(ErrNotPlucked))
	})

	It("rejects a pluck outside the string", func() {
		err := pl.PluckAt(params.Length(), 0.01)
		Expect(err).To(MatchError(strmode.ErrInvalidParameter))
		Expect(pl.Status()).To(Equal(Idle))
	})
})
