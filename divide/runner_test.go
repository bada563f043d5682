package divide_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/katalvlaran/fairdiv/divide"
	"github.com/katalvlaran/fairdiv/envyfree"
	"github.com/katalvlaran/fairdiv/oracle"
	"github.com/katalvlaran/fairdiv/trace"
	"github.com/katalvlaran/fairdiv/valuation"
)

var _ divide.Solver = (*oracle.Client)(nil)

func flat(start, end, v float64) valuation.Segment {
	return valuation.Segment{Start: start, End: end, StartValue: v, EndValue: v}
}

func uniform(n int, size float64) []valuation.Profile {
	out := make([]valuation.Profile, n)
	for i := range out {
		out[i] = valuation.Profile{flat(0, size, 10)}
	}
	return out
}

// fakeSolver answers every remote call with an equal split handed out in
// reverse agent order.
type fakeSolver struct {
	calls []string
	err   error
}

func (f *fakeSolver) equalSplit(name string, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return envyfree.Result{}, f.err
	}
	n := len(profiles)
	assignment := make(map[int]int, n)
	for i := 1; i <= n; i++ {
		assignment[i] = n - i
	}
	cuts := oracle.Cuts{Left: cakeSize / float64(n), Right: cakeSize * float64(n-1) / float64(n)}
	if n == 4 {
		cuts.Middle = cakeSize / 2
		return oracle.BuildFourAgent(oracle.Response{Equipartition: cuts, Division: cuts, Assignment: assignment}, profiles, cakeSize)
	}
	return oracle.BuildThreeAgent(oracle.Response{Equipartition: cuts, Assignment: assignment}, profiles, cakeSize)
}

func (f *fakeSolver) BranzeiNisan(_ context.Context, p []valuation.Profile, size float64) (envyfree.Result, error) {
	return f.equalSplit("branzei-nisan", p, size)
}

func (f *fakeSolver) HollenderRubinstein(_ context.Context, p []valuation.Profile, size float64) (envyfree.Result, error) {
	return f.equalSplit("hollender-rubinstein", p, size)
}

func (f *fakeSolver) PiecewiseConstant(_ context.Context, p []valuation.Profile, size float64) (envyfree.Result, error) {
	return f.equalSplit("piecewise-constant", p, size)
}

var _ = Describe("Catalog", func() {
	It("should list every algorithm once in a stable order", func() {
		names := []divide.Algorithm{}
		for _, info := range divide.Catalog() {
			names = append(names, info.Name)
		}
		Expect(names).To(Equal([]divide.Algorithm{
			divide.CutAndChoose, divide.SelfridgeConway, divide.BranzeiNisan,
			divide.HollenderRubinstein, divide.PiecewiseConstant,
		}))
	})

	It("should not expose its backing array", func() {
		c := divide.Catalog()
		c[0].Name = "mangled"
		Expect(divide.Catalog()[0].Name).To(Equal(divide.CutAndChoose))
	})

	It("should reject unknown names", func() {
		_, err := divide.Lookup("last-diminisher")
		Expect(err).To(MatchError(divide.ErrUnknownAlgorithm))
	})

	It("should filter by agent count", func() {
		names := []divide.Algorithm{}
		for _, info := range divide.ForAgents(4) {
			names = append(names, info.Name)
		}
		Expect(names).To(ConsistOf(divide.HollenderRubinstein, divide.PiecewiseConstant))
		Expect(divide.ForAgents(7)).To(BeEmpty())
	})

	It("should default to the first algorithm accepting the agent count", func() {
		Expect(divide.Default(2)).To(Equal(divide.CutAndChoose))
		Expect(divide.Default(3)).To(Equal(divide.SelfridgeConway))
		Expect(divide.Default(4)).To(Equal(divide.HollenderRubinstein))
		_, err := divide.Default(1)
		Expect(err).To(MatchError(envyfree.ErrInvalidAgentCount))
	})
})

var _ = Describe("Runner", func() {
	var (
		ctx    context.Context
		runner *divide.Runner
	)

	BeforeEach(func() {
		ctx = context.Background()
		runner = divide.NewRunner(divide.WithLogger(zap.NewNop()))
	})

	Context("with a local algorithm", func() {
		It("should divide uniform thirds", func() {
			out, err := runner.Run(ctx, divide.SelfridgeConway, uniform(3, 90), 90)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.RunID).NotTo(Equal(uuid.Nil))
			Expect(out.Algorithm).To(Equal(divide.SelfridgeConway))
			Expect(out.Solution).To(HaveLen(3))
			Expect(out.Portions).To(HaveLen(3))
			for i, p := range out.Portions {
				Expect(p.Owner).To(Equal(i))
				Expect(p.ValuePerAgent[i]).To(BeNumerically("~", 1.0/3, 1e-9))
			}
			Expect(out.EnvyFree).To(BeTrue())
			Expect(out.Proportional).To(BeTrue())
			Expect(out.Steps[0].Action).To(Equal(trace.InitialCut))
		})

		It("should run cut-and-choose for two agents", func() {
			out, err := runner.Run(ctx, divide.CutAndChoose, uniform(2, 10), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Solution).To(HaveLen(2))
			Expect(out.EnvyFree).To(BeTrue())
		})

		It("should be deterministic apart from the run id", func() {
			profiles := []valuation.Profile{
				{flat(0, 30, 10), flat(30, 60, 5), flat(60, 90, 10)},
				{flat(0, 90, 10)},
				{flat(0, 60, 5), flat(60, 90, 10)},
			}
			a, err := runner.Run(ctx, divide.SelfridgeConway, profiles, 90)
			Expect(err).NotTo(HaveOccurred())
			b, err := runner.Run(ctx, divide.SelfridgeConway, profiles, 90)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.RunID).NotTo(Equal(b.RunID))
			Expect(cmp.Diff(a, b, cmpopts.IgnoreFields(divide.Outcome{}, "RunID"))).To(BeEmpty())
		})
	})

	Context("with invalid input", func() {
		It("should reject an unknown algorithm before validating", func() {
			_, err := runner.Run(ctx, "nope", nil, -1)
			Expect(err).To(MatchError(divide.ErrUnknownAlgorithm))
		})

		It("should reject malformed profiles", func() {
			profiles := uniform(3, 90)
			profiles[2] = valuation.Profile{flat(0, 80, 1)}
			_, err := runner.Run(ctx, divide.SelfridgeConway, profiles, 90)
			Expect(err).To(MatchError(valuation.ErrMalformedProfile))
		})

		It("should reject the wrong number of agents", func() {
			_, err := runner.Run(ctx, divide.SelfridgeConway, uniform(4, 90), 90)
			Expect(err).To(MatchError(envyfree.ErrInvalidAgentCount))
			_, err = runner.Run(ctx, divide.PiecewiseConstant, uniform(5, 90), 90)
			Expect(err).To(MatchError(envyfree.ErrInvalidAgentCount))
		})

		It("should report remote algorithms as unavailable without a solver", func() {
			info, err := divide.Lookup(divide.BranzeiNisan)
			Expect(err).NotTo(HaveOccurred())
			Expect(runner.Available(info)).To(BeFalse())
			info, _ = divide.Lookup(divide.SelfridgeConway)
			Expect(runner.Available(info)).To(BeTrue())
		})

		It("should refuse remote algorithms without a solver", func() {
			_, err := runner.Run(ctx, divide.BranzeiNisan, uniform(3, 90), 90)
			Expect(err).To(MatchError(divide.ErrNoSolver))
		})

		It("should honour a canceled context", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := runner.Run(canceled, divide.SelfridgeConway, uniform(3, 90), 90)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Context("with a remote solver", func() {
		var solver *fakeSolver

		BeforeEach(func() {
			solver = &fakeSolver{}
			runner = divide.NewRunner(divide.WithSolver(solver))
		})

		DescribeTable("should dispatch by name",
			func(algo divide.Algorithm, agents int) {
				out, err := runner.Run(ctx, algo, uniform(agents, 120), 120)
				Expect(err).NotTo(HaveOccurred())
				Expect(solver.calls).To(Equal([]string{string(algo)}))
				Expect(out.Solution).To(HaveLen(agents))
				Expect(out.Solution[0].Owner).To(Equal(agents - 1))
				Expect(out.Proportional).To(BeTrue())
			},
			Entry("three agents", divide.BranzeiNisan, 3),
			Entry("four agents", divide.HollenderRubinstein, 4),
			Entry("piecewise constant, three agents", divide.PiecewiseConstant, 3),
			Entry("piecewise constant, four agents", divide.PiecewiseConstant, 4),
		)

		It("should pass solver errors through", func() {
			boom := errors.New("solver down")
			solver.err = boom
			_, err := runner.Run(ctx, divide.HollenderRubinstein, uniform(4, 10), 10)
			Expect(err).To(MatchError(boom))
		})

		It("should still run local algorithms locally", func() {
			_, err := runner.Run(ctx, divide.SelfridgeConway, uniform(3, 90), 90)
			Expect(err).NotTo(HaveOccurred())
			Expect(solver.calls).To(BeEmpty())
		})
	})

	Context("with an oracle client", func() {
		It("should surface solver API errors", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"message":"overloaded"}`, http.StatusServiceUnavailable)
			}))
			DeferCleanup(srv.Close)

			client, err := oracle.NewClient(srv.URL)
			Expect(err).NotTo(HaveOccurred())
			runner = divide.NewRunner(divide.WithSolver(client))

			_, err = runner.Run(ctx, divide.BranzeiNisan, uniform(3, 90), 90)
			var apiErr *oracle.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(http.StatusServiceUnavailable))
			Expect(apiErr.Message).To(Equal("overloaded"))
		})
	})

	It("should panic on a negative tolerance", func() {
		Expect(func() { divide.WithTolerance(-1) }).To(Panic())
	})
})
