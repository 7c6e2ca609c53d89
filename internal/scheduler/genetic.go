package scheduler

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// Config tunes the genetic scheduler. Zero values are filled with the
// reference defaults, so Config{} is a valid production configuration.
type Config struct {
	PopulationSize int
	Generations    int
	CrossoverRate  float64
	MutationRate   float64
	Scorer         ScorerConfig

	// Seed makes runs reproducible; Rand takes precedence when set.
	// Leaving both zero draws a time-based seed.
	Seed int64
	Rand *rand.Rand

	// Now overrides the clock used for deadline arithmetic.
	Now func() time.Time

	// UniformSeeding shuffles identity permutations instead of copies of
	// the heuristic order when seeding the initial population. The default
	// (false) preserves the reference seeding behavior.
	UniformSeeding bool

	// Penalty, when set, is subtracted from every chromosome's fitness.
	// Extension point for dependency-aware ordering constraints.
	Penalty func(order []int, tasks []Task) float64
}

// DefaultConfig returns the reference GA parameters.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 20,
		Generations:    40,
		CrossoverRate:  0.85,
		MutationRate:   0.2,
		Scorer:         DefaultScorerConfig(),
	}
}

// ScheduledTask is one task annotated with the optimizer's diagnostics.
type ScheduledTask struct {
	Task
	HeuristicPriority Priority `json:"heuristicPriority"`
	HeuristicScore    float64  `json:"heuristicScore"`
	GARank            int      `json:"gaRank"`
}

// PrioritySummary counts tasks per heuristic label.
type PrioritySummary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Metadata is the bookkeeping returned alongside a schedule.
type Metadata struct {
	Fitness              float64         `json:"fitness"`
	BestGeneration       int             `json:"bestGeneration"`
	EvaluatedGenerations int             `json:"evaluatedGenerations"`
	FitnessHistory       []float64       `json:"fitnessHistory"`
	PrioritySummary      PrioritySummary `json:"prioritySummary"`
}

// Result is the full optimizer output.
type Result struct {
	Schedule []ScheduledTask `json:"schedule"`
	Metadata Metadata        `json:"metadata"`
}

// Scheduler evolves task orderings with an elitist genetic algorithm, using
// the heuristic scorer as its fitness primitive. One Scheduler owns its
// random source and must not be shared across concurrent requests; the
// configuration itself is read-only after New.
type Scheduler struct {
	cfg    Config
	scorer *Scorer
	rng    *rand.Rand
	now    func() time.Time
}

// New creates a scheduler, filling zero config fields with defaults.
func New(cfg Config) *Scheduler {
	def := DefaultConfig()
	if cfg.PopulationSize <= 0 {
		cfg.PopulationSize = def.PopulationSize
	}
	if cfg.Generations <= 0 {
		cfg.Generations = def.Generations
	}
	if cfg.CrossoverRate <= 0 {
		cfg.CrossoverRate = def.CrossoverRate
	}
	if cfg.MutationRate <= 0 {
		cfg.MutationRate = def.MutationRate
	}

	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		cfg:    cfg,
		scorer: NewScorer(cfg.Scorer),
		rng:    rng,
		now:    now,
	}
}

// taskMetrics caches the per-task heuristic signals so the fitness function
// never rescores tasks inside the generational loop.
type taskMetrics struct {
	label      Priority
	weight     int
	score      float64
	days       float64 // unclamped whole days until deadline
	daysKnown  bool
	difficulty string
}

// Optimize searches the space of task orderings and returns the best found.
// An empty batch short-circuits without running any generations.
func (s *Scheduler) Optimize(tasks []Task, ctx *Context) Result {
	if len(tasks) == 0 {
		return Result{
			Schedule: []ScheduledTask{},
			Metadata: Metadata{FitnessHistory: []float64{}},
		}
	}

	now := s.now()
	metrics := make([]taskMetrics, len(tasks))
	var summary PrioritySummary
	for i, t := range tasks {
		label, score := s.scorer.Score(t, ctx, now)
		days, known := daysRemaining(t, now)
		metrics[i] = taskMetrics{
			label:      label,
			weight:     label.Weight(),
			score:      score,
			days:       days,
			daysKnown:  known,
			difficulty: normDifficulty(t.Difficulty),
		}
		switch label {
		case PriorityHigh:
			summary.High++
		case PriorityMedium:
			summary.Medium++
		default:
			summary.Low++
		}
	}

	// Heuristic baseline: indices by descending score, input order on ties.
	heuristicOrder := make([]int, len(tasks))
	for i := range heuristicOrder {
		heuristicOrder[i] = i
	}
	sort.SliceStable(heuristicOrder, func(a, b int) bool {
		return metrics[heuristicOrder[a]].score > metrics[heuristicOrder[b]].score
	})

	population := s.seedPopulation(heuristicOrder)

	mood := normMood(ctx)
	var (
		best    []int
		bestFit = math.Inf(-1)
		bestGen int
	)
	history := make([]float64, 0, s.cfg.Generations)

	type ranked struct {
		order   []int
		fitness float64
	}

	for gen := 0; gen < s.cfg.Generations; gen++ {
		scored := make([]ranked, len(population))
		for i, order := range population {
			scored[i] = ranked{order, s.fitness(order, tasks, metrics, mood)}
		}
		sort.SliceStable(scored, func(a, b int) bool {
			return scored[a].fitness > scored[b].fitness
		})

		history = append(history, scored[0].fitness)
		// Strict improvement only: the earliest-found optimum is kept.
		if scored[0].fitness > bestFit {
			bestFit = scored[0].fitness
			best = clonePerm(scored[0].order)
			bestGen = gen
		}

		eliteCount := s.cfg.PopulationSize / 5
		if eliteCount < 2 {
			eliteCount = 2
		}
		if eliteCount > len(scored) {
			eliteCount = len(scored)
		}

		next := make([][]int, 0, s.cfg.PopulationSize)
		for i := 0; i < eliteCount; i++ {
			next = append(next, clonePerm(scored[i].order))
		}
		for len(next) < s.cfg.PopulationSize {
			p1 := s.tournament(len(scored), func(i int) float64 { return scored[i].fitness })
			p2 := s.tournament(len(scored), func(i int) float64 { return scored[i].fitness })
			child := s.crossover(scored[p1].order, scored[p2].order)
			s.mutate(child)
			next = append(next, child)
		}
		population = next
	}

	schedule := make([]ScheduledTask, len(best))
	for rank, idx := range best {
		schedule[rank] = ScheduledTask{
			Task:              tasks[idx],
			HeuristicPriority: metrics[idx].label,
			HeuristicScore:    math.Round(metrics[idx].score*100) / 100,
			GARank:            rank + 1,
		}
	}

	return Result{
		Schedule: schedule,
		Metadata: Metadata{
			Fitness:              bestFit,
			BestGeneration:       bestGen,
			EvaluatedGenerations: s.cfg.Generations,
			FitnessHistory:       history,
			PrioritySummary:      summary,
		},
	}
}

// seedPopulation builds the initial population: the heuristic order itself
// plus shuffled copies of it (or of the identity permutation when uniform
// seeding is configured).
func (s *Scheduler) seedPopulation(heuristicOrder []int) [][]int {
	population := make([][]int, 0, s.cfg.PopulationSize)
	population = append(population, clonePerm(heuristicOrder))

	base := heuristicOrder
	if s.cfg.UniformSeeding {
		base = make([]int, len(heuristicOrder))
		for i := range base {
			base[i] = i
		}
	}
	for len(population) < s.cfg.PopulationSize {
		c := clonePerm(base)
		s.rng.Shuffle(len(c), func(i, j int) { c[i], c[j] = c[j], c[i] })
		population = append(population, c)
	}
	return population
}

// fitness scores one ordering. Earlier positions amplify both the label
// weight and the mood bonus; overdue tasks are penalized without bound.
func (s *Scheduler) fitness(order []int, tasks []Task, metrics []taskMetrics, mood string) float64 {
	n := len(order)
	total := 0.0
	for p, idx := range order {
		m := metrics[idx]

		total += float64(m.weight) * float64(n-p)
		total += m.score * 0.1

		if m.daysKnown {
			switch {
			case m.days < 0:
				total -= 5 * math.Abs(m.days)
			case m.days <= 2:
				total += 2
			case m.days > 7:
				total -= 0.5
			}
		}

		if mood != "" {
			switch {
			case (mood == "focused" || mood == "okay" || mood == "energetic") &&
				(m.difficulty == "hard" || m.difficulty == "medium"):
				total += 0.5 * float64(n-p)
			case (mood == "sad" || mood == "very_sad" || mood == "tired") &&
				m.difficulty == "hard":
				total -= float64(p + 1)
			}
		}
	}
	if s.cfg.Penalty != nil {
		total -= s.cfg.Penalty(order, tasks)
	}
	return total
}

// tournament picks one parent index: sample up to three contenders without
// replacement from the best-ranked half (minimum pool of 5) and keep the
// fittest. Assumes indices 0..n-1 are sorted by descending fitness.
func (s *Scheduler) tournament(n int, fitnessAt func(int) float64) int {
	pool := n / 2
	if pool < 5 {
		pool = 5
	}
	if pool > n {
		pool = n
	}
	k := 3
	if k > pool {
		k = pool
	}

	picks := s.rng.Perm(pool)[:k]
	best := picks[0]
	for _, c := range picks[1:] {
		if fitnessAt(c) > fitnessAt(best) {
			best = c
		}
	}
	return best
}

// crossover applies order crossover (OX): a random slice of parent1 is kept
// in place and the gaps are filled with parent2's genes in parent2's order.
// The child is always freshly allocated; parents are never aliased.
func (s *Scheduler) crossover(parent1, parent2 []int) []int {
	n := len(parent1)
	child := make([]int, n)
	if n < 2 || s.rng.Float64() >= s.cfg.CrossoverRate {
		copy(child, parent1)
		return child
	}

	start := s.rng.Intn(n)
	end := s.rng.Intn(n)
	if start > end {
		start, end = end, start
	}

	inSlice := make([]bool, n)
	for i := start; i < end; i++ {
		child[i] = parent1[i]
		inSlice[parent1[i]] = true
	}

	j := 0
	for i := 0; i < n; i++ {
		if i >= start && i < end {
			continue
		}
		for inSlice[parent2[j]] {
			j++
		}
		child[i] = parent2[j]
		j++
	}
	return child
}

// mutate swaps two uniformly random positions with the configured rate.
func (s *Scheduler) mutate(order []int) {
	if len(order) < 2 || s.rng.Float64() >= s.cfg.MutationRate {
		return
	}
	i := s.rng.Intn(len(order))
	j := s.rng.Intn(len(order))
	order[i], order[j] = order[j], order[i]
}

func clonePerm(p []int) []int {
	c := make([]int, len(p))
	copy(c, p)
	return c
}
