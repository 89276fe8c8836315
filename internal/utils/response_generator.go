package utils

import (
	"math/rand"
	"time"

	. "github.com/ywyher/survey/internal/models"
)

// ResponseGenerator produces plausible demo responses for seeding.
type ResponseGenerator struct {
	rng *rand.Rand
	now func() time.Time
}

func NewResponseGenerator(seed int64) *ResponseGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &ResponseGenerator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Generate returns count responses with creation times spread over the last
// thirty days. Diagnosed respondents always name at least one joint.
func (g *ResponseGenerator) Generate(count int) []*Response {
	responses := make([]*Response, 0, count)
	datePool := g.generateDatePool(count)

	for i := 0; i < count; i++ {
		diagnosed := pick(g.rng, Answers)

		var joints Joints
		if diagnosed == AnswerYes {
			joints = g.generateJoints(1)
		} else if g.rng.Intn(4) == 0 {
			joints = g.generateJoints(0)
		}
		if joints == nil {
			joints = Joints{}
		}

		created := datePool[i]
		response := &Response{
			Age:            18 + g.rng.Intn(70),
			Gender:         pick(g.rng, Genders),
			Occupation:     pick(g.rng, Occupations),
			IsDiagnosed:    diagnosed,
			AffectedJoints: joints,
			HasChronicPain: pick(g.rng, Answers),
			ActivityLevel:  pick(g.rng, ActivityLevels),
		}
		response.CreatedAt = created
		response.UpdatedAt = created

		responses = append(responses, response)
	}

	return responses
}

// generateJoints picks between least and all joints, kept in option order.
func (g *ResponseGenerator) generateJoints(least int) Joints {
	n := least + g.rng.Intn(len(JointOptions)-least+1)
	if n == 0 {
		return nil
	}

	chosen := make(map[int]bool, n)
	for _, i := range g.rng.Perm(len(JointOptions))[:n] {
		chosen[i] = true
	}

	joints := make(Joints, 0, n)
	for i, joint := range JointOptions {
		if chosen[i] {
			joints = append(joints, joint)
		}
	}
	return joints
}

func (g *ResponseGenerator) generateDatePool(size int) []time.Time {
	now := g.now().UTC().Truncate(time.Second)
	window := int64(30 * 24 * time.Hour / time.Second)

	pool := make([]time.Time, size)
	for i := range pool {
		pool[i] = now.Add(-time.Duration(g.rng.Int63n(window)) * time.Second)
	}
	return pool
}

func pick[T any](rng *rand.Rand, options []T) T {
	return options[rng.Intn(len(options))]
}
