package evaluator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/clinsafe/medreview-api/knowledge"
)

// Engine runs evaluations against one immutable knowledge snapshot. Engines
// are cheap; build one per request from the container's current snapshot so
// a mid-request knowledge swap can never split a review across datasets.
type Engine struct {
	kb *knowledge.Knowledge
}

// New returns an Engine bound to the given knowledge snapshot.
func New(kb *knowledge.Knowledge) *Engine {
	return &Engine{kb: kb}
}

// Review runs the full pipeline: normalization, then the three screeners in
// parallel, then risk ranking and recommendation synthesis. The screeners
// are pure functions over the normalized list, so fanning them out needs no
// coordination beyond the join.
func (e *Engine) Review(ctx context.Context, inputs []MedicationInput, patient *PatientContext) (*ReviewResult, error) {
	meds, err := Normalize(e.kb, inputs)
	if err != nil {
		return nil, err
	}

	var (
		interactions      []InteractionFinding
		duplicates        []DuplicateFinding
		contraindications []ContraindicationFinding
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		interactions = CheckInteractions(e.kb, meds)
		return nil
	})
	g.Go(func() error {
		duplicates = CheckDuplicates(e.kb, meds)
		return nil
	})
	g.Go(func() error {
		contraindications = CheckContraindications(e.kb, meds, patient)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	risks := PrioritizeRisks(interactions, duplicates, contraindications)

	return &ReviewResult{
		Medications:       meds,
		Interactions:      interactions,
		Duplicates:        duplicates,
		Contraindications: contraindications,
		Risks:             risks,
		Recommendations:   SynthesizeRecommendations(risks, patient),
		Summary:           Summarize(risks),
	}, nil
}

// ValidateDosage validates one drug's proposed dose for the patient.
func (e *Engine) ValidateDosage(drug, dose string, patient *PatientContext) DosageResult {
	return ValidateDosage(e.kb, drug, dose, patient)
}
