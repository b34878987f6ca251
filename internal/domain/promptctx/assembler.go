package promptctx

import (
	"fmt"
	"strings"

	"github.com/phoenixborealis/bimagent/internal/domain/classify"
	"github.com/phoenixborealis/bimagent/internal/domain/model"
	"github.com/phoenixborealis/bimagent/internal/domain/scenario"
)

// Request carries everything the assembler needs for one prompt.
type Request struct {
	Topic      classify.Topic
	Resolution scenario.Resolution
	Question   string

	// CategoryID is an optional free-form hint focusing the answer on one
	// breakdown category. It is passed through verbatim without validation;
	// the engine reports unknown categories itself.
	CategoryID string

	// Debug widens the slice to include the raw geometry fixture and the
	// writeback mapping.
	Debug bool
}

// Assemble builds the single prompt string for the answering engine. It never
// mutates the store and is idempotent: equal inputs produce identical bytes.
func Assemble(store *model.ContextStore, req Request) (string, error) {
	slice, err := Slice(store, req.Topic, req.Debug)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("RELEVANT DATA FOR THIS QUESTION:\n")
	b.Write(slice)
	b.WriteString("\n\n")

	writeActiveScenario(&b, req.Resolution)

	if req.CategoryID != "" {
		fmt.Fprintf(&b, "CATEGORY FOCUS: Answer specifically about category %q from carbon_baseline.by_category.\n\n", req.CategoryID)
	}

	fmt.Fprintf(&b, "User Question: %s\n\n", req.Question)
	fmt.Fprintf(&b, "ANSWERING INSTRUCTIONS:\n%s\n\n", InstructionsFor(req.Topic))
	b.WriteString(generalRules)
	b.WriteString("\n")

	return b.String(), nil
}

// writeActiveScenario renders the resolved scenario block. These figures come
// from the same resolution the dashboard aggregator uses, which is what keeps
// chat answers numerically consistent with the UI.
func writeActiveScenario(b *strings.Builder, res scenario.Resolution) {
	active := res.Active
	b.WriteString("ACTIVE SCENARIO:\n")
	fmt.Fprintf(b, "- Name: %s\n", active.LabelPTBR)
	fmt.Fprintf(b, "- Intensity: %g kgCO2e/m²\n", active.IntensityKgCO2ePerM2)
	fmt.Fprintf(b, "- Total: %g kgCO2e\n", active.TotalKgCO2e)
	if r := res.ReductionPercent(); r != 0 {
		fmt.Fprintf(b, "- Reduction: %g%% vs baseline\n", r)
	}
	b.WriteString("\n")
}
