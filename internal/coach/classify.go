package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fabianfernandess/FitQuest/internal/genai"
	"github.com/fabianfernandess/FitQuest/internal/models"
)

// ErrIncompleteAssignment indicates the classifier reply was parseable but
// missing one of the required verdict fields.
var ErrIncompleteAssignment = errors.New("incomplete house assignment from provider")

// classifierSystemPrompt is the onboarding rubric: house principles,
// target-BMI ranges, and the Mifflin-St Jeor calorie guidance. The model is
// asked for pure JSON with no surrounding prose.
const classifierSystemPrompt = `You are an advanced AI fitness classifier responsible for assigning users to one of three fitness houses based on their fitness profile, goals, and preferences. Additionally, you will calculate a target BMI level and suggest a daily calorie intake based on the user's details.

### Houses & Their Core Principles:
- **House of Valor (Trainer: Maximus)**
  - Strength, endurance, and resilience.
  - Ideal for weightlifting, outdoor activities, and team sports.
  - Best for disciplined individuals who push their limits.

- **House of Lumina (Trainer: Serene)**
  - Flexibility, mindfulness, and holistic well-being.
  - Ideal for yoga, stretching, and home workouts.
  - Suited for stress relief, mental clarity, and body balance.

- **House of Nova (Trainer: Lyra)**
  - Agility, HIIT, and innovative training methods.
  - Best for fast-paced workouts, tracking progress, and structured plans.
  - Ideal for those who seek measurable improvements.

### Classification Criteria
- Users interested in **weightlifting, outdoor activities, and team sports** -> House of Valor.
- Users who prefer **yoga, flexibility, home workouts, and mindfulness** -> House of Lumina.
- Users who focus on **HIIT, tracking progress, and structured plans** -> House of Nova.
- If a user has mixed preferences, prioritize based on their strongest match, considering both exercise level and fitness goals.

### Target BMI Calculation
- Healthy BMI range: **18.5 - 24.9**
- If BMI is **below 18.5**, target BMI = **19-21** (suggest weight gain).
- If BMI is **above 25**, target BMI = **22-24** (suggest weight loss).
- If BMI is **within 18.5 - 24.9**, suggest maintaining current BMI.

### Calorie Intake Calculation
**Mifflin-St Jeor Equation** for Basal Metabolic Rate (BMR):
BMR = (10 x weight in kg) + (6.25 x height in cm) - (5 x age) + 5
Multiply by activity level:
- **Sedentary:** BMR x 1.2
- **Lightly Active:** BMR x 1.375
- **Moderately Active:** BMR x 1.55
- **Very Active:** BMR x 1.725

**Adjust based on fitness goals:**
- **Weight Loss:** Reduce intake by **500 kcal/day**
- **Muscle Gain:** Increase intake by **300-500 kcal/day**
- **Maintenance:** Keep recommended intake.

### Response Format
Return the classification result in **valid JSON format only**, with no extra text:
{
  "house": "House of Nova",
  "trainer": "Lyra",
  "justification": "...",
  "target_bmi": 22,
  "recommended_calories_per_day": 2200
}
**Do not return any explanations or markdown. Respond with pure JSON only.**`

// Classifier assigns onboarding users to a house via the provider.
type Classifier struct {
	generator genai.Generator
}

// NewClassifier creates a classifier using the given provider gateway.
func NewClassifier(generator genai.Generator) *Classifier {
	return &Classifier{generator: generator}
}

// ClassifyHouse sends the onboarding profile to the provider and parses the
// assignment verdict. Unlike GetFitnessResponse there is no fallback: an
// unusable reply is returned as an error so the caller can re-ask.
func (cl *Classifier) ClassifyHouse(ctx context.Context, profile models.ClassificationProfile) (*models.HouseAssignment, error) {
	userMessage, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize classification profile: %w", err)
	}

	raw, err := cl.generator.Generate(ctx, classifierSystemPrompt, string(userMessage))
	if err != nil {
		return nil, fmt.Errorf("classification provider call failed: %w", err)
	}

	candidate, err := ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("classification reply: %w", err)
	}

	var assignment models.HouseAssignment
	if err := json.Unmarshal([]byte(candidate), &assignment); err != nil {
		return nil, fmt.Errorf("failed to parse house assignment: %w", err)
	}

	if assignment.House == "" || assignment.Trainer == "" || assignment.TargetBMI == 0 || assignment.RecommendedCalories == 0 {
		slog.Warn("Classifier returned incomplete assignment", "house", assignment.House, "trainer", assignment.Trainer)
		return nil, ErrIncompleteAssignment
	}

	slog.Info("Classifier assigned house", "house", assignment.House, "trainer", assignment.Trainer, "user", profile.Name)
	return &assignment, nil
}
