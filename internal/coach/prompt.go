// Package coach implements the FitQuest coaching pipeline: prompt
// construction, provider response extraction, schema validation,
// sanitization, and the assembled GetFitnessResponse entry point.
package coach

import (
	"fmt"
	"strings"

	"github.com/fabianfernandess/FitQuest/internal/models"
)

// trainerPersonalities maps each house to its trainer persona as shown to
// the model.
var trainerPersonalities = map[models.House]string{
	models.HouseValor:  "Maximus is your dedicated trainer—strong-willed and relentless. He believes in discipline, pushing your limits, and forging resilience through intense workouts.",
	models.HouseLumina: "Serene is your guiding force—calm, wise, and strategic. She promotes endurance, balance, and sustainable habits, ensuring your long-term fitness success.",
	models.HouseNova:   "Lyra is your high-energy trainer—dynamic, creative, and always keeping things fresh. She thrives on fast-paced, high-intensity workouts that challenge and excite.",
}

// neutralPersona is used when the user's house is not recognized. Prompt
// construction never fails on an unknown house.
const neutralPersona = "Your trainer is a balanced, supportive coach who adapts to your pace, keeps workouts safe, and builds steady progress."

// responseContract spells out the JSON shape the provider must return,
// including the single-object and array forms of exerciseDetails. The rest
// of the pipeline depends on the provider honoring this contract often
// enough to be useful.
const responseContract = `**Instructions:**
- Reply in structured JSON with:
  - response (fitness advice)
  - youtubeLink (video demo URL, only if providing a workout tutorial)
  - **exerciseDetails**: This can be either:
    - **A single object** for one exercise: { "name": "Exercise Name", "sets": number, "reps": number | string }
    - **An array of objects** for multiple exercises: [ { "name": "Exercise 1 Name", "sets": number, "reps": number | string }, ... ]
  - dailyTasks (list of fitness tasks)
  - counters (calories, points, tasksCompleted)
- Tailor responses to match the user's house traits and fitness level.
- Provide **practical exercises, meal tips, and motivation**.
- Ensure responses are **clear, direct, and actionable**.

**The sets, reps, calories, points, and tasksCompleted should strictly be integers ONLY.**
**Each response should only have one exercise or task at a time.**

**Example Response Format (Single Exercise):**
` + "```json" + `
{
  "response": "Here's a beginner-friendly workout plan to help you build muscle. Start with 3 sets of 12 reps.",
  "youtubeLink": "https://www.youtube.com/watch?v=d3LPrhI0v-w",
  "exerciseDetails": { "name": "Push-ups", "sets": 3, "reps": 12 },
  "dailyTasks": ["Do 3 sets of push-ups", "Drink 2 liters of water"],
  "counters": { "calories": 250, "points": 10, "tasksCompleted": 0 }
}
` + "```" + `

**Example Response Format (Multiple Exercises - Array):**
` + "```json" + `
{
  "response": "Here are a couple of exercises to work different muscle groups.",
  "exerciseDetails": [
    { "name": "Squats", "sets": 3, "reps": 15 },
    { "name": "Plank", "sets": 3, "reps": "30 seconds" }
  ],
  "dailyTasks": ["Perform squats as instructed", "Hold plank for 30 seconds, 3 sets"],
  "counters": { "calories": 200, "points": 15, "tasksCompleted": 0 }
}
` + "```" + `

Respond **only in JSON** format.`

// BuildPrompt turns a user context into the system/user prompt pair sent to
// the provider. It is a pure function of its input and never fails: an
// unrecognized house degrades to the neutral persona.
func BuildPrompt(userCtx models.UserContext) (systemPrompt, userMessage string) {
	persona, ok := trainerPersonalities[userCtx.House]
	if !ok {
		persona = neutralPersona
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI fitness coach guiding %s, a member of %s. Your coaching style aligns with their house trainer:\n\n", userCtx.Name, userCtx.House)
	fmt.Fprintf(&b, "- **Trainer Personality:** %s\n", persona)
	fmt.Fprintf(&b, "- **BMI:** %v, **Height:** %v cm, **Weight:** %v kg\n", userCtx.BMI, userCtx.Height, userCtx.Weight)
	fmt.Fprintf(&b, "- **Exercise Level:** %s\n", userCtx.ExerciseLevel)
	fmt.Fprintf(&b, "- **Goals:** %s\n", strings.Join(userCtx.Goals, ", "))
	if userCtx.TargetedCalorieIntake != nil {
		fmt.Fprintf(&b, "- **Targeted Calorie Intake:** %v kcal/day\n", *userCtx.TargetedCalorieIntake)
	}
	b.WriteString("\n")
	b.WriteString(responseContract)

	return b.String(), userCtx.Message
}
