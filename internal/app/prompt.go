package app

import "fmt"

const promptExample = `Return JSON only:
{
  "heroName": "%s",
  "heroBio": "Brief bio",
  "questions": [
    {
      "id": 1,
      "question": "Question?",
      "type": "multiple_choice",
      "options": ["A", "B", "C", "D"],
      "correctAnswer": "A",
      "difficulty": "easy",
      "explanation": "Short explanation",
      "funnyCommentary": "Kenyan humor"
    }
  ]
}`

// BuildQuizPrompt formats the instruction sent to the generative API. Pure
// formatting, no validation: the count selects the mix and difficulty bands
// (10 for a full quiz, 3 for the quick initial batch).
func BuildQuizPrompt(heroName string, count int) string {
	var mix string
	if count == InitialQuizQuestions {
		mix = fmt.Sprintf("Create %d quiz questions about %s for ShujaaQuest. Mix: 2 multiple choice (A-D), 1 true/false. Make them easy difficulty. Add Kenyan humor.", count, heroName)
	} else {
		mix = fmt.Sprintf("Create %d quiz questions about %s for ShujaaQuest. Mix: 6 multiple choice (A-D), 4 true/false. Difficulty: easy (1-3), medium (4-7), hard (8-10). Add Kenyan humor.", count, heroName)
	}
	return mix + "\n\n" + fmt.Sprintf(promptExample, heroName)
}

// BuildPerformancePrompt formats the instruction for a post-game
// performance message.
func BuildPerformancePrompt(score, totalQuestions int, heroName string) string {
	percentage := 0
	if totalQuestions > 0 {
		percentage = int(float64(score)/float64(totalQuestions)*100 + 0.5)
	}
	return fmt.Sprintf(`
Generate a funny, encouraging performance message for a ShujaaQuest player who scored %d out of %d questions (%d%%) about %s.

Requirements:
- Use Kenyan humor and some Sheng slang
- Be encouraging and positive regardless of score
- Reference %s in the message
- Keep it 1-2 sentences
- Make it fun and memorable

Examples of tone: "Sasa basi!", "Hongera!", "Kweli!", "Hii ni mbaya sana!", "Wewe ni mshujaa!"

Return only the message text, no quotes or extra formatting.
`, score, totalQuestions, percentage, heroName, heroName)
}
