package app

import (
	"fmt"

	"shujaa-quiz-service/internal/domain"
)

const (
	// FullQuizQuestions is the length of a complete quiz.
	FullQuizQuestions = 10
	// InitialQuizQuestions is the length of the quick first batch.
	InitialQuizQuestions = 3
)

// FallbackQuiz deterministically produces a complete, schema-valid
// ten-question quiz for any hero name, with no network access and no
// failure mode. Content is a fixed template with the name interpolated.
func FallbackQuiz(heroName string) domain.QuizData {
	return domain.QuizData{
		HeroName: heroName,
		HeroBio:  "A remarkable Kenyan figure known for their contributions to Kenya's history and culture.",
		Questions: []domain.QuizQuestion{
			{
				ID:              1,
				Question:        fmt.Sprintf("Where was %s born?", heroName),
				Type:            domain.TypeMultipleChoice,
				Options:         []string{"Nairobi", "Mombasa", "Kisumu", "Nakuru"},
				CorrectAnswer:   domain.LetterAnswer("A"),
				Difficulty:      domain.DifficultyEasy,
				Explanation:     fmt.Sprintf("%s was born in Nairobi, Kenya's capital city.", heroName),
				FunnyCommentary: "Sasa basi! Nairobi ni jiji kubwa sana! 🇰🇪",
			},
			{
				ID:              2,
				Question:        fmt.Sprintf("Is %s a well-known figure in Kenya?", heroName),
				Type:            domain.TypeTrueFalse,
				CorrectAnswer:   domain.BoolAnswer(true),
				Difficulty:      domain.DifficultyEasy,
				Explanation:     fmt.Sprintf("%s is indeed a well-known and respected figure in Kenya.", heroName),
				FunnyCommentary: "Kweli! Huyu ni mshujaa wa kweli! 💪",
			},
			{
				ID:              3,
				Question:        fmt.Sprintf("What field is %s most associated with?", heroName),
				Type:            domain.TypeMultipleChoice,
				Options:         []string{"Politics", "Literature", "Sports", "Music"},
				CorrectAnswer:   domain.LetterAnswer("B"),
				Difficulty:      domain.DifficultyMedium,
				Explanation:     fmt.Sprintf("%s is most famous for their contributions to literature and culture.", heroName),
				FunnyCommentary: "Hongera! Utajua hii kama ukiwa na elimu nzuri! 📚",
			},
			{
				ID:              4,
				Question:        fmt.Sprintf("Did %s receive international recognition?", heroName),
				Type:            domain.TypeTrueFalse,
				CorrectAnswer:   domain.BoolAnswer(true),
				Difficulty:      domain.DifficultyMedium,
				Explanation:     fmt.Sprintf("%s gained international recognition for their work.", heroName),
				FunnyCommentary: "Sawa tu! Dunia nzima inamjua huyu! 🌍",
			},
			{
				ID:              5,
				Question:        fmt.Sprintf("In which decade did %s become prominent?", heroName),
				Type:            domain.TypeMultipleChoice,
				Options:         []string{"1950s", "1960s", "1970s", "1980s"},
				CorrectAnswer:   domain.LetterAnswer("B"),
				Difficulty:      domain.DifficultyMedium,
				Explanation:     fmt.Sprintf("%s became prominent in the 1960s during Kenya's independence era.", heroName),
				FunnyCommentary: "Hii ni ngumu kidogo, lakini unaweza! 🤔",
			},
			{
				ID:              6,
				Question:        fmt.Sprintf("Was %s involved in Kenya's independence movement?", heroName),
				Type:            domain.TypeTrueFalse,
				CorrectAnswer:   domain.BoolAnswer(true),
				Difficulty:      domain.DifficultyHard,
				Explanation:     fmt.Sprintf("%s played a role in Kenya's independence movement and cultural development.", heroName),
				FunnyCommentary: "Hii ni swali la kipekee! Unajua historia ya Kenya! 🏛️",
			},
			{
				ID:              7,
				Question:        fmt.Sprintf("What language did %s primarily write in?", heroName),
				Type:            domain.TypeMultipleChoice,
				Options:         []string{"English", "Kiswahili", "Kikuyu", "French"},
				CorrectAnswer:   domain.LetterAnswer("A"),
				Difficulty:      domain.DifficultyHard,
				Explanation:     fmt.Sprintf("%s wrote primarily in English, making their work accessible internationally.", heroName),
				FunnyCommentary: "Hii ni swali la kisasa sana! Unajua mambo! 🎯",
			},
			{
				ID:              8,
				Question:        fmt.Sprintf("Did %s face political challenges in their career?", heroName),
				Type:            domain.TypeTrueFalse,
				CorrectAnswer:   domain.BoolAnswer(true),
				Difficulty:      domain.DifficultyHard,
				Explanation:     fmt.Sprintf("%s faced various political challenges but remained committed to their principles.", heroName),
				FunnyCommentary: "Mshujaa wa kweli haogopi! Huyu ni mtu wa haki! ⚖️",
			},
			{
				ID:              9,
				Question:        fmt.Sprintf("Which award did %s likely receive?", heroName),
				Type:            domain.TypeMultipleChoice,
				Options:         []string{"Nobel Prize", "Grammy Award", "Olympic Medal", "Academy Award"},
				CorrectAnswer:   domain.LetterAnswer("A"),
				Difficulty:      domain.DifficultyHard,
				Explanation:     fmt.Sprintf("%s received the Nobel Prize for their outstanding contributions.", heroName),
				FunnyCommentary: "Hongera sana! Hii ni tuzo kubwa sana! 🏆",
			},
			{
				ID:              10,
				Question:        fmt.Sprintf("Is %s still remembered today in Kenya?", heroName),
				Type:            domain.TypeTrueFalse,
				CorrectAnswer:   domain.BoolAnswer(true),
				Difficulty:      domain.DifficultyEasy,
				Explanation:     fmt.Sprintf("%s is still widely remembered and celebrated in Kenya today.", heroName),
				FunnyCommentary: "Kweli kabisa! Mshujaa hajawahi kusahau! Wewe ni mshujaa pia! 🌟",
			},
		},
	}
}

// FallbackInitialQuiz is the first three fallback questions, used when the
// quick initial batch cannot be generated.
func FallbackInitialQuiz(heroName string) domain.QuizData {
	quiz := FallbackQuiz(heroName)
	quiz.Questions = quiz.Questions[:InitialQuizQuestions]
	return quiz
}

// FallbackPerformanceMessage is the templated post-game sentence used when
// message generation fails.
func FallbackPerformanceMessage(score, totalQuestions int, heroName string) string {
	return fmt.Sprintf("Hongera! You scored %d/%d questions about %s. Keep learning about our shujaas!", score, totalQuestions, heroName)
}
