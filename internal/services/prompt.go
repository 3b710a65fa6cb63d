package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildChatPrompt creates the free-form interview-practice prompt.
func (pb *PromptBuilder) BuildChatPrompt(context, chatHistory, message string) string {
	return fmt.Sprintf(`You are an AI interview assistant. You have access to the candidate's resume and can have a natural conversation about their experience, skills, and background.

RESUME CONTENT:
%s

CONVERSATION HISTORY:
%s

USER MESSAGE: %s

INSTRUCTIONS:
1. Answer based on the resume content when relevant
2. Ask follow-up questions naturally to practice interview skills
3. Provide constructive feedback when appropriate
4. Keep responses conversational and helpful
5. If the user's message is not related to their resume, politely guide them back to interview practice

YOUR RESPONSE:`, context, chatHistory, message)
}

// BuildQuestionPrompt creates the prompt for one structured interview
// question. askedQuestions lists prior questions the model must not repeat.
func (pb *PromptBuilder) BuildQuestionPrompt(context, difficulty string, questionNumber int, askedQuestions []string) string {
	asked := strings.Join(askedQuestions, "\n")
	if asked == "" {
		asked = "None"
	}

	return fmt.Sprintf(`You are an expert technical interviewer.

RESUME CONTENT:
%s

DIFFICULTY LEVEL: %s

PREVIOUSLY ASKED QUESTIONS (DO NOT REPEAT):
%s

TASK: Ask question %d of 5.

STRICT REQUIREMENTS:
1. The question MUST be DIRECTLY based on specific skills, technologies, or projects mentioned in the resume above
2. For %s difficulty:
   - EASY: Basic concepts and definitions from their listed skills
   - MEDIUM: Practical application and problem-solving scenarios from their projects
   - HARD: Deep technical knowledge, system design, and complex scenarios related to their experience
3. DO NOT ask generic questions - reference SPECIFIC items from the resume
4. Ask ONLY ONE question
5. Make it different from previously asked questions
6. Be specific and technical

YOUR QUESTION:`, context, strings.ToUpper(difficulty), asked, questionNumber, difficulty)
}

// QuestionAnswerPair joins an asked question with the candidate's submitted
// answer for evaluation.
type QuestionAnswerPair struct {
	Question   string
	UserAnswer string
}

// BuildEvaluationPrompt creates the prompt demanding the structured
// evaluation JSON.
func (pb *PromptBuilder) BuildEvaluationPrompt(context, difficulty string, pairs []QuestionAnswerPair) string {
	var qa strings.Builder
	for i, pair := range pairs {
		qa.WriteString(fmt.Sprintf("\nQuestion %d: %s\nCandidate's Answer: %s\n", i+1, pair.Question, pair.UserAnswer))
	}

	return fmt.Sprintf(`You are an expert interview evaluator. Based on this candidate's resume and their interview responses, provide a comprehensive evaluation.

RESUME CONTENT:
%s

INTERVIEW DIFFICULTY: %s

QUESTIONS AND ANSWERS:
%s

TASK: Provide a comprehensive evaluation in the following EXACT JSON format (no markdown, just raw JSON):

{
  "overallScore": 45,
  "answers": [
    {
      "question": "Exact question text here",
      "userAnswer": "Candidate's exact answer here",
      "feedback": "Detailed feedback explaining what was good, what was missing, and how to improve. Be specific and constructive.",
      "score": "3/10"
    }
  ],
  "strengths": [
    "Specific strength observed during the interview with example",
    "Another strength with context",
    "Third strength based on their responses"
  ],
  "areasForImprovement": [
    "Specific area needing improvement with actionable advice",
    "Another area with concrete suggestions",
    "Third area with clear guidance on how to improve"
  ],
  "recommendation": "Overall recommendation summarizing the candidate's readiness, key takeaways, and next steps for improvement. Be honest but constructive."
}

EVALUATION CRITERIA:
1. Technical Accuracy: Did they answer correctly based on their resume skills?
2. Communication: How clear and structured was their response?
3. Depth: Did they provide sufficient detail and examples?
4. Relevance: Did they address the question directly?
5. Professionalism: Was the answer appropriate for an interview setting?

SCORING GUIDE:
- 9-10/10: Excellent answer with clear examples and deep understanding
- 7-8/10: Good answer with minor gaps
- 5-6/10: Adequate but lacking depth or clarity
- 3-4/10: Poor answer with significant issues
- 0-2/10: Unacceptable or no meaningful response

IMPORTANT:
- Return ONLY the JSON object, no additional text or markdown formatting
- Be fair but honest in your evaluation
- Provide specific, actionable feedback
- Reference their resume context when relevant
- Calculate overallScore as average of all answer scores`, context, strings.ToUpper(difficulty), qa.String())
}

// BuildATSPrompt creates the ATS compatibility analysis prompt.
func (pb *PromptBuilder) BuildATSPrompt(resumeText, jobDescription string) string {
	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = "General software engineering position"
	}

	return fmt.Sprintf(`You are an ATS (Applicant Tracking System) analyzer. Analyze this resume against the job description and provide a detailed ATS compatibility score.

RESUME:
%s

JOB DESCRIPTION:
%s

Provide your analysis in this EXACT JSON format (no markdown, just raw JSON):
{
  "overallScore": 78,
  "matchingKeywords": ["JavaScript", "React", "Node.js", "MongoDB", "AWS"],
  "missingKeywords": ["Docker", "Kubernetes", "GraphQL", "Redis"],
  "recommendations": [
    {
      "category": "Skills",
      "suggestion": "Add Docker and Kubernetes to your technical skills section",
      "impact": "High"
    },
    {
      "category": "Format",
      "suggestion": "Use bullet points instead of paragraphs for better ATS parsing",
      "impact": "Medium"
    },
    {
      "category": "Keywords",
      "suggestion": "Include more industry-specific terms from the job description",
      "impact": "High"
    },
    {
      "category": "Experience",
      "suggestion": "Quantify your achievements with specific metrics and numbers",
      "impact": "Medium"
    }
  ]
}

IMPORTANT: Return ONLY the JSON object, no additional text or formatting.`, resumeText, jobDescription)
}

// FormatHistory renders conversation turns as "ROLE: message" lines.
func FormatHistory(turns []HistoryTurn) string {
	var lines []string
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Role, t.Message))
	}
	return strings.Join(lines, "\n")
}

type HistoryTurn struct {
	Role    string
	Message string
}
