package types

// QuestionType selects how a submitted answer is graded.
type QuestionType string

const (
	QuestionTypeBoolean    QuestionType = "boolean"
	QuestionTypeChoice     QuestionType = "choice"
	QuestionTypeCheckboxes QuestionType = "checkboxes"
	QuestionTypeScale      QuestionType = "scale"
	QuestionTypeText       QuestionType = "text"
)

// QuizQuestion is an ordered question of a quiz material. Answers are owned
// rows loaded alongside the question.
type QuizQuestion struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	MaterialID   uint         `gorm:"column:material_id;not null;index" json:"material_id"`
	Text         string       `gorm:"column:text;type:text;not null" json:"text"`
	QuestionType QuestionType `gorm:"column:question_type;type:varchar(16);not null" json:"question_type"`
	Score        float64      `gorm:"column:score;not null;default:1" json:"score"`
	DisplayOrder int          `gorm:"column:display_order;not null;default:0" json:"display_order"`

	// Scale configuration, required for scale questions.
	ScaleMin  *int `gorm:"column:scale_min" json:"scale_min,omitempty"`
	ScaleMax  *int `gorm:"column:scale_max" json:"scale_max,omitempty"`
	ScaleStep *int `gorm:"column:scale_step" json:"scale_step,omitempty"`

	Answers []QuizAnswer `gorm:"-" json:"answers,omitempty"`
}

func (QuizQuestion) TableName() string { return "quiz_questions" }

// QuizAnswer is one selectable option of a quiz question.
type QuizAnswer struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID   uint   `gorm:"column:question_id;not null;index" json:"question_id"`
	Text         string `gorm:"column:text;type:text;not null" json:"text"`
	IsCorrect    bool   `gorm:"column:is_correct;not null;default:false" json:"is_correct"`
	DisplayOrder int    `gorm:"column:display_order;not null;default:0" json:"display_order"`
}

func (QuizAnswer) TableName() string { return "quiz_answers" }

// SubmittedAnswer is the caller-supplied answer for one question.
type SubmittedAnswer struct {
	AnswerIDs []uint   `json:"answer_ids,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	Text      string   `json:"text,omitempty"`
}

// SubmittedQuestion pairs a question id with its submitted answer.
type SubmittedQuestion struct {
	QuestionID uint            `json:"question_id"`
	Answer     SubmittedAnswer `json:"answer"`
}

// QuizSubmission is the boundary payload of a quiz attempt.
type QuizSubmission struct {
	ProgramID *uint               `json:"program_id,omitempty"`
	Questions []SubmittedQuestion `json:"questions"`
}

// QuestionResult is the graded outcome for one submitted question.
type QuestionResult struct {
	QuestionID   uint     `json:"question_id"`
	ScoreAwarded float64  `json:"score_awarded"`
	Correct      bool     `json:"correct"`
	AnswerIDs    []uint   `json:"answer_ids,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	Text         string   `json:"text,omitempty"`
}

// EvaluationRecord is the serializable result of grading one submission. It
// is what gets persisted as the user's submission data, so its shape must be
// stable across releases.
type EvaluationRecord struct {
	MaterialID uint             `json:"material_id"`
	Results    []QuestionResult `json:"results"`
	TotalScore float64          `json:"total_score"`
}

// QuizSubmissionResponse is returned to the caller after a graded attempt.
type QuizSubmissionResponse struct {
	Success              bool    `json:"success"`
	MaterialID           uint    `json:"material_id"`
	ProgramID            *uint   `json:"program_id,omitempty"`
	LearningPathID       *uint   `json:"learning_path_id,omitempty"`
	Score                float64 `json:"score"`
	Progress             *int    `json:"progress"`
	LearningPathProgress *int    `json:"learning_path_progress,omitempty"`
}
