package models

// Question is a SQL exercise as returned by the /questions endpoints.
// Localised title/content fields are optional; callers fall back to Title
// and Content when they are empty.
type Question struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Difficulty int    `json:"difficulty"`
	CorrectSQL string `json:"correct_sql"`

	TitleEn       *string `json:"title_en,omitempty"`
	ContentEn     *string `json:"content_en,omitempty"`
	TitleZhTw     *string `json:"title_zh_tw,omitempty"`
	ContentZhTw   *string `json:"content_zh_tw,omitempty"`
	TimeLimitSecs *int    `json:"time_limit_seconds,omitempty"`

	// SchemaPreview is a JSON document describing the tables used by the
	// exercise: tables[{name, columns, rows}].
	SchemaPreview *string `json:"schema_preview,omitempty"`
	// RequiredOutputColumns lists the result columns the answer must
	// produce.
	RequiredOutputColumns *string `json:"required_output_columns,omitempty"`
	// DisplayDifficulty is the dynamic 1..10 rating.
	DisplayDifficulty *int `json:"display_difficulty,omitempty"`
	// SuggestedTimeSecs is the suggested time for challenge mode.
	SuggestedTimeSecs *int `json:"suggested_time_seconds,omitempty"`
}

// QuestionInput is the body of POST /questions/ and PUT /questions/{id}.
type QuestionInput struct {
	Title                 string  `json:"title"`
	Content               string  `json:"content"`
	CorrectSQL            string  `json:"correct_sql"`
	TitleEn               *string `json:"title_en,omitempty"`
	ContentEn             *string `json:"content_en,omitempty"`
	TitleZhTw             *string `json:"title_zh_tw,omitempty"`
	ContentZhTw           *string `json:"content_zh_tw,omitempty"`
	Difficulty            *int    `json:"difficulty,omitempty"`
	TimeLimitSecs         *int    `json:"time_limit_seconds,omitempty"`
	SchemaPreview         *string `json:"schema_preview,omitempty"`
	RequiredOutputColumns *string `json:"required_output_columns,omitempty"`
}

// KnowledgePoint is a SQL topic used by teachers to generate exercises.
type KnowledgePoint struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Level           string            `json:"level"`
	Description     string            `json:"description"`
	NameI18n        map[string]string `json:"name_i18n,omitempty"`
	LevelI18n       map[string]string `json:"level_i18n,omitempty"`
	DescriptionI18n map[string]string `json:"description_i18n,omitempty"`
}

// DifficultyFeedbackRequest is the body of
// POST /questions/{id}/difficulty-feedback. Rating is 1..10.
type DifficultyFeedbackRequest struct {
	Rating int `json:"rating"`
}

// GenerateQuestionsRequest is the body of POST /questions/generate-by-ai.
type GenerateQuestionsRequest struct {
	KnowledgePointID string `json:"knowledge_point_id"`
	Count            int    `json:"count"`
}
