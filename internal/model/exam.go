package model

// ExamPrediction is the structured output of the exam-predictor feature.
// On unparseable model output the raw text becomes the overview and the
// meta caution falls back to a generic warning.
// swagger:model ExamPrediction
type ExamPrediction struct {
	Overview string           `json:"overview"`
	Strategy string           `json:"strategy"`
	Topics   []PredictedTopic `json:"topics"`
	Meta     PredictionMeta   `json:"meta"`
}

// swagger:model PredictedTopic
type PredictedTopic struct {
	Topic           string   `json:"topic"`
	Reason          string   `json:"reason"`
	Probability     float64  `json:"probability"`
	SampleQuestions []string `json:"sampleQuestions"`
}

// swagger:model PredictionMeta
type PredictionMeta struct {
	Caution string `json:"caution"`
}
