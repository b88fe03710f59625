package model

// Metadata describes the exported network and the preprocessing it expects.
type Metadata struct {
	InputName   string     `json:"input_name"`
	OutputName  string     `json:"output_name"`
	InputShape  []int64    `json:"input_shape"`
	OutputShape []int64    `json:"output_shape"`
	Classes     []string   `json:"classes"`
	ImageSize   int        `json:"image_size"`
	Mean        [3]float32 `json:"mean"`
	Std         [3]float32 `json:"std"`
	Resample    string     `json:"resample"`
}

// Top2 is the raw two-best ranking, before any override.
type Top2 struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Prediction is the classifier output for one image.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Top2  *Top2   `json:"top2,omitempty"`
}

// Ranked is one class with its probability.
type Ranked struct {
	Index int
	Label string
	Prob  float64
}

func (p *Prediction) clone() *Prediction {
	out := &Prediction{Label: p.Label, Score: p.Score}
	if p.Top2 != nil {
		out.Top2 = &Top2{
			Labels: append([]string(nil), p.Top2.Labels...),
			Scores: append([]float64(nil), p.Top2.Scores...),
		}
	}
	return out
}
