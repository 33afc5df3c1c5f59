package sentiplot

// Score field names, in the order they are appended to a scored Frame.
const (
	NegField      = "neg"      // Negative polarity magnitude
	NeuField      = "neu"      // Neutral polarity magnitude
	PosField      = "pos"      // Positive polarity magnitude
	CompoundField = "compound" // Normalized aggregate polarity
)

// Column names used by the sentence scorer and the plot builder.
const (
	TextField          = "text"
	NameField          = "name"
	RoasterField       = "roaster"
	SentimentTypeField = "sentiment_type"
	AmountField        = "amount"
)

// SentimentFields lists the score columns added by ScoreFrame.
var SentimentFields = []string{NegField, NeuField, PosField, CompoundField}

// Scores represents the polarity scores an Analyzer produces for one text.
type Scores struct {
	Neg      float64 // 0.0 to 1.0
	Neu      float64 // 0.0 to 1.0
	Pos      float64 // 0.0 to 1.0
	Compound float64 // -1.0 (negative) to 1.0 (positive)
}

// Field returns the score stored under one of SentimentFields.
func (s Scores) Field(name string) (float64, bool) {
	switch name {
	case NegField:
		return s.Neg, true
	case NeuField:
		return s.Neu, true
	case PosField:
		return s.Pos, true
	case CompoundField:
		return s.Compound, true
	}
	return 0, false
}

// An Analyzer computes polarity scores for a string.
//
// Implementations are treated as opaque: their errors are returned to the
// caller unchanged (wrapped with the row key) and never retried.
type Analyzer interface {
	PolarityScores(text string) (Scores, error)
}

// AnalyzerFunc adapts an ordinary function to the Analyzer interface.
type AnalyzerFunc func(text string) (Scores, error)

// PolarityScores calls f(text).
func (f AnalyzerFunc) PolarityScores(text string) (Scores, error) {
	return f(text)
}

// A LongRecord is one (row, sentiment field) pair of a melted Frame.
type LongRecord struct {
	Key           string            // Row key of the source row
	ID            map[string]string // Identifier fields carried forward for labeling
	SentimentType string            // Name of the score field
	Amount        float64           // Value of the score field
}
